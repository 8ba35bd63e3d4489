package chess

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Cell is the content of one square: either empty or occupied by a piece.
// The zero value is an empty cell.
type Cell struct {
	piece    Piece
	occupied bool
}

// EmptyCell returns an empty cell.
func EmptyCell() Cell {
	return Cell{}
}

// Occupied returns a cell holding p.
func Occupied(p Piece) Cell {
	return Cell{piece: p, occupied: true}
}

// Piece returns the occupying piece and true, or false for an empty cell.
func (c Cell) Piece() (Piece, bool) {
	return c.piece, c.occupied
}

// IsEmpty reports whether the cell holds no piece.
func (c Cell) IsEmpty() bool {
	return !c.occupied
}

// HasColour reports whether the cell holds a piece of the given colour.
func (c Cell) HasColour(colour Colour) bool {
	return c.occupied && c.piece.Colour == colour
}

// Equal reports whether two cells hold the same content.
func (c Cell) Equal(other Cell) bool {
	return c == other
}

// String returns the piece description or "empty".
func (c Cell) String() string {
	if !c.occupied {
		return "empty"
	}
	return c.piece.String()
}

// MarshalJSON encodes an empty cell as null and an occupied cell as the piece.
func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.occupied {
		return []byte("null"), nil
	}
	return json.Marshal(c.piece)
}

// UnmarshalJSON decodes null or a piece object.
func (c *Cell) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = Cell{}
		return nil
	}
	var p Piece
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Occupied(p)
	return nil
}

// Board is an 8x8 grid of cells indexed [row][col]. It is a plain value:
// assigning or passing a Board copies every square, so functions that take a
// Board can never alter the caller's copy.
type Board struct {
	squares [BoardSize][BoardSize]Cell
}

// NewBoard creates an empty board.
func NewBoard() Board {
	return Board{}
}

// backRank is the piece order on both back ranks, columns 0..7.
var backRank = [BoardSize]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewInitialBoard returns the standard chess starting position.
func NewInitialBoard() Board {
	var b Board
	for col := 0; col < BoardSize; col++ {
		b.squares[0][col] = Occupied(B(backRank[col]))
		b.squares[1][col] = Occupied(B(Pawn))
		b.squares[6][col] = Occupied(W(Pawn))
		b.squares[7][col] = Occupied(W(backRank[col]))
	}
	return b
}

// At returns the cell at p. Out-of-bounds positions read as empty.
func (b Board) At(p Position) Cell {
	if !p.InBounds() {
		return Cell{}
	}
	return b.squares[p.Row][p.Col]
}

// Piece returns the piece at p, if any.
func (b Board) Piece(p Position) (Piece, bool) {
	return b.At(p).Piece()
}

// IsEmpty reports whether the square at p holds no piece.
func (b Board) IsEmpty(p Position) bool {
	return b.At(p).IsEmpty()
}

// Set writes c into the square at p. Out-of-bounds writes are ignored.
func (b *Board) Set(p Position, c Cell) {
	if p.InBounds() {
		b.squares[p.Row][p.Col] = c
	}
}

// Place puts piece on p.
func (b *Board) Place(p Position, piece Piece) {
	b.Set(p, Occupied(piece))
}

// Clear empties the square at p.
func (b *Board) Clear(p Position) {
	b.Set(p, Cell{})
}

// Equal reports whether two boards have identical squares.
func (b Board) Equal(other Board) bool {
	return b.squares == other.squares
}

// Located pairs a piece with the square it stands on.
type Located struct {
	Position Position
	Piece    Piece
}

// Pieces returns every piece of the given colour in row-major order.
func (b Board) Pieces(colour Colour) []Located {
	var out []Located
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if p, ok := b.squares[row][col].Piece(); ok && p.Colour == colour {
				out = append(out, Located{Position: Position{Row: row, Col: col}, Piece: p})
			}
		}
	}
	return out
}

// Count returns the number of occupied squares.
func (b Board) Count() int {
	n := 0
	for row := range b.squares {
		for col := range b.squares[row] {
			if !b.squares[row][col].IsEmpty() {
				n++
			}
		}
	}
	return n
}

// String draws the board with row 0 at the top, '.' for empty squares.
func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if p, ok := b.squares[row][col].Piece(); ok {
				sb.WriteByte(p.Symbol())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// MarshalJSON encodes the board as an 8x8 array of null or piece objects.
func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.squares)
}

// UnmarshalJSON decodes an 8x8 array of null or piece objects.
func (b *Board) UnmarshalJSON(data []byte) error {
	var squares [BoardSize][BoardSize]Cell
	if err := json.Unmarshal(data, &squares); err != nil {
		return err
	}
	b.squares = squares
	return nil
}
