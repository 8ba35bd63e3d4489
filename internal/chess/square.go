package chess

import (
	"fmt"
	"strings"
)

// BoardSize is the number of rows and columns on the board.
const BoardSize = 8

// Position addresses a square by row and column, both in [0,7].
// Row 0 is black's back rank, row 7 is white's.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// InBounds reports whether both coordinates lie on the board.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// String returns the square name, e.g. row 6 col 4 is "e2".
func (p Position) String() string {
	if !p.InBounds() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col, BoardSize-p.Row)
}

// ParseSquare converts a square name such as "e2" into a Position.
func ParseSquare(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return Position{}, fmt.Errorf("invalid square %q", s)
	}
	col := int(s[0] - 'a')
	rank := int(s[1] - '0')
	p := Position{Row: BoardSize - rank, Col: col}
	if rank < 1 || !p.InBounds() {
		return Position{}, fmt.Errorf("invalid square %q", s)
	}
	return p, nil
}

// MustParseSquare is like ParseSquare but panics on error. Intended for tests
// and fixed tables.
func MustParseSquare(s string) Position {
	p, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return p
}

// AllPositions returns every square in row-major order.
func AllPositions() []Position {
	positions := make([]Position, 0, BoardSize*BoardSize)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			positions = append(positions, Position{Row: row, Col: col})
		}
	}
	return positions
}
