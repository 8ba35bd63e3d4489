// Package chess provides the board model: colours, pieces, squares and the 8x8 board.
package chess

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// MarshalText encodes the colour as "white" or "black".
func (c Colour) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(c.String())), nil
}

// UnmarshalText decodes "white" or "black" (case-insensitive).
func (c *Colour) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "white":
		*c = White
	case "black":
		*c = Black
	default:
		return fmt.Errorf("unknown colour %q", text)
	}
	return nil
}

// Kind is the type of a chess piece. There are exactly six kinds.
type Kind int

const (
	Pawn Kind = iota + 1
	Knight
	Bishop
	Rook
	Queen
	King
)

// Kinds lists every piece kind in ascending order.
var Kinds = []Kind{Pawn, Knight, Bishop, Rook, Queen, King}

var kindNames = map[Kind]string{
	Pawn:   "pawn",
	Knight: "knight",
	Bishop: "bishop",
	Rook:   "rook",
	Queen:  "queen",
	King:   "king",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{'?', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if int(k) > 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// Value returns the conventional material value of the kind.
// Kings are worth nothing since they are never captured.
func (k Kind) Value() int {
	switch k {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	}
	return 0
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown piece kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name such as "queen".
func (k *Kind) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for kind, n := range kindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown piece kind %q", text)
}

// Piece is a coloured piece. Pieces are values; moving one writes a
// copy into the destination cell.
type Piece struct {
	Kind   Kind   `json:"type"`
	Colour Colour `json:"color"`

	// HasMoved is set the first time the piece is relocated. No rule reads it.
	HasMoved bool `json:"hasMoved,omitempty"`
}

// UnmarshalJSON decodes a piece object. Both "type" and "color" are required.
func (p *Piece) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind     *Kind   `json:"type"`
		Colour   *Colour `json:"color"`
		HasMoved bool    `json:"hasMoved"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Kind == nil {
		return fmt.Errorf("piece %s: missing type", data)
	}
	if raw.Colour == nil {
		return fmt.Errorf("piece %s: missing color", data)
	}
	*p = Piece{Kind: *raw.Kind, Colour: *raw.Colour, HasMoved: raw.HasMoved}
	return nil
}

// NewPiece creates an unmoved piece.
func NewPiece(colour Colour, kind Kind) Piece {
	return Piece{Kind: kind, Colour: colour}
}

// W creates a white piece.
func W(kind Kind) Piece {
	return NewPiece(White, kind)
}

// B creates a black piece.
func B(kind Kind) Piece {
	return NewPiece(Black, kind)
}

// String returns e.g. "white knight".
func (p Piece) String() string {
	return strings.ToLower(p.Colour.String()) + " " + p.Kind.String()
}

// Symbol returns the letter for the piece, lower case for black.
func (p Piece) Symbol() byte {
	letter := p.Kind.Letter()
	if p.Colour == Black {
		letter += 'a' - 'A'
	}
	return letter
}

// Moved returns a copy of the piece with HasMoved set.
func (p Piece) Moved() Piece {
	p.HasMoved = true
	return p
}
