package chess

// Move is a from/to square pair.
type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// String returns the move in long form, e.g. "e2-e4".
func (m Move) String() string {
	return m.From.String() + "-" + m.To.String()
}

// MoveRecord describes one accepted move for history display.
// Records are built by callers from the ingredients the engine returns.
type MoveRecord struct {
	From  Position `json:"from"`
	To    Position `json:"to"`
	Piece Piece    `json:"piece"`

	// Captured is empty when the move captured nothing.
	Captured Cell `json:"capturedPiece"`
}

// IsCapture returns true if this move captured a piece.
func (r MoveRecord) IsCapture() bool {
	return !r.Captured.IsEmpty()
}

// Move returns the from/to pair of the record.
func (r MoveRecord) Move() Move {
	return Move{From: r.From, To: r.To}
}

// Captured is the ledger of pieces removed from the board, one ordered list
// per colour. A Captured value is never modified in place; Add returns a new
// ledger sharing no storage with the receiver.
type Captured struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// NewCaptured returns an empty ledger with non-nil lists.
func NewCaptured() Captured {
	return Captured{White: []Piece{}, Black: []Piece{}}
}

// Clone returns a copy of the ledger sharing no storage with the receiver.
func (c Captured) Clone() Captured {
	return Captured{
		White: append(make([]Piece, 0, len(c.White)+1), c.White...),
		Black: append(make([]Piece, 0, len(c.Black)+1), c.Black...),
	}
}

// Add returns a copy of the ledger with p appended to the list of its own colour.
func (c Captured) Add(p Piece) Captured {
	out := c.Clone()
	if p.Colour == White {
		out.White = append(out.White, p)
	} else {
		out.Black = append(out.Black, p)
	}
	return out
}

// Of returns the captured pieces of the given colour.
func (c Captured) Of(colour Colour) []Piece {
	if colour == White {
		return c.White
	}
	return c.Black
}

// Len returns the total number of captured pieces.
func (c Captured) Len() int {
	return len(c.White) + len(c.Black)
}

// Value returns the summed material value of the captured pieces of colour.
func (c Captured) Value(colour Colour) int {
	total := 0
	for _, p := range c.Of(colour) {
		total += p.Kind.Value()
	}
	return total
}
