package engine

import (
	"fmt"

	"github.com/lgbarn/chessrules/internal/chess"
)

// Status classifies a position for the side to move.
type Status int

const (
	InProgress Status = iota
	Check
	Checkmate
	Stalemate
)

var statusNames = []string{"in_progress", "check", "checkmate", "stalemate"}

// String returns the status name.
func (s Status) String() string {
	if int(s) >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// IsTerminal reports whether no further moves should be accepted.
func (s Status) IsTerminal() bool {
	return s == Checkmate || s == Stalemate
}

// InCheck reports whether the side to move is in check, mated or not.
func (s Status) InCheck() bool {
	return s == Check || s == Checkmate
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// IsCheckmate returns true if colour is in check and has no legal move.
func (r Rules) IsCheckmate(board chess.Board, colour chess.Colour) bool {
	return r.IsInCheck(board, colour) && !r.HasAnyLegalMove(board, colour)
}

// IsStalemate returns true if colour is not in check and has no legal move.
func (r Rules) IsStalemate(board chess.Board, colour chess.Colour) bool {
	return !r.IsInCheck(board, colour) && !r.HasAnyLegalMove(board, colour)
}

// Classify returns the status of the position with colour to move. It
// computes check and move availability once each.
func (r Rules) Classify(board chess.Board, colour chess.Colour) Status {
	inCheck := r.IsInCheck(board, colour)
	canMove := r.HasAnyLegalMove(board, colour)

	switch {
	case inCheck && !canMove:
		return Checkmate
	case !canMove:
		return Stalemate
	case inCheck:
		return Check
	}
	return InProgress
}
