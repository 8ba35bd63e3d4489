package engine

import (
	"github.com/lgbarn/chessrules/internal/chess"
	"github.com/lgbarn/chessrules/internal/errors"
)

// Result is the outcome of an accepted move.
type Result struct {
	// Board is the position after the move.
	Board chess.Board

	// Captured holds the piece removed from the destination, or is empty.
	Captured chess.Cell

	// Ledger is the input ledger plus the captured piece, if any, appended
	// under its own colour.
	Ledger chess.Captured
}

// ApplyMove validates and plays a move. A rejected move returns a
// *errors.MoveError wrapping errors.ErrInvalidMove or errors.ErrSelfCheck; the
// board and ledger passed in are never modified either way.
//
// The result carries no check or mate information. Call Classify on the new
// board for the side to move next.
func (r Rules) ApplyMove(board chess.Board, from, to chess.Position, mover chess.Colour, ledger chess.Captured) (Result, error) {
	if err := r.CheckMove(board, from, to, mover); err != nil {
		return Result{}, &errors.MoveError{
			Err:    err,
			From:   from,
			To:     to,
			Colour: mover.String(),
		}
	}

	next, captured := relocate(board, from, to)

	res := Result{
		Board:    next,
		Captured: captured,
		Ledger:   ledger.Clone(),
	}
	if piece, ok := captured.Piece(); ok {
		res.Ledger = ledger.Add(piece)
	}

	return res, nil
}
