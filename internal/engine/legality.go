package engine

import (
	"github.com/lgbarn/chessrules/internal/chess"
	"github.com/lgbarn/chessrules/internal/errors"
)

// IsLegalMove reports whether mover may play the piece on from to to.
func (r Rules) IsLegalMove(board chess.Board, from, to chess.Position, mover chess.Colour) bool {
	return r.CheckMove(board, from, to, mover) == nil
}

// CheckMove validates a move and returns nil, errors.ErrInvalidMove or
// errors.ErrSelfCheck. The checks run in order and stop at the first failure:
//
//  1. both squares on the board
//  2. a piece of mover's colour on from
//  3. no piece of mover's colour on to
//  4. the piece's movement pattern, including path clearance
//  5. mover's king not attacked once the move is made
func (r Rules) CheckMove(board chess.Board, from, to chess.Position, mover chess.Colour) error {
	if !from.InBounds() || !to.InBounds() {
		return errors.ErrInvalidMove
	}

	piece, ok := board.Piece(from)
	if !ok || piece.Colour != mover {
		return errors.ErrInvalidMove
	}

	if board.At(to).HasColour(mover) {
		return errors.ErrInvalidMove
	}

	if !r.canPieceMove(board, piece, from, to) {
		return errors.ErrInvalidMove
	}

	after, _ := relocate(board, from, to)
	if r.IsInCheck(after, mover) {
		return errors.ErrSelfCheck
	}

	return nil
}

// relocate moves the piece on from to to and returns the new board with the
// previous occupant of to. board is a copy, so the caller's board is untouched.
func relocate(board chess.Board, from, to chess.Position) (chess.Board, chess.Cell) {
	captured := board.At(to)
	if piece, ok := board.Piece(from); ok {
		board.Clear(from)
		board.Place(to, piece.Moved())
	}
	return board, captured
}
