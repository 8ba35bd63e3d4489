package engine

import "github.com/lgbarn/chessrules/internal/chess"

// allSquares is every board square in row-major order.
var allSquares = chess.AllPositions()

// HasAnyLegalMove returns true if colour has at least one legal move.
// It probes every destination for every piece of colour.
func (r Rules) HasAnyLegalMove(board chess.Board, colour chess.Colour) bool {
	for _, lp := range board.Pieces(colour) {
		for _, to := range allSquares {
			if r.IsLegalMove(board, lp.Position, to, colour) {
				return true
			}
		}
	}
	return false
}

// LegalDestinations lists the squares the piece on from may legally move to.
// It returns nil when from does not hold a piece of mover's colour.
func (r Rules) LegalDestinations(board chess.Board, from chess.Position, mover chess.Colour) []chess.Position {
	if !board.At(from).HasColour(mover) {
		return nil
	}

	var out []chess.Position
	for _, to := range allSquares {
		if r.IsLegalMove(board, from, to, mover) {
			out = append(out, to)
		}
	}
	return out
}

// LegalMoves lists every legal move for mover, ordered by source then
// destination square in row-major order.
func (r Rules) LegalMoves(board chess.Board, mover chess.Colour) []chess.Move {
	var out []chess.Move
	for _, lp := range board.Pieces(mover) {
		for _, to := range r.LegalDestinations(board, lp.Position, mover) {
			out = append(out, chess.Move{From: lp.Position, To: to})
		}
	}
	return out
}
