package engine

import "github.com/lgbarn/chessrules/internal/chess"

// IsInCheck returns true if the given colour's king is attacked by the other side.
// A board without a king of that colour is never in check.
func (r Rules) IsInCheck(board chess.Board, colour chess.Colour) bool {
	king, ok := findKing(board, colour)
	if !ok {
		return false
	}
	return r.IsSquareAttacked(board, king, colour.Opposite())
}

// findKing scans the board for the king of the given colour.
func findKing(board chess.Board, colour chess.Colour) (chess.Position, bool) {
	for _, lp := range board.Pieces(colour) {
		if lp.Piece.Kind == chess.King {
			return lp.Position, true
		}
	}
	return chess.Position{}, false
}

// IsSquareAttacked returns true if some piece of attacker has pos as a
// geometric destination: movement pattern and path only. It never applies the
// self-check rule, which is what lets legality call it without recursing.
func (r Rules) IsSquareAttacked(board chess.Board, pos chess.Position, attacker chess.Colour) bool {
	for _, lp := range board.Pieces(attacker) {
		if lp.Position == pos {
			continue
		}
		if r.canPieceMove(board, lp.Piece, lp.Position, pos) {
			return true
		}
	}
	return false
}
