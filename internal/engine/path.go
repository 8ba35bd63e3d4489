package engine

import "github.com/lgbarn/chessrules/internal/chess"

// canPieceMove checks the movement pattern of piece from one square to another,
// including path clearance. It ignores whose turn it is, same-colour
// destinations and self-check; callers layer those on top.
func (r Rules) canPieceMove(board chess.Board, piece chess.Piece, from, to chess.Position) bool {
	rowDiff := to.Row - from.Row
	colDiff := to.Col - from.Col
	absRow := abs(rowDiff)
	absCol := abs(colDiff)

	switch piece.Kind {
	case chess.Pawn:
		return r.canPawnMove(board, piece.Colour, from, to, rowDiff, colDiff)

	case chess.Knight:
		return (absRow == 2 && absCol == 1) || (absRow == 1 && absCol == 2)

	case chess.Bishop:
		return isDiagonal(absRow, absCol) && TracePath(board, from, to)

	case chess.Rook:
		return isStraight(rowDiff, colDiff) && TracePath(board, from, to)

	case chess.Queen:
		return (isStraight(rowDiff, colDiff) || isDiagonal(absRow, absCol)) && TracePath(board, from, to)

	case chess.King:
		return absRow <= 1 && absCol <= 1
	}

	return false
}

// pawnDirection returns -1 for white (towards row 0) and +1 for black.
func pawnDirection(colour chess.Colour) int {
	if colour == chess.White {
		return -1
	}
	return 1
}

// pawnHomeRow returns the row pawns of colour start on.
func pawnHomeRow(colour chess.Colour) int {
	if colour == chess.White {
		return 6
	}
	return 1
}

// canPawnMove checks straight advances and diagonal captures. There is no en
// passant and no promotion.
func (r Rules) canPawnMove(board chess.Board, colour chess.Colour, from, to chess.Position, rowDiff, colDiff int) bool {
	dir := pawnDirection(colour)
	targetEmpty := board.IsEmpty(to)

	if colDiff == 0 {
		// Pawns never capture straight ahead.
		if !targetEmpty {
			return false
		}
		if rowDiff == dir {
			return true
		}
		if from.Row == pawnHomeRow(colour) && rowDiff == 2*dir {
			if r.StrictPawnAdvance {
				return board.IsEmpty(chess.Pos(from.Row+dir, from.Col))
			}
			return true
		}
		return false
	}

	if abs(colDiff) == 1 && rowDiff == dir {
		return !targetEmpty
	}

	return false
}

// isStraight reports a nonzero move along a row or a column.
func isStraight(rowDiff, colDiff int) bool {
	return (rowDiff == 0) != (colDiff == 0)
}

// isDiagonal reports a nonzero move along a diagonal.
func isDiagonal(absRow, absCol int) bool {
	return absRow == absCol && absRow != 0
}

// TracePath reports whether every square strictly between from and to is empty.
// from and to must lie on a common row, column or diagonal and differ; for any
// other pair it returns false.
func TracePath(board chess.Board, from, to chess.Position) bool {
	rowDiff := to.Row - from.Row
	colDiff := to.Col - from.Col
	if !isStraight(rowDiff, colDiff) && !isDiagonal(abs(rowDiff), abs(colDiff)) {
		return false
	}

	rowStep := sign(rowDiff)
	colStep := sign(colDiff)

	cur := chess.Pos(from.Row+rowStep, from.Col+colStep)
	for cur != to {
		if !board.IsEmpty(cur) {
			return false
		}
		cur = chess.Pos(cur.Row+rowStep, cur.Col+colStep)
	}

	return true
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
