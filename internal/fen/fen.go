// Package fen converts between boards and Forsyth-Edwards Notation using
// github.com/notnil/chess.
//
// Only piece placement and side to move carry over. Castling rights, the
// en passant square and the move clocks have no counterpart on a
// chess.Board; they are ignored on decode and written as "- - 0 1".
package fen

import (
	"fmt"
	"strings"

	nchess "github.com/notnil/chess"

	"github.com/lgbarn/chessrules/internal/chess"
)

// Initial is the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

var kindFromNotnil = map[nchess.PieceType]chess.Kind{
	nchess.King:   chess.King,
	nchess.Queen:  chess.Queen,
	nchess.Rook:   chess.Rook,
	nchess.Bishop: chess.Bishop,
	nchess.Knight: chess.Knight,
	nchess.Pawn:   chess.Pawn,
}

var pieceToNotnil = map[chess.Colour]map[chess.Kind]nchess.Piece{
	chess.White: {
		chess.King:   nchess.WhiteKing,
		chess.Queen:  nchess.WhiteQueen,
		chess.Rook:   nchess.WhiteRook,
		chess.Bishop: nchess.WhiteBishop,
		chess.Knight: nchess.WhiteKnight,
		chess.Pawn:   nchess.WhitePawn,
	},
	chess.Black: {
		chess.King:   nchess.BlackKing,
		chess.Queen:  nchess.BlackQueen,
		chess.Rook:   nchess.BlackRook,
		chess.Bishop: nchess.BlackBishop,
		chess.Knight: nchess.BlackKnight,
		chess.Pawn:   nchess.BlackPawn,
	},
}

// Decode parses a FEN record. Every decoded piece is unmoved.
func Decode(record string) (chess.Board, chess.Colour, error) {
	opt, err := nchess.FEN(strings.TrimSpace(record))
	if err != nil {
		return chess.Board{}, chess.White, fmt.Errorf("decode FEN %q: %w", record, err)
	}
	pos := nchess.NewGame(opt).Position()
	return FromPosition(pos), colourOf(pos.Turn()), nil
}

// FromPosition copies the placement of a notnil position onto a board.
func FromPosition(pos *nchess.Position) chess.Board {
	b := chess.NewBoard()
	for sq, p := range pos.Board().SquareMap() {
		kind, ok := kindFromNotnil[p.Type()]
		if !ok {
			continue
		}
		b.Place(fromSquare(sq), chess.NewPiece(colourOf(p.Color()), kind))
	}
	return b
}

// Encode writes the placement and side to move as a FEN record.
func Encode(board chess.Board, toMove chess.Colour) string {
	m := make(map[nchess.Square]nchess.Piece)
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		for _, lp := range board.Pieces(colour) {
			m[toSquare(lp.Position)] = pieceToNotnil[colour][lp.Piece.Kind]
		}
	}
	turn := "w"
	if toMove == chess.Black {
		turn = "b"
	}
	return nchess.NewBoard(m).String() + " " + turn + " - - 0 1"
}

func colourOf(c nchess.Color) chess.Colour {
	if c == nchess.Black {
		return chess.Black
	}
	return chess.White
}

// Row 0 is rank 8.
func fromSquare(sq nchess.Square) chess.Position {
	return chess.Pos(chess.BoardSize-1-int(sq.Rank()), int(sq.File()))
}

func toSquare(p chess.Position) nchess.Square {
	return nchess.NewSquare(nchess.File(p.Col), nchess.Rank(chess.BoardSize-1-p.Row))
}
