package fen_test

import (
	"testing"

	"github.com/lgbarn/chessrules/internal/chess"
	"github.com/lgbarn/chessrules/internal/fen"
	"github.com/lgbarn/chessrules/internal/testutil"
)

func TestDecodeInitial(t *testing.T) {
	board, toMove, err := fen.Decode(fen.Initial)
	testutil.AssertNoError(t, err)
	testutil.AssertBoardEqual(t, board, chess.NewInitialBoard())
	testutil.AssertEqual(t, toMove, chess.White)
}

func TestDecodeSquares(t *testing.T) {
	board, toMove, err := fen.Decode("4k3/8/8/8/8/8/4r3/4K3 b - - 0 1")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, toMove, chess.Black)
	testutil.AssertEqual(t, board.Count(), 3)

	tests := []struct {
		square string
		want   chess.Piece
	}{
		{"e8", chess.B(chess.King)},
		{"e2", chess.B(chess.Rook)},
		{"e1", chess.W(chess.King)},
	}
	for _, tt := range tests {
		t.Run(tt.square, func(t *testing.T) {
			p, ok := board.Piece(chess.MustParseSquare(tt.square))
			testutil.AssertTrue(t, ok, "occupied")
			testutil.AssertEqual(t, p, tt.want)
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []string{
		"",
		"not a fen",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w - - 0 1",
	}
	for _, record := range tests {
		t.Run(record, func(t *testing.T) {
			if _, _, err := fen.Decode(record); err == nil {
				t.Errorf("Decode(%q) succeeded; want error", record)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	testutil.AssertEqual(t, fen.Encode(chess.NewInitialBoard(), chess.White), fen.Initial)

	board := chess.NewBoard()
	board.Place(chess.MustParseSquare("h8"), chess.B(chess.King))
	board.Place(chess.MustParseSquare("f7"), chess.W(chess.Queen))
	board.Place(chess.MustParseSquare("g6"), chess.W(chess.King))
	testutil.AssertEqual(t, fen.Encode(board, chess.Black), "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
}

func TestRoundTrip(t *testing.T) {
	records := []string{
		"r1bqkb1r/pppp1Qpp/2n2n2/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b - - 0 1",
		"8/8/8/8/8/6k1/7p/7K w - - 0 1",
	}
	for _, record := range records {
		board, toMove, err := fen.Decode(record)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, fen.Encode(board, toMove), record)
	}
}
