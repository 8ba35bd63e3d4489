package engine

import (
	"testing"

	"github.com/lgbarn/chessrules/internal/chess"
	"github.com/lgbarn/chessrules/internal/errors"
	"github.com/lgbarn/chessrules/internal/testutil"
)

func sq(s string) chess.Position {
	return chess.MustParseSquare(s)
}

func TestIsLegalMove_InitialPosition(t *testing.T) {
	board := chess.NewInitialBoard()

	tests := []struct {
		name  string
		from  chess.Position
		to    chess.Position
		mover chess.Colour
		want  bool
	}{
		{"pawn single step", sq("e2"), sq("e3"), chess.White, true},
		{"pawn double step", sq("e2"), sq("e4"), chess.White, true},
		{"pawn triple step", sq("e2"), sq("e5"), chess.White, false},
		{"pawn sideways", sq("e2"), sq("d2"), chess.White, false},
		{"pawn diagonal onto empty", sq("e2"), sq("d3"), chess.White, false},
		{"knight jumps", sq("b1"), sq("c3"), chess.White, true},
		{"knight to rim", sq("b1"), sq("a3"), chess.White, true},
		{"knight bad pattern", sq("b1"), sq("b3"), chess.White, false},
		{"rook blocked by own pawn", chess.Pos(7, 0), chess.Pos(5, 0), chess.White, false},
		{"rook along occupied back rank", chess.Pos(7, 0), chess.Pos(7, 3), chess.White, false},
		{"bishop blocked", sq("f1"), sq("d3"), chess.White, false},
		{"queen blocked", sq("d1"), sq("d3"), chess.White, false},
		{"king onto own pawn", sq("e1"), sq("e2"), chess.White, false},
		{"black pawn double step", sq("e7"), sq("e5"), chess.Black, true},
		{"black pawn backwards", sq("e7"), sq("e8"), chess.Black, false},
		{"black knight", sq("g8"), sq("f6"), chess.Black, true},
		{"wrong colour", sq("e2"), sq("e4"), chess.Black, false},
		{"empty source", sq("e4"), sq("e5"), chess.White, false},
		{"same square", sq("e2"), sq("e2"), chess.White, false},
		{"source off board", chess.Pos(-1, 0), chess.Pos(0, 0), chess.White, false},
		{"destination off board", sq("a2"), chess.Pos(8, 0), chess.White, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsLegalMove(board, tt.from, tt.to, tt.mover)
			if got != tt.want {
				t.Errorf("IsLegalMove(%v, %v, %v) = %v; want %v", tt.from, tt.to, tt.mover, got, tt.want)
			}
		})
	}
}

func TestIsLegalMove_OpenBoard(t *testing.T) {
	board := testutil.MustParseBoard(t, `
		k.......
		........
		........
		........
		...Q....
		........
		........
		.......K
	`)
	queen := sq("d4")

	tests := []struct {
		name string
		to   chess.Position
		want bool
	}{
		{"file up", sq("d8"), true},
		{"file down", sq("d1"), true},
		{"rank left", sq("a4"), true},
		{"rank right", sq("h4"), true},
		{"long diagonal", sq("a7"), true},
		{"diagonal down right", sq("g1"), true},
		{"knight pattern", sq("e6"), false},
		{"off line", sq("e7"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsLegalMove(board, queen, tt.to, chess.White)
			if got != tt.want {
				t.Errorf("IsLegalMove(d4, %v) = %v; want %v", tt.to, got, tt.want)
			}
		})
	}
}

func TestIsLegalMove_PawnCannotCaptureForward(t *testing.T) {
	board := testutil.MustParseBoard(t, `
		k.......
		........
		........
		...np...
		....P...
		........
		........
		.......K
	`)

	testutil.AssertFalse(t, IsLegalMove(board, sq("e4"), sq("e5"), chess.White), "straight into a piece")
	testutil.AssertTrue(t, IsLegalMove(board, sq("e4"), sq("d5"), chess.White), "diagonal capture")
	testutil.AssertFalse(t, IsLegalMove(board, sq("e4"), sq("f5"), chess.White), "diagonal onto empty square")
	testutil.AssertFalse(t, IsLegalMove(board, sq("e4"), sq("e3"), chess.White), "backwards")
	testutil.AssertFalse(t, IsLegalMove(board, sq("e4"), sq("e6"), chess.White), "double step off home row")
}

func TestIsLegalMove_DoubleStepOverPiece(t *testing.T) {
	board := testutil.MustParseBoard(t, `
		k.......
		...p....
		...N....
		........
		........
		....n...
		....P...
		.......K
	`)

	tests := []struct {
		name  string
		rules Rules
		from  chess.Position
		to    chess.Position
		mover chess.Colour
		want  bool
	}{
		{"standard white jumps", Standard, sq("e2"), sq("e4"), chess.White, true},
		{"strict white blocked", Strict, sq("e2"), sq("e4"), chess.White, false},
		{"standard black jumps", Standard, sq("d7"), sq("d5"), chess.Black, true},
		{"strict black blocked", Strict, sq("d7"), sq("d5"), chess.Black, false},
		{"single step blocked either way", Standard, sq("e2"), sq("e3"), chess.White, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rules.IsLegalMove(board, tt.from, tt.to, tt.mover)
			if got != tt.want {
				t.Errorf("IsLegalMove(%v, %v) = %v; want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCheckMove_Reasons(t *testing.T) {
	pinned := testutil.MustParseBoard(t, `
		....k...
		....r...
		........
		........
		........
		........
		....B...
		....K...
	`)
	exposed := testutil.MustParseBoard(t, `
		...rk...
		........
		........
		........
		........
		........
		........
		....K...
	`)

	tests := []struct {
		name  string
		board chess.Board
		from  chess.Position
		to    chess.Position
		want  error
	}{
		{"pinned bishop leaves file", pinned, sq("e2"), sq("d3"), errors.ErrSelfCheck},
		{"king steps aside", pinned, sq("e1"), sq("d1"), nil},
		{"king onto own bishop", pinned, sq("e1"), sq("e2"), errors.ErrInvalidMove},
		{"bishop pattern still checked first", pinned, sq("e2"), sq("e4"), errors.ErrInvalidMove},
		{"king into rook file", exposed, sq("e1"), sq("d1"), errors.ErrSelfCheck},
		{"king along safe rank", exposed, sq("e1"), sq("f1"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckMove(tt.board, tt.from, tt.to, chess.White)
			if tt.want == nil {
				testutil.AssertNoError(t, err)
				return
			}
			testutil.AssertErrorIs(t, err, tt.want)
		})
	}
}

func TestIsLegalMove_DoesNotMutate(t *testing.T) {
	board := chess.NewInitialBoard()
	before := board

	IsLegalMove(board, sq("e2"), sq("e4"), chess.White)
	IsLegalMove(board, sq("g1"), sq("f3"), chess.White)

	testutil.AssertBoardEqual(t, board, before)
}

func TestLegalDestinations(t *testing.T) {
	board := chess.NewInitialBoard()

	tests := []struct {
		name  string
		from  chess.Position
		mover chess.Colour
		want  []chess.Position
	}{
		{"e pawn", sq("e2"), chess.White, []chess.Position{sq("e4"), sq("e3")}},
		{"g knight", sq("g1"), chess.White, []chess.Position{sq("f3"), sq("h3")}},
		{"boxed in rook", sq("a1"), chess.White, nil},
		{"enemy piece", sq("e7"), chess.White, nil},
		{"empty square", sq("e4"), chess.White, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LegalDestinations(board, tt.from, tt.mover)
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestLegalMoves_InitialCount(t *testing.T) {
	board := chess.NewInitialBoard()
	testutil.AssertEqual(t, len(LegalMoves(board, chess.White)), 20, "white")
	testutil.AssertEqual(t, len(LegalMoves(board, chess.Black)), 20, "black")
}

func TestLegalMoves_NeverLeaveKingAttacked(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
		"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w - - 4 4",
		"4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1",
		"4k3/8/8/8/8/8/4r3/4K3 w - - 0 1",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			ref := testutil.MustParseFEN(t, fen)
			mover := ref.ToMove
			for _, m := range LegalMoves(ref.Board, mover) {
				res, err := ApplyMove(ref.Board, m.From, m.To, mover, chess.NewCaptured())
				if err != nil {
					t.Fatalf("ApplyMove(%v) rejected a listed move: %v", m, err)
				}
				if IsInCheck(res.Board, mover) {
					t.Errorf("%v leaves %v in check:\n%s", m, mover, res.Board)
				}
			}
		})
	}
}
