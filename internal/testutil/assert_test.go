package testutil

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lgbarn/chessrules/internal/chess"
)

// These tests verify the assertion helpers work correctly.
// Since we can't mock *testing.T, we test success cases directly
// and test the formatMessage helper which is internally testable.

func TestAssertEqual_Success(t *testing.T) {
	AssertEqual(t, "hello", "hello")
	AssertEqual(t, 42, 42)
	AssertEqual(t, []int{1, 2, 3}, []int{1, 2, 3})
	AssertEqual(t, []chess.Piece{}, []chess.Piece(nil), "empty and nil slices")
	AssertEqual(t, chess.NewInitialBoard(), chess.NewInitialBoard(), "boards compare through Equal")
}

func TestAssertBoardEqual_Success(t *testing.T) {
	AssertBoardEqual(t, chess.NewBoard(), chess.NewBoard())
	AssertBoardEqual(t, chess.NewInitialBoard(), chess.NewInitialBoard(), "initial %s", "position")
}

func TestAssertNoError_Success(t *testing.T) {
	AssertNoError(t, nil)
	AssertNoError(t, nil, "operation should succeed")
}

func TestAssertErrorIs_Success(t *testing.T) {
	base := errors.New("base")
	AssertErrorIs(t, base, base)
	AssertErrorIs(t, fmt.Errorf("wrapped: %w", base), base, "wrapped error")
}

func TestAssertContains_Success(t *testing.T) {
	AssertContains(t, "hello world", "world")
	AssertContains(t, "test", "")
}

func TestAssertTrueFalse_Success(t *testing.T) {
	AssertTrue(t, true)
	AssertTrue(t, len("hello") == 5, "length")
	AssertFalse(t, false)
	AssertFalse(t, 1 == 2, "arithmetic")
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"empty", nil, ""},
		{"single string", []interface{}{"simple message"}, "simple message"},
		{"format string", []interface{}{"value is %d", 42}, "value is 42"},
		{"non-string", []interface{}{42}, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatMessage(tt.args...)
			if got != tt.want {
				t.Errorf("formatMessage(%v) = %q; want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestDump(t *testing.T) {
	b := chess.NewBoard()
	b.Place(chess.Pos(0, 0), chess.B(chess.Rook))

	out := Dump(b)

	// DisableMethods means the raw fields appear instead of the diagram.
	AssertContains(t, out, "occupied: (bool) true")
	AssertFalse(t, strings.Contains(out, "r......."), "dump should not use Board.String")
}
