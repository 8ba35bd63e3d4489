package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lgbarn/chessrules/internal/chess"
	"github.com/lgbarn/chessrules/internal/engine"
	"github.com/lgbarn/chessrules/internal/game"
	"github.com/lgbarn/chessrules/internal/testutil"
)

func sq(s string) chess.Position {
	return chess.MustParseSquare(s)
}

func replay(t *testing.T, moves ...string) game.State {
	t.Helper()
	var ms []chess.Move
	for _, m := range moves {
		ms = append(ms, chess.Move{From: sq(m[:2]), To: sq(m[2:])})
	}
	s, err := game.Replay(engine.Standard, "g1", "", ms)
	if err != nil {
		t.Fatalf("Replay(%v): %v", moves, err)
	}
	return s
}

func scholarsMate(t *testing.T) game.State {
	return replay(t, "e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7")
}

func TestGameToJSON_Initial(t *testing.T) {
	jg := GameToJSON(game.New("g1", ""))

	testutil.AssertEqual(t, jg.ID, "g1")
	testutil.AssertEqual(t, jg.CurrentPlayer, chess.White)
	testutil.AssertEqual(t, jg.Status, engine.InProgress)
	testutil.AssertFalse(t, jg.IsCheck)
	testutil.AssertEqual(t, jg.Message, "White to move")
	testutil.AssertEqual(t, jg.PlyCount, 0)
	testutil.AssertEqual(t, len(jg.MoveHistory), 0)
	testutil.AssertTrue(t, jg.RecentCapture == nil, "no capture yet")
	testutil.AssertEqual(t, jg.Winner, "")
	testutil.AssertEqual(t, jg.FEN, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1")
}

func TestGameToJSON_Checkmate(t *testing.T) {
	jg := GameToJSON(scholarsMate(t))

	testutil.AssertTrue(t, jg.IsCheck, "mate implies check")
	testutil.AssertTrue(t, jg.IsCheckmate)
	testutil.AssertFalse(t, jg.IsStalemate)
	testutil.AssertEqual(t, jg.Winner, "white")
	testutil.AssertEqual(t, jg.Message, "Checkmate! White wins!")
	testutil.AssertEqual(t, jg.Material, JSONMaterial{White: 0, Black: 1})
	testutil.AssertEqual(t, *jg.RecentCapture, chess.B(chess.Pawn))
	testutil.AssertEqual(t, jg.FEN, "r1bqkb1r/pppp1Qpp/2n2n2/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b - - 0 1")

	last := jg.MoveHistory[len(jg.MoveHistory)-1]
	testutil.AssertEqual(t, last, JSONMove{
		Ply:      7,
		Color:    "white",
		From:     sq("h5"),
		To:       sq("f7"),
		Notation: "h5-f7",
		Piece:    "queen",
		Captured: "pawn",
	})
}

func TestWriteGameJSON(t *testing.T) {
	var buf bytes.Buffer
	testutil.AssertNoError(t, WriteGameJSON(&buf, replay(t, "e2e4")))

	var doc map[string]interface{}
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &doc))

	testutil.AssertEqual(t, doc["currentPlayer"], "black")
	testutil.AssertEqual(t, doc["status"], "in_progress")
	testutil.AssertEqual(t, doc["message"], "Black to move")

	board := doc["board"].([]interface{})
	testutil.AssertEqual(t, len(board), 8)
	rank4 := board[4].([]interface{})
	testutil.AssertEqual(t, rank4[4], map[string]interface{}{
		"type":     "pawn",
		"color":    "white",
		"hasMoved": true,
	})
	testutil.AssertTrue(t, rank4[0] == nil, "empty squares are null")
	testutil.AssertContains(t, buf.String(), "\n  \"id\": \"g1\"", "indented output")
}

func TestJSONWriter_Batch(t *testing.T) {
	var buf bytes.Buffer
	jw := NewJSONWriter(&buf)

	testutil.AssertNoError(t, jw.WriteGame(game.New("a", "")))
	testutil.AssertNoError(t, jw.WriteGame(game.New("b", "")))
	testutil.AssertEqual(t, buf.Len(), 0, "nothing written before Close")
	testutil.AssertNoError(t, jw.Close())

	var out JSONOutput
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &out))
	testutil.AssertEqual(t, len(out.Games), 2)
	testutil.AssertEqual(t, out.Games[1].ID, "b")

	// A second flush has nothing to write.
	buf.Reset()
	testutil.AssertNoError(t, jw.Flush())
	testutil.AssertEqual(t, buf.Len(), 0)
}

func TestJSONWriter_Single(t *testing.T) {
	var buf bytes.Buffer
	jw := NewJSONWriterSingle(&buf)

	testutil.AssertNoError(t, jw.WriteGame(game.New("a", "")))
	testutil.AssertContains(t, buf.String(), `"id": "a"`)
	testutil.AssertNoError(t, jw.Close())
}

func TestWriteGameText(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTextWriter(&buf, 80)

	testutil.AssertNoError(t, tw.WriteGame(scholarsMate(t)))
	testutil.AssertNoError(t, tw.Close())

	got := buf.String()
	testutil.AssertContains(t, got, "8 r . b q k b . r\n")
	testutil.AssertContains(t, got, "7 p p p p . Q p p\n")
	testutil.AssertContains(t, got, "  a b c d e f g h\n")
	testutil.AssertContains(t, got, "1. e2-e4 e7-e5 2. f1-c4 b8-c6 3. d1-h5 g8-f6 4. h5xf7\n")
	testutil.AssertTrue(t, strings.HasSuffix(got, "Checkmate! White wins!\n"))
}

func TestOutputWriter_Wraps(t *testing.T) {
	var buf bytes.Buffer
	ow := NewOutputWriter(&buf, 12)

	ow.Write("1.")
	ow.Write("e2-e4")
	ow.Write("e7-e5")
	ow.Write("2.")
	ow.NewLine()

	testutil.AssertEqual(t, buf.String(), "1. e2-e4\ne7-e5 2.\n")
}
