package testutil

import (
	"strings"
	"testing"

	nchess "github.com/notnil/chess"

	"github.com/lgbarn/chessrules/internal/chess"
	"github.com/lgbarn/chessrules/internal/fen"
)

// MustParseBoard builds a board from an 8-line diagram in the format of
// chess.Board.String: row 0 first, upper case white, lower case black, '.'
// for an empty square. Blank lines and surrounding spaces are ignored.
// It calls t.Fatal on malformed input.
func MustParseBoard(t testing.TB, diagram string) chess.Board {
	t.Helper()

	var rows []string
	for _, line := range strings.Split(diagram, "\n") {
		line = strings.ReplaceAll(strings.TrimSpace(line), " ", "")
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) != chess.BoardSize {
		t.Fatalf("diagram has %d rows; want %d", len(rows), chess.BoardSize)
	}

	b := chess.NewBoard()
	for row, line := range rows {
		if len(line) != chess.BoardSize {
			t.Fatalf("diagram row %d has %d squares; want %d: %q", row, len(line), chess.BoardSize, line)
		}
		for col := 0; col < chess.BoardSize; col++ {
			c := line[col]
			if c == '.' {
				continue
			}
			piece, ok := pieceFromLetter(c)
			if !ok {
				t.Fatalf("diagram row %d has unknown piece letter %q", row, c)
			}
			b.Place(chess.Pos(row, col), piece)
		}
	}
	return b
}

// pieceFromLetter converts a FEN-style letter into a piece.
func pieceFromLetter(c byte) (chess.Piece, bool) {
	colour := chess.White
	if c >= 'a' && c <= 'z' {
		colour = chess.Black
		c -= 'a' - 'A'
	}
	for _, kind := range chess.Kinds {
		if kind.Letter() == c {
			return chess.NewPiece(colour, kind), true
		}
	}
	return chess.Piece{}, false
}

// Reference is a position decoded by the github.com/notnil/chess library,
// used both as a fixture source and as an independent verdict on the position.
type Reference struct {
	Board  chess.Board
	ToMove chess.Colour

	game *nchess.Game
}

// MustParseFEN decodes fen with the reference library. FEN carries no
// has-moved flag, so every piece comes back unmoved.
func MustParseFEN(t testing.TB, record string) Reference {
	t.Helper()

	opt, err := nchess.FEN(record)
	if err != nil {
		t.Fatalf("FEN(%q): %v", record, err)
	}
	game := nchess.NewGame(opt)
	pos := game.Position()

	toMove := chess.White
	if pos.Turn() == nchess.Black {
		toMove = chess.Black
	}
	return Reference{Board: fen.FromPosition(pos), ToMove: toMove, game: game}
}

// IsCheckmate reports the reference library's verdict.
func (r Reference) IsCheckmate() bool {
	return r.game.Position().Status() == nchess.Checkmate
}

// IsStalemate reports the reference library's verdict.
func (r Reference) IsStalemate() bool {
	return r.game.Position().Status() == nchess.Stalemate
}

// LegalMoveCount returns the number of legal moves the reference library
// finds for the side to move.
func (r Reference) LegalMoveCount() int {
	return len(r.game.ValidMoves())
}
