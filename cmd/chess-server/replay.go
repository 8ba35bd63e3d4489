// replay.go - Offline move list replay and position classification
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/chessrules/internal/chess"
	"github.com/lgbarn/chessrules/internal/config"
	"github.com/lgbarn/chessrules/internal/fen"
	"github.com/lgbarn/chessrules/internal/game"
	"github.com/lgbarn/chessrules/internal/output"
)

// parseMoves reads a move list such as "1. e2-e4 e7-e5 2. g1f3". Move
// numbers and text after '#' on a line are ignored; each move is a source
// and a destination square, optionally separated by '-' or 'x'.
func parseMoves(r io.Reader) ([]chess.Move, error) {
	var moves []chess.Move
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, tok := range strings.Fields(line) {
			if strings.HasSuffix(tok, ".") {
				continue
			}
			m, err := parseMove(tok)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			moves = append(moves, m)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return moves, nil
}

func parseMove(tok string) (chess.Move, error) {
	s := strings.NewReplacer("-", "", "x", "").Replace(strings.ToLower(tok))
	if len(s) != 4 {
		return chess.Move{}, fmt.Errorf("invalid move %q", tok)
	}
	from, err := chess.ParseSquare(s[:2])
	if err != nil {
		return chess.Move{}, fmt.Errorf("invalid move %q: %w", tok, err)
	}
	to, err := chess.ParseSquare(s[2:])
	if err != nil {
		return chess.Move{}, fmt.Errorf("invalid move %q: %w", tok, err)
	}
	return chess.Move{From: from, To: to}, nil
}

// newGameWriter picks the output format from the -J flag.
func newGameWriter(cfg *config.Config) output.GameWriter {
	if *jsonOutput {
		return output.NewJSONWriterSingle(cfg.OutputFile)
	}
	return output.NewTextWriter(cfg.OutputFile, *lineLength)
}

// runReplay plays the moves in path from the initial position and writes the
// resulting game. On an illegal move the game up to that point is written
// and the rejection is returned.
func runReplay(cfg *config.Config, path string) error {
	var r io.Reader = os.Stdin
	title := "stdin"
	if path != "-" {
		f, err := os.Open(path) //nolint:gosec // G304: path is supplied by the user on the command line
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
		title = path
	}

	moves, err := parseMoves(r)
	if err != nil {
		return fmt.Errorf("%s: %w", title, err)
	}

	st, replayErr := game.Replay(cfg.Rules.Engine(), "replay", title, moves)

	w := newGameWriter(cfg)
	if err := w.WriteGame(st); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	cfg.Logger().Infof("%s: %d of %d moves played, %s", title, st.Ply(), len(moves), st.Status)
	return replayErr
}

// runClassify prints the status of a single FEN position.
func runClassify(cfg *config.Config, record string) error {
	board, toMove, err := fen.Decode(record)
	if err != nil {
		return err
	}
	st := game.New("position", record)
	st.Board = board
	st.ToMove = toMove
	st.Status = cfg.Rules.Engine().Classify(board, toMove)

	w := newGameWriter(cfg)
	if err := w.WriteGame(st); err != nil {
		return err
	}
	return w.Close()
}
