// Package output renders games as JSON documents or plain text.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessrules/internal/chess"
	"github.com/lgbarn/chessrules/internal/game"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine ends the current line.
func (o *OutputWriter) NewLine() {
	if o.lineLength > 0 {
		fmt.Fprintln(o.w)
	}
	o.lineLength = 0
	o.needsSpace = false
}

// WriteGameText writes a board diagram with rank and file labels, the move
// list in long notation and the status line.
func WriteGameText(w io.Writer, s game.State, maxLineLength int) {
	writeDiagram(w, s.Board)
	fmt.Fprintln(w)

	if len(s.History) > 0 {
		ow := NewOutputWriter(w, maxLineLength)
		writeMoves(ow, s.History)
		ow.NewLine()
	}

	fmt.Fprintln(w, s.Message())
}

// writeDiagram draws the board with rank 8 at the top.
func writeDiagram(w io.Writer, b chess.Board) {
	rows := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	for i, row := range rows {
		fmt.Fprintf(w, "%d %s\n", chess.BoardSize-i, strings.Join(strings.Split(row, ""), " "))
	}
	fmt.Fprintln(w, "  a b c d e f g h")
}

// writeMoves writes numbered move pairs, e.g. "1. e2-e4 e7-e5".
func writeMoves(ow *OutputWriter, history []chess.MoveRecord) {
	for i, rec := range history {
		if i%2 == 0 {
			ow.Write(fmt.Sprintf("%d.", i/2+1))
		}
		notation := rec.Move().String()
		if rec.IsCapture() {
			notation = rec.From.String() + "x" + rec.To.String()
		}
		ow.Write(notation)
	}
}
