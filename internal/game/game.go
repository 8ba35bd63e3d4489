// Package game tracks one chess game: the board, whose turn it is, captured
// pieces, move history and the classified status after every move.
//
// A State is a value. Play, Undo and Reset return a new State and leave the
// receiver untouched, so callers can keep earlier snapshots for display.
package game

import (
	"time"

	"github.com/lgbarn/chessrules/internal/chess"
	"github.com/lgbarn/chessrules/internal/engine"
	"github.com/lgbarn/chessrules/internal/errors"
)

// DefaultTitle is used for games created without a title.
const DefaultTitle = "Saved Game"

// now is replaced in tests.
var now = time.Now

// State is a snapshot of a game.
type State struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	Board    chess.Board    `json:"board"`
	ToMove   chess.Colour   `json:"currentPlayer"`
	Captured chess.Captured `json:"capturedPieces"`
	Status   engine.Status  `json:"status"`

	// History lists accepted moves oldest first.
	History []chess.MoveRecord `json:"moveHistory"`

	// LastCapture is the piece taken by the most recent move, if any.
	LastCapture chess.Cell `json:"recentCapture"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New creates a game in the initial position with white to move.
func New(id, title string) State {
	if title == "" {
		title = DefaultTitle
	}
	t := now().UTC()
	return State{
		ID:        id,
		Title:     title,
		Board:     chess.NewInitialBoard(),
		ToMove:    chess.White,
		Captured:  chess.NewCaptured(),
		Status:    engine.InProgress,
		History:   []chess.MoveRecord{},
		CreatedAt: t,
		UpdatedAt: t,
	}
}

// Ply returns the number of half-moves played.
func (s State) Ply() int {
	return len(s.History)
}

// IsOver reports whether the game ended in checkmate or stalemate.
func (s State) IsOver() bool {
	return s.Status.IsTerminal()
}

// Winner returns the winning colour after checkmate.
func (s State) Winner() (chess.Colour, bool) {
	if s.Status != engine.Checkmate {
		return chess.White, false
	}
	return s.ToMove.Opposite(), true
}

// Play moves the piece on from to to for the side to move.
//
// Rejected moves return the receiver unchanged and an error wrapping the
// engine's *errors.MoveError, so errors.Reason yields "Invalid move" or "Move
// would put king in check". Once the game is over every move fails with
// errors.ErrGameOver.
func (s State) Play(rules engine.Rules, from, to chess.Position) (State, error) {
	if s.IsOver() {
		return s, &errors.GameError{Err: errors.ErrGameOver, GameID: s.ID, Ply: s.Ply()}
	}

	piece, _ := s.Board.Piece(from)
	res, err := rules.ApplyMove(s.Board, from, to, s.ToMove, s.Captured)
	if err != nil {
		return s, &errors.GameError{Err: err, GameID: s.ID, Ply: s.Ply()}
	}

	next := s
	next.Board = res.Board
	next.Captured = res.Ledger
	next.ToMove = s.ToMove.Opposite()
	next.Status = rules.Classify(res.Board, next.ToMove)
	next.LastCapture = res.Captured
	next.History = append(append(make([]chess.MoveRecord, 0, len(s.History)+1), s.History...), chess.MoveRecord{
		From:     from,
		To:       to,
		Piece:    piece,
		Captured: res.Captured,
	})
	next.UpdatedAt = now().UTC()

	return next, nil
}

// Destinations lists the legal target squares for the piece on from. It is
// empty when the game is over or from does not hold a piece of the side to move.
func (s State) Destinations(rules engine.Rules, from chess.Position) []chess.Position {
	if s.IsOver() {
		return nil
	}
	return rules.LegalDestinations(s.Board, from, s.ToMove)
}

// Undo takes back the last move by replaying the rest of the history from
// the initial position.
func (s State) Undo(rules engine.Rules) (State, error) {
	if len(s.History) == 0 {
		return s, &errors.GameError{Err: errors.ErrNothingToUndo, GameID: s.ID}
	}

	moves := make([]chess.Move, 0, len(s.History)-1)
	for _, rec := range s.History[:len(s.History)-1] {
		moves = append(moves, rec.Move())
	}

	prev, err := Replay(rules, s.ID, s.Title, moves)
	if err != nil {
		return s, err
	}
	prev.CreatedAt = s.CreatedAt
	return prev, nil
}

// Reset returns the game to the initial position, keeping its identity.
func (s State) Reset() State {
	fresh := New(s.ID, s.Title)
	fresh.CreatedAt = s.CreatedAt
	return fresh
}

// Replay builds a game by playing moves from the initial position.
func Replay(rules engine.Rules, id, title string, moves []chess.Move) (State, error) {
	s := New(id, title)
	for _, m := range moves {
		next, err := s.Play(rules, m.From, m.To)
		if err != nil {
			return s, errors.Wrapf(err, "replay %s", m)
		}
		s = next
	}
	return s, nil
}

// Message returns the player-facing status line.
func (s State) Message() string {
	switch s.Status {
	case engine.Checkmate:
		winner, _ := s.Winner()
		return "Checkmate! " + winner.String() + " wins!"
	case engine.Stalemate:
		return "Stalemate! Draw game."
	case engine.Check:
		return s.ToMove.String() + " is in check!"
	}
	return s.ToMove.String() + " to move"
}
