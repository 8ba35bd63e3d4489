// Package errors provides sentinel errors and error types for the chess rules engine
// and the game service built on it. Sentinels are checked with errors.Is(); the
// wrapper types carry context and unwrap to their sentinel.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
var (
	// ErrInvalidMove covers every rejected move except self-check: out-of-bounds
	// squares, no piece or the wrong colour at the source, a same-colour
	// destination and an illegal movement pattern. The text is shown to players.
	ErrInvalidMove = errors.New("Invalid move") //nolint:staticcheck // ST1005: player-facing reason text

	// ErrSelfCheck indicates a move that would leave the mover's own king attacked.
	ErrSelfCheck = errors.New("Move would put king in check") //nolint:staticcheck // ST1005: player-facing reason text

	// ErrGameOver indicates a move attempted after checkmate or stalemate.
	ErrGameOver = errors.New("game is over")

	// ErrNothingToUndo indicates an undo request on a game with no moves.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrGameNotFound indicates an unknown game id.
	ErrGameNotFound = errors.New("game not found")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStore indicates a persistence failure.
	ErrStore = errors.New("store failure")

	// ErrTooManyPositions indicates an analysis batch over the configured limit.
	ErrTooManyPositions = errors.New("too many positions")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error with the given text.
func New(text string) error {
	return errors.New(text)
}

// Square is the subset of a board position an error needs to describe a move.
type Square interface {
	String() string
}

// MoveError wraps a rejected move with the squares involved.
// It unwraps to ErrInvalidMove or ErrSelfCheck.
type MoveError struct {
	Err    error  // The underlying sentinel
	From   Square // Source square
	To     Square // Destination square
	Colour string // Colour of the side that attempted the move
}

// Error returns a formatted message including the move.
func (e *MoveError) Error() string {
	var parts []string
	if e.Colour != "" {
		parts = append(parts, e.Colour)
	}
	if e.From != nil && e.To != nil {
		parts = append(parts, fmt.Sprintf("%s-%s", e.From, e.To))
	}
	context := strings.Join(parts, " ")
	if context == "" {
		return e.Reason()
	}
	return fmt.Sprintf("%s: %s", context, e.Reason())
}

// Reason returns the player-facing rejection reason, which is the text of the
// underlying sentinel.
func (e *MoveError) Reason() string {
	if e.Err == nil {
		return ErrInvalidMove.Error()
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// Reason extracts the player-facing reason from any error. Move rejections
// yield their exact reason text; other errors yield their message.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var me *MoveError
	if errors.As(err, &me) {
		return me.Reason()
	}
	return err.Error()
}

// GameError wraps errors with game context.
type GameError struct {
	Err    error  // The underlying error
	GameID string // Game identifier
	Ply    int    // Number of half-moves played when the error occurred
}

// Error returns a formatted error message including all available context.
func (e *GameError) Error() string {
	parts := []string{fmt.Sprintf("game %s", e.GameID)}
	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	context := strings.Join(parts, ", ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the GameError wrapper.
func (e *GameError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
