// Package store persists game snapshots.
package store

import (
	"context"
	"time"

	"github.com/lgbarn/chessrules/internal/chess"
	"github.com/lgbarn/chessrules/internal/engine"
	"github.com/lgbarn/chessrules/internal/game"
)

// Store saves and loads games by id. Implementations are safe for
// concurrent use.
//
// Errors wrap errors.ErrGameNotFound for unknown ids and errors.ErrStore for
// every other failure.
type Store interface {
	// Create inserts a new game. It fails if the id is already taken.
	Create(ctx context.Context, s game.State) error

	// Save inserts or replaces a game.
	Save(ctx context.Context, s game.State) error

	// Load returns the saved snapshot of a game.
	Load(ctx context.Context, id string) (game.State, error)

	// List returns a summary of every game, most recently updated first.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes a game.
	Delete(ctx context.Context, id string) error

	Close() error
}

// Summary is the listing view of a saved game.
type Summary struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Status    engine.Status `json:"status"`
	ToMove    chess.Colour  `json:"currentPlayer"`
	Ply       int           `json:"ply"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Summarize builds the listing view of s.
func Summarize(s game.State) Summary {
	return Summary{
		ID:        s.ID,
		Title:     s.Title,
		Status:    s.Status,
		ToMove:    s.ToMove,
		Ply:       s.Ply(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)
