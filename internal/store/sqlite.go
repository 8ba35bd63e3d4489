package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Registers the "sqlite3" driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/lgbarn/chessrules/internal/engine"
	"github.com/lgbarn/chessrules/internal/errors"
	"github.com/lgbarn/chessrules/internal/game"
)

const schema = `
	CREATE TABLE IF NOT EXISTS games (
		id             TEXT PRIMARY KEY,
		title          TEXT NOT NULL,
		status         TEXT NOT NULL,
		current_player TEXT NOT NULL,
		ply            INTEGER NOT NULL,
		state          TEXT NOT NULL,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_games_updated
	ON games(updated_at);
`

const upsert = `
	INSERT INTO games (id, title, status, current_player, ply, state, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		status = excluded.status,
		current_player = excluded.current_player,
		ply = excluded.ply,
		state = excluded.state,
		updated_at = excluded.updated_at
`

const insert = `
	INSERT INTO games (id, title, status, current_player, ply, state, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

// SQLiteStore keeps one JSON document per game in a SQLite database, with
// the listing columns alongside.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v: %w", path, err, errors.ErrStore)
	}

	if _, err := db.ExecContext(ctx, `
		PRAGMA journal_mode=WAL;
		PRAGMA synchronous=NORMAL;
		PRAGMA busy_timeout=5000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %v: %w", err, errors.ErrStore)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %v: %w", err, errors.ErrStore)
	}

	return &SQLiteStore{db: db}, nil
}

// Create inserts a new game.
func (s *SQLiteStore) Create(ctx context.Context, st game.State) error {
	return s.write(ctx, insert, st)
}

// Save inserts or replaces a game.
func (s *SQLiteStore) Save(ctx context.Context, st game.State) error {
	return s.write(ctx, upsert, st)
}

func (s *SQLiteStore) write(ctx context.Context, query string, st game.State) error {
	data, err := encode(st)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query,
		st.ID,
		st.Title,
		st.Status.String(),
		st.ToMove.String(),
		st.Ply(),
		string(data),
		st.CreatedAt.UTC().Format(time.RFC3339Nano),
		st.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write %s: %v: %w", st.ID, err, errors.ErrStore)
	}
	return nil
}

// Load returns the saved snapshot of a game.
func (s *SQLiteStore) Load(ctx context.Context, id string) (game.State, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT state FROM games WHERE id = ?", id).Scan(&data)
	if err == sql.ErrNoRows {
		return game.State{}, fmt.Errorf("load %s: %w", id, errors.ErrGameNotFound)
	}
	if err != nil {
		return game.State{}, fmt.Errorf("load %s: %v: %w", id, err, errors.ErrStore)
	}
	return decode([]byte(data))
}

// List returns a summary of every game, most recently updated first.
func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, status, current_player, ply, created_at, updated_at
		FROM games
	`)
	if err != nil {
		return nil, fmt.Errorf("list: %v: %w", err, errors.ErrStore)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var (
			sum                  Summary
			status, player       string
			createdAt, updatedAt string
		)
		if err := rows.Scan(&sum.ID, &sum.Title, &status, &player, &sum.Ply, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("list: %v: %w", err, errors.ErrStore)
		}
		if err := scanSummary(&sum, status, player, createdAt, updatedAt); err != nil {
			return nil, fmt.Errorf("list %s: %v: %w", sum.ID, err, errors.ErrStore)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list: %v: %w", err, errors.ErrStore)
	}

	SortSummaries(out)
	return out, nil
}

func scanSummary(sum *Summary, status, player, createdAt, updatedAt string) error {
	var st engine.Status
	if err := st.UnmarshalText([]byte(status)); err != nil {
		return err
	}
	sum.Status = st
	if err := sum.ToMove.UnmarshalText([]byte(player)); err != nil {
		return err
	}

	var err error
	if sum.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return err
	}
	sum.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	return err
}

// Delete removes a game.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM games WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete %s: %v: %w", id, err, errors.ErrStore)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %v: %w", id, err, errors.ErrStore)
	}
	if n == 0 {
		return fmt.Errorf("delete %s: %w", id, errors.ErrGameNotFound)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
