// Package service manages live games on top of the rules engine: it creates
// games, applies moves, persists snapshots and notifies subscribers.
package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/lgbarn/chessrules/internal/chess"
	"github.com/lgbarn/chessrules/internal/config"
	"github.com/lgbarn/chessrules/internal/engine"
	"github.com/lgbarn/chessrules/internal/errors"
	"github.com/lgbarn/chessrules/internal/game"
	"github.com/lgbarn/chessrules/internal/store"
)

// subscriberBuffer is the number of undelivered snapshots a subscriber may
// fall behind before updates to it are dropped.
const subscriberBuffer = 8

// GameService owns the live games. It is safe for concurrent use.
type GameService struct {
	mu          sync.RWMutex
	games       map[string]game.State
	subscribers map[string]map[chan game.State]struct{}
	locks       map[string]*sync.Mutex // serialises changes and saves per game

	store    store.Store
	rules    engine.Rules
	autosave bool
	log      *config.Logger
	newID    func() string
}

// NewGameService creates a service backed by st.
func NewGameService(cfg *config.Config, st store.Store) *GameService {
	return &GameService{
		games:       make(map[string]game.State),
		subscribers: make(map[string]map[chan game.State]struct{}),
		locks:       make(map[string]*sync.Mutex),
		store:       st,
		rules:       cfg.Rules.Engine(),
		autosave:    cfg.Store.Autosave,
		log:         cfg.Logger(),
		newID:       func() string { return uuid.New().String() },
	}
}

// Rules returns the rule variant games are played under.
func (s *GameService) Rules() engine.Rules {
	return s.rules
}

// Create starts a new game in the initial position.
func (s *GameService) Create(ctx context.Context, title string) (game.State, error) {
	st := game.New(s.newID(), title)

	s.mu.Lock()
	s.games[st.ID] = st
	s.mu.Unlock()

	if s.autosave {
		if err := s.store.Create(ctx, st); err != nil {
			s.log.Errorf("game %s: create not saved: %v", st.ID, err)
		}
	}
	s.log.Infof("game %s: created %q", st.ID, st.Title)
	return st, nil
}

// Get returns the current snapshot of a game, loading it from the store if
// it is not live.
func (s *GameService) Get(ctx context.Context, id string) (game.State, error) {
	s.mu.RLock()
	st, ok := s.games[id]
	s.mu.RUnlock()
	if ok {
		return st, nil
	}

	loaded, err := s.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, errors.ErrGameNotFound) {
			return game.State{}, &errors.GameError{Err: errors.ErrGameNotFound, GameID: id}
		}
		return game.State{}, &errors.GameError{Err: err, GameID: id}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// A concurrent call may have loaded it first.
	if st, ok := s.games[id]; ok {
		return st, nil
	}
	s.games[id] = loaded
	s.log.Debugf("game %s: loaded from store at ply %d", id, loaded.Ply())
	return loaded, nil
}

// List summarises every known game, most recently updated first. Live
// games take precedence over their stored snapshots.
func (s *GameService) List(ctx context.Context) ([]store.Summary, error) {
	saved, err := s.store.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list games")
	}

	byID := make(map[string]store.Summary, len(saved))
	for _, sum := range saved {
		byID[sum.ID] = sum
	}
	s.mu.RLock()
	for id, st := range s.games {
		byID[id] = store.Summarize(st)
	}
	s.mu.RUnlock()

	out := make([]store.Summary, 0, len(byID))
	for _, sum := range byID {
		out = append(out, sum)
	}
	store.SortSummaries(out)
	return out, nil
}

// Move plays from→to for the side to move. Rejections wrap the engine's
// *errors.MoveError; errors.Reason gives the player-facing text.
func (s *GameService) Move(ctx context.Context, id string, from, to chess.Position) (game.State, error) {
	return s.update(ctx, id, func(st game.State) (game.State, error) {
		next, err := st.Play(s.rules, from, to)
		if err != nil {
			s.log.Debugf("game %s: %s %s-%s rejected: %s", id, st.ToMove, from, to, errors.Reason(err))
			return st, err
		}
		s.log.Debugf("game %s: %s %s-%s, %s", id, st.ToMove, from, to, next.Status)
		return next, nil
	})
}

// Destinations lists the legal target squares for the piece on from.
func (s *GameService) Destinations(ctx context.Context, id string, from chess.Position) ([]chess.Position, error) {
	st, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return st.Destinations(s.rules, from), nil
}

// Undo takes back the last move.
func (s *GameService) Undo(ctx context.Context, id string) (game.State, error) {
	return s.update(ctx, id, func(st game.State) (game.State, error) {
		return st.Undo(s.rules)
	})
}

// Reset returns a game to the initial position.
func (s *GameService) Reset(ctx context.Context, id string) (game.State, error) {
	return s.update(ctx, id, func(st game.State) (game.State, error) {
		return st.Reset(), nil
	})
}

// Delete removes a game from the service and the store, and closes its
// subscriptions.
func (s *GameService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	lock := s.gameLock(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	delete(s.games, id)
	delete(s.locks, id)
	for ch := range s.subscribers[id] {
		close(ch)
	}
	delete(s.subscribers, id)
	s.mu.Unlock()

	if err := s.store.Delete(ctx, id); err != nil && !errors.Is(err, errors.ErrGameNotFound) {
		return &errors.GameError{Err: err, GameID: id}
	}
	s.log.Infof("game %s: deleted", id)
	return nil
}

// Subscribe returns a channel that receives every new snapshot of a game.
// Slow subscribers miss updates rather than block the game.
func (s *GameService) Subscribe(ctx context.Context, id string) (<-chan game.State, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	ch := make(chan game.State, subscriberBuffer)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscribers[id] == nil {
		s.subscribers[id] = make(map[chan game.State]struct{})
	}
	s.subscribers[id][ch] = struct{}{}
	return ch, nil
}

// Unsubscribe stops deliveries to ch and closes it.
func (s *GameService) Unsubscribe(id string, ch <-chan game.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.subscribers[id] {
		if sub == ch {
			delete(s.subscribers[id], sub)
			close(sub)
		}
	}
	if len(s.subscribers[id]) == 0 {
		delete(s.subscribers, id)
	}
}

// gameLock returns the mutex that orders changes to one game.
func (s *GameService) gameLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// update applies fn to the live game, then publishes and saves the result.
// Nothing changes when fn fails. Only the game's own lock is held while fn
// runs and the snapshot is saved.
func (s *GameService) update(ctx context.Context, id string, fn func(game.State) (game.State, error)) (game.State, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return game.State{}, err
	}

	lock := s.gameLock(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	st, ok := s.games[id]
	s.mu.RUnlock()
	if !ok {
		return game.State{}, &errors.GameError{Err: errors.ErrGameNotFound, GameID: id}
	}
	next, err := fn(st)
	if err != nil {
		return st, err
	}

	s.mu.Lock()
	s.games[id] = next
	s.publish(next)
	s.mu.Unlock()

	s.persist(ctx, next)
	return next, nil
}

// persist saves a snapshot. Failures are logged and the game continues.
// Called with the game's lock held and mu released.
func (s *GameService) persist(ctx context.Context, st game.State) {
	if !s.autosave {
		return
	}
	if err := s.store.Save(ctx, st); err != nil {
		s.log.Errorf("game %s: ply %d not saved: %v", st.ID, st.Ply(), err)
	}
}

// publish delivers a snapshot to the game's subscribers. Called with mu held.
func (s *GameService) publish(st game.State) {
	for ch := range s.subscribers[st.ID] {
		select {
		case ch <- st:
		default:
			s.log.Debugf("game %s: subscriber behind, update dropped", st.ID)
		}
	}
}
