// Package analysis classifies batches of positions in parallel.
package analysis

import (
	"context"
	"fmt"

	"github.com/lgbarn/chessrules/internal/chess"
	"github.com/lgbarn/chessrules/internal/config"
	"github.com/lgbarn/chessrules/internal/engine"
	"github.com/lgbarn/chessrules/internal/errors"
	"github.com/lgbarn/chessrules/internal/hashing"
	"github.com/lgbarn/chessrules/internal/worker"
)

// cacheCapacity bounds the number of memoised positions per Analyzer.
const cacheCapacity = 1 << 16

// Position is a board together with the side to move.
type Position struct {
	Board  chess.Board  `json:"board"`
	ToMove chess.Colour `json:"currentPlayer"`
}

// Report is the verdict for one position.
type Report struct {
	Index      int           `json:"index"`
	Status     engine.Status `json:"status"`
	InCheck    bool          `json:"isCheck"`
	LegalMoves int           `json:"legalMoves"`
	Cached     bool          `json:"cached"`
}

// Analyzer classifies positions on a worker pool.
type Analyzer struct {
	rules        engine.Rules
	workers      int
	maxPositions int
	cache        *hashing.ThreadSafeStatusCache // nil when caching is off
}

// NewAnalyzer creates an Analyzer from the analysis settings.
func NewAnalyzer(rules engine.Rules, cfg *config.AnalysisConfig) *Analyzer {
	a := &Analyzer{
		rules:        rules,
		workers:      cfg.Workers,
		maxPositions: cfg.MaxPositions,
	}
	if cfg.CacheResults {
		a.cache = hashing.NewThreadSafeStatusCache(cacheCapacity)
	}
	return a
}

// Analyze returns one report per position, in input order.
func (a *Analyzer) Analyze(ctx context.Context, positions []Position) ([]Report, error) {
	if a.maxPositions > 0 && len(positions) > a.maxPositions {
		return nil, fmt.Errorf("%d positions, limit %d: %w", len(positions), a.maxPositions, errors.ErrTooManyPositions)
	}

	items := make([]worker.WorkItem, len(positions))
	for i, p := range positions {
		items[i] = worker.WorkItem{Board: p.Board, ToMove: p.ToMove}
	}

	results, err := worker.Run(ctx, items, a.classify, worker.WithWorkers(a.workers), worker.WithBufferSize(len(items)))
	if err != nil {
		return nil, errors.Wrap(err, "analysis cancelled")
	}

	reports := make([]Report, len(results))
	for i, res := range results {
		if res.Error != nil {
			return nil, errors.Wrapf(res.Error, "position %d", i)
		}
		reports[i] = Report{
			Index:      i,
			Status:     res.Status,
			InCheck:    res.InCheck,
			LegalMoves: res.LegalMoves,
			Cached:     res.Cached,
		}
	}
	return reports, nil
}

// CacheHits returns the number of positions answered from the cache.
func (a *Analyzer) CacheHits() int {
	if a.cache == nil {
		return 0
	}
	return a.cache.Hits()
}

func (a *Analyzer) classify(item worker.WorkItem) worker.ProcessResult {
	if a.cache != nil {
		if e, ok := a.cache.Lookup(a.rules, item.Board, item.ToMove); ok {
			return worker.ProcessResult{
				Index:      item.Index,
				Status:     e.Status,
				InCheck:    e.Status.InCheck(),
				LegalMoves: e.LegalMoves,
				Cached:     true,
			}
		}
	}

	moves := len(a.rules.LegalMoves(item.Board, item.ToMove))
	inCheck := a.rules.IsInCheck(item.Board, item.ToMove)
	status := statusOf(inCheck, moves > 0)

	if a.cache != nil {
		a.cache.Store(a.rules, item.Board, item.ToMove, hashing.Entry{Status: status, LegalMoves: moves})
	}
	return worker.ProcessResult{
		Index:      item.Index,
		Status:     status,
		InCheck:    inCheck,
		LegalMoves: moves,
	}
}

// statusOf matches engine.Classify without enumerating moves a second time.
func statusOf(inCheck, canMove bool) engine.Status {
	switch {
	case inCheck && canMove:
		return engine.Check
	case inCheck:
		return engine.Checkmate
	case canMove:
		return engine.InProgress
	}
	return engine.Stalemate
}

// Analyze classifies positions under rules with an uncached Analyzer.
func Analyze(ctx context.Context, rules engine.Rules, positions []Position, workers int) ([]Report, error) {
	a := &Analyzer{rules: rules, workers: workers}
	return a.Analyze(ctx, positions)
}
