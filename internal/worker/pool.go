// Package worker provides a worker pool for parallel position analysis.
package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chessrules/internal/chess"
	"github.com/lgbarn/chessrules/internal/engine"
	"github.com/lgbarn/chessrules/internal/errors"
)

// ErrPanic marks the result of an item whose process function panicked.
var ErrPanic = errors.New("process function panicked")

// WorkItem represents a position to be classified.
type WorkItem struct {
	Board  chess.Board
	ToMove chess.Colour
	Index  int // Original index for tracking
}

// ProcessResult represents the result of classifying a position.
type ProcessResult struct {
	Index      int
	Status     engine.Status
	InCheck    bool
	LegalMoves int
	Cached     bool  // Whether the result came from a cache
	Error      error // Set when processing the item failed
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool manages a pool of workers for parallel position analysis.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPoolWithOptions creates a new worker pool using functional options.
// Default: 1 worker, buffer size of 10.
func NewPoolWithOptions(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.process(item)
	}
}

// process runs processFunc on one item. A panic is reported in the result's
// Error instead of taking down the process.
func (p *Pool) process(item WorkItem) (res ProcessResult) {
	defer func() {
		if r := recover(); r != nil {
			res = ProcessResult{Index: item.Index, Error: fmt.Errorf("item %d: %w: %v", item.Index, ErrPanic, r)}
		}
	}()
	return p.processFunc(item)
}

// Submit queues a work item, blocking while the buffer is full.
// It returns false without queueing once ctx is done.
func (p *Pool) Submit(ctx context.Context, item WorkItem) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case p.workChan <- item:
		return true
	}
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// After calling Close, the result channel will be closed when all workers are done.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// Run processes items on a new pool and returns the results in input order.
// Each item's Index is overwritten with its position in items. If ctx is
// cancelled the pool is stopped, unprocessed items are skipped and ctx.Err()
// is returned along with the results gathered so far. A panicking fn fails
// only its own item; see ProcessResult.Error.
func Run(ctx context.Context, items []WorkItem, fn ProcessFunc, opts ...PoolOption) ([]ProcessResult, error) {
	pool := NewPoolWithOptions(fn, opts...)
	pool.Start()

	go func() {
		defer pool.Close()
		for i, item := range items {
			item.Index = i
			if !pool.Submit(ctx, item) {
				pool.Stop()
				return
			}
		}
	}()

	results := make([]ProcessResult, len(items))
	for res := range pool.Results() {
		if res.Index >= 0 && res.Index < len(results) {
			results[res.Index] = res
		}
	}

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}
