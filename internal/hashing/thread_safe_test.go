package hashing

import (
	"sync"
	"testing"

	"github.com/lgbarn/chessrules/internal/chess"
	"github.com/lgbarn/chessrules/internal/engine"
)

func TestThreadSafeStatusCache_Concurrent(t *testing.T) {
	cache := NewThreadSafeStatusCache(0)
	board := chess.NewInitialBoard()

	const numWorkers = 10
	const perWorker = 10

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				if _, ok := cache.Lookup(engine.Standard, board, chess.White); !ok {
					cache.Store(engine.Standard, board, chess.White, Entry{Status: engine.InProgress, LegalMoves: 20})
				}
			}
		}()
	}
	wg.Wait()

	if cache.Len() != 1 {
		t.Errorf("Expected 1 cached position, got %d", cache.Len())
	}
	if cache.Hits() < numWorkers*perWorker-numWorkers {
		t.Errorf("Expected at least %d hits, got %d", numWorkers*perWorker-numWorkers, cache.Hits())
	}
}

func TestThreadSafeStatusCache_DifferentPositions(t *testing.T) {
	cache := NewThreadSafeStatusCache(0)

	var wg sync.WaitGroup
	for col := 0; col < chess.BoardSize; col++ {
		wg.Add(1)
		go func(col int) {
			defer wg.Done()
			board := chess.NewInitialBoard()
			board.Clear(chess.Pos(6, col))
			board.Place(chess.Pos(4, col), chess.W(chess.Pawn))
			cache.Store(engine.Standard, board, chess.Black, Entry{})
		}(col)
	}
	wg.Wait()

	if cache.Len() != chess.BoardSize {
		t.Errorf("Expected %d cached positions, got %d", chess.BoardSize, cache.Len())
	}
	if cache.IsFull() {
		t.Error("unlimited cache reports full")
	}
}
