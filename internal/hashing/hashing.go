// Package hashing provides Zobrist position keys and a cache of classifier
// results keyed by them.
package hashing

import (
	"math/rand/v2"

	"github.com/lgbarn/chessrules/internal/chess"
	"github.com/lgbarn/chessrules/internal/engine"
)

// zobristSeed fixes the key table so keys are stable across runs.
const zobristSeed = 0x5eed_c4e5

var (
	// pieceKeys is indexed [square][piece], piece = colour*6 + kind-1.
	pieceKeys [chess.BoardSize * chess.BoardSize][12]uint64
	// whiteToMoveKey is mixed in when white is to move.
	whiteToMoveKey uint64
)

func init() {
	rng := rand.New(rand.NewPCG(zobristSeed, zobristSeed>>1))
	for sq := range pieceKeys {
		for p := range pieceKeys[sq] {
			pieceKeys[sq][p] = rng.Uint64()
		}
	}
	whiteToMoveKey = rng.Uint64()
}

func pieceIndex(p chess.Piece) int {
	return int(p.Colour)*6 + int(p.Kind) - 1
}

// GenerateZobristHash returns the Zobrist hash of the piece placement.
// The has-moved flag is not part of the hash since no rule reads it.
func GenerateZobristHash(board chess.Board) uint64 {
	var hash uint64
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		for _, lp := range board.Pieces(colour) {
			hash ^= pieceKeys[lp.Position.Row*chess.BoardSize+lp.Position.Col][pieceIndex(lp.Piece)]
		}
	}
	return hash
}

// PositionKey returns the hash of the placement together with the side to move.
func PositionKey(board chess.Board, toMove chess.Colour) uint64 {
	hash := GenerateZobristHash(board)
	if toMove == chess.White {
		hash ^= whiteToMoveKey
	}
	return hash
}

// Entry is a memoised classifier result.
type Entry struct {
	Status     engine.Status `json:"status"`
	LegalMoves int           `json:"legalMoves"`
}

// signature identifies a cached position.
type signature struct {
	board  chess.Board
	toMove chess.Colour
	rules  engine.Rules
	entry  Entry
}

// StatusCache memoises classifier results by position key. Zobrist matches
// are confirmed against the stored board, so collisions never return a
// wrong entry. It is not safe for concurrent use; see ThreadSafeStatusCache.
type StatusCache struct {
	table       map[uint64][]signature
	maxCapacity int // 0 = unlimited
	size        int
	hits        int
	misses      int
}

// NewStatusCache creates a cache holding at most maxCapacity positions.
// maxCapacity of 0 means unlimited capacity.
func NewStatusCache(maxCapacity int) *StatusCache {
	return &StatusCache{
		table:       make(map[uint64][]signature),
		maxCapacity: maxCapacity,
	}
}

// Lookup returns the cached result for the position, if present.
func (c *StatusCache) Lookup(rules engine.Rules, board chess.Board, toMove chess.Colour) (Entry, bool) {
	for _, sig := range c.table[PositionKey(board, toMove)] {
		if sig.toMove == toMove && sig.rules == rules && sig.board.Equal(board) {
			c.hits++
			return sig.entry, true
		}
	}
	c.misses++
	return Entry{}, false
}

// Store records a result. It returns false when the cache is full; existing
// entries are never evicted.
func (c *StatusCache) Store(rules engine.Rules, board chess.Board, toMove chess.Colour, e Entry) bool {
	key := PositionKey(board, toMove)
	for i, sig := range c.table[key] {
		if sig.toMove == toMove && sig.rules == rules && sig.board.Equal(board) {
			c.table[key][i].entry = e
			return true
		}
	}
	if c.IsFull() {
		return false
	}
	c.table[key] = append(c.table[key], signature{board: board, toMove: toMove, rules: rules, entry: e})
	c.size++
	return true
}

// Len returns the number of cached positions.
func (c *StatusCache) Len() int {
	return c.size
}

// Hits returns the number of successful lookups.
func (c *StatusCache) Hits() int {
	return c.hits
}

// Misses returns the number of failed lookups.
func (c *StatusCache) Misses() int {
	return c.misses
}

// IsFull returns true if the cache has reached its capacity limit.
// Always returns false for unlimited capacity (maxCapacity = 0).
func (c *StatusCache) IsFull() bool {
	return c.maxCapacity > 0 && c.size >= c.maxCapacity
}

// Reset clears the cache and its counters.
func (c *StatusCache) Reset() {
	c.table = make(map[uint64][]signature)
	c.size, c.hits, c.misses = 0, 0, 0
}
