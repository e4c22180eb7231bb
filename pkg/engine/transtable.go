package engine

import (
	"sync/atomic"

	"github.com/kechprog/chess-engine/pkg/chess"
)

// Bound flags for a stored score, per spec.md §4.9.
const (
	BoundLower = 1 << iota
	BoundUpper
	BoundExact = BoundLower | BoundUpper
)

type transEntry struct {
	gate   int32
	key32  uint32
	move   chess.Move
	score  int16
	depth  int8
	bound  uint8
	age    uint8
}

// TransTable is a fixed-size, single-slot-per-index transposition
// table. Only the teacher's depth/age/bound-aware replacement policy
// is kept (deepReplaceTransTable); the teacher also ships an
// always-replace and a 4-way clustered variant that spec.md §4.9 does
// not call for (see DESIGN.md). Lookup/store use the same CAS gate as
// the teacher: a probe or store that finds the entry's gate taken gives
// up rather than spinning, so concurrent callers never see a torn
// entry. The Negamax search in this package is single-threaded.
type TransTable struct {
	entries []transEntry
	mask    uint32
	age     uint8
}

// NewTransTable allocates the largest power of two number of entries
// not exceeding megabytes*2^20/16 (so 16 MB gives 2^20 entries), per
// spec.md §4.9's "default 2^20 entries, user-configurable". A
// transEntry occupies 20 bytes, so the table uses about 1.25 times the
// requested megabytes.
func NewTransTable(megabytes int) *TransTable {
	var size = roundPowerOfTwo(1024 * 1024 * megabytes / 16)
	if size == 0 {
		size = 1
	}
	return &TransTable{
		entries: make([]transEntry, size),
		mask:    uint32(size - 1),
	}
}

func roundPowerOfTwo(size int) int {
	var x = 1
	for x<<1 <= size {
		x <<= 1
	}
	return x
}

// NewSearch bumps the generation counter used to prefer fresh entries
// over stale ones from a previous search, per spec.md §4.9's "ages
// differ" replacement clause.
func (tt *TransTable) NewSearch() {
	tt.age++
}

func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = transEntry{}
	}
}

// Probe looks up p.Key, adjusting a stored mate score back to
// root-relative terms via ply, per spec.md §4.9.
func (tt *TransTable) Probe(p *chess.Position, ply int) (depth, score, bound int, move chess.Move, ok bool) {
	var entry = &tt.entries[uint32(p.Key)&tt.mask]
	if !atomic.CompareAndSwapInt32(&entry.gate, 0, 1) {
		return
	}
	if entry.key32 == uint32(p.Key>>32) {
		depth = int(entry.depth)
		score = valueFromTT(int(entry.score), ply)
		bound = int(entry.bound)
		move = entry.move
		ok = true
	}
	atomic.StoreInt32(&entry.gate, 0)
	return
}

// Store writes an entry, replacing the current occupant only if the
// new one is at least as deep, from a different search generation, or
// refers to the same position (spec.md §4.9's replacement policy).
func (tt *TransTable) Store(p *chess.Position, depth, score, bound int, move chess.Move, ply int) {
	var entry = &tt.entries[uint32(p.Key)&tt.mask]
	if !atomic.CompareAndSwapInt32(&entry.gate, 0, 1) {
		return
	}
	if entry.age != tt.age || depth >= int(entry.depth) || entry.key32 == uint32(p.Key>>32) {
		entry.key32 = uint32(p.Key >> 32)
		entry.move = move
		entry.score = int16(valueToTT(score, ply))
		entry.depth = int8(depth)
		entry.bound = uint8(bound)
		entry.age = tt.age
	}
	atomic.StoreInt32(&entry.gate, 0)
}

// valueToTT/valueFromTT convert between a root-relative score and a
// ply-from-this-node-relative score so a stored mate distance still
// means the same thing when retrieved deeper or shallower in the tree,
// per spec.md §4.9's mate-score adjustment requirement.
func valueToTT(score, ply int) int {
	if score >= mateThreshold {
		return score + ply
	}
	if score <= -mateThreshold {
		return score - ply
	}
	return score
}

func valueFromTT(score, ply int) int {
	if score >= mateThreshold {
		return score - ply
	}
	if score <= -mateThreshold {
		return score + ply
	}
	return score
}
