package player

import "github.com/kechprog/chess-engine/pkg/chess"

// Player is the uniform move-producer interface spec.md §6 defines,
// implemented by the engine's own NegamaxPlayer and MCTSPlayer and, on
// the host side, by human or network players.
type Player interface {
	// RequestMove blocks until a move is chosen for snapshot, which the
	// caller owns exclusively for the duration of the call (per
	// spec.md §5, the engine never needs concurrent access to a live
	// board). Returns chess.MoveNone only if snapshot has no legal
	// move at all.
	RequestMove(snapshot *chess.Position) chess.Move

	// Cancel asks the in-flight RequestMove call to return its
	// best-so-far as soon as possible. Safe to call from another
	// goroutine; a no-op if no search is running.
	Cancel()

	// Name returns a human-readable label for the player.
	Name() string
}
