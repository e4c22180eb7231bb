package chess

// IsFiftyMoveRule reports whether the half-move clock has reached 100
// (50 full moves without a pawn move or capture), per spec.md §4.5.
func (p *Position) IsFiftyMoveRule() bool {
	return p.HalfmoveClock >= 100
}

// repetitionKey identifies a position for threefold-repetition purposes:
// the Zobrist key already folds in side to move, castling rights and
// en-passant file, which is exactly the state spec.md §4.5 requires.
func (p *Position) repetitionKey() uint64 { return p.Key }

// IsThreefoldRepetition reports whether the current position's key has
// occurred at least three times across the move history kept by the
// undo stack, walking back only as far as the half-move clock allows
// (a pawn move or capture resets repetition eligibility). Exposed for
// the host/UI per spec.md §4.5; the core search does not call it
// (see DESIGN.md's Open Question on in-search repetition).
func (p *Position) IsThreefoldRepetition() bool {
	var target = p.repetitionKey()
	var count = 1
	var limit = p.HalfmoveClock
	if limit > len(p.history) {
		limit = len(p.history)
	}
	// Replay backwards over irreversible-move-free history by tracking
	// keys stored in the undo records.
	var key = target
	for i := len(p.history) - 1; i >= len(p.history)-limit && i >= 0; i-- {
		key = p.history[i].key
		if key == target {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}
