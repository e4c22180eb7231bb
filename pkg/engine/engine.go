package engine

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/kechprog/chess-engine/pkg/chess"
)

// DefaultHashMegabytes is the transposition table size used when a
// caller doesn't request a specific one, matching the teacher's own
// "Hash" UCI option default order of magnitude.
const DefaultHashMegabytes = 16

// Engine wires together the evaluation service, transposition table
// and negamax searcher into the single entry point spec.md §5
// describes: one Position mutated in place, no engine-internal
// concurrency. Grounded on the teacher's engine.Engine, trimmed to the
// pieces this search actually needs (no UCI options, no thread pool).
type Engine struct {
	Eval    *EvaluationService
	TT      *TransTable
	Negamax *Negamax
}

// NewEngine builds an Engine with a transposition table sized to
// hashMegabytes (rounded down to the previous power of two entries,
// per spec.md §4.9). A non-nil logger causes the negamax searcher to
// emit per-depth progress events (SPEC_FULL.md §5).
func NewEngine(hashMegabytes int, logger *zerolog.Logger) *Engine {
	var eval = NewEvaluationService()
	var tt = NewTransTable(hashMegabytes)
	var n = NewNegamax(eval, tt)
	n.Logger = logger
	return &Engine{Eval: eval, TT: tt, Negamax: n}
}

// BestMove runs iterative deepening under limits and returns the best
// move found, or chess.MoveNone if the position has no legal moves.
func (e *Engine) BestMove(p *chess.Position, limits SearchLimits) (chess.Move, SearchResult) {
	var result = e.Negamax.Search(p, limits)
	if len(result.PV) == 0 {
		return chess.MoveNone, result
	}
	return result.PV[0], result
}

// Cancel asks any in-progress search to stop and return its best move
// so far, per spec.md §6's cancel() contract.
func (e *Engine) Cancel() { e.Negamax.Stop() }

// SearchLimitsForDeadline builds a SearchLimits with no depth cap and
// a wall-clock deadline, a convenience for callers driven purely by a
// time budget (e.g. Expert difficulty, per spec.md §6).
func SearchLimitsForDeadline(d time.Duration) SearchLimits {
	return SearchLimits{Deadline: time.Now().Add(d)}
}
