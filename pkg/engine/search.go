package engine

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/kechprog/chess-engine/pkg/chess"
)

const (
	maxPly        = 128
	valueInfinity = 32000
	mateValue     = 30000
	mateThreshold = mateValue - maxPly
	valueDraw     = 0
	nullMoveR     = 2
)

// searchTimeout is panicked with to unwind the whole recursive search
// stack in one motion once a deadline or stop signal fires, exactly
// the teacher's engine/search.go cancellation mechanism
// (recoverFromSearchTimeout).
var searchTimeout = struct{}{}

// SearchLimits bounds one Negamax.Search call, per spec.md §6's
// difficulty presets (depth-only for Easy/Medium/Hard, depth+deadline
// for Expert).
type SearchLimits struct {
	MaxDepth int
	Deadline time.Time // zero value means no deadline
}

// SearchResult reports the outcome of a completed (or cancelled)
// iterative-deepening pass.
type SearchResult struct {
	Depth int
	Score int
	Nodes uint64
	PV    []chess.Move
}

// Negamax is the single-threaded search engine spec.md §5 describes:
// no internal concurrency, one Position mutated in place via
// make/unmake, a per-ply move buffer stack to avoid per-node
// allocation.
type Negamax struct {
	Eval    *EvaluationService
	TT      *TransTable
	History HistoryTable
	Killers *KillerTable

	// Logger, when non-nil, emits a Debug event per completed
	// iterative-deepening depth, per SPEC_FULL.md §5's progress
	// reporting requirement.
	Logger *zerolog.Logger

	buffers  [maxPly][chess.MaxMoves]chess.Move
	pvTable  [maxPly][maxPly]chess.Move
	pvLength [maxPly]int

	nodes    uint64
	stop     int32
	deadline time.Time
	hasDL    bool
}

func NewNegamax(eval *EvaluationService, tt *TransTable) *Negamax {
	return &Negamax{
		Eval:    eval,
		TT:      tt,
		Killers: NewKillerTable(maxPly),
	}
}

// Stop asks the running search to return its best move so far as soon
// as possible, per spec.md §6's cancel() contract.
func (n *Negamax) Stop() { atomic.StoreInt32(&n.stop, 1) }

func (n *Negamax) shouldStop() bool {
	if atomic.LoadInt32(&n.stop) != 0 {
		return true
	}
	return n.hasDL && time.Now().After(n.deadline)
}

// Search runs iterative deepening from depth 1 to limits.MaxDepth,
// returning the best result found before cancellation or the deadline,
// per spec.md §4.10 and §5's "never None unless no iteration
// completed" cancellation contract.
func (n *Negamax) Search(p *chess.Position, limits SearchLimits) SearchResult {
	atomic.StoreInt32(&n.stop, 0)
	n.nodes = 0
	n.History.Clear()
	n.Killers.Clear()
	n.TT.NewSearch()
	n.hasDL = !limits.Deadline.IsZero()
	n.deadline = limits.Deadline

	var legal = chess.GenerateLegalMoves(p, n.buffers[0][:0])
	var result = SearchResult{}
	if len(legal) == 0 {
		return result
	}
	result.PV = []chess.Move{legal[0]}

	var maxDepth = limits.MaxDepth
	if maxDepth <= 0 || maxDepth > maxPly-1 {
		maxDepth = maxPly - 1
	}

	var started = time.Now()
	for depth := 1; depth <= maxDepth; depth++ {
		var score, ok = n.searchRoot(p, depth)
		if !ok {
			break
		}
		result = SearchResult{
			Depth: depth,
			Score: score,
			Nodes: n.nodes,
			PV:    append([]chess.Move(nil), n.pvTable[0][:n.pvLength[0]]...),
		}
		n.logIteration(result, time.Since(started))
		if score >= mateThreshold || score <= -mateThreshold {
			break
		}
	}
	return result
}

func (n *Negamax) searchRoot(p *chess.Position, depth int) (score int, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if r != searchTimeout {
				panic(r)
			}
			ok = false
		}
	}()
	score = n.negamax(p, 0, depth, -valueInfinity, valueInfinity, false)
	return score, true
}

func (n *Negamax) logIteration(result SearchResult, elapsed time.Duration) {
	if n.Logger == nil {
		return
	}
	var nps uint64
	if elapsed > 0 {
		nps = uint64(float64(result.Nodes) / elapsed.Seconds())
	}
	var pv = make([]string, len(result.PV))
	for i, m := range result.PV {
		pv[i] = m.String()
	}
	n.Logger.Debug().
		Int("depth", result.Depth).
		Int("score_cp", result.Score).
		Uint64("nodes", result.Nodes).
		Uint64("nps", nps).
		Strs("pv", pv).
		Msg("search-iteration")
}

func (n *Negamax) checkTimeout() {
	n.nodes++
	if n.nodes&2047 == 0 && n.shouldStop() {
		panic(searchTimeout)
	}
}

// negamax implements spec.md §4.10's per-node algorithm exactly in the
// order it lists: TT probe, depth-0 handoff to quiescence,
// mate-distance pruning, null-move pruning, move generation/ordering,
// then a PVS loop over legal moves.
func (n *Negamax) negamax(p *chess.Position, ply, depth, alpha, beta int, parentWasNull bool) int {
	n.checkTimeout()
	n.pvLength[ply] = 0

	var isRoot = ply == 0

	// Deliberately not checking IsThreefoldRepetition here: the source
	// this was distilled from does not check repetition within search,
	// only in the UI after a game ends. See DESIGN.md.
	var hashMove = chess.MoveNone
	if ttDepth, ttScore, ttBound, ttMove, ok := n.TT.Probe(p, ply); ok {
		hashMove = ttMove
		if ttDepth >= depth && !isRoot {
			if ttBound == BoundExact {
				return ttScore
			}
			if ttBound == BoundLower && ttScore >= beta {
				return beta
			}
			if ttBound == BoundUpper && ttScore <= alpha {
				return alpha
			}
		}
	}

	if depth <= 0 {
		return n.quiescence(p, ply, alpha, beta, 0)
	}

	var matingValue = mateValue - ply
	if matingValue < beta {
		beta = matingValue
		if alpha >= beta {
			return beta
		}
	}
	var matedValue = -mateValue + ply
	if matedValue > alpha {
		alpha = matedValue
		if alpha >= beta {
			return alpha
		}
	}

	var us = p.SideToMove
	var inCheck = p.IsInCheck()

	if !inCheck && depth >= 3 && beta < mateThreshold && !isRoot && !parentWasNull &&
		hasNonPawnMaterial(p, us) {
		var undo = p.MakeNullMove()
		var score = -n.negamax(p, ply+1, depth-1-nullMoveR, -beta, -beta+1, true)
		undo()
		if score >= beta {
			return beta
		}
	}

	var pseudoBuf = n.buffers[ply][:0]
	var moves = chess.GenerateLegalMoves(p, pseudoBuf)
	if len(moves) == 0 {
		if inCheck {
			return -mateValue + ply
		}
		return valueDraw
	}

	var killer1, killer2 = n.Killers.At(ply)
	var ordered = orderMoves(moves, &n.Eval.Weights, hashMove, killer1, killer2, &n.History, us)

	var bestMove = chess.MoveNone
	var bestScore = -valueInfinity
	var bound = BoundUpper

	for i, om := range ordered {
		var move = om.move
		p.MakeMove(move)
		var score int
		if i == 0 {
			score = -n.negamax(p, ply+1, depth-1, -beta, -alpha, false)
		} else {
			score = -n.negamax(p, ply+1, depth-1, -alpha-1, -alpha, false)
			if score > alpha && score < beta {
				score = -n.negamax(p, ply+1, depth-1, -beta, -alpha, false)
			}
		}
		p.UnmakeMove()

		if score > bestScore {
			bestScore = score
			bestMove = move
			if score > alpha {
				alpha = score
				bound = BoundExact
				n.updatePV(ply, move)
				if alpha >= beta {
					bound = BoundLower
					if !move.IsCaptureOrPromotion() {
						n.Killers.Update(ply, move)
						n.History.Update(us, move, depth)
					}
					break
				}
			}
		}
	}

	n.TT.Store(p, depth, bestScore, bound, bestMove, ply)
	return bestScore
}

func (n *Negamax) updatePV(ply int, move chess.Move) {
	n.pvTable[ply][0] = move
	copy(n.pvTable[ply][1:], n.pvTable[ply+1][:n.pvLength[ply+1]])
	n.pvLength[ply] = n.pvLength[ply+1] + 1
}

func hasNonPawnMaterial(p *chess.Position, c chess.Color) bool {
	return p.PieceBB(c, chess.Knight)|p.PieceBB(c, chess.Bishop)|
		p.PieceBB(c, chess.Rook)|p.PieceBB(c, chess.Queen) != 0
}
