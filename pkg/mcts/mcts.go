package mcts

import (
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/kechprog/chess-engine/pkg/chess"
)

// Stats reports coarse information about a completed Search call, for
// callers that want to log or display search effort.
type Stats struct {
	Iterations int
	RootMoves  int
}

type moveStat struct {
	visits int
	score  float64
}

// pieceValue is a "cheap material count" per spec.md §4.12's rollout
// scoring step, deliberately smaller and coarser than
// engine.Weights.Material since MCTS playouts run thousands of times
// per search and don't need positional nuance.
var pieceValue = [...]int{0, 1, 3, 3, 5, 9, 0}

func materialScore(p *chess.Position) int {
	var score int
	for pt := chess.Pawn; pt <= chess.Queen; pt++ {
		score += pieceValue[pt] * chess.PopCount(p.PieceBB(chess.White, pt))
		score -= pieceValue[pt] * chess.PopCount(p.PieceBB(chess.Black, pt))
	}
	return score
}

// terminalOutcome maps a rollout cutoff (or genuine terminal position)
// to {-1, 0, +1} from the perspective of the side to move at p, per
// spec.md §4.12.
func terminalOutcome(p *chess.Position) float64 {
	var score = materialScore(p)
	if p.SideToMove == chess.Black {
		score = -score
	}
	switch {
	case score > 0:
		return 1
	case score < 0:
		return -1
	default:
		return 0
	}
}

// worker owns one independent tree and one independent Position clone,
// per spec.md §4.12/§5's root-parallelization model: no cross-worker
// tree sharing, no shared mutable board state during search.
type worker struct {
	pos   *chess.Position
	tree  *arena
	cfg   Config
	root  handle
}

func newWorker(root *chess.Position, cfg Config) *worker {
	var buf [chess.MaxMoves]chess.Move
	var legal = append([]chess.Move(nil), chess.GenerateLegalMoves(root, buf[:0])...)
	// Shuffle so each worker expands the root's untried moves in a
	// different order; otherwise every worker would break UCT's
	// infinite-score ties among never-visited children the same way,
	// biasing early iterations toward whichever move GenerateLegalMoves
	// happens to emit first.
	frand.Shuffle(len(legal), func(i, j int) { legal[i], legal[j] = legal[j], legal[i] })
	var tree = newArena(cfg.Iterations/4 + 16)
	var rootHandle = tree.alloc(noHandle, chess.MoveNone, legal)
	tree.at(rootHandle).terminal = len(legal) == 0
	return &worker{
		pos:  root.Clone(),
		tree: tree,
		cfg:  cfg,
		root: rootHandle,
	}
}

func (w *worker) uctSelect(parent handle) handle {
	var n = w.tree.at(parent)
	var best = noHandle
	var bestScore = math.Inf(-1)
	for _, ch := range n.children {
		var cn = w.tree.at(ch)
		var score float64
		if cn.visits == 0 {
			score = math.Inf(1)
		} else {
			score = cn.wins/float64(cn.visits) +
				w.cfg.ExplorationConstant*math.Sqrt(math.Log(float64(n.visits))/float64(cn.visits))
		}
		if score > bestScore {
			bestScore = score
			best = ch
		}
	}
	return best
}

// runIteration performs one selection/expansion/simulation/backprop
// pass, per spec.md §4.12, mutating and then fully restoring w.pos.
func (w *worker) runIteration() {
	var applied []chess.Move
	var path = []handle{w.root}
	var cur = w.root

	for {
		var n = w.tree.at(cur)
		if n.terminal || len(n.untried) > 0 {
			break
		}
		cur = w.uctSelect(cur)
		var move = w.tree.at(cur).move
		w.pos.MakeMove(move)
		applied = append(applied, move)
		path = append(path, cur)
	}

	if n := w.tree.at(cur); !n.terminal && len(n.untried) > 0 {
		var idx = frand.Intn(len(n.untried))
		var move = n.untried[idx]
		n.untried[idx] = n.untried[len(n.untried)-1]
		n.untried = n.untried[:len(n.untried)-1]

		w.pos.MakeMove(move)
		applied = append(applied, move)

		var buf [chess.MaxMoves]chess.Move
		var childMoves = chess.GenerateLegalMoves(w.pos, buf[:0])
		var childTerminal = len(childMoves) == 0
		var untried []chess.Move
		if !childTerminal {
			untried = append([]chess.Move(nil), childMoves...)
		}
		var child = w.tree.alloc(cur, move, untried)
		w.tree.at(child).terminal = childTerminal
		w.tree.at(cur).children = append(w.tree.at(cur).children, child)

		cur = child
		path = append(path, child)
	}

	var leafSTM = w.pos.SideToMove

	var depth = 0
	for !w.tree.at(cur).terminal && depth < w.cfg.MaxDepth {
		var buf [chess.MaxMoves]chess.Move
		var legal = chess.GenerateLegalMoves(w.pos, buf[:0])
		if len(legal) == 0 {
			break
		}
		var move = legal[frand.Intn(len(legal))]
		w.pos.MakeMove(move)
		applied = append(applied, move)
		depth++
	}

	var result = terminalOutcome(w.pos)
	// terminalOutcome is relative to w.pos's side to move after the
	// rollout, which flips with every move played. A node's wins are
	// read by uctSelect (and by the root aggregation) as good for the
	// side that moved into it, i.e. the opponent of the leaf's side to
	// move, so re-anchor the result to that side before backprop; each
	// level above then negates it once.
	if w.pos.SideToMove == leafSTM {
		result = -result
	}
	for i := len(path) - 1; i >= 0; i-- {
		var n = w.tree.at(path[i])
		n.visits++
		n.wins += result
		result = -result
	}

	for i := len(applied) - 1; i >= 0; i-- {
		w.pos.UnmakeMove()
	}
}

func (w *worker) run(iterations int) {
	for i := 0; i < iterations; i++ {
		w.runIteration()
	}
}

// Search runs root-parallelized MCTS per spec.md §4.12: T workers each
// run iterations/T independent passes on their own tree, then the
// per-move visit/score totals are aggregated under a single mutex.
func Search(root *chess.Position, cfg Config) (chess.Move, Stats) {
	if cfg.ExplorationConstant == 0 {
		cfg.ExplorationConstant = DefaultExplorationConstant
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultConfig().MaxDepth
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = DefaultConfig().Iterations
	}
	var workers = cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var buf [chess.MaxMoves]chess.Move
	var legalRoot = chess.GenerateLegalMoves(root, buf[:0])
	if len(legalRoot) == 0 {
		return chess.MoveNone, Stats{}
	}
	if len(legalRoot) == 1 {
		return legalRoot[0], Stats{Iterations: 0, RootMoves: 1}
	}

	var perWorker = cfg.Iterations / workers
	if perWorker == 0 {
		perWorker = 1
	}

	var mu sync.Mutex
	var agg = make(map[chess.Move]*moveStat)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		var workerID = i
		g.Go(func() error {
			var w = newWorker(root, cfg)
			w.run(perWorker)

			var rootNode = w.tree.at(w.root)
			mu.Lock()
			for _, ch := range rootNode.children {
				var cn = w.tree.at(ch)
				var s = agg[cn.move]
				if s == nil {
					s = &moveStat{}
					agg[cn.move] = s
				}
				s.visits += cn.visits
				s.score += cn.wins
			}
			mu.Unlock()

			if cfg.Logger != nil {
				cfg.Logger.Debug().
					Int("worker", workerID).
					Int("iterations", perWorker).
					Int("root_children", len(rootNode.children)).
					Msg("mcts-worker-joined")
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(agg) == 0 {
		return legalRoot[0], Stats{Iterations: perWorker * workers, RootMoves: 0}
	}

	var best chess.Move
	var bestVisits = -1
	var bestScore = math.Inf(-1)
	for mv, s := range agg {
		if s.visits > bestVisits || (s.visits == bestVisits && s.score > bestScore) {
			best = mv
			bestVisits = s.visits
			bestScore = s.score
		}
	}
	return best, Stats{Iterations: perWorker * workers, RootMoves: len(agg)}
}
