package engine

import "github.com/kechprog/chess-engine/pkg/chess"

// Score buckets used to build the descending priority spec.md §4.8
// requires: hash move first, then captures/promotions by MVV-LVA, then
// killers, then history-ordered quiets. Grounded on the teacher's
// engine/moveSort.go scoring bands (hashScore/captureScore/killerScore
// there use 30000/29000/28000; the bands here follow the same shape).
const (
	hashMoveScore    = 1 << 20
	captureBaseScore = 1 << 19
	killerScore      = 1 << 18
	killer2Score     = killerScore - 1
)

// orderedMove pairs a move with its ordering key, exactly the
// teacher's orderedMove type.
type orderedMove struct {
	move chess.Move
	key  int
}

// mvvLva scores a capture per spec.md §4.8: 10*victim_value -
// attacker_value, using the same centipawn material scale the
// evaluator uses so one table serves both concerns.
func mvvLva(w *Weights, m chess.Move) int {
	var victim = m.CapturedPiece()
	if m.Type() == chess.EnPassantMove {
		victim = chess.Pawn
	}
	var victimValue = w.Material[victim]
	var attackerValue = w.Material[m.MovingPiece()]
	var score = 10*victimValue - attackerValue
	if m.IsPromotion() {
		score += w.Material[m.Promotion()] - w.Material[chess.Pawn]
	}
	return score
}

// HistoryTable implements spec.md §4.8's history heuristic:
// history[side][piece][to] incremented by depth^2 on a quiet cutoff,
// used as a tie-break among quiet moves. Grounded on the teacher's
// engine/historytable.go, simplified to a plain (non-atomic) table
// since spec.md §4.10's negamax runs single-threaded.
type HistoryTable [2][7][64]int

func (ht *HistoryTable) Clear() {
	*ht = HistoryTable{}
}

func (ht *HistoryTable) Update(side chess.Color, m chess.Move, depth int) {
	ht[side][m.MovingPiece()][m.To()] += depth * depth
}

func (ht *HistoryTable) Score(side chess.Color, m chess.Move) int {
	return ht[side][m.MovingPiece()][m.To()]
}

// KillerTable holds two killer moves per search ply, per spec.md §4.8.
type KillerTable struct {
	killers [][2]chess.Move
}

func NewKillerTable(maxPly int) *KillerTable {
	return &KillerTable{killers: make([][2]chess.Move, maxPly)}
}

func (kt *KillerTable) Clear() {
	for i := range kt.killers {
		kt.killers[i] = [2]chess.Move{}
	}
}

func (kt *KillerTable) Update(ply int, m chess.Move) {
	if kt.killers[ply][0] != m {
		kt.killers[ply][1] = kt.killers[ply][0]
		kt.killers[ply][0] = m
	}
}

func (kt *KillerTable) At(ply int) (chess.Move, chess.Move) {
	return kt.killers[ply][0], kt.killers[ply][1]
}

// orderMoves scores every pseudo-legal move per spec.md §4.8's
// priority list and sorts them in place, descending by score.
func orderMoves(moves []chess.Move, w *Weights, hashMove, killer1, killer2 chess.Move,
	history *HistoryTable, side chess.Color) []orderedMove {

	var scored = make([]orderedMove, len(moves))
	for i, m := range moves {
		var score int
		switch {
		case m == hashMove:
			score = hashMoveScore
		case m.IsCaptureOrPromotion():
			score = captureBaseScore + mvvLva(w, m)
		case m == killer1:
			score = killerScore
		case m == killer2:
			score = killer2Score
		default:
			score = history.Score(side, m)
		}
		scored[i] = orderedMove{move: m, key: score}
	}
	sortMoves(scored)
	return scored
}

// sortMoves is a descending shell sort over small move lists, matching
// the teacher's engine/moveSort.go (insertion sort outperforms a
// general-purpose sort at the list sizes move ordering deals with).
var shellSortGaps = [...]int{10, 4, 1}

func sortMoves(moves []orderedMove) {
	for _, gap := range shellSortGaps {
		for i := gap; i < len(moves); i++ {
			var j, t = i, moves[i]
			for ; j >= gap && moves[j-gap].key < t.key; j -= gap {
				moves[j] = moves[j-gap]
			}
			moves[j] = t
		}
	}
}
