package engine

import "github.com/kechprog/chess-engine/pkg/chess"

// Game-phase weights per spec.md §4.7: material-derived phase, max 256
// at the opening, 0 at a bare-king endgame. Grounded on the original
// evaluator's PAWN_PHASE/KNIGHT_PHASE/... constants (original_source's
// evaluation.rs), ported to bitboard popcounts instead of a 64-square
// scan.
const (
	knightPhase = 1
	bishopPhase = 1
	rookPhase   = 2
	queenPhase  = 4
	totalPhase  = knightPhase*4 + bishopPhase*4 + rookPhase*4 + queenPhase*2
)

// EvaluationService computes a tapered, side-to-move-relative score for
// a position, grounded on the teacher's pkg/eval/pesto.EvaluationService
// (embedded Weights, bitboard iteration via PopLSB rather than a
// mailbox scan).
type EvaluationService struct {
	Weights
}

func NewEvaluationService() *EvaluationService {
	var e = &EvaluationService{}
	e.Weights.init()
	return e
}

// Evaluate returns a centipawn score from the perspective of the side
// to move, per spec.md §4.7.
func (e *EvaluationService) Evaluate(p *chess.Position) int {
	var s Score
	s += e.materialAndPST(p, chess.White)
	s -= e.materialAndPST(p, chess.Black)
	s += e.pawnStructure(p, chess.White)
	s -= e.pawnStructure(p, chess.Black)
	s += e.kingShield(p, chess.White)
	s -= e.kingShield(p, chess.Black)
	s += e.mobility(p, chess.White, chess.ComputePins(p, chess.White))
	s -= e.mobility(p, chess.Black, chess.ComputePins(p, chess.Black))
	s += e.rookFeatures(p, chess.White)
	s -= e.rookFeatures(p, chess.Black)

	if chess.PopCount(p.PieceBB(chess.White, chess.Bishop)) >= 2 {
		s += e.BishopPair
	}
	if chess.PopCount(p.PieceBB(chess.Black, chess.Bishop)) >= 2 {
		s -= e.BishopPair
	}

	var phase = e.gamePhase(p) * 256 / totalPhase
	var result = (s.Mg()*phase + s.Eg()*(256-phase)) / 256

	if p.SideToMove == chess.Black {
		result = -result
	}
	return result
}

func (e *EvaluationService) gamePhase(p *chess.Position) int {
	var phase int
	for _, c := range [2]chess.Color{chess.White, chess.Black} {
		phase += knightPhase * chess.PopCount(p.PieceBB(c, chess.Knight))
		phase += bishopPhase * chess.PopCount(p.PieceBB(c, chess.Bishop))
		phase += rookPhase * chess.PopCount(p.PieceBB(c, chess.Rook))
		phase += queenPhase * chess.PopCount(p.PieceBB(c, chess.Queen))
	}
	if phase > totalPhase {
		phase = totalPhase
	}
	return phase
}

func (e *EvaluationService) materialAndPST(p *chess.Position, c chess.Color) Score {
	var s Score
	for pt := chess.Pawn; pt <= chess.King; pt++ {
		var material = e.Material[pt]
		var bb = p.PieceBB(c, pt)
		for bb != 0 {
			var sq int
			sq, bb = chess.PopLSB(bb)
			s += S(material, material) + e.PST[c][pt][sq]
		}
	}
	return s
}

func ranksAbove(rank int) chess.Bitboard {
	if rank >= 7 {
		return 0
	}
	return ^chess.Bitboard(0) << uint((rank+1)*8)
}

func ranksBelow(rank int) chess.Bitboard {
	if rank <= 0 {
		return 0
	}
	return (chess.Bitboard(1) << uint(rank*8)) - 1
}

// pawnStructure scores doubled, isolated and passed pawns for one
// side, per spec.md §4.7. Grounded on original_source's
// evaluate_pawn_structure/is_passed_pawn, translated from a 64-square
// scan to file-mask bitboard tests.
func (e *EvaluationService) pawnStructure(p *chess.Position, c chess.Color) Score {
	var s Score
	var ownPawns = p.PieceBB(c, chess.Pawn)
	var enemyPawns = p.PieceBB(c.Opposite(), chess.Pawn)

	var fileCount [8]int
	for f := 0; f < 8; f++ {
		fileCount[f] = chess.PopCount(ownPawns & chess.FileMask[f])
	}

	var pawns = ownPawns
	for pawns != 0 {
		var sq int
		sq, pawns = chess.PopLSB(pawns)
		var file = chess.File(sq)
		var rank = chess.Rank(sq)

		if fileCount[file] > 1 {
			s -= e.DoubledPawn
		}

		var leftHasPawn = file > 0 && fileCount[file-1] > 0
		var rightHasPawn = file < 7 && fileCount[file+1] > 0
		if !leftHasPawn && !rightHasPawn {
			s -= e.IsolatedPawn
		}

		var adjacent = chess.FileMask[file]
		if file > 0 {
			adjacent |= chess.FileMask[file-1]
		}
		if file < 7 {
			adjacent |= chess.FileMask[file+1]
		}
		var ahead chess.Bitboard
		if c == chess.White {
			ahead = ranksAbove(rank)
		} else {
			ahead = ranksBelow(rank)
		}
		if enemyPawns&adjacent&ahead == 0 {
			s += e.PassedPawn
		}
	}
	return s
}

// kingShield rewards friendly pawns on the two ranks in front of the
// king, per spec.md §4.7, grounded on original_source's
// evaluate_king_safety.
func (e *EvaluationService) kingShield(p *chess.Position, c chess.Color) Score {
	var kingSq = p.KingSquare(c)
	var kingFile = chess.File(kingSq)
	var kingRank = chess.Rank(kingSq)

	var r1, r2 = kingRank + 1, kingRank + 2
	if c == chess.Black {
		r1, r2 = kingRank-1, kingRank-2
	}

	var s Score
	var pawns = p.PieceBB(c, chess.Pawn)
	for _, rank := range [2]int{r1, r2} {
		if rank < 0 || rank > 7 {
			continue
		}
		for file := kingFile - 1; file <= kingFile+1; file++ {
			if file < 0 || file > 7 {
				continue
			}
			if chess.Test(pawns, chess.MakeSquare(file, rank)) {
				s += e.PawnShield
			}
		}
	}
	return s
}

// mobility counts attacked squares (excluding own-occupied) per piece,
// per spec.md §4.7, reusing the same attack tables move generation
// relies on rather than the original evaluator's bespoke ray walks. A
// piece pinned to its own king (per the pins the legality filter
// already computed for this side) has its attack set narrowed to the
// pin ray, per chess.PinInfo's shared "is this piece pinned" query:
// a pinned piece can only actually move along that ray, so counting
// its full unrestricted attack set would overstate its mobility.
func (e *EvaluationService) mobility(p *chess.Position, c chess.Color, pins chess.PinInfo) Score {
	var s Score
	var own = p.Occupied(c)
	var occ = p.AllOccupied()

	var knights = p.PieceBB(c, chess.Knight)
	for knights != 0 {
		var sq int
		sq, knights = chess.PopLSB(knights)
		var attacks = chess.KnightAttacks[sq] &^ own
		if chess.Test(pins.Pinned, sq) {
			attacks &= pins.PinRay[sq]
		}
		s += Score(chess.PopCount(attacks)) * e.Mobility[chess.Knight]
	}
	var bishops = p.PieceBB(c, chess.Bishop)
	for bishops != 0 {
		var sq int
		sq, bishops = chess.PopLSB(bishops)
		var attacks = chess.BishopAttacks(sq, occ) &^ own
		if chess.Test(pins.Pinned, sq) {
			attacks &= pins.PinRay[sq]
		}
		s += Score(chess.PopCount(attacks)) * e.Mobility[chess.Bishop]
	}
	var rooks = p.PieceBB(c, chess.Rook)
	for rooks != 0 {
		var sq int
		sq, rooks = chess.PopLSB(rooks)
		var attacks = chess.RookAttacks(sq, occ) &^ own
		if chess.Test(pins.Pinned, sq) {
			attacks &= pins.PinRay[sq]
		}
		s += Score(chess.PopCount(attacks)) * e.Mobility[chess.Rook]
	}
	var queens = p.PieceBB(c, chess.Queen)
	for queens != 0 {
		var sq int
		sq, queens = chess.PopLSB(queens)
		var attacks = chess.QueenAttacks(sq, occ) &^ own
		if chess.Test(pins.Pinned, sq) {
			attacks &= pins.PinRay[sq]
		}
		s += Score(chess.PopCount(attacks)) * e.Mobility[chess.Queen]
	}
	var kingSq = p.KingSquare(c)
	s += Score(chess.PopCount(chess.KingAttacks[kingSq]&^own)) * e.Mobility[chess.King]
	return s
}

// rookFeatures scores open/semi-open file, seventh-rank and connected
// rook bonuses, per spec.md §4.7, grounded on original_source's
// evaluate_rook_features.
func (e *EvaluationService) rookFeatures(p *chess.Position, c chess.Color) Score {
	var s Score
	var ownPawns = p.PieceBB(c, chess.Pawn)
	var enemyPawns = p.PieceBB(c.Opposite(), chess.Pawn)
	var seventhRank = chess.Rank7
	if c == chess.Black {
		seventhRank = chess.Rank2
	}

	var rookSquares []int
	var rooks = p.PieceBB(c, chess.Rook)
	for rooks != 0 {
		var sq int
		sq, rooks = chess.PopLSB(rooks)
		rookSquares = append(rookSquares, sq)

		var file = chess.File(sq)
		var hasOwn = chess.PopCount(ownPawns&chess.FileMask[file]) > 0
		var hasEnemy = chess.PopCount(enemyPawns&chess.FileMask[file]) > 0
		if !hasOwn && !hasEnemy {
			s += e.RookOpenFile
		} else if !hasOwn && hasEnemy {
			s += e.RookSemiOpenFile
		}
		if chess.Rank(sq) == seventhRank {
			s += e.RookSeventhRank
		}
	}

	for i := 0; i < len(rookSquares); i++ {
		for j := i + 1; j < len(rookSquares); j++ {
			var sq1, sq2 = rookSquares[i], rookSquares[j]
			if chess.File(sq1) != chess.File(sq2) && chess.Rank(sq1) != chess.Rank(sq2) {
				continue
			}
			if p.AllOccupied()&chess.Between(sq1, sq2) == 0 {
				s += e.ConnectedRooks
				break
			}
		}
	}
	return s
}
