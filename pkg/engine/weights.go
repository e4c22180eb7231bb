package engine

import "github.com/kechprog/chess-engine/pkg/chess"

// Weights holds every tunable evaluation constant, built once by
// init() so the whole table set lives in one place, grounded on the
// teacher's pkg/eval/pesto.EvaluationService embedding a Weights value.
type Weights struct {
	Material         [7]int
	PST              [2][7][64]Score
	DoubledPawn      Score
	IsolatedPawn     Score
	PassedPawn       Score
	PawnShield       Score
	Mobility         [7]Score
	BishopPair       Score
	RookOpenFile     Score
	RookSemiOpenFile Score
	RookSeventhRank  Score
	ConnectedRooks   Score
}

// pawnTable, knightTable, ... are transcribed from the original
// evaluator's piece-square tables (spec.md §4.7's PST component),
// index 0 = a1 rank-major, matching this package's square numbering
// directly so no reindexing is required for White.
var (
	pawnTable = [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	knightTable = [64]int{
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	}
	bishopTable = [64]int{
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	}
	rookTable = [64]int{
		0, 0, 0, 5, 5, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	queenTable = [64]int{
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-10, 5, 5, 5, 5, 5, 0, -10,
		0, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	}
	kingMiddlegameTable = [64]int{
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	}
	kingEndgameTable = [64]int{
		-50, -30, -30, -30, -30, -30, -30, -50,
		-30, -30, 0, 0, 0, 0, -30, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -20, -10, 0, 0, -10, -20, -30,
		-50, -40, -30, -20, -20, -30, -40, -50,
	}
)

// init fills w with the evaluation constants EvaluationService uses.
// Only the king has genuinely distinct middlegame/endgame tables in the
// source this was ported from; every other piece uses the same table
// for both phases (see DESIGN.md).
func (w *Weights) init() {
	w.Material[chess.Pawn] = 100
	w.Material[chess.Knight] = 300
	w.Material[chess.Bishop] = 320
	w.Material[chess.Rook] = 500
	w.Material[chess.Queen] = 900
	w.Material[chess.King] = 0

	w.buildPST(chess.Pawn, pawnTable, pawnTable)
	w.buildPST(chess.Knight, knightTable, knightTable)
	w.buildPST(chess.Bishop, bishopTable, bishopTable)
	w.buildPST(chess.Rook, rookTable, rookTable)
	w.buildPST(chess.Queen, queenTable, queenTable)
	w.buildPST(chess.King, kingMiddlegameTable, kingEndgameTable)

	w.DoubledPawn = S(15, 20)
	w.IsolatedPawn = S(20, 25)
	w.PassedPawn = S(40, 70)
	w.PawnShield = S(15, 5)

	w.Mobility[chess.Knight] = S(4, 4)
	w.Mobility[chess.Bishop] = S(5, 5)
	w.Mobility[chess.Rook] = S(2, 4)
	w.Mobility[chess.Queen] = S(1, 2)
	w.Mobility[chess.King] = S(0, 3)

	w.BishopPair = S(40, 50)
	w.RookOpenFile = S(25, 25)
	w.RookSemiOpenFile = S(12, 12)
	w.RookSeventhRank = S(18, 25)
	w.ConnectedRooks = S(15, 15)
}

func (w *Weights) buildPST(pt chess.PieceType, mg, eg [64]int) {
	for sq := 0; sq < 64; sq++ {
		w.PST[chess.White][pt][sq] = S(mg[sq], eg[sq])
		// Black's table is the point-symmetric mirror of White's,
		// exactly as the original evaluator flips via 63-square.
		w.PST[chess.Black][pt][sq] = S(mg[63-sq], eg[63-sq])
	}
}
