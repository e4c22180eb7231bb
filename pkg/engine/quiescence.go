package engine

import "github.com/kechprog/chess-engine/pkg/chess"

// maxQuiescencePly bounds the tactical-only search spec.md §4.11 calls
// out as "depth-unlimited, cap at 16 plies hard-safety". It gets its
// own move-buffer array (rather than sharing negamax's per-ply
// buffers) because the main search's ply counter is not bounded by
// maxPly the same way once quiescence extends past the leaf.
const maxQuiescencePly = 16

// deltaSafetyMargin is added on top of a captured piece's value before
// comparing against alpha in delta pruning, matching common practice
// of allowing a little slack for positional compensation.
const deltaSafetyMargin = 100

// quiescence searches only captures and queen promotions past the
// main search's horizon, per spec.md §4.11: stand-pat, delta pruning,
// MVV-LVA ordering, cutoff on beta.
func (n *Negamax) quiescence(p *chess.Position, ply, alpha, beta, qdepth int) int {
	n.checkTimeout()

	var inCheck = p.IsInCheck()
	var standPat int
	if !inCheck {
		standPat = n.Eval.Evaluate(p)
		if standPat >= beta {
			return beta
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	if qdepth >= maxQuiescencePly {
		return alpha
	}

	var buf [chess.MaxMoves]chess.Move
	var moves []chess.Move
	if inCheck {
		moves = chess.GenerateLegalMoves(p, buf[:0])
	} else {
		var pseudo [chess.MaxMoves]chess.Move
		moves = filterLegal(p, chess.GenerateCaptures(p, pseudo[:0]), buf[:0])
	}

	if len(moves) == 0 {
		if inCheck {
			return -mateValue + ply
		}
		return alpha
	}

	var ordered = orderMoves(moves, &n.Eval.Weights, chess.MoveNone, chess.MoveNone, chess.MoveNone,
		&n.History, p.SideToMove)

	var moveCount = 0
	for _, om := range ordered {
		var move = om.move
		if !inCheck && move.IsCapture() {
			var victimValue = n.Eval.Weights.Material[move.CapturedPiece()]
			if standPat+victimValue+deltaSafetyMargin < alpha {
				continue
			}
		}
		p.MakeMove(move)
		moveCount++
		var score = -n.quiescence(p, ply+1, -beta, -alpha, qdepth+1)
		p.UnmakeMove()

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	if inCheck && moveCount == 0 {
		return -mateValue + ply
	}
	return alpha
}

// filterLegal keeps only moves from pseudo that don't leave the mover
// in check. GenerateCaptures only produces pseudo-legal candidates, so
// quiescence needs this pass the way the main search's
// chess.GenerateLegalMoves already does internally for full move
// lists.
func filterLegal(p *chess.Position, pseudo, buf []chess.Move) []chess.Move {
	var us = p.SideToMove
	var inCheck = p.IsInCheck()
	var pins = chess.ComputePins(p, us)
	buf = buf[:0]
	for _, m := range pseudo {
		if chess.IsLegalMove(p, m, us, inCheck, pins) {
			buf = append(buf, m)
		}
	}
	return buf
}
