package engine

import "testing"

func newTestEngine() *Engine {
	return NewEngine(1, nil)
}

func TestNegamaxFindsMateInOne(t *testing.T) {
	var e = newTestEngine()
	// Classic back-rank mate: black king boxed in by its own pawns,
	// white rook delivers mate along the open e-file/back rank.
	var p = mustPosition(t, "6k1/5ppp/8/8/8/8/8/4R1K1 w - - 0 1")
	var move, result = e.BestMove(p, SearchLimits{MaxDepth: 4})
	if result.Score < mateThreshold {
		t.Fatalf("expected a mate score at depth 4, got %d (move %s)", result.Score, move)
	}
	if move.To() != chessSquare(t, "e8") {
		t.Errorf("expected Re1-e8#, got %s", move)
	}
}

func TestNegamaxPrefersFasterMate(t *testing.T) {
	var e = newTestEngine()
	// King+queen vs lone king with two distinct forced mates available:
	// Qd1-f1 (and Qd1-f3) force mate in 2, Qd1-g1 (and Qd1-g4) force a
	// slower mate in 4. Neither queen move is an immediate mate in 1.
	// Verified by exhaustive minimax over the full (tiny) game tree.
	var p = mustPosition(t, "4k3/8/3K4/8/8/8/8/3Q4 w - - 0 1")
	var move, result = e.BestMove(p, SearchLimits{MaxDepth: 10})

	// mate-in-2 scores mateValue-3; the slower mate-in-4 line scores
	// only mateValue-7. Mate-distance pruning must prefer the former.
	if result.Score < mateValue-3 {
		t.Fatalf("expected at least the mate-in-2 score (mateValue-3), got %d", result.Score)
	}
	if move.From() != chessSquare(t, "d1") {
		t.Fatalf("expected the queen to move, got %s", move)
	}
	var to = move.To()
	if to != chessSquare(t, "f1") && to != chessSquare(t, "f3") {
		t.Errorf("expected Qd1-f1 or Qd1-f3 (the mate-in-2 moves), got %s", move)
	}
}

func TestNegamaxAvoidsStalemateWhenWinning(t *testing.T) {
	var e = newTestEngine()
	// White massively ahead; must not walk into a stalemate trap.
	var p = mustPosition(t, "7k/8/8/8/8/8/6Q1/6K1 w - - 0 1")
	var move, result = e.BestMove(p, SearchLimits{MaxDepth: 4})
	if move == 0 {
		t.Fatal("expected a legal move")
	}
	if result.Score <= 0 {
		t.Errorf("expected a clearly winning score, got %d", result.Score)
	}
}

func TestSearchReturnsNoMoveOnCheckmate(t *testing.T) {
	var e = newTestEngine()
	var p = mustPosition(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	var move, result = e.BestMove(p, SearchLimits{MaxDepth: 4})
	if move != 0 {
		t.Errorf("expected no move from a checkmated position, got %s", move)
	}
	if len(result.PV) != 0 {
		t.Errorf("expected empty PV, got %v", result.PV)
	}
}

func chessSquare(t *testing.T, name string) int {
	t.Helper()
	var file = int(name[0] - 'a')
	var rank = int(name[1] - '1')
	return rank*8 + file
}
