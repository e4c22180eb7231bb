package mcts

import (
	"math/rand"
	"testing"

	"github.com/kechprog/chess-engine/pkg/chess"
)

func mustPosition(t *testing.T, fen string) *chess.Position {
	t.Helper()
	var p, err = chess.NewPositionFromFEN(fen)
	if err != nil {
		t.Fatalf("NewPositionFromFEN(%q): %v", fen, err)
	}
	return p
}

func TestSearchReturnsLegalMove(t *testing.T) {
	var p = chess.NewStartPosition()
	var move, _ = Search(p, Config{Iterations: 200, MaxDepth: 6, Workers: 2})
	if move == chess.MoveNone {
		t.Fatal("expected a legal move from the start position")
	}
	var buf [chess.MaxMoves]chess.Move
	var legal = chess.GenerateLegalMoves(p, buf[:0])
	var found = false
	for _, m := range legal {
		if m == move {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("search returned %s, which is not among the legal moves", move)
	}
}

func TestSearchSingleLegalMoveShortCircuits(t *testing.T) {
	// White king in check from the undefended g2 queen, with exactly one
	// legal move: Kh1xg2.
	var p = mustPosition(t, "7k/8/8/8/8/8/6q1/7K w - - 0 1")
	var move, stats = Search(p, Config{Iterations: 100, MaxDepth: 4, Workers: 2})
	if move == chess.MoveNone {
		t.Fatal("expected a legal move")
	}
	if stats.Iterations != 0 {
		t.Errorf("expected the single-legal-move short circuit to skip iterations, got %d", stats.Iterations)
	}
}

func TestSearchOnCheckmateReturnsNoMove(t *testing.T) {
	var p = mustPosition(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	var move, _ = Search(p, Config{Iterations: 100, MaxDepth: 4, Workers: 2})
	if move != chess.MoveNone {
		t.Errorf("expected no move from a checkmated position, got %s", move)
	}
}

func TestMaterialScoreFavorsExtraQueen(t *testing.T) {
	var p = mustPosition(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	if materialScore(p) <= 0 {
		t.Errorf("expected white's extra queen to score positive, got %d", materialScore(p))
	}
}

// TestSearchBeatsUniformRandomMover exercises spec.md §8's search-behaviour
// property: MCTS with >=500 iterations beats a uniform-random mover at
// least 60% of the time over 10 games. MCTS always plays White; the
// opponent picks uniformly among its own legal moves every turn.
func TestSearchBeatsUniformRandomMover(t *testing.T) {
	const games = 10
	const winThreshold = 0.6
	var cfg = Config{Iterations: 500, MaxDepth: 30, Workers: 4}
	var rng = rand.New(rand.NewSource(1))

	var wins int
	for g := 0; g < games; g++ {
		if playAgainstRandomMover(cfg, rng) > 0 {
			wins++
		}
	}

	var winRate = float64(wins) / float64(games)
	if winRate < winThreshold {
		t.Fatalf("expected MCTS to win at least %.0f%% of %d games against a uniform-random mover, won %d (%.0f%%)",
			winThreshold*100, games, wins, winRate*100)
	}
}

// playAgainstRandomMover plays one game from the start position, MCTS as
// White against a uniform-random Black, and returns 1 for a MCTS win, -1
// for a loss, 0 for a draw or an unresolved game at the ply cap.
func playAgainstRandomMover(cfg Config, rng *rand.Rand) int {
	var p = chess.NewStartPosition()
	const maxPlies = 200

	for ply := 0; ply < maxPlies; ply++ {
		if chess.IsCheckmate(p) {
			if p.SideToMove == chess.White {
				return -1
			}
			return 1
		}
		if chess.IsStalemate(p) || chess.IsInsufficientMaterial(p) || p.IsFiftyMoveRule() {
			return 0
		}

		var move chess.Move
		if p.SideToMove == chess.White {
			move, _ = Search(p, cfg)
		} else {
			var buf [chess.MaxMoves]chess.Move
			var legal = chess.GenerateLegalMoves(p, buf[:0])
			move = legal[rng.Intn(len(legal))]
		}
		if move == chess.MoveNone {
			return 0
		}
		p.MakeMove(move)
	}
	return 0
}
