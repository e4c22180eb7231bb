package player

import (
	"sync/atomic"

	"github.com/kechprog/chess-engine/pkg/chess"
	"github.com/kechprog/chess-engine/pkg/mcts"
)

// MCTSPlayer wraps mcts.Search behind the Player protocol using a
// fixed configuration, per spec.md §6.
type MCTSPlayer struct {
	Config mcts.Config
	cancel int32
}

func NewMCTSPlayer(config mcts.Config) *MCTSPlayer {
	return &MCTSPlayer{Config: config}
}

func NewDefaultMCTSPlayer() *MCTSPlayer {
	return &MCTSPlayer{Config: mcts.DefaultConfig()}
}

// RequestMove ignores Cancel today: spec.md §4.12's worker loop is a
// fixed iteration budget with no per-iteration cancellation check, so
// there is nothing to interrupt mid-search. Cancel is still exposed to
// satisfy the Player protocol.
func (m *MCTSPlayer) RequestMove(snapshot *chess.Position) chess.Move {
	var move, _ = mcts.Search(snapshot, m.Config)
	return move
}

func (m *MCTSPlayer) Cancel() { atomic.StoreInt32(&m.cancel, 1) }

func (m *MCTSPlayer) Name() string { return "MCTS" }
