package player

import (
	"fmt"
	"time"

	"github.com/kechprog/chess-engine/pkg/chess"
	"github.com/kechprog/chess-engine/pkg/engine"
)

// Difficulty selects one of spec.md §6's Negamax presets.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	case Expert:
		return "Expert"
	default:
		return "Unknown"
	}
}

// limits returns the depth/deadline pair spec.md §6's difficulty table
// specifies for d.
func (d Difficulty) limits() (depth int, deadline time.Duration) {
	switch d {
	case Easy:
		return 2, 0
	case Medium:
		return 4, 0
	case Hard:
		return 6, 0
	case Expert:
		return 8, 5 * time.Second
	default:
		return 4, 0
	}
}

// NegamaxPlayer wraps an engine.Engine behind the Player protocol,
// applying one of spec.md §6's fixed difficulty presets to every move
// it's asked for.
type NegamaxPlayer struct {
	Difficulty Difficulty
	engine     *engine.Engine
}

func NewNegamaxPlayer(difficulty Difficulty) *NegamaxPlayer {
	return &NegamaxPlayer{
		Difficulty: difficulty,
		engine:     engine.NewEngine(engine.DefaultHashMegabytes, nil),
	}
}

func (n *NegamaxPlayer) RequestMove(snapshot *chess.Position) chess.Move {
	var depth, deadline = n.Difficulty.limits()
	var limits = engine.SearchLimits{MaxDepth: depth}
	if deadline > 0 {
		limits.Deadline = time.Now().Add(deadline)
	}
	var move, _ = n.engine.BestMove(snapshot, limits)
	return move
}

func (n *NegamaxPlayer) Cancel() { n.engine.Cancel() }

func (n *NegamaxPlayer) Name() string {
	return fmt.Sprintf("Negamax (%s)", n.Difficulty)
}
