package mcts

import (
	"math"

	"github.com/rs/zerolog"
)

// Config bounds one Search call, per spec.md §4.12/§6: a playout depth
// cap, a total iteration budget split evenly across workers, and the
// UCT exploration constant.
type Config struct {
	MaxDepth            int
	Iterations          int
	ExplorationConstant float64
	Workers             int // 0 means runtime.GOMAXPROCS(0)

	// Logger, when non-nil, emits one Debug event per worker as it
	// joins, per SPEC_FULL.md §5's progress-reporting requirement.
	Logger *zerolog.Logger
}

// DefaultExplorationConstant is UCT's classical c = sqrt(2), per
// spec.md §4.12/§6.
var DefaultExplorationConstant = math.Sqrt2

// DefaultConfig matches spec.md §6's MCTS configuration defaults.
func DefaultConfig() Config {
	return Config{
		MaxDepth:            12,
		Iterations:          5000,
		ExplorationConstant: DefaultExplorationConstant,
	}
}
