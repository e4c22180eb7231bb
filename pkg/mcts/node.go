package mcts

import "github.com/kechprog/chess-engine/pkg/chess"

// handle indexes into an arena; -1 means "no node". Grounded on
// spec.md §9's "arena allocation indexed by integer handles (one
// arena per worker thread) rather than owning-pointer cycles" note.
type handle int32

const noHandle handle = -1

type node struct {
	parent   handle
	move     chess.Move // move that produced this node from its parent
	children []handle
	untried  []chess.Move
	visits   int
	wins     float64
	terminal bool
}

// arena owns every node created by a single worker's search, so a
// worker's whole tree is freed in one shot when the worker returns
// rather than via per-node garbage collection of a pointer graph.
type arena struct {
	nodes []node
}

func newArena(capacityHint int) *arena {
	return &arena{nodes: make([]node, 0, capacityHint)}
}

func (a *arena) alloc(parent handle, move chess.Move, untried []chess.Move) handle {
	a.nodes = append(a.nodes, node{
		parent:  parent,
		move:    move,
		untried: untried,
	})
	return handle(len(a.nodes) - 1)
}

func (a *arena) at(h handle) *node { return &a.nodes[h] }

func (a *arena) fullyExpanded(h handle) bool {
	return len(a.at(h).untried) == 0
}
