package chess

// Perft counts leaf nodes of the legal-move tree at exactly depth,
// per spec.md §4.6. It is the correctness oracle for move generation
// and reuses a per-depth move buffer to avoid per-node allocation,
// matching the teacher's common/perft_test.go recursive counter.
func Perft(p *Position, depth int) uint64 {
	var buffers = make([][MaxMoves]Move, depth)
	return perft(p, depth, buffers)
}

func perft(p *Position, depth int, buffers [][MaxMoves]Move) uint64 {
	var moves = GenerateLegalMoves(p, buffers[depth-1][:0])
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		p.MakeMove(m)
		nodes += perft(p, depth-1, buffers)
		p.UnmakeMove()
	}
	return nodes
}

// Divide returns, for each legal root move (keyed by its coordinate
// string), the perft count after that move, together with the total. Used as a debugging tool for isolating
// move generation bugs against the total (spec.md §4.6 usage note).
func Divide(p *Position, depth int) (map[string]uint64, uint64) {
	var result = make(map[string]uint64)
	var total uint64
	var buffers = make([][MaxMoves]Move, depth)
	var moves = GenerateLegalMoves(p, buffers[depth-1][:0])
	for _, m := range moves {
		p.MakeMove(m)
		var count uint64 = 1
		if depth > 1 {
			count = perft(p, depth-1, buffers)
		}
		p.UnmakeMove()
		result[m.String()] = count
		total += count
	}
	return result, total
}
