package chess

import "testing"

func TestStartPositionFEN(t *testing.T) {
	var p = NewStartPosition()
	if got := p.FEN(); got != StartFEN {
		t.Errorf("NewStartPosition().FEN() = %q, want %q", got, StartFEN)
	}
}

func TestFENRoundTrip(t *testing.T) {
	var fens = []string{
		StartFEN,
		kiwipeteFEN,
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	}
	for _, fen := range fens {
		p, err := NewPositionFromFEN(fen)
		if err != nil {
			t.Fatalf("parse %q: %v", fen, err)
		}
		if got := p.FEN(); got != fen {
			t.Errorf("round trip: parse(%q).FEN() = %q", fen, got)
		}
	}
}

func TestMakeUnmakeRestoresState(t *testing.T) {
	positions := []string{StartFEN, kiwipeteFEN}
	for _, fen := range positions {
		p, err := NewPositionFromFEN(fen)
		if err != nil {
			t.Fatalf("parse %q: %v", fen, err)
		}
		var before = p.FEN()
		var beforeKey = p.Key
		var moves [MaxMoves]Move
		for _, m := range GenerateLegalMoves(p, moves[:0]) {
			p.MakeMove(m)
			p.UnmakeMove()
			if got := p.FEN(); got != before {
				t.Fatalf("make/unmake %s from %q left FEN %q, want %q", m, fen, got, before)
			}
			if p.Key != beforeKey {
				t.Fatalf("make/unmake %s from %q left key %d, want %d", m, fen, p.Key, beforeKey)
			}
		}
	}
}

func TestMakeMoveUpdatesKeyIncrementally(t *testing.T) {
	var p = NewStartPosition()
	var moves [MaxMoves]Move
	var legal = GenerateLegalMoves(p, moves[:0])
	if len(legal) == 0 {
		t.Fatal("start position has no legal moves")
	}
	p.MakeMove(legal[0])
	var incremental = p.Key
	var fromScratch = p.computeKeyFromScratch()
	if incremental != fromScratch {
		t.Errorf("incremental key %d != from-scratch key %d after %s", incremental, fromScratch, legal[0])
	}
}

func TestCastlingRightsClearOnRookCapture(t *testing.T) {
	// A black rook on h8 captures the white rook on h1, which should
	// strip WhiteKingSide even though White's king never moved.
	p, err := NewPositionFromFEN("4k2r/8/8/8/8/8/8/4K2R b K - 0 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var moves [MaxMoves]Move
	var capture Move
	for _, mv := range GenerateLegalMoves(p, moves[:0]) {
		if mv.From() == MakeSquare(FileH, Rank8) && mv.To() == MakeSquare(FileH, Rank1) {
			capture = mv
		}
	}
	if capture == MoveNone {
		t.Fatal("expected black rook to be able to capture on h1")
	}
	p.MakeMove(capture)
	if p.CastleRights&WhiteKingSide != 0 {
		t.Error("expected WhiteKingSide to clear once the h1 rook is captured")
	}
}

func TestEnPassantSquareClearsAfterOneMove(t *testing.T) {
	var p = NewStartPosition()
	var moves [MaxMoves]Move
	var doublePush Move
	for _, m := range GenerateLegalMoves(p, moves[:0]) {
		if m.MovingPiece() == Pawn && m.From()+16 == m.To() {
			doublePush = m
			break
		}
	}
	if doublePush == MoveNone {
		t.Fatal("expected a double pawn push from the start position")
	}
	p.MakeMove(doublePush)
	if p.EPSquare == NoSquare {
		t.Fatal("expected en-passant square to be set after a double push")
	}
	var reply [MaxMoves]Move
	var any = GenerateLegalMoves(p, reply[:0])
	if len(any) == 0 {
		t.Fatal("expected black to have replies")
	}
	p.MakeMove(any[0])
	if p.EPSquare != NoSquare {
		t.Error("expected en-passant square to clear after the following move")
	}
}
