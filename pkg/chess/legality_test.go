package chess

import "testing"

func TestFoolsMateIsCheckmate(t *testing.T) {
	// 1. f3 e5 2. g4 Qh4#
	const fen = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	p, err := NewPositionFromFEN(fen)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !p.IsInCheck() {
		t.Fatal("expected white king to be in check")
	}
	if !IsCheckmate(p) {
		t.Error("expected fool's mate position to be checkmate")
	}
	if IsStalemate(p) {
		t.Error("checkmate must not also report stalemate")
	}
}

func TestScholarsMateIsCheckmate(t *testing.T) {
	// 1. e4 e5 2. Qh5 Nc6 3. Bc4 Nf6?? 4. Qxf7#
	const fen = "r1bqkb1r/pppp1Qpp/2n2n2/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 0 4"
	p, err := NewPositionFromFEN(fen)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !IsCheckmate(p) {
		t.Error("expected scholar's mate position to be checkmate")
	}
}

func TestStalemate(t *testing.T) {
	const fen = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
	p, err := NewPositionFromFEN(fen)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.IsInCheck() {
		t.Fatal("stalemate position must not be in check")
	}
	if !IsStalemate(p) {
		t.Error("expected position to be stalemate")
	}
	if IsCheckmate(p) {
		t.Error("stalemate must not also report checkmate")
	}
}

func TestInsufficientMaterialKingsOnly(t *testing.T) {
	p, err := NewPositionFromFEN("8/8/4k3/8/8/3K4/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !IsInsufficientMaterial(p) {
		t.Error("expected K-vs-K to be insufficient material")
	}
}

func TestInsufficientMaterialKingAndMinor(t *testing.T) {
	for _, fen := range []string{
		"8/8/4k3/8/8/3KN3/8/8 w - - 0 1", // K+N vs K
		"8/8/4k3/8/8/3KB3/8/8 w - - 0 1", // K+B vs K
	} {
		p, err := NewPositionFromFEN(fen)
		if err != nil {
			t.Fatalf("parse %q: %v", fen, err)
		}
		if !IsInsufficientMaterial(p) {
			t.Errorf("expected %q to be insufficient material", fen)
		}
	}
}

func TestInsufficientMaterialSameColorBishops(t *testing.T) {
	// White bishop on c1 (dark square), black bishop on f8 (dark square).
	p, err := NewPositionFromFEN("5b1k/8/8/8/8/8/8/2B1K3 w - - 0 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !IsInsufficientMaterial(p) {
		t.Error("expected same-color-bishop K+B vs K+B to be insufficient material")
	}
}

func TestSufficientMaterialOppositeColorBishops(t *testing.T) {
	// White bishop on c1 (dark), black bishop on g8 (light).
	p, err := NewPositionFromFEN("6bk/8/8/8/8/8/8/2B1K3 w - - 0 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if IsInsufficientMaterial(p) {
		t.Error("opposite-color-bishop endings are not insufficient material")
	}
}

func TestSufficientMaterialWithRook(t *testing.T) {
	p, err := NewPositionFromFEN("8/8/4k3/8/8/3KR3/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if IsInsufficientMaterial(p) {
		t.Error("K+R vs K is not insufficient material")
	}
}

func TestPinnedSliderCannotLeaveRay(t *testing.T) {
	// White rook on e2 pinned to the king on e1 by the black rook on e8;
	// it may still slide along the e-file but not step off it.
	p, err := NewPositionFromFEN("4r1k1/8/8/8/8/8/4R3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var pins = ComputePins(p, White)
	var rookSq = MakeSquare(FileE, Rank2)
	if !Test(pins.Pinned, rookSq) {
		t.Fatal("expected the e2 rook to be pinned")
	}
	var moves [MaxMoves]Move
	for _, m := range GenerateLegalMoves(p, moves[:0]) {
		if m.From() != rookSq {
			continue
		}
		if File(m.To()) != FileE {
			t.Errorf("pinned rook should stay on the e-file, got move to %s", SquareName(m.To()))
		}
	}
}

func TestPinnedKnightHasNoLegalMoves(t *testing.T) {
	p, err := NewPositionFromFEN("4r1k1/8/8/8/8/8/4N3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var pins = ComputePins(p, White)
	var knightSq = MakeSquare(FileE, Rank2)
	if !Test(pins.Pinned, knightSq) {
		t.Fatal("expected the e2 knight to be pinned")
	}
	var moves [MaxMoves]Move
	for _, m := range GenerateLegalMoves(p, moves[:0]) {
		if m.From() == knightSq {
			t.Errorf("pinned knight must have no legal moves, found %s", m)
		}
	}
}

func TestCastlingBlockedThroughAttackedSquare(t *testing.T) {
	// Black rook on f6 attacks f1, so white cannot castle kingside even
	// though the path is empty and the king isn't currently in check.
	p, err := NewPositionFromFEN("4k3/8/5r2/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.IsInCheck() {
		t.Fatal("white should not be in check in this position")
	}
	var moves [MaxMoves]Move
	for _, m := range GenerateLegalMoves(p, moves[:0]) {
		if m.Type() == CastlingMove {
			t.Errorf("did not expect castling to be legal while f1 is attacked, got %s", m)
		}
	}
}

func TestSquareAttackedByRook(t *testing.T) {
	p, err := NewPositionFromFEN("8/8/8/3k4/8/8/8/3RK3 w - - 0 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !IsSquareAttacked(p, MakeSquare(FileD, Rank5), White) {
		t.Error("expected the rook on d1 to attack d5")
	}
	if IsSquareAttacked(p, MakeSquare(FileA, Rank8), White) {
		t.Error("did not expect a8 to be attacked")
	}
}
