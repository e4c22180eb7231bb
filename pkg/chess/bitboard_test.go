package chess

import "testing"

func TestPopCountAndLSB(t *testing.T) {
	var b Bitboard = 0
	b = Set(b, 3)
	b = Set(b, 10)
	b = Set(b, 63)
	if PopCount(b) != 3 {
		t.Fatalf("PopCount = %d, want 3", PopCount(b))
	}
	if lsb := LSB(b); lsb != 3 {
		t.Fatalf("LSB = %d, want 3", lsb)
	}
	sq, rest := PopLSB(b)
	if sq != 3 {
		t.Fatalf("PopLSB square = %d, want 3", sq)
	}
	if PopCount(rest) != 2 {
		t.Fatalf("PopLSB remainder popcount = %d, want 2", PopCount(rest))
	}
}

func TestRookAttacksOpenBoard(t *testing.T) {
	var sq = MakeSquare(FileD, Rank4)
	var attacks = RookAttacks(sq, 0)
	if PopCount(attacks) != 14 {
		t.Errorf("rook on d4 open board should attack 14 squares, got %d", PopCount(attacks))
	}
}

func TestRookAttacksBlocked(t *testing.T) {
	var sq = MakeSquare(FileD, Rank4)
	var blocker = SquareMask[MakeSquare(FileD, Rank6)]
	var attacks = RookAttacks(sq, blocker)
	if !Test(attacks, MakeSquare(FileD, Rank6)) {
		t.Error("rook should be able to capture the blocker")
	}
	if Test(attacks, MakeSquare(FileD, Rank7)) {
		t.Error("rook attacks should not extend past the blocker")
	}
}

func TestBishopAttacksCorners(t *testing.T) {
	var attacks = BishopAttacks(MakeSquare(FileA, Rank1), 0)
	if PopCount(attacks) != 7 {
		t.Errorf("bishop on a1 open board should attack 7 squares, got %d", PopCount(attacks))
	}
}

func TestKnightAttacksCentre(t *testing.T) {
	var sq = MakeSquare(FileD, Rank4)
	if PopCount(KnightAttacks[sq]) != 8 {
		t.Errorf("knight on d4 should attack 8 squares, got %d", PopCount(KnightAttacks[sq]))
	}
}

func TestKnightAttacksCorner(t *testing.T) {
	var sq = MakeSquare(FileA, Rank1)
	if PopCount(KnightAttacks[sq]) != 2 {
		t.Errorf("knight on a1 should attack 2 squares, got %d", PopCount(KnightAttacks[sq]))
	}
}

func TestBetweenMask(t *testing.T) {
	var a = MakeSquare(FileA, Rank1)
	var h = MakeSquare(FileH, Rank1)
	var between = Between(a, h)
	for f := FileB; f <= FileG; f++ {
		if !Test(between, MakeSquare(f, Rank1)) {
			t.Errorf("expected square %s between a1 and h1", SquareName(MakeSquare(f, Rank1)))
		}
	}
	if Test(between, a) || Test(between, h) {
		t.Error("Between must be exclusive of the endpoints")
	}
}

func TestPawnAttacks(t *testing.T) {
	var sq = MakeSquare(FileD, Rank4)
	var white = PawnAttacks(sq, White)
	if !Test(white, MakeSquare(FileC, Rank5)) || !Test(white, MakeSquare(FileE, Rank5)) {
		t.Error("white pawn on d4 should attack c5 and e5")
	}
	var black = PawnAttacks(sq, Black)
	if !Test(black, MakeSquare(FileC, Rank3)) || !Test(black, MakeSquare(FileE, Rank3)) {
		t.Error("black pawn on d4 should attack c3 and e3")
	}
}
