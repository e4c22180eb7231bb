package chess

import "testing"

func TestMoveEncodingRoundTrip(t *testing.T) {
	var m = NewMove(MakeSquare(FileE, Rank2), MakeSquare(FileE, Rank4), Pawn, NoPieceType, NoPieceType, Normal)
	if m.From() != MakeSquare(FileE, Rank2) {
		t.Errorf("From = %d, want e2", m.From())
	}
	if m.To() != MakeSquare(FileE, Rank4) {
		t.Errorf("To = %d, want e4", m.To())
	}
	if m.MovingPiece() != Pawn {
		t.Errorf("MovingPiece = %v, want Pawn", m.MovingPiece())
	}
	if m.IsCapture() || m.IsPromotion() {
		t.Error("plain push should be neither a capture nor a promotion")
	}
	if m.String() != "e2e4" {
		t.Errorf("String() = %q, want e2e4", m.String())
	}
}

func TestMovePromotionString(t *testing.T) {
	var m = NewMove(MakeSquare(FileE, Rank7), MakeSquare(FileE, Rank8), Pawn, NoPieceType, Queen, PromotionMove)
	if !m.IsPromotion() {
		t.Fatal("expected IsPromotion")
	}
	if m.String() != "e7e8q" {
		t.Errorf("String() = %q, want e7e8q", m.String())
	}
}

func TestMoveCaptureFlag(t *testing.T) {
	var m = NewMove(MakeSquare(FileD, Rank4), MakeSquare(FileE, Rank5), Bishop, Knight, NoPieceType, Normal)
	if !m.IsCapture() {
		t.Error("expected IsCapture to report true when a captured piece is set")
	}
	if m.CapturedPiece() != Knight {
		t.Errorf("CapturedPiece = %v, want Knight", m.CapturedPiece())
	}
}

func TestMoveNoneString(t *testing.T) {
	if MoveNone.String() != "0000" {
		t.Errorf("MoveNone.String() = %q, want 0000", MoveNone.String())
	}
}
