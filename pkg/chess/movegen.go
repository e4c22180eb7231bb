package chess

// GeneratePseudoLegalMoves appends every pseudo-legal move for the side
// to move into buf (which is cleared first) and returns the resulting
// slice, per spec.md §4.3. Legality (king safety) is not checked here;
// callers must run the result through the legality filter.
func GeneratePseudoLegalMoves(p *Position, buf []Move) []Move {
	buf = buf[:0]
	var us = p.SideToMove
	var them = us.Opposite()
	var own = p.occ[us]
	var opp = p.occ[them]
	var all = p.all

	buf = genPawnMoves(p, us, own, opp, all, buf)
	buf = genKnightMoves(p, us, own, all, buf)
	buf = genSliderMoves(p, us, Bishop, own, all, buf)
	buf = genSliderMoves(p, us, Rook, own, all, buf)
	buf = genSliderMoves(p, us, Queen, own, all, buf)
	buf = genKingMoves(p, us, own, all, buf)
	buf = genCastlingMoves(p, us, all, buf)
	return buf
}

func genPawnMoves(p *Position, us Color, own, opp, all Bitboard, buf []Move) []Move {
	var pawns = p.bb[us][Pawn]
	var forward, startRank, promoRank int
	if us == White {
		forward, startRank, promoRank = 8, Rank2, Rank8
	} else {
		forward, startRank, promoRank = -8, Rank7, Rank1
	}

	for pawns != 0 {
		var from int
		from, pawns = PopLSB(pawns)
		var to = from + forward

		if !Test(all, to) {
			if Rank(to) == promoRank {
				buf = appendPromotions(buf, from, to, NoPieceType)
			} else {
				buf = append(buf, NewMove(from, to, Pawn, NoPieceType, NoPieceType, Normal))
				if Rank(from) == startRank {
					var to2 = to + forward
					if !Test(all, to2) {
						buf = append(buf, NewMove(from, to2, Pawn, NoPieceType, NoPieceType, Normal))
					}
				}
			}
		}

		for _, capOffset := range pawnCaptureOffsets(us, from) {
			var capTo = from + capOffset
			if Test(opp, capTo) {
				var captured = p.Mailbox[capTo].Type
				if Rank(capTo) == promoRank {
					buf = appendPromotions(buf, from, capTo, captured)
				} else {
					buf = append(buf, NewMove(from, capTo, Pawn, captured, NoPieceType, Normal))
				}
			} else if capTo == p.EPSquare && p.EPSquare != NoSquare {
				buf = append(buf, NewMove(from, capTo, Pawn, Pawn, NoPieceType, EnPassantMove))
			}
		}
	}
	return buf
}

// pawnCaptureOffsets returns the square deltas for a pawn's two
// diagonal captures, respecting board edges.
func pawnCaptureOffsets(us Color, from int) []int {
	var offsets []int
	var f = File(from)
	if us == White {
		if f > FileA {
			offsets = append(offsets, 7)
		}
		if f < FileH {
			offsets = append(offsets, 9)
		}
	} else {
		if f > FileA {
			offsets = append(offsets, -9)
		}
		if f < FileH {
			offsets = append(offsets, -7)
		}
	}
	return offsets
}

func appendPromotions(buf []Move, from, to int, captured PieceType) []Move {
	for _, promo := range promotionPieces {
		buf = append(buf, NewMove(from, to, Pawn, captured, promo, PromotionMove))
	}
	return buf
}

func genKnightMoves(p *Position, us Color, own, all Bitboard, buf []Move) []Move {
	var knights = p.bb[us][Knight]
	for knights != 0 {
		var from int
		from, knights = PopLSB(knights)
		var targets = KnightAttacks[from] &^ own
		for targets != 0 {
			var to int
			to, targets = PopLSB(targets)
			buf = append(buf, NewMove(from, to, Knight, p.Mailbox[to].Type, NoPieceType, Normal))
		}
	}
	return buf
}

func genKingMoves(p *Position, us Color, own, all Bitboard, buf []Move) []Move {
	var from = LSB(p.bb[us][King])
	var targets = KingAttacks[from] &^ own
	for targets != 0 {
		var to int
		to, targets = PopLSB(targets)
		buf = append(buf, NewMove(from, to, King, p.Mailbox[to].Type, NoPieceType, Normal))
	}
	return buf
}

func genSliderMoves(p *Position, us Color, pt PieceType, own, all Bitboard, buf []Move) []Move {
	var pieces = p.bb[us][pt]
	for pieces != 0 {
		var from int
		from, pieces = PopLSB(pieces)
		var attacks Bitboard
		switch pt {
		case Bishop:
			attacks = BishopAttacks(from, all)
		case Rook:
			attacks = RookAttacks(from, all)
		case Queen:
			attacks = QueenAttacks(from, all)
		}
		attacks &^= own
		for attacks != 0 {
			var to int
			to, attacks = PopLSB(attacks)
			buf = append(buf, NewMove(from, to, pt, p.Mailbox[to].Type, NoPieceType, Normal))
		}
	}
	return buf
}

var (
	f1g1Mask = Rank1Mask & (FileFMask | FileGMask)
	b1d1Mask = Rank1Mask & (FileBMask | FileCMask | FileDMask)
	f8g8Mask = Rank8Mask & (FileFMask | FileGMask)
	b8d8Mask = Rank8Mask & (FileBMask | FileCMask | FileDMask)
)

// genCastlingMoves emits kingside/queenside castling moves when rights
// are present, the path is empty, and the king does not start, pass
// through or land on an attacked square (spec.md §4.3).
func genCastlingMoves(p *Position, us Color, all Bitboard, buf []Move) []Move {
	var them = us.Opposite()
	if us == White {
		if p.CastleRights&WhiteKingSide != 0 && all&f1g1Mask == 0 &&
			!IsSquareAttacked(p, MakeSquare(FileE, Rank1), them) &&
			!IsSquareAttacked(p, MakeSquare(FileF, Rank1), them) &&
			!IsSquareAttacked(p, MakeSquare(FileG, Rank1), them) {
			buf = append(buf, NewMove(MakeSquare(FileE, Rank1), MakeSquare(FileG, Rank1), King, NoPieceType, NoPieceType, CastlingMove))
		}
		if p.CastleRights&WhiteQueenSide != 0 && all&b1d1Mask == 0 &&
			!IsSquareAttacked(p, MakeSquare(FileE, Rank1), them) &&
			!IsSquareAttacked(p, MakeSquare(FileD, Rank1), them) &&
			!IsSquareAttacked(p, MakeSquare(FileC, Rank1), them) {
			buf = append(buf, NewMove(MakeSquare(FileE, Rank1), MakeSquare(FileC, Rank1), King, NoPieceType, NoPieceType, CastlingMove))
		}
	} else {
		if p.CastleRights&BlackKingSide != 0 && all&f8g8Mask == 0 &&
			!IsSquareAttacked(p, MakeSquare(FileE, Rank8), them) &&
			!IsSquareAttacked(p, MakeSquare(FileF, Rank8), them) &&
			!IsSquareAttacked(p, MakeSquare(FileG, Rank8), them) {
			buf = append(buf, NewMove(MakeSquare(FileE, Rank8), MakeSquare(FileG, Rank8), King, NoPieceType, NoPieceType, CastlingMove))
		}
		if p.CastleRights&BlackQueenSide != 0 && all&b8d8Mask == 0 &&
			!IsSquareAttacked(p, MakeSquare(FileE, Rank8), them) &&
			!IsSquareAttacked(p, MakeSquare(FileD, Rank8), them) &&
			!IsSquareAttacked(p, MakeSquare(FileC, Rank8), them) {
			buf = append(buf, NewMove(MakeSquare(FileE, Rank8), MakeSquare(FileC, Rank8), King, NoPieceType, NoPieceType, CastlingMove))
		}
	}
	return buf
}

// GenerateCaptures appends only captures and queen promotions, used by
// quiescence search (spec.md §4.11).
func GenerateCaptures(p *Position, buf []Move) []Move {
	buf = buf[:0]
	var all [MaxMoves]Move
	var pseudo = GeneratePseudoLegalMoves(p, all[:0])
	for _, m := range pseudo {
		if m.IsCapture() {
			buf = append(buf, m)
		} else if m.IsPromotion() && m.Promotion() == Queen {
			buf = append(buf, m)
		}
	}
	return buf
}
