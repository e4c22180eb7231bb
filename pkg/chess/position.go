package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// undoRecord captures everything MakeMove mutates so UnmakeMove can
// reverse it exactly, per spec.md §3's undo-record data model.
type undoRecord struct {
	move           Move
	captured       Piece
	capturedSquare int
	castleRights   int
	epSquare       int
	halfmoveClock  int
	key            uint64
}

// Position owns the mailbox, the twelve piece bitboards (folded into a
// [2][7]Bitboard array indexed by color and PieceType), castling
// rights, side to move, en-passant target, move counters and the undo
// stack. See spec.md §3 for the full invariant list.
type Position struct {
	Mailbox        [64]Piece
	bb             [2][7]Bitboard
	occ            [2]Bitboard
	all            Bitboard
	SideToMove     Color
	CastleRights   int
	EPSquare       int
	HalfmoveClock  int
	FullmoveNumber int
	Key            uint64

	history []undoRecord
}

// NewStartPosition returns a position set up for a new game.
func NewStartPosition() *Position {
	var p, err = NewPositionFromFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return p
}

// PieceBB returns the bitboard for one (color, pieceType) pair.
func (p *Position) PieceBB(c Color, pt PieceType) Bitboard { return p.bb[c][pt] }

// Occupied returns all squares occupied by the given color.
func (p *Position) Occupied(c Color) Bitboard { return p.occ[c] }

// AllOccupied returns all occupied squares, regardless of color.
func (p *Position) AllOccupied() Bitboard { return p.all }

// KingSquare returns the square of the king of the given color.
func (p *Position) KingSquare(c Color) int { return LSB(p.bb[c][King]) }

func (p *Position) placePiece(pt PieceType, c Color, sq int) {
	p.Mailbox[sq] = Piece{Color: c, Type: pt}
	p.bb[c][pt] = Set(p.bb[c][pt], sq)
	p.occ[c] = Set(p.occ[c], sq)
	p.all = Set(p.all, sq)
	p.Key ^= pieceSquareKey(pt, c, sq)
}

func (p *Position) removePiece(sq int) {
	var piece = p.Mailbox[sq]
	p.Mailbox[sq] = EmptyPiece
	p.bb[piece.Color][piece.Type] = Clear(p.bb[piece.Color][piece.Type], sq)
	p.occ[piece.Color] = Clear(p.occ[piece.Color], sq)
	p.all = Clear(p.all, sq)
	p.Key ^= pieceSquareKey(piece.Type, piece.Color, sq)
}

// movePieceOnBoard relocates the piece on `from` to `to`, assuming `to`
// is empty (captures must be removed first by the caller).
func (p *Position) movePieceOnBoard(from, to int) {
	var piece = p.Mailbox[from]
	p.removePiece(from)
	p.placePiece(piece.Type, piece.Color, to)
}

// Clone returns a deep, independent copy suitable for search recursion
// or an MCTS worker's local tree, per spec.md §3's lifecycle note.
func (p *Position) Clone() *Position {
	var c = *p
	c.history = append([]undoRecord(nil), p.history...)
	return &c
}

var castleRightsMask [64]int

func init() {
	for i := range castleRightsMask {
		castleRightsMask[i] = AllCastleRights
	}
	castleRightsMask[MakeSquare(FileA, Rank1)] &^= WhiteQueenSide
	castleRightsMask[MakeSquare(FileE, Rank1)] &^= WhiteQueenSide | WhiteKingSide
	castleRightsMask[MakeSquare(FileH, Rank1)] &^= WhiteKingSide
	castleRightsMask[MakeSquare(FileA, Rank8)] &^= BlackQueenSide
	castleRightsMask[MakeSquare(FileE, Rank8)] &^= BlackQueenSide | BlackKingSide
	castleRightsMask[MakeSquare(FileH, Rank8)] &^= BlackKingSide
}

// MakeMove applies m in place, per spec.md §4.2. The caller must only
// ever pass a legal move (see legality.go); behaviour for an illegal
// move is undefined.
func (p *Position) MakeMove(m Move) {
	var from = m.From()
	var to = m.To()
	var moving = m.MovingPiece()
	var us = p.SideToMove
	var them = us.Opposite()

	var rec = undoRecord{
		move:          m,
		castleRights:  p.CastleRights,
		epSquare:      p.EPSquare,
		halfmoveClock: p.HalfmoveClock,
		key:           p.Key,
	}

	switch m.Type() {
	case EnPassantMove:
		var capSq = to - 8
		if us == Black {
			capSq = to + 8
		}
		rec.captured = p.Mailbox[capSq]
		rec.capturedSquare = capSq
		p.removePiece(capSq)
		p.movePieceOnBoard(from, to)
	case CastlingMove:
		p.movePieceOnBoard(from, to)
		var rookFrom, rookTo int
		switch to {
		case MakeSquare(FileG, Rank1):
			rookFrom, rookTo = MakeSquare(FileH, Rank1), MakeSquare(FileF, Rank1)
		case MakeSquare(FileC, Rank1):
			rookFrom, rookTo = MakeSquare(FileA, Rank1), MakeSquare(FileD, Rank1)
		case MakeSquare(FileG, Rank8):
			rookFrom, rookTo = MakeSquare(FileH, Rank8), MakeSquare(FileF, Rank8)
		case MakeSquare(FileC, Rank8):
			rookFrom, rookTo = MakeSquare(FileA, Rank8), MakeSquare(FileD, Rank8)
		}
		p.movePieceOnBoard(rookFrom, rookTo)
	case PromotionMove:
		if !p.Mailbox[to].IsEmpty() {
			rec.captured = p.Mailbox[to]
			rec.capturedSquare = to
			p.removePiece(to)
		}
		p.removePiece(from)
		p.placePiece(m.Promotion(), us, to)
	default: // Normal
		if !p.Mailbox[to].IsEmpty() {
			rec.captured = p.Mailbox[to]
			rec.capturedSquare = to
			p.removePiece(to)
		}
		p.movePieceOnBoard(from, to)
	}

	// Castling rights: any move touching a1/h1/a8/h8 or a king move
	// clears the corresponding flags, per spec.md §4.2 step 6.
	var newRights = p.CastleRights & castleRightsMask[from] & castleRightsMask[to]
	p.Key ^= castlingKeys[p.CastleRights] ^ castlingKeys[newRights]
	p.CastleRights = newRights

	// En-passant target: set iff this move is a pawn double push.
	if p.EPSquare != NoSquare {
		p.Key ^= enPassantKeys[File(p.EPSquare)]
	}
	p.EPSquare = NoSquare
	if moving == Pawn {
		var diff = to - from
		if diff == 16 || diff == -16 {
			p.EPSquare = (from + to) / 2
			p.Key ^= enPassantKeys[File(p.EPSquare)]
		}
	}

	// Halfmove clock: reset on pawn move or capture.
	if moving == Pawn || rec.captured.Type != NoPieceType {
		p.HalfmoveClock = 0
	} else {
		p.HalfmoveClock++
	}

	if us == Black {
		p.FullmoveNumber++
	}
	p.SideToMove = them
	p.Key ^= sideToMoveKey

	p.history = append(p.history, rec)
}

// UnmakeMove reverses the most recent MakeMove. Calling it with an
// empty history is a programming error (spec.md §7).
func (p *Position) UnmakeMove() {
	if len(p.history) == 0 {
		panic("chess: UnmakeMove called with empty history")
	}
	var rec = p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]

	var m = rec.move
	var from = m.From()
	var to = m.To()

	p.SideToMove = p.SideToMove.Opposite()
	var us = p.SideToMove

	switch m.Type() {
	case EnPassantMove:
		p.movePieceOnBoardNoKey(to, from)
		if rec.captured.Type != NoPieceType {
			p.placePieceNoKey(rec.captured.Type, rec.captured.Color, rec.capturedSquare)
		}
	case CastlingMove:
		var rookFrom, rookTo int
		switch to {
		case MakeSquare(FileG, Rank1):
			rookFrom, rookTo = MakeSquare(FileH, Rank1), MakeSquare(FileF, Rank1)
		case MakeSquare(FileC, Rank1):
			rookFrom, rookTo = MakeSquare(FileA, Rank1), MakeSquare(FileD, Rank1)
		case MakeSquare(FileG, Rank8):
			rookFrom, rookTo = MakeSquare(FileH, Rank8), MakeSquare(FileF, Rank8)
		case MakeSquare(FileC, Rank8):
			rookFrom, rookTo = MakeSquare(FileA, Rank8), MakeSquare(FileD, Rank8)
		}
		p.movePieceOnBoardNoKey(rookTo, rookFrom)
		p.movePieceOnBoardNoKey(to, from)
	case PromotionMove:
		p.removePieceNoKey(to)
		p.placePieceNoKey(Pawn, us, from)
		if rec.captured.Type != NoPieceType {
			p.placePieceNoKey(rec.captured.Type, rec.captured.Color, rec.capturedSquare)
		}
	default: // Normal
		p.movePieceOnBoardNoKey(to, from)
		if rec.captured.Type != NoPieceType {
			p.placePieceNoKey(rec.captured.Type, rec.captured.Color, rec.capturedSquare)
		}
	}

	p.CastleRights = rec.castleRights
	p.EPSquare = rec.epSquare
	p.HalfmoveClock = rec.halfmoveClock
	if us == Black {
		p.FullmoveNumber--
	}
	p.Key = rec.key
}

// The NoKey variants mutate mailbox/bitboards without touching Key,
// since UnmakeMove restores Key directly from the undo record rather
// than reversing each XOR (spec.md §4.2's "reverse each step" is
// satisfied board-wise; the key is simply restored, which is exact and
// cheaper).
func (p *Position) placePieceNoKey(pt PieceType, c Color, sq int) {
	p.Mailbox[sq] = Piece{Color: c, Type: pt}
	p.bb[c][pt] = Set(p.bb[c][pt], sq)
	p.occ[c] = Set(p.occ[c], sq)
	p.all = Set(p.all, sq)
}

func (p *Position) removePieceNoKey(sq int) {
	var piece = p.Mailbox[sq]
	p.Mailbox[sq] = EmptyPiece
	p.bb[piece.Color][piece.Type] = Clear(p.bb[piece.Color][piece.Type], sq)
	p.occ[piece.Color] = Clear(p.occ[piece.Color], sq)
	p.all = Clear(p.all, sq)
}

func (p *Position) movePieceOnBoardNoKey(from, to int) {
	var piece = p.Mailbox[from]
	p.removePieceNoKey(from)
	p.placePieceNoKey(piece.Type, piece.Color, to)
}

// MakeNullMove flips the side to move and clears en passant without
// moving any piece, used by Negamax's null-move pruning (spec.md §4.10
// step 4). The returned closure restores the position exactly.
func (p *Position) MakeNullMove() func() {
	var prevEP = p.EPSquare
	var prevKey = p.Key
	if p.EPSquare != NoSquare {
		p.Key ^= enPassantKeys[File(p.EPSquare)]
	}
	p.EPSquare = NoSquare
	p.SideToMove = p.SideToMove.Opposite()
	p.Key ^= sideToMoveKey
	return func() {
		p.SideToMove = p.SideToMove.Opposite()
		p.EPSquare = prevEP
		p.Key = prevKey
	}
}

// NewPositionFromFEN parses standard Forsyth-Edwards Notation.
func NewPositionFromFEN(fen string) (*Position, error) {
	var fields = strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("chess: invalid FEN %q: need at least 4 fields", fen)
	}

	var p = &Position{EPSquare: NoSquare}

	var ranks = strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("chess: invalid FEN %q: expected 8 ranks", fen)
	}
	for i, rankStr := range ranks {
		var rank = 7 - i
		var file = 0
		for _, ch := range []byte(rankStr) {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			var piece = pieceFromFEN(ch)
			if piece.IsEmpty() {
				return nil, fmt.Errorf("chess: invalid FEN %q: bad piece char %q", fen, ch)
			}
			if file > 7 {
				return nil, fmt.Errorf("chess: invalid FEN %q: rank %d overflows", fen, rank+1)
			}
			p.placePiece(piece.Type, piece.Color, MakeSquare(file, rank))
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("chess: invalid FEN %q: rank %d has %d files", fen, rank+1, file)
		}
	}

	switch fields[1] {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
	default:
		return nil, fmt.Errorf("chess: invalid FEN %q: bad side to move %q", fen, fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range []byte(fields[2]) {
			switch ch {
			case 'K':
				p.CastleRights |= WhiteKingSide
			case 'Q':
				p.CastleRights |= WhiteQueenSide
			case 'k':
				p.CastleRights |= BlackKingSide
			case 'q':
				p.CastleRights |= BlackQueenSide
			default:
				return nil, fmt.Errorf("chess: invalid FEN %q: bad castling char %q", fen, ch)
			}
		}
	}

	p.EPSquare = ParseSquare(fields[3])

	p.HalfmoveClock = 0
	p.FullmoveNumber = 1
	if len(fields) > 4 {
		if v, err := strconv.Atoi(fields[4]); err == nil {
			p.HalfmoveClock = v
		}
	}
	if len(fields) > 5 {
		if v, err := strconv.Atoi(fields[5]); err == nil {
			p.FullmoveNumber = v
		}
	}

	if PopCount(p.bb[White][King]) != 1 || PopCount(p.bb[Black][King]) != 1 {
		return nil, fmt.Errorf("chess: invalid FEN %q: each side must have exactly one king", fen)
	}

	p.Key = p.computeKeyFromScratch()
	return p, nil
}

func (p *Position) computeKeyFromScratch() uint64 {
	var key uint64
	for sq := 0; sq < 64; sq++ {
		var piece = p.Mailbox[sq]
		if !piece.IsEmpty() {
			key ^= pieceSquareKey(piece.Type, piece.Color, sq)
		}
	}
	if p.SideToMove == White {
		key ^= sideToMoveKey
	}
	key ^= castlingKeys[p.CastleRights]
	if p.EPSquare != NoSquare {
		key ^= enPassantKeys[File(p.EPSquare)]
	}
	return key
}

// FEN serialises the position to Forsyth-Edwards Notation. It is the
// exact inverse of NewPositionFromFEN (spec.md §6).
func (p *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		var empty = 0
		for file := 0; file < 8; file++ {
			var piece = p.Mailbox[MakeSquare(file, rank)]
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(piece.FEN())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if p.SideToMove == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if p.CastleRights == 0 {
		sb.WriteByte('-')
	} else {
		if p.CastleRights&WhiteKingSide != 0 {
			sb.WriteByte('K')
		}
		if p.CastleRights&WhiteQueenSide != 0 {
			sb.WriteByte('Q')
		}
		if p.CastleRights&BlackKingSide != 0 {
			sb.WriteByte('k')
		}
		if p.CastleRights&BlackQueenSide != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(SquareName(p.EPSquare))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullmoveNumber))

	return sb.String()
}

// String implements fmt.Stringer by returning the position's FEN, the
// same debugging convention the teacher uses for its position type.
func (p *Position) String() string {
	return p.FEN()
}
