package chess

// Move is a packed move value, following the teacher's packed-int
// encoding: from | to<<6 | movingPiece<<12 | capturedPiece<<15 |
// promotion<<18 | moveType<<21. Widening to a moving/captured piece and
// explicit MoveType (rather than inferring capture from a non-empty
// captured field alone) lets EnPassant and Castling be told apart from
// Normal captures without touching the board, per spec.md §3's move
// encoding.
type Move uint32

const MoveNone Move = 0

type MoveType uint8

const (
	Normal MoveType = iota
	EnPassantMove
	CastlingMove
	PromotionMove
)

func NewMove(from, to int, moving, captured, promotion PieceType, mt MoveType) Move {
	return Move(uint32(from) |
		uint32(to)<<6 |
		uint32(moving)<<12 |
		uint32(captured)<<15 |
		uint32(promotion)<<18 |
		uint32(mt)<<21)
}

func (m Move) From() int             { return int(m & 63) }
func (m Move) To() int               { return int((m >> 6) & 63) }
func (m Move) MovingPiece() PieceType   { return PieceType((m >> 12) & 7) }
func (m Move) CapturedPiece() PieceType { return PieceType((m >> 15) & 7) }
func (m Move) Promotion() PieceType     { return PieceType((m >> 18) & 7) }
func (m Move) Type() MoveType           { return MoveType((m >> 21) & 7) }

func (m Move) IsCapture() bool    { return m.CapturedPiece() != NoPieceType }
func (m Move) IsPromotion() bool  { return m.Type() == PromotionMove }
func (m Move) IsCaptureOrPromotion() bool {
	return m.IsCapture() || m.IsPromotion()
}

// String renders the move in coordinate notation (e2e4, e7e8q, ...),
// matching the teacher's common.Move.String.
func (m Move) String() string {
	if m == MoveNone {
		return "0000"
	}
	var s = SquareName(m.From()) + SquareName(m.To())
	if m.IsPromotion() {
		s += string("nbrq"[m.Promotion()-Knight])
	}
	return s
}

var promotionPieces = [4]PieceType{Queen, Rook, Bishop, Knight}
