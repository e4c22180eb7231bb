package chess

import "math/bits"

// Bitboard is a 64-bit set of squares, bit i set means square i is a member.
type Bitboard = uint64

const (
	FileAMask Bitboard = 0x0101010101010101 << iota
	FileBMask
	FileCMask
	FileDMask
	FileEMask
	FileFMask
	FileGMask
	FileHMask
)

const (
	Rank1Mask Bitboard = 0xFF << (8 * iota)
	Rank2Mask
	Rank3Mask
	Rank4Mask
	Rank5Mask
	Rank6Mask
	Rank7Mask
	Rank8Mask
)

var FileMask = [8]Bitboard{FileAMask, FileBMask, FileCMask, FileDMask, FileEMask, FileFMask, FileGMask, FileHMask}
var RankMask = [8]Bitboard{Rank1Mask, Rank2Mask, Rank3Mask, Rank4Mask, Rank5Mask, Rank6Mask, Rank7Mask, Rank8Mask}

// compass directions used to build the ray tables, in the order
// N, S, E, W, NE, NW, SE, SW.
const (
	DirN = iota
	DirS
	DirE
	DirW
	DirNE
	DirNW
	DirSE
	DirSW
)

var (
	SquareMask         [64]Bitboard
	KnightAttacks      [64]Bitboard
	KingAttacks        [64]Bitboard
	whitePawnAttacks   [64]Bitboard
	blackPawnAttacks   [64]Bitboard
	rays               [8][64]Bitboard
	betweenMask        [64][64]Bitboard
	diagonalDirs       = [4]int{DirNE, DirNW, DirSE, DirSW}
	orthogonalDirs     = [4]int{DirN, DirS, DirE, DirW}
	index64            [64]int
)

// Set returns b with square sq set.
func Set(b Bitboard, sq int) Bitboard { return b | SquareMask[sq] }

// Clear returns b with square sq cleared.
func Clear(b Bitboard, sq int) Bitboard { return b &^ SquareMask[sq] }

// Test reports whether square sq is a member of b.
func Test(b Bitboard, sq int) bool { return b&SquareMask[sq] != 0 }

// PopCount returns the number of set bits.
func PopCount(b Bitboard) int { return bits.OnesCount64(b) }

// LSB (bitscan-forward) returns the index of the least significant set bit.
// Undefined for b == 0.
func LSB(b Bitboard) int {
	return index64[((b&-b)*0x03f79d71b4cb0a89)>>58]
}

// PopLSB returns the index of the least significant set bit and the
// bitboard with that bit cleared.
func PopLSB(b Bitboard) (int, Bitboard) {
	var sq = LSB(b)
	return sq, b & (b - 1)
}

func MoreThanOne(b Bitboard) bool { return b != 0 && (b&(b-1)) != 0 }

func up(b Bitboard) Bitboard    { return b << 8 }
func down(b Bitboard) Bitboard  { return b >> 8 }
func right(b Bitboard) Bitboard { return (b &^ FileHMask) << 1 }
func left(b Bitboard) Bitboard  { return (b &^ FileAMask) >> 1 }

var dirShift = [8]func(Bitboard) Bitboard{
	DirN:  up,
	DirS:  down,
	DirE:  right,
	DirW:  left,
	DirNE: func(b Bitboard) Bitboard { return up(right(b)) },
	DirNW: func(b Bitboard) Bitboard { return up(left(b)) },
	DirSE: func(b Bitboard) Bitboard { return down(right(b)) },
	DirSW: func(b Bitboard) Bitboard { return down(left(b)) },
}

// PawnAttacks returns the squares a pawn of the given color on `from`
// attacks.
func PawnAttacks(from int, side Color) Bitboard {
	if side == White {
		return whitePawnAttacks[from]
	}
	return blackPawnAttacks[from]
}

// slidingAttacks walks each direction in dirs from sq until it hits a
// piece (inclusive of that square) or the board edge, per spec.md
// §4.1: sliding-piece attacks are ray intersections with the occupancy
// mask, no magic bitboards required.
func slidingAttacks(sq int, occ Bitboard, dirs [4]int) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		var ray = rays[d][sq]
		var blockers = ray & occ
		if blockers != 0 {
			var nearest int
			if d == DirN || d == DirE || d == DirNE || d == DirNW {
				nearest = LSB(blockers)
			} else {
				nearest = 63 - bits.LeadingZeros64(blockers)
			}
			attacks |= betweenOrRay(sq, nearest, d)
		} else {
			attacks |= ray
		}
	}
	return attacks
}

// betweenOrRay returns the portion of the ray from sq in direction d up
// to and including the blocking square `to`.
func betweenOrRay(sq, to, d int) Bitboard {
	return rays[d][sq] &^ rays[d][to] | SquareMask[to]
}

func BishopAttacks(sq int, occ Bitboard) Bitboard { return slidingAttacks(sq, occ, diagonalDirs) }
func RookAttacks(sq int, occ Bitboard) Bitboard   { return slidingAttacks(sq, occ, orthogonalDirs) }
func QueenAttacks(sq int, occ Bitboard) Bitboard {
	return BishopAttacks(sq, occ) | RookAttacks(sq, occ)
}

// Between returns the squares strictly between s1 and s2 on a shared
// rank, file or diagonal (empty bitboard if they don't share one).
func Between(s1, s2 int) Bitboard { return betweenMask[s1][s2] }

// RayFrom returns the full ray of squares from sq in direction d,
// exclusive of sq, up to the board edge.
func RayFrom(sq, d int) Bitboard { return rays[d][sq] }

func init() {
	for sq := 0; sq < 64; sq++ {
		var b = Bitboard(1) << uint(sq)
		SquareMask[sq] = b
		index64[((b&-b)*0x03f79d71b4cb0a89)>>58] = sq
	}

	for sq := 0; sq < 64; sq++ {
		var b = SquareMask[sq]
		whitePawnAttacks[sq] = up(left(b) | right(b))
		blackPawnAttacks[sq] = down(left(b) | right(b))

		KnightAttacks[sq] = right(up(right(b))) | up(up(right(b))) |
			up(up(left(b))) | left(up(left(b))) |
			left(down(left(b))) | down(down(left(b))) |
			down(down(right(b))) | right(down(right(b)))

		KingAttacks[sq] = up(right(b)) | up(b) | up(left(b)) | left(b) |
			down(left(b)) | down(b) | down(right(b)) | right(b)

		for d := 0; d < 8; d++ {
			var x = dirShift[d](b)
			var ray Bitboard
			for x != 0 {
				ray |= x
				x = dirShift[d](x)
			}
			rays[d][sq] = ray
		}
	}

	for s1 := 0; s1 < 64; s1++ {
		for s2 := 0; s2 < 64; s2++ {
			if QueenAttacks(s1, 0)&SquareMask[s2] == 0 {
				continue
			}
			for d := 0; d < 8; d++ {
				if rays[d][s1]&SquareMask[s2] != 0 {
					betweenMask[s1][s2] = rays[d][s1] &^ rays[d][s2] &^ SquareMask[s2]
				}
			}
		}
	}
}
