package shogi

import "math/bits"

// BitBoard is a set of squares backed by a 128-bit word, represented as a
// pair of uint64 halves the way math/bits.Mul64 returns a 128-bit product —
// only the low 81 bits (Lo's 64 bits plus Hi's low 17 bits) are meaningful.
// Every operation that could set a bit at position 81 or above masks it off.
type BitBoard struct {
	Lo uint64
	Hi uint64
}

const hiBoardMask = (uint64(1) << 17) - 1 // low 17 bits of Hi are in play

// Empty is the bitboard with no squares set.
var Empty = BitBoard{}

// SquareBB returns a bitboard with only sq set.
func SquareBB(sq Square) BitBoard {
	if sq < 64 {
		return BitBoard{Lo: 1 << uint(sq)}
	}
	return BitBoard{Hi: 1 << uint(sq-64)}
}

// Set returns b with sq added.
func (b BitBoard) Set(sq Square) BitBoard {
	return b.Or(SquareBB(sq))
}

// Clear returns b with sq removed.
func (b BitBoard) Clear(sq Square) BitBoard {
	return b.AndNot(SquareBB(sq))
}

// Has reports whether sq is a member of b.
func (b BitBoard) Has(sq Square) bool {
	if sq < 64 {
		return b.Lo&(1<<uint(sq)) != 0
	}
	return b.Hi&(1<<uint(sq-64)) != 0
}

// Or returns the union of two bitboards.
func (b BitBoard) Or(o BitBoard) BitBoard {
	return BitBoard{Lo: b.Lo | o.Lo, Hi: b.Hi | o.Hi}
}

// And returns the intersection of two bitboards.
func (b BitBoard) And(o BitBoard) BitBoard {
	return BitBoard{Lo: b.Lo & o.Lo, Hi: b.Hi & o.Hi}
}

// Xor returns the symmetric difference of two bitboards.
func (b BitBoard) Xor(o BitBoard) BitBoard {
	return BitBoard{Lo: b.Lo ^ o.Lo, Hi: b.Hi ^ o.Hi}
}

// AndNot returns b with every square in o removed (set difference).
func (b BitBoard) AndNot(o BitBoard) BitBoard {
	return BitBoard{Lo: b.Lo &^ o.Lo, Hi: b.Hi &^ o.Hi}
}

// Not returns the complement of b within the 81-square board.
func (b BitBoard) Not() BitBoard {
	return BitBoard{Lo: ^b.Lo, Hi: (^b.Hi) & hiBoardMask}
}

// Empty reports whether b has no set squares.
func (b BitBoard) Empty() bool {
	return b.Lo == 0 && b.Hi == 0
}

// Any reports whether b has at least one set square.
func (b BitBoard) Any() bool {
	return !b.Empty()
}

// Equal reports whether two bitboards contain the same squares.
func (b BitBoard) Equal(o BitBoard) bool {
	return b.Lo == o.Lo && b.Hi == o.Hi
}

// PopCount returns the number of set squares.
func (b BitBoard) PopCount() int {
	return bits.OnesCount64(b.Lo) + bits.OnesCount64(b.Hi)
}

// LSB returns the lowest-indexed set square, or NoSquare if b is empty.
func (b BitBoard) LSB() Square {
	if b.Lo != 0 {
		return Square(bits.TrailingZeros64(b.Lo))
	}
	if b.Hi != 0 {
		return Square(64 + bits.TrailingZeros64(b.Hi))
	}
	return NoSquare
}

// PopLSB clears and returns the lowest-indexed set square.
func (b *BitBoard) PopLSB() Square {
	sq := b.LSB()
	if sq != NoSquare {
		*b = b.Clear(sq)
	}
	return sq
}

// shiftRight128 performs a logical right shift of the 128-bit (hi,lo) pair
// by n bits, 0 <= n <= 80.
func shiftRight128(hi, lo uint64, n uint) (uint64, uint64) {
	switch {
	case n == 0:
		return hi, lo
	case n < 64:
		return hi >> n, (lo >> n) | (hi << (64 - n))
	default:
		return 0, hi >> (n - 64)
	}
}

// shiftLeft128 performs a logical left shift of the 128-bit (hi,lo) pair by
// n bits, 0 <= n <= 80.
func shiftLeft128(hi, lo uint64, n uint) (uint64, uint64) {
	switch {
	case n == 0:
		return hi, lo
	case n < 64:
		return (hi << n) | (lo >> (64 - n)), lo << n
	default:
		return lo << (n - 64), 0
	}
}

// shr shifts every bit toward lower indices by n and masks the board.
func (b BitBoard) shr(n uint) BitBoard {
	hi, lo := shiftRight128(b.Hi, b.Lo, n)
	return BitBoard{Lo: lo, Hi: hi & hiBoardMask}
}

// shl shifts every bit toward higher indices by n and masks the board.
func (b BitBoard) shl(n uint) BitBoard {
	hi, lo := shiftLeft128(b.Hi, b.Lo, n)
	return BitBoard{Lo: lo, Hi: hi & hiBoardMask}
}

// ShiftRank shifts the bitboard n ranks toward rank 0 (n in 1..8), dropping
// any occupant that would cross a file boundary.
func (b BitBoard) ShiftRank(n uint) BitBoard {
	return b.And(retainNorth[n]).shr(n)
}

// ShiftRankDown shifts the bitboard n ranks toward rank 8 (n in 1..8),
// dropping any occupant that would cross a file boundary.
func (b BitBoard) ShiftRankDown(n uint) BitBoard {
	return b.And(retainSouth[n]).shl(n)
}

// ShiftFileDown shifts the bitboard dx files toward file 0.
func (b BitBoard) ShiftFileDown(dx uint) BitBoard {
	return b.shr(9 * dx)
}

// ShiftFileUp shifts the bitboard dx files toward file 8.
func (b BitBoard) ShiftFileUp(dx uint) BitBoard {
	return b.shl(9 * dx)
}

// Rotate returns b rotated 180 degrees: square i maps to square 80-i.
func (b BitBoard) Rotate() BitBoard {
	var r BitBoard
	bb := b
	for bb.Any() {
		sq := bb.PopLSB()
		r = r.Set(sq.Flip())
	}
	return r
}

// Subsets returns every subset of mask exactly once, in strictly
// increasing order, via the carry-rippler identity
// sub = (sub - mask) & mask starting from sub = 0. The returned slice
// always ends with mask itself.
func (b BitBoard) Subsets() []BitBoard {
	var out []BitBoard
	sub := Empty
	for {
		out = append(out, sub)
		if sub.Equal(b) {
			break
		}
		sub = sub.subtractAndMask(b)
	}
	return out
}

// subtractAndMask computes (sub - mask) & mask treating (Hi,Lo) as one
// 128-bit integer, which is what the carry-rippler trick requires: the
// borrow from Lo's subtraction must propagate into Hi.
func (sub BitBoard) subtractAndMask(mask BitBoard) BitBoard {
	lo := sub.Lo - mask.Lo
	borrow := uint64(0)
	if sub.Lo < mask.Lo {
		borrow = 1
	}
	hi := sub.Hi - mask.Hi - borrow
	return BitBoard{Lo: lo, Hi: hi & hiBoardMask}.And(mask)
}

// ForEach calls f for every set square, in ascending index order.
func (b BitBoard) ForEach(f func(Square)) {
	for b.Any() {
		f(b.PopLSB())
	}
}

// Squares returns every set square in ascending order.
func (b BitBoard) Squares() []Square {
	out := make([]Square, 0, b.PopCount())
	b.ForEach(func(sq Square) { out = append(out, sq) })
	return out
}

func (b BitBoard) String() string {
	s := make([]byte, 0, 9*10)
	for r := Rank(0); r < 9; r++ {
		for f := File(0); f < 9; f++ {
			if b.Has(NewSquare(f, r)) {
				s = append(s, '1', ' ')
			} else {
				s = append(s, '.', ' ')
			}
		}
		s = append(s, '\n')
	}
	return string(s)
}

// FileMask returns the bitboard of every square on file f (nine adjacent
// bits, file-major layout makes file masks dense).
var FileMask [9]BitBoard

// RankMask returns the bitboard of every square on rank r (nine bits
// spaced nine apart, file-major layout makes rank masks sparse).
var RankMask [9]BitBoard

// retainNorth[n] keeps only squares whose rank >= n — the squares ShiftRank
// may safely carry without wrapping into the previous file.
// retainSouth[n] keeps only squares whose rank <= 8-n, symmetric for
// ShiftRankDown.
var (
	retainNorth [9]BitBoard
	retainSouth [9]BitBoard
)

// BoardMask covers all 81 squares.
var BoardMask BitBoard

func init() {
	for f := File(0); f < 9; f++ {
		var m BitBoard
		for r := Rank(0); r < 9; r++ {
			m = m.Set(NewSquare(f, r))
		}
		FileMask[f] = m
	}
	for r := Rank(0); r < 9; r++ {
		var m BitBoard
		for f := File(0); f < 9; f++ {
			m = m.Set(NewSquare(f, r))
		}
		RankMask[r] = m
	}
	for sq := Square(0); sq < 81; sq++ {
		BoardMask = BoardMask.Set(sq)
	}
	for n := uint(0); n < 9; n++ {
		var north, south BitBoard
		for f := File(0); f < 9; f++ {
			for r := Rank(0); r < 9; r++ {
				if uint(r) >= n {
					north = north.Set(NewSquare(f, r))
				}
				if uint(r) <= 8-n {
					south = south.Set(NewSquare(f, r))
				}
			}
		}
		retainNorth[n] = north
		retainSouth[n] = south
	}
}
