package shogi

// Zobrist hash keys for position hashing, built once at init() with a fixed
// seed so hashes are reproducible across runs — the same pattern as the
// teacher's zobrist.go, generalized from a 64-square/6-piece-type board to
// an 81-square/14-piece-kind board with hands.
var (
	zobristPiece      [2][14][81]uint64
	zobristHand       [2][7][]uint64 // zobristHand[c][kind] has HandMax[kind]+1 entries, index 0 unused
	zobristSideToMove uint64
)

func init() {
	initZobrist()
}

// prng is a xorshift64* generator, identical to the teacher's: fast,
// reproducible, and good enough for hash key generation (not for anything
// cryptographic).
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x5348_4F47_4920_4B45) // "SHOGI KE" in ASCII, read as hex

	for c := 0; c < 2; c++ {
		for k := 0; k < 14; k++ {
			for sq := 0; sq < 81; sq++ {
				zobristPiece[c][k][sq] = rng.next()
			}
		}
	}

	for c := 0; c < 2; c++ {
		for _, k := range HandKinds {
			n := HandMax[k]
			keys := make([]uint64, n+1)
			for i := 1; i <= n; i++ {
				keys[i] = rng.next()
			}
			zobristHand[c][k] = keys
		}
	}

	zobristSideToMove = rng.next()
}

// ZobristPiece returns the key for piece kind k belonging to color c sitting
// on sq.
func ZobristPiece(k PieceKind, c Color, sq Square) uint64 {
	return zobristPiece[c][k][sq]
}

// ZobristHandStep returns the key associated with the count-th copy of kind
// k in color c's hand (count must be 1..HandMax[k]). A hand holding exactly
// n copies of k contributes the XOR of ZobristHandStep(c, k, 1..n); since
// hand counts only ever change by one, Position maintains this
// incrementally by XORing in ZobristHandStep(c, k, n) when the count rises
// to n and XORing it back out when the count falls from n.
func ZobristHandStep(c Color, k PieceKind, count int) uint64 {
	return zobristHand[c][k][count]
}

// ZobristSideToMove is XORed into the hash whenever the side to move
// changes.
func ZobristSideToMove() uint64 {
	return zobristSideToMove
}
