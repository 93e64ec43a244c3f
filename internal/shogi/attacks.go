package shogi

// Non-slider attack tables, built once at init() the way the teacher builds
// knightAttacks/kingAttacks/pawnAttacks: a loop over every square computing
// every pseudo-attack bitboard ahead of time. Sliders (bishop, rook, lance)
// are handled separately in magic.go/qugiy.go.

var (
	pawnAttacks   [2][81]BitBoard
	knightAttacks [2][81]BitBoard
	silverAttacks [2][81]BitBoard
	goldAttacks   [2][81]BitBoard
	kingAttacks   [81]BitBoard

	// forwardFile[c][sq] holds every square strictly ahead of sq on its own
	// file, from color c's point of view — used to restrict a rook's
	// file-slide to a lance's one-directional slide.
	forwardFile [2][81]BitBoard

	// betweenBB[a][b] holds the squares strictly between a and b if they are
	// aligned on a rank, file, or diagonal; otherwise empty.
	betweenBB [81][81]BitBoard
	// lineBB[a][b] holds the full rank/file/diagonal through a and b if they
	// are aligned, including both endpoints; otherwise empty.
	lineBB [81][81]BitBoard
)

// forward returns -1 for Sente (who advances toward rank 0) and +1 for Gote.
func forward(c Color) int {
	if c == Sente {
		return -1
	}
	return 1
}

func stepAttacks(sq Square, deltas [][2]int) BitBoard {
	var bb BitBoard
	for _, d := range deltas {
		if to := sq.Offset(d[0], d[1]); to.IsValid() {
			bb = bb.Set(to)
		}
	}
	return bb
}

func init() {
	kingDeltas := [][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}, {-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	for sq := Square(0); sq < 81; sq++ {
		kingAttacks[sq] = stepAttacks(sq, kingDeltas)
	}

	for _, c := range []Color{Sente, Gote} {
		fwd := forward(c)
		pawnDeltas := [][2]int{{0, fwd}}
		knightDeltas := [][2]int{{-1, 2 * fwd}, {1, 2 * fwd}}
		silverDeltas := [][2]int{{0, fwd}, {-1, fwd}, {1, fwd}, {-1, -fwd}, {1, -fwd}}
		goldDeltas := [][2]int{{0, fwd}, {0, -fwd}, {-1, 0}, {1, 0}, {-1, fwd}, {1, fwd}}

		for sq := Square(0); sq < 81; sq++ {
			pawnAttacks[c][sq] = stepAttacks(sq, pawnDeltas)
			knightAttacks[c][sq] = stepAttacks(sq, knightDeltas)
			silverAttacks[c][sq] = stepAttacks(sq, silverDeltas)
			goldAttacks[c][sq] = stepAttacks(sq, goldDeltas)

			var ahead BitBoard
			r := int(sq.Rank())
			for {
				r += fwd
				if r < 0 || r > 8 {
					break
				}
				ahead = ahead.Set(NewSquare(sq.File(), Rank(r)))
			}
			forwardFile[c][sq] = ahead
		}
	}

	initBetweenAndLine()
}

// rayDirections used to build betweenBB/lineBB: the eight directions a
// rook or bishop slides along.
var rayDirections = [8][2]int{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

func initBetweenAndLine() {
	for a := Square(0); a < 81; a++ {
		for _, d := range rayDirections {
			seg := Empty
			cur := a
			for {
				next := cur.Offset(d[0], d[1])
				if !next.IsValid() {
					break
				}
				betweenBB[a][next] = seg
				lineBB[a][next] = extendLine(a, d)
				seg = seg.Set(next)
				cur = next
			}
		}
	}
}

// extendLine returns every square on the infinite line through a in
// direction d and its opposite, intersected with the board.
func extendLine(a Square, d [2]int) BitBoard {
	line := SquareBB(a)
	for _, sign := range []int{1, -1} {
		cur := a
		for {
			next := cur.Offset(d[0]*sign, d[1]*sign)
			if !next.IsValid() {
				break
			}
			line = line.Set(next)
			cur = next
		}
	}
	return line
}

// Between returns the squares strictly between a and b along a shared rank,
// file, or diagonal. Empty if a and b are not aligned.
func Between(a, b Square) BitBoard {
	return betweenBB[a][b]
}

// Line returns the full rank, file, or diagonal through a and b, including
// both endpoints. Empty if a and b are not aligned.
func Line(a, b Square) BitBoard {
	return lineBB[a][b]
}

// Aligned reports whether a, b, and c all lie on a common rank, file, or
// diagonal.
func Aligned(a, b, c Square) bool {
	return lineBB[a][b].Has(c)
}

// StepAttacks returns the pseudo-attack bitboard for a non-sliding piece
// kind belonging to color at sq. Sliders are not handled here; see
// SliderAttacks.
func StepAttacks(k PieceKind, c Color, sq Square) BitBoard {
	switch k {
	case Pawn:
		return pawnAttacks[c][sq]
	case Knight:
		return knightAttacks[c][sq]
	case Silver:
		return silverAttacks[c][sq]
	case Gold, PromPawn, PromLance, PromKnight, PromSilver:
		return goldAttacks[c][sq]
	case King:
		return kingAttacks[sq]
	default:
		return Empty
	}
}

// ForwardFile returns every square strictly ahead of sq on its own file,
// from color c's perspective — the domain a lance or an unpromoted pawn's
// drop legality check cares about.
func ForwardFile(c Color, sq Square) BitBoard {
	return forwardFile[c][sq]
}
