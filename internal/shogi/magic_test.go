package shogi

import "testing"

// TestSliderEnginesAgree is the round-trip law of spec.md §8: for every
// legal slider input the magic engine and the ray-subtraction (Qugiy)
// engine must return identical bitboards.
func TestSliderEnginesAgree(t *testing.T) {
	for sq := Square(0); sq < 81; sq++ {
		mask := rookMask(sq)
		for _, occ := range mask.Subsets() {
			want := RookAttacks(sq, occ)
			got := QugiyRookAttacks(sq, occ)
			if !want.Equal(got) {
				t.Fatalf("rook sq=%d occ=%v: magic=%v qugiy=%v", sq, occ, want, got)
			}
		}
	}
	for sq := Square(0); sq < 81; sq++ {
		mask := bishopMask(sq)
		for _, occ := range mask.Subsets() {
			want := BishopAttacks(sq, occ)
			got := QugiyBishopAttacks(sq, occ)
			if !want.Equal(got) {
				t.Fatalf("bishop sq=%d occ=%v: magic=%v qugiy=%v", sq, occ, want, got)
			}
		}
	}
}

func TestLanceAttacksAreForwardOnly(t *testing.T) {
	sq := NewSquare(File(4), Rank(4))
	att := LanceAttacks(Sente, sq, Empty)
	att.ForEach(func(to Square) {
		if to.Rank() >= sq.Rank() {
			t.Fatalf("Sente lance attack %v did not move toward rank 0", to)
		}
	})
	att = LanceAttacks(Gote, sq, Empty)
	att.ForEach(func(to Square) {
		if to.Rank() <= sq.Rank() {
			t.Fatalf("Gote lance attack %v did not move toward rank 8", to)
		}
	})
}
