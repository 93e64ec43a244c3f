package shogi

import "testing"

func TestSubsetsEnumeratesEverySubsetOnce(t *testing.T) {
	mask := FileMask[3].Or(RankMask[5])
	want := 1 << mask.PopCount()

	subsets := mask.Subsets()
	if len(subsets) != want {
		t.Fatalf("got %d subsets, want %d", len(subsets), want)
	}

	seen := make(map[BitBoard]bool, len(subsets))
	for _, s := range subsets {
		if !s.And(mask).Equal(s) {
			t.Fatalf("subset %v is not contained in mask %v", s, mask)
		}
		if seen[s] {
			t.Fatalf("subset %v enumerated more than once", s)
		}
		seen[s] = true
	}
	if !seen[Empty] {
		t.Fatal("Subsets() never produced the empty subset")
	}
	if !seen[mask] {
		t.Fatal("Subsets() never produced the full mask")
	}
}

func TestPopLSBDrainsEveryBit(t *testing.T) {
	bb := FileMask[0].Or(FileMask[8])
	count := 0
	for bb.Any() {
		sq := bb.PopLSB()
		if !sq.IsValid() {
			t.Fatal("PopLSB returned an invalid square while bb was non-empty")
		}
		count++
	}
	if count != 18 {
		t.Fatalf("drained %d squares, want 18", count)
	}
}

func TestFileMaskRankMaskDisjointCoverage(t *testing.T) {
	var union BitBoard
	for f := File(0); f < 9; f++ {
		if union.And(FileMask[f]).Any() {
			t.Fatalf("file mask %d overlaps an earlier file mask", f)
		}
		union = union.Or(FileMask[f])
	}
	if !union.Equal(BoardMask) {
		t.Fatal("the nine file masks do not cover the board")
	}
	union = Empty
	for r := Rank(0); r < 9; r++ {
		if union.And(RankMask[r]).Any() {
			t.Fatalf("rank mask %d overlaps an earlier rank mask", r)
		}
		union = union.Or(RankMask[r])
	}
	if !union.Equal(BoardMask) {
		t.Fatal("the nine rank masks do not cover the board")
	}
}
