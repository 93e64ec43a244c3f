package shogi

import (
	"testing"

	"github.com/hailam/shogi-movegen/internal/sfen"
)

func countMoves(p *Position) int {
	total := 0
	p.GenerateMoves(func(g GroupedMoves) bool {
		total += g.Len()
		return false
	})
	return total
}

// TestInitialPositionMoveCount is spec.md §8 scenario 1: the side to move
// has exactly 30 legal moves from the initial position, no drops, no
// checks, move number 1.
func TestInitialPositionMoveCount(t *testing.T) {
	p := NewPosition()
	if p.MoveNumber != 1 {
		t.Fatalf("move number = %d, want 1", p.MoveNumber)
	}
	if p.IsInCheck() {
		t.Fatal("initial position must not be in check")
	}
	if got := countMoves(p); got != 30 {
		t.Fatalf("initial position has %d legal moves, want 30", got)
	}
	p.GenerateDrops(func(GroupedMoves) bool {
		t.Fatal("initial position has no pieces in hand, should emit no drops")
		return true
	})
}

// TestFourMoveOpeningSnapshot is spec.md §8 scenario 2.
func TestFourMoveOpeningSnapshot(t *testing.T) {
	p := NewPosition()
	for _, s := range []string{"2g2f", "8c8d", "2f2e", "8d8e"} {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatalf("parsing %q: %v", s, err)
		}
		if !p.IsLegalBoardMove(m) {
			t.Fatalf("move %q not accepted as legal", s)
		}
		p.Play(m)
	}
	want := "lnsgkgsnl/1r5b1/p1ppppppp/9/1p5P1/9/PPPPPPP1P/1B5R1/LNSGKGSNL b - 5"
	if got := sfen.Format(p); got != want {
		t.Fatalf("snapshot after four-move opening =\n%s\nwant\n%s", got, want)
	}
}

// TestSubsetMovegenAdditivity is spec.md §8 scenario 3: splitting the 81
// squares into any complementary pair and summing generate_board_moves_for
// over each half equals generate_board_moves.
func TestSubsetMovegenAdditivity(t *testing.T) {
	p, err := sfen.Parse("ln1g5/1r2S1k2/p2pppn2/2ps2p2/1p7/2P6/PPSPPPPLP/2G2K1pr/LN4G1b w BGSLPnp 62")
	if err != nil {
		t.Fatalf("parsing scenario snapshot: %v", err)
	}

	var want int
	p.GenerateBoardMoves(func(g GroupedMoves) bool {
		want += g.Len()
		return false
	})

	for _, split := range []BitBoard{FileMask[0], FileMask[0].Or(FileMask[1]).Or(FileMask[2]), RankMask[4], BoardMask} {
		a, b := split, split.Not()
		var got int
		p.GenerateBoardMovesFor(a, func(g GroupedMoves) bool { got += g.Len(); return false })
		p.GenerateBoardMovesFor(b, func(g GroupedMoves) bool { got += g.Len(); return false })
		if got != want {
			t.Fatalf("split %v: got %d board moves across the partition, want %d", split, got, want)
		}
	}
}

// TestDoubleCheckOnlyKingMoves is spec.md §8 scenario 5.
func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	p, err := sfen.Parse("ln2+r1r2/5s+Pkl/3+B1p1p1/p4B2p/2P6/P6PP/1PNP1P3/2G3SK1/L4G1NL w 2GSN3Ps3p 76")
	if err != nil {
		t.Fatalf("parsing scenario snapshot: %v", err)
	}
	if p.Checkers.PopCount() != 2 {
		t.Fatalf("checkers = %d, want 2", p.Checkers.PopCount())
	}
	if p.targetSquares().Any() {
		t.Fatal("double check target_squares must be empty")
	}
	if p.targetDrops().Any() {
		t.Fatal("double check target_drops must be empty")
	}
	p.GenerateDrops(func(GroupedMoves) bool {
		t.Fatal("no drops may be emitted under double check")
		return true
	})
	p.GenerateBoardMoves(func(g GroupedMoves) bool {
		if g.Kind != King {
			t.Fatalf("non-king mover %v emitted a move under double check", g.Kind)
		}
		return false
	})
}

// TestDropCornerCase is spec.md §8 scenario 4: exactly 85 legal moves, and
// the would-be single pawn-drop square is excluded for delivering an
// illegal pawn-drop mate.
func TestDropCornerCase(t *testing.T) {
	p, err := sfen.ParseMatingProblem("7lk/9/8S/9/9/9/9/7L1/8K b P 1")
	if err != nil {
		t.Fatalf("parsing scenario snapshot: %v", err)
	}
	if got := countMoves(p); got != 85 {
		t.Fatalf("got %d legal moves, want 85", got)
	}
	sawPawnDrop := false
	p.GenerateDrops(func(g GroupedMoves) bool {
		if g.Kind == Pawn {
			sawPawnDrop = g.To.Any()
		}
		return false
	})
	if !sawPawnDrop {
		t.Fatal("expected at least one legal pawn drop to remain")
	}
}

// TestCornerGoldDropMate is spec.md §8 scenario 6's shape: a tsume solved by
// a single drop. Gote's king sits in the corner with three neighbouring
// squares; the gold is dropped on one of them and its own attack pattern
// covers the other two; a Sente bishop several squares down the diagonal
// keeps the king from simply capturing the gold. With no other Gote piece
// on the board to interpose or recapture, the drop is mate in one.
func TestCornerGoldDropMate(t *testing.T) {
	p := NewEmptyPosition()
	p.Place(Piece{Kind: King, Color: Gote}, NewSquare(File(0), Rank(0)))
	p.Place(Piece{Kind: King, Color: Sente}, NewSquare(File(8), Rank(8)))
	p.Place(Piece{Kind: Bishop, Color: Sente}, NewSquare(File(3), Rank(4)))
	p.SetHand(Sente, Gold, 1)
	p.SetSideToMove(Sente)
	p.Finalize()
	if err := p.Validate(false); err != nil {
		t.Fatalf("constructed position failed validation: %v", err)
	}

	drop := NewDrop(Gold, NewSquare(File(0), Rank(1)))
	if !p.IsLegal(drop) {
		t.Fatalf("gold drop not recognized as legal in\n%s", p.String())
	}
	if _, err := p.PlayLegal(drop); err != nil {
		t.Fatalf("PlayLegal rejected the mating drop: %v", err)
	}
	if p.Status() != Won {
		t.Fatalf("status after the mating drop = %v, want Won (defender has no reply)", p.Status())
	}
}
