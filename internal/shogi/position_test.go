package shogi

import "testing"

// assertStructurallySound checks the §3 structural invariants: piece
// bitboards pairwise disjoint, occupancy the union of those bitboards,
// exactly one king per color, and PawnlessFiles consistent with a full
// recomputation.
func assertStructurallySound(t *testing.T, p *Position) {
	t.Helper()
	var seen [2]BitBoard
	for c := Sente; c <= Gote; c++ {
		for k := PieceKind(0); k < 14; k++ {
			bb := p.Pieces[c][k]
			if bb.And(seen[c]).Any() {
				t.Fatalf("color %v has overlapping piece bitboards", c)
			}
			seen[c] = seen[c].Or(bb)
		}
		if !seen[c].Equal(p.Occupied[c]) {
			t.Fatalf("color %v occupancy does not match the union of its piece bitboards", c)
		}
		if p.Pieces[c][King].PopCount() != 1 {
			t.Fatalf("color %v has %d kings, want 1", c, p.Pieces[c][King].PopCount())
		}
		if want := p.recomputePawnlessFiles(c); !want.Equal(p.PawnlessFiles[c]) {
			t.Fatalf("color %v PawnlessFiles stale: got %v want %v", c, p.PawnlessFiles[c], want)
		}
	}
	if !seen[Sente].Or(seen[Gote]).Equal(p.AllOccupied) {
		t.Fatal("AllOccupied does not match the union of both colors' occupancy")
	}
	if seen[Sente].And(seen[Gote]).Any() {
		t.Fatal("the two colors' occupancies overlap")
	}
}

// TestPlayUnplayRoundTrip walks the initial position through a short natural
// game, asserting invariants after every move and verifying that Unplay
// restores the exact prior hash, checkers, pins, and king squares.
func TestPlayUnplayRoundTrip(t *testing.T) {
	p := NewPosition()
	moves := []string{"2g2f", "8c8d", "2f2e", "8d8e", "7g7f", "3c3d", "6g6f"}

	type snapshot struct {
		hash     uint64
		checkers BitBoard
		pinned   [2]BitBoard
		kingSq   [2]Square
		pawnless [2]BitBoard
		side     Color
		moveNum  int
	}
	var history []snapshot
	var undos []UndoInfo

	for _, s := range moves {
		before := snapshot{p.Hash, p.Checkers, p.Pinned, p.KingSquare, p.PawnlessFiles, p.SideToMove, p.MoveNumber}
		history = append(history, before)

		m, err := ParseMove(s)
		if err != nil {
			t.Fatalf("parsing %q: %v", s, err)
		}
		if !p.IsLegal(m) {
			t.Fatalf("move %q not legal in\n%s", s, p.String())
		}
		undos = append(undos, p.Play(m))
		assertStructurallySound(t, p)

		if p.IsInCheck() {
			t.Fatalf("side to move is in check immediately after %q played", s)
		}
		wantCheckers := p.attackersTo(p.KingSquare[p.SideToMove], p.SideToMove.Other())
		if !wantCheckers.Equal(p.Checkers) {
			t.Fatalf("after %q: Checkers = %v, want recomputed %v", s, p.Checkers, wantCheckers)
		}
	}

	for i := len(moves) - 1; i >= 0; i-- {
		p.Unplay(undos[i])
		want := history[i]
		if p.Hash != want.hash {
			t.Fatalf("unplay %d: hash = %x, want %x", i, p.Hash, want.hash)
		}
		if !p.Checkers.Equal(want.checkers) {
			t.Fatalf("unplay %d: checkers not restored", i)
		}
		if p.Pinned != want.pinned {
			t.Fatalf("unplay %d: pinned not restored", i)
		}
		if p.KingSquare != want.kingSq {
			t.Fatalf("unplay %d: king squares not restored", i)
		}
		if p.PawnlessFiles != want.pawnless {
			t.Fatalf("unplay %d: pawnless files not restored", i)
		}
		if p.SideToMove != want.side || p.MoveNumber != want.moveNum {
			t.Fatalf("unplay %d: side/move-number not restored", i)
		}
		assertStructurallySound(t, p)
	}
}

// TestHandCountConservedAcrossCaptureAndPromotion plays a short sequence
// ending in a promoting pawn capture, checking the captor's hand gains
// exactly one of the captured piece's unpromoted base kind and the victim's
// hand is unaffected.
func TestHandCountConservedAcrossCaptureAndPromotion(t *testing.T) {
	p := NewPosition()
	for _, s := range []string{"2g2f", "8c8d", "2f2e", "8d8e", "2e2d", "8e8f", "2d2c+"} {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatalf("parsing %q: %v", s, err)
		}
		if !p.IsLegal(m) {
			t.Fatalf("move %q not legal in\n%s", s, p.String())
		}
		p.Play(m)
	}
	// 2d2c+ captured Gote's untouched pawn on that file and promoted; Sente
	// should hold exactly one pawn, Gote none.
	if got := p.Hands[Sente][Pawn]; got != 1 {
		t.Fatalf("Sente pawns in hand = %d, want 1", got)
	}
	if got := p.Hands[Gote][Pawn]; got != 0 {
		t.Fatalf("Gote pawns in hand = %d, want 0", got)
	}
	assertStructurallySound(t, p)
}

// TestSideJustMovedNotInCheck exercises the generator against an opening
// position: after every move it generates, the mover's own king must never
// be left in check (spec §3's core legality invariant).
func TestSideJustMovedNotInCheck(t *testing.T) {
	p := NewPosition()
	for _, s := range []string{"2g2f", "8c8d", "7g7f", "3c3d"} {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatalf("parsing %q: %v", s, err)
		}
		p.Play(m)
	}
	var checked int
	p.GenerateMoves(func(g GroupedMoves) bool {
		return g.Each(func(mv Move) bool {
			sim := p.Clone()
			sim.Play(mv)
			if sim.attackersTo(sim.KingSquare[p.SideToMove], sim.SideToMove).Any() {
				checked++
			}
			return false
		})
	})
	if checked != 0 {
		t.Fatalf("%d generated moves left the mover's own king in check", checked)
	}
}

// TestCloneIsIndependent guards against accidental aliasing: mutating a
// clone must never affect the original.
func TestCloneIsIndependent(t *testing.T) {
	p := NewPosition()
	clone := p.Clone()
	m, err := ParseMove("2g2f")
	if err != nil {
		t.Fatal(err)
	}
	clone.Play(m)
	if p.Equal(clone) {
		t.Fatal("original position changed hash after mutating its clone")
	}
	orig := p.PieceAt(NewSquare(File(7), Rank(6)))
	if orig.Kind != Pawn || orig.Color != Sente {
		t.Fatal("original position's piece at 2g was mutated by playing on its clone")
	}
}
