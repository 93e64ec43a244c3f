package sfen

import (
	"errors"
	"testing"

	"github.com/hailam/shogi-movegen/internal/shogi"
)

func TestStartSFENRoundTrips(t *testing.T) {
	pos, err := Parse(StartSFEN)
	if err != nil {
		t.Fatalf("parsing StartSFEN: %v", err)
	}
	if got := Format(pos); got != StartSFEN {
		t.Fatalf("Format(Parse(StartSFEN)) = %q, want %q", got, StartSFEN)
	}
}

func TestParseRoundTripsForMidgameSnapshot(t *testing.T) {
	const snap = "ln1g5/1r2S1k2/p2pppn2/2ps2p2/1p7/2P6/PPSPPPPLP/2G2K1pr/LN4G1b w BGSLPnp 62"
	pos, err := Parse(snap)
	if err != nil {
		t.Fatalf("parsing midgame snapshot: %v", err)
	}
	if got := Format(pos); got != snap {
		t.Fatalf("round trip mismatch:\ngot  %q\nwant %q", got, snap)
	}
}

// TestFourMoveOpeningSnapshot is spec.md §8 scenario 2.
func TestFourMoveOpeningSnapshot(t *testing.T) {
	pos, err := Parse(StartSFEN)
	if err != nil {
		t.Fatalf("parsing StartSFEN: %v", err)
	}
	for _, s := range []string{"2g2f", "8c8d", "2f2e", "8d8e"} {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatalf("parsing move %q: %v", s, err)
		}
		if !pos.IsLegal(m) {
			t.Fatalf("move %q not legal", s)
		}
		pos.Play(m)
	}
	want := "lnsgkgsnl/1r5b1/p1ppppppp/9/1p5P1/9/PPPPPPP1P/1B5R1/LNSGKGSNL b - 5"
	if got := Format(pos); got != want {
		t.Fatalf("got\n%s\nwant\n%s", got, want)
	}
}

// TestDropCornerCase is spec.md §8 scenario 4.
func TestDropCornerCase(t *testing.T) {
	pos, err := ParseMatingProblem("7lk/9/8S/9/9/9/9/7L1/8K b P 1")
	if err != nil {
		t.Fatalf("parsing mating-problem snapshot: %v", err)
	}
	total := 0
	pos.GenerateMoves(func(g shogi.GroupedMoves) bool {
		total += g.Len()
		return false
	})
	if total != 85 {
		t.Fatalf("got %d legal moves, want 85", total)
	}
}

// TestCornerGoldDropMate runs the same corner tsume shape exercised directly
// against internal/shogi, but through the text-snapshot and move-notation
// layer: parse the position, parse and play the mating drop, and check that
// the defender has no reply.
func TestCornerGoldDropMate(t *testing.T) {
	const snap = "8k/9/9/9/5B3/9/9/9/K8 b G 1"
	pos, err := Parse(snap)
	if err != nil {
		t.Fatalf("parsing corner mate snapshot: %v", err)
	}
	m, err := ParseMove("G*1b")
	if err != nil {
		t.Fatalf("parsing mating drop: %v", err)
	}
	if _, err := pos.PlayLegal(m); err != nil {
		t.Fatalf("PlayLegal rejected the mating drop in\n%s: %v", pos.String(), err)
	}
	if pos.Status() != shogi.Won {
		t.Fatalf("status after the mating drop = %v, want Won (defender has no reply)", pos.Status())
	}
}

func TestParseRejectsMalformedFields(t *testing.T) {
	cases := []struct {
		name string
		sfen string
		want error
	}{
		{"missing field", "lnsgkgsnl/9/9/9/9/9/9/9/LNSGKGSNL b -", ErrMissingField},
		{"too many fields", StartSFEN + " extra", ErrTooManyFields},
		{"bad side to move", "lnsgkgsnl/9/9/9/9/9/9/9/LNSGKGSNL x - 1", ErrInvalidSideToMove},
		{"bad move number", "lnsgkgsnl/9/9/9/9/9/9/9/LNSGKGSNL b - abc", ErrInvalidMoveNumber},
		{"bad hands", "lnsgkgsnl/9/9/9/9/9/9/9/LNSGKGSNL b Z 1", ErrInvalidHands},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.sfen)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Parse(%q) = %v, want %v", tc.sfen, err, tc.want)
			}
		})
	}
}

func TestMoveNotationRoundTrips(t *testing.T) {
	for _, s := range []string{"7g7f", "2c2b+", "P*5e"} {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatalf("parsing %q: %v", s, err)
		}
		if got := FormatMove(m); got != s {
			t.Fatalf("FormatMove(ParseMove(%q)) = %q", s, got)
		}
	}
}
