// Package perft counts legal-move tree leaves for internal/shogi positions,
// the standard correctness harness for a move generator. Grounded on the
// teacher's internal/board perft helper, generalized from a flat move list
// to the grouped-moves listener internal/shogi exposes.
package perft

import "github.com/hailam/shogi-movegen/internal/shogi"

// Count returns the number of leaf positions reachable from pos in exactly
// depth plies.
func Count(pos *shogi.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}
	var nodes int64
	pos.GenerateMoves(func(g shogi.GroupedMoves) bool {
		if depth == 1 {
			nodes += int64(g.Len())
			return false
		}
		g.Each(func(m shogi.Move) bool {
			undo := pos.Play(m)
			nodes += Count(pos, depth-1)
			pos.Unplay(undo)
			return false
		})
		return false
	})
	return nodes
}

// Divide returns, for each legal move at the root, the perft count of the
// subtree rooted at that move — useful for isolating a move-generator bug
// against a reference perft value.
func Divide(pos *shogi.Position, depth int) map[string]int64 {
	out := make(map[string]int64)
	if depth == 0 {
		return out
	}
	pos.GenerateMoves(func(g shogi.GroupedMoves) bool {
		g.Each(func(m shogi.Move) bool {
			undo := pos.Play(m)
			out[m.String()] = Count(pos, depth-1)
			pos.Unplay(undo)
			return false
		})
		return false
	})
	return out
}
