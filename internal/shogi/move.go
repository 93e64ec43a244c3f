package shogi

import (
	"fmt"
	"strings"
)

// Move encodes either a board move or a drop in 32 bits:
// bits 0-6:   to square (0-80)
// bits 7-13:  from square (0-80), meaningless when IsDrop
// bit 14:     promote flag
// bit 15:     drop flag
// bits 16-19: drop piece kind (0-6, one of the seven droppable base kinds)
type Move uint32

const (
	moveToMask   = 0x7F
	moveFromMask = 0x7F
	fromShift    = 7
	promoteBit   = 1 << 14
	dropBit      = 1 << 15
	dropKindShift = 16
)

// NoMove represents an invalid or absent move.
const NoMove Move = 0

// NewBoardMove creates a move of the piece on from to to, optionally
// promoting on arrival.
func NewBoardMove(from, to Square, promote bool) Move {
	m := Move(to) | Move(from)<<fromShift
	if promote {
		m |= promoteBit
	}
	return m
}

// NewDrop creates a move dropping a piece of kind k onto to.
func NewDrop(k PieceKind, to Square) Move {
	return Move(to) | Move(NoSquare)<<fromShift | dropBit | Move(k)<<dropKindShift
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m & moveToMask)
}

// From returns the origin square, or NoSquare if m is a drop.
func (m Move) From() Square {
	return Square((m >> fromShift) & moveFromMask)
}

// IsPromotion reports whether the moving piece promotes on arrival.
func (m Move) IsPromotion() bool {
	return m&promoteBit != 0
}

// IsDrop reports whether m drops a piece from hand rather than moving one
// already on the board.
func (m Move) IsDrop() bool {
	return m&dropBit != 0
}

// DropKind returns the kind being dropped (only meaningful if IsDrop).
func (m Move) DropKind() PieceKind {
	return PieceKind((m >> dropKindShift) & 0xF)
}

// String renders m in file-digit/rank-letter notation: a board move is
// "<from><to>" with a trailing "+" if it promotes (e.g. "7g7f", "8h2b+");
// a drop is "<KIND>*<to>" (e.g. "P*5e").
func (m Move) String() string {
	if m == NoMove {
		return "resign"
	}
	if m.IsDrop() {
		return m.DropKind().Letter() + "*" + m.To().String()
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += "+"
	}
	return s
}

// MaxMoves bounds the legal moves reachable from any one shogi position —
// generous enough for the most drop-heavy positions that arise in practice.
const MaxMoves = 600

// MoveList is a fixed-size, allocation-free move buffer, the same shape as
// the teacher's MoveList.
type MoveList struct {
	moves [MaxMoves]Move
	count int
}

// Add appends m to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves currently held.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear empties the list without releasing its backing array.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains reports whether m appears in the list.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the accumulated moves as a slice sharing the list's array.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// PromotionStatus classifies whether a board move to a given square, for a
// given piece kind and color, may or must promote.
type PromotionStatus uint8

const (
	// Undecided marks a move where promotion is not a possibility in
	// context (e.g. the piece kind has no promoted form, or it is a drop).
	Undecided PromotionStatus = iota
	// MayPromote marks a move where the mover may choose either to
	// promote or to stay unpromoted — both continuations are legal.
	MayPromote
	// CannotPromote marks a move landing outside the promotion zone.
	CannotPromote
	// MustPromoteStatus marks a move that would otherwise strand the piece
	// with no legal moves on its next turn; declining promotion is illegal.
	MustPromoteStatus
)

// Status reports the promotion status of moving a piece of kind k, color c,
// from a square with CanPromote eligibility (already-in-zone or
// entering-zone) to sq.
func Status(k PieceKind, c Color, from, to Square) PromotionStatus {
	if !k.IsPromotable() {
		return Undecided
	}
	inZone := CanPromote(k, c, to) || CanPromote(k, c, from)
	if !inZone {
		return CannotPromote
	}
	if MustPromote(k, c, to) {
		return MustPromoteStatus
	}
	return MayPromote
}

// ParseMove parses a move string in the notation produced by Move.String.
// It performs only a syntactic parse and consults no position — legality
// is the move generator's job.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "resign" {
		return NoMove, fmt.Errorf("shogi: empty move string")
	}
	if idx := strings.IndexByte(s, '*'); idx >= 0 {
		k, err := parseKindLetter(s[:idx])
		if err != nil {
			return NoMove, err
		}
		to, err := parseSquareString(s[idx+1:])
		if err != nil {
			return NoMove, err
		}
		return NewDrop(k, to), nil
	}
	promote := false
	body := s
	if strings.HasSuffix(body, "+") {
		promote = true
		body = body[:len(body)-1]
	}
	if len(body) != 4 {
		return NoMove, fmt.Errorf("shogi: invalid move string %q", s)
	}
	from, err := parseSquareString(body[:2])
	if err != nil {
		return NoMove, err
	}
	to, err := parseSquareString(body[2:])
	if err != nil {
		return NoMove, err
	}
	return NewBoardMove(from, to, promote), nil
}

func parseKindLetter(s string) (PieceKind, error) {
	switch s {
	case "P":
		return Pawn, nil
	case "L":
		return Lance, nil
	case "N":
		return Knight, nil
	case "S":
		return Silver, nil
	case "B":
		return Bishop, nil
	case "R":
		return Rook, nil
	case "G":
		return Gold, nil
	default:
		return NoPieceKind, fmt.Errorf("shogi: invalid drop piece letter %q", s)
	}
}

func parseSquareString(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("shogi: invalid square %q", s)
	}
	file := int(s[0] - '0')
	if file < 1 || file > 9 {
		return NoSquare, fmt.Errorf("shogi: invalid file in %q", s)
	}
	rank := int(s[1] - 'a')
	if rank < 0 || rank > 8 {
		return NoSquare, fmt.Errorf("shogi: invalid rank in %q", s)
	}
	return NewSquare(File(9-file), Rank(rank)), nil
}
