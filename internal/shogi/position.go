package shogi

import (
	"fmt"
	"strings"
)

// Position represents a complete shogi position: board, both hands, side to
// move, and the derived state (occupancy, king squares, hash, checkers,
// pinned pieces) kept in sync with every mutation. Grounded on the
// teacher's Position: per-color-per-kind bitboards plus cached occupancy
// and king squares, generalized from 6 piece types to 14 and from castling
// rights/en passant to hands.
type Position struct {
	Pieces [2][14]BitBoard

	Occupied    [2]BitBoard
	AllOccupied BitBoard

	Hands [2][7]int // indexed by base PieceKind 0..6 (Pawn..Gold)

	SideToMove Color
	MoveNumber int

	Hash uint64

	KingSquare [2]Square
	Checkers   BitBoard
	Pinned     [2]BitBoard

	// PawnlessFiles[c] has all nine squares set of every file where c has
	// no pawn on the board, so a double-pawn drop check is a single masked
	// test rather than a file scan.
	PawnlessFiles [2]BitBoard
}

// NewEmptyPosition creates a position with no pieces on the board and empty
// hands, for callers (such as a text-snapshot parser) building up a
// position square by square. Finalize must be called once construction is
// complete.
func NewEmptyPosition() *Position {
	p := &Position{MoveNumber: 1}
	p.KingSquare[Sente] = NoSquare
	p.KingSquare[Gote] = NoSquare
	return p
}

// Place puts piece on sq. Intended for position construction; callers must
// call Finalize afterward before using the position.
func (p *Position) Place(piece Piece, sq Square) {
	p.setPiece(piece, sq)
}

// SetHand sets color c's reserve count of base kind k directly.
func (p *Position) SetHand(c Color, k PieceKind, n int) {
	p.Hands[c][k] = n
}

// SetSideToMove sets whose turn it is.
func (p *Position) SetSideToMove(c Color) {
	p.SideToMove = c
}

// SetMoveNumber sets the half-move counter.
func (p *Position) SetMoveNumber(n int) {
	p.MoveNumber = n
}

// Finalize recomputes every derived field (pawnless files, checkers, pins,
// hash) from the board and hands as constructed. Call once after a batch of
// Place/SetHand calls.
func (p *Position) Finalize() {
	p.PawnlessFiles[Sente] = p.recomputePawnlessFiles(Sente)
	p.PawnlessFiles[Gote] = p.recomputePawnlessFiles(Gote)
	p.recomputeCheckersAndPins()
	p.Hash = p.computeHash()
}

// Validate checks the structural invariants of §3: exactly one king per
// color (or, in mating-problem mode, only the defender's), piece bitboards
// pairwise disjoint, pawn/lance/knight zone compliance, and the side not to
// move not in check. allowMissingAttackerKing relaxes the king-count check
// for mating problems.
func (p *Position) Validate(allowMissingAttackerKing bool) error {
	for c := Sente; c <= Gote; c++ {
		kings := p.Pieces[c][King].PopCount()
		if kings > 1 {
			return fmt.Errorf("shogi: color %s has %d kings", c, kings)
		}
		if kings == 0 && !(allowMissingAttackerKing && c == p.SideToMove) {
			return fmt.Errorf("shogi: color %s has no king", c)
		}
	}
	var seen BitBoard
	for c := Sente; c <= Gote; c++ {
		for k := PieceKind(0); k < 14; k++ {
			bb := p.Pieces[c][k]
			if bb.And(seen).Any() {
				return fmt.Errorf("shogi: overlapping pieces on board")
			}
			seen = seen.Or(bb)
		}
	}
	for c := Sente; c <= Gote; c++ {
		var bad BitBoard
		p.Pieces[c][Pawn].ForEach(func(sq Square) {
			if MustPromote(Pawn, c, sq) {
				bad = bad.Set(sq)
			}
		})
		p.Pieces[c][Lance].ForEach(func(sq Square) {
			if MustPromote(Lance, c, sq) {
				bad = bad.Set(sq)
			}
		})
		p.Pieces[c][Knight].ForEach(func(sq Square) {
			if MustPromote(Knight, c, sq) {
				bad = bad.Set(sq)
			}
		})
		if bad.Any() {
			return fmt.Errorf("shogi: color %s has a piece stranded past its must-promote rank", c)
		}
	}
	notToMove := p.SideToMove.Other()
	if p.KingSquare[notToMove] != NoSquare && p.attackersTo(p.KingSquare[notToMove], p.SideToMove).Any() {
		return fmt.Errorf("shogi: side not to move (%s) is in check", notToMove)
	}
	return nil
}

// NewPosition creates the standard starting position.
func NewPosition() *Position {
	p := &Position{MoveNumber: 1}
	p.KingSquare[Sente] = NoSquare
	p.KingSquare[Gote] = NoSquare

	place := func(c Color, k PieceKind, f File, r Rank) {
		p.setPiece(Piece{Kind: k, Color: c}, NewSquare(f, r))
	}

	// Gote's camp: ranks 0-2 (files numbered 0..8 here correspond to
	// traditional files 9..1).
	backRank := [9]PieceKind{Lance, Knight, Silver, Gold, King, Gold, Silver, Knight, Lance}
	for f := File(0); f < 9; f++ {
		place(Gote, backRank[f], f, 0)
		place(Sente, backRank[f], f, 8)
	}
	for f := File(0); f < 9; f++ {
		place(Gote, Pawn, f, 2)
		place(Sente, Pawn, f, 6)
	}
	place(Gote, Rook, File(1), 1)
	place(Gote, Bishop, File(7), 1)
	place(Sente, Bishop, File(1), 7)
	place(Sente, Rook, File(7), 7)

	p.SideToMove = Sente
	p.PawnlessFiles[Sente] = p.recomputePawnlessFiles(Sente)
	p.PawnlessFiles[Gote] = p.recomputePawnlessFiles(Gote)
	p.recomputeCheckersAndPins()
	p.Hash = p.computeHash()
	return p
}

// recomputePawnlessFiles rebuilds PawnlessFiles[c] from scratch: every file
// with no c pawn on the board.
func (p *Position) recomputePawnlessFiles(c Color) BitBoard {
	var occupied BitBoard
	p.Pieces[c][Pawn].ForEach(func(sq Square) {
		occupied = occupied.Or(FileMask[sq.File()])
	})
	return occupied.Not()
}

// Clone returns a deep copy of p. Hands are fixed-size arrays so the
// struct copy is already deep.
func (p *Position) Clone() *Position {
	c := *p
	return &c
}

// PieceAt returns the piece occupying sq, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if !p.AllOccupied.And(bb).Any() {
		return NoPiece
	}
	c := Sente
	if p.Occupied[Gote].And(bb).Any() {
		c = Gote
	}
	for k := PieceKind(0); k < 14; k++ {
		if p.Pieces[c][k].And(bb).Any() {
			return Piece{Kind: k, Color: c}
		}
	}
	return NoPiece
}

func (p *Position) setPiece(piece Piece, sq Square) {
	bb := SquareBB(sq)
	c, k := piece.Color, piece.Kind
	p.Pieces[c][k] = p.Pieces[c][k].Or(bb)
	p.Occupied[c] = p.Occupied[c].Or(bb)
	p.AllOccupied = p.AllOccupied.Or(bb)
	if k == King {
		p.KingSquare[c] = sq
	}
}

func (p *Position) removePiece(sq Square) Piece {
	piece := p.PieceAt(sq)
	if piece.IsEmpty() {
		return NoPiece
	}
	bb := SquareBB(sq)
	c, k := piece.Color, piece.Kind
	p.Pieces[c][k] = p.Pieces[c][k].AndNot(bb)
	p.Occupied[c] = p.Occupied[c].AndNot(bb)
	p.AllOccupied = p.AllOccupied.AndNot(bb)
	return piece
}

// addToHand increments the count of kind k's base kind in color c's hand
// and XORs the matching Zobrist hand step into the hash.
func (p *Position) addToHand(c Color, k PieceKind) {
	base := k.Unpromote()
	p.Hands[c][base]++
	p.Hash ^= ZobristHandStep(c, base, p.Hands[c][base])
}

func (p *Position) removeFromHand(c Color, k PieceKind) {
	p.Hash ^= ZobristHandStep(c, k, p.Hands[c][k])
	p.Hands[c][k]--
}

// UndoInfo carries everything needed to reverse a Play call.
type UndoInfo struct {
	Move           Move
	Captured       Piece
	PrevHash       uint64
	PrevCheckers   BitBoard
	PrevPinned     [2]BitBoard
	PrevKingSq     [2]Square
	PrevPawnless   [2]BitBoard
}

// Play applies a pseudo-legal move to p, mutating it in place, and returns
// the information needed to undo it with Unplay. Play never checks
// legality — that is the move generator's responsibility; it only
// maintains the invariants of §3 (occupancy, hash, checkers) for whatever
// move it is given.
func (p *Position) Play(m Move) UndoInfo {
	undo := UndoInfo{
		Move:         m,
		PrevHash:     p.Hash,
		PrevCheckers: p.Checkers,
		PrevPinned:   p.Pinned,
		PrevKingSq:   p.KingSquare,
		PrevPawnless: p.PawnlessFiles,
	}

	us := p.SideToMove
	them := us.Other()

	if m.IsDrop() {
		k := m.DropKind()
		to := m.To()
		p.removeFromHand(us, k)
		p.setPiece(Piece{Kind: k, Color: us}, to)
		p.Hash ^= ZobristPiece(k, us, to)
		if k == Pawn {
			p.PawnlessFiles[us] = p.PawnlessFiles[us].AndNot(FileMask[to.File()])
		}
	} else {
		from, to := m.From(), m.To()
		moving := p.removePiece(from)
		p.Hash ^= ZobristPiece(moving.Kind, us, from)

		captured := p.PieceAt(to)
		if !captured.IsEmpty() {
			p.removePiece(to)
			p.Hash ^= ZobristPiece(captured.Kind, them, to)
			p.addToHand(us, captured.Kind.Unpromote())
			undo.Captured = captured
			if captured.Kind == Pawn {
				p.PawnlessFiles[them] = p.PawnlessFiles[them].Or(FileMask[to.File()])
			}
		}

		finalKind := moving.Kind
		if m.IsPromotion() {
			finalKind = moving.Kind.Promote()
		}
		p.setPiece(Piece{Kind: finalKind, Color: us}, to)
		p.Hash ^= ZobristPiece(finalKind, us, to)

		if moving.Kind == Pawn && m.IsPromotion() {
			p.PawnlessFiles[us] = p.PawnlessFiles[us].Or(FileMask[from.File()])
		}
	}

	p.SideToMove = them
	p.Hash ^= ZobristSideToMove()
	p.MoveNumber++

	p.recomputeCheckersAndPins()
	return undo
}

// Unplay reverses a Play call given its UndoInfo. The move must be the most
// recently played move on p.
func (p *Position) Unplay(u UndoInfo) {
	them := p.SideToMove // the side that just moved is the other color
	us := them.Other()
	m := u.Move

	if m.IsDrop() {
		k := m.DropKind()
		to := m.To()
		p.removePiece(to)
		p.Hands[us][k]++
	} else {
		from, to := m.From(), m.To()
		moved := p.removePiece(to)
		origKind := moved.Kind
		if m.IsPromotion() {
			origKind = origKind.Unpromote()
		}
		p.setPiece(Piece{Kind: origKind, Color: us}, from)
		if !u.Captured.IsEmpty() {
			p.setPiece(u.Captured, to)
			p.Hands[us][u.Captured.Kind.Unpromote()]--
		}
	}

	p.SideToMove = us
	p.MoveNumber--
	p.Hash = u.PrevHash
	p.Checkers = u.PrevCheckers
	p.Pinned = u.PrevPinned
	p.KingSquare = u.PrevKingSq
	p.PawnlessFiles = u.PrevPawnless
}

// recomputeCheckersAndPins rebuilds Checkers (attackers of the side to
// move's king) and Pinned (own pieces standing between an enemy slider and
// that king) from scratch via x-ray attack detection — the same technique
// as the teacher's ComputePinned, generalized to shogi's three slider
// kinds and run for both sides since a dropped/moved piece can pin either
// king.
func (p *Position) recomputeCheckersAndPins() {
	for _, us := range []Color{Sente, Gote} {
		them := us.Other()
		ksq := p.KingSquare[us]
		if ksq == NoSquare {
			p.Pinned[us] = Empty
			if us == p.SideToMove {
				p.Checkers = Empty
			}
			continue
		}

		var pinned BitBoard
		lances := p.Pieces[them][Lance]
		rooks := p.Pieces[them][Rook].Or(p.Pieces[them][PromRook])
		bishops := p.Pieces[them][Bishop].Or(p.Pieces[them][PromBishop])

		snipers := RookAttacks(ksq, Empty).And(rooks)
		snipers = snipers.Or(BishopAttacks(ksq, Empty).And(bishops))
		snipers = snipers.Or(LanceAttacks(us, ksq, Empty).And(lances))

		snipers.ForEach(func(sq Square) {
			between := Between(sq, ksq).And(p.AllOccupied)
			if between.PopCount() == 1 && between.And(p.Occupied[us]).Any() {
				pinned = pinned.Or(between)
			}
		})
		p.Pinned[us] = pinned

		if us == p.SideToMove {
			p.Checkers = p.attackersTo(ksq, them)
		}
	}
}

// attackersTo returns every piece belonging to attacker that attacks sq,
// given the current occupancy.
func (p *Position) attackersTo(sq Square, attacker Color) BitBoard {
	occ := p.AllOccupied
	var att BitBoard

	att = att.Or(StepAttacks(Pawn, attacker.Other(), sq).And(p.Pieces[attacker][Pawn]))
	att = att.Or(StepAttacks(Knight, attacker.Other(), sq).And(p.Pieces[attacker][Knight]))
	att = att.Or(StepAttacks(Silver, attacker.Other(), sq).And(p.Pieces[attacker][Silver]))
	goldLike := p.Pieces[attacker][Gold].Or(p.Pieces[attacker][PromPawn]).
		Or(p.Pieces[attacker][PromLance]).Or(p.Pieces[attacker][PromKnight]).
		Or(p.Pieces[attacker][PromSilver])
	att = att.Or(StepAttacks(Gold, attacker.Other(), sq).And(goldLike))
	att = att.Or(kingAttacks[sq].And(p.Pieces[attacker][King]))

	att = att.Or(LanceAttacks(attacker.Other(), sq, occ).And(p.Pieces[attacker][Lance]))
	att = att.Or(RookAttacks(sq, occ).And(p.Pieces[attacker][Rook].Or(p.Pieces[attacker][PromRook])))
	att = att.Or(BishopAttacks(sq, occ).And(p.Pieces[attacker][Bishop].Or(p.Pieces[attacker][PromBishop])))

	return att
}

// IsInCheck reports whether the side to move's king is attacked.
func (p *Position) IsInCheck() bool {
	return p.Checkers.Any()
}

// computeHash recomputes the Zobrist hash of p from scratch: every piece on
// the board, every piece held in hand, and the side to move.
func (p *Position) computeHash() uint64 {
	var h uint64
	for c := Sente; c <= Gote; c++ {
		for k := PieceKind(0); k < 14; k++ {
			p.Pieces[c][k].ForEach(func(sq Square) {
				h ^= ZobristPiece(k, c, sq)
			})
		}
		for _, k := range HandKinds {
			for n := 1; n <= p.Hands[c][k]; n++ {
				h ^= ZobristHandStep(c, k, n)
			}
		}
	}
	if p.SideToMove == Gote {
		h ^= ZobristSideToMove()
	}
	return h
}

// Equal reports whether two positions have the same hash. Callers building
// repetition (sennichite) detection on top of this library compare the
// Hash field across the game's history; Position itself keeps none.
func (p *Position) Equal(o *Position) bool {
	return p.Hash == o.Hash
}

func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Gote hand: %s\n", p.handString(Gote)))
	for r := Rank(0); r < 9; r++ {
		for f := File(0); f < 9; f++ {
			sq := NewSquare(f, r)
			piece := p.PieceAt(sq)
			if piece.IsEmpty() {
				sb.WriteString(" . ")
				continue
			}
			letter := piece.Kind.Letter()
			if piece.Color == Gote {
				letter = "v" + letter
			}
			sb.WriteString(fmt.Sprintf("%3s", letter))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(fmt.Sprintf("Sente hand: %s\n", p.handString(Sente)))
	sb.WriteString(fmt.Sprintf("Side to move: %s  Move: %d\n", p.SideToMove, p.MoveNumber))
	return sb.String()
}

func (p *Position) handString(c Color) string {
	var sb strings.Builder
	for _, k := range HandKinds {
		if n := p.Hands[c][k]; n > 0 {
			sb.WriteString(fmt.Sprintf("%s%d ", k.Letter(), n))
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return strings.TrimSpace(sb.String())
}
