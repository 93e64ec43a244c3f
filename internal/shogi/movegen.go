package shogi

import "errors"

// GameStatus reports whether the side to move still has a legal move.
type GameStatus uint8

const (
	Ongoing GameStatus = iota
	Won
)

// GroupedMoves batches either every legal board move of one piece from one
// square, or every legal drop of one kind, sharing a single destination
// bitboard. Iterating it computes each destination's promotion status with
// Status from Kind, Color, From and that destination.
type GroupedMoves struct {
	Kind   PieceKind
	Color  Color
	From   Square // NoSquare when IsDrop
	To     BitBoard
	IsDrop bool
}

// Len returns the exact move count this record expands to, counting a
// MayPromote destination twice.
func (g GroupedMoves) Len() int {
	if g.IsDrop || !g.Kind.IsPromotable() {
		return g.To.PopCount()
	}
	n := 0
	to := g.To
	for to.Any() {
		sq := to.PopLSB()
		if Status(g.Kind, g.Color, g.From, sq) == MayPromote {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// Has reports whether m is one of the moves this record expands to.
func (g GroupedMoves) Has(m Move) bool {
	if g.IsDrop {
		return m.IsDrop() && m.DropKind() == g.Kind && g.To.Has(m.To())
	}
	if m.IsDrop() || m.From() != g.From || !g.To.Has(m.To()) {
		return false
	}
	st := CannotPromote
	if g.Kind.IsPromotable() {
		st = Status(g.Kind, g.Color, g.From, m.To())
	}
	switch st {
	case MustPromoteStatus:
		return m.IsPromotion()
	case MayPromote:
		return true
	default:
		return !m.IsPromotion()
	}
}

// Each expands g into individual moves, calling f for each and stopping as
// soon as f returns true (abort). It returns whether it was aborted.
func (g GroupedMoves) Each(f func(Move) bool) bool {
	return g.forEach(f)
}

// forEach expands g into individual moves, calling f for each and stopping
// as soon as f returns true (abort). It returns whether it was aborted.
func (g GroupedMoves) forEach(f func(Move) bool) bool {
	to := g.To
	for to.Any() {
		sq := to.PopLSB()
		if g.IsDrop {
			if f(NewDrop(g.Kind, sq)) {
				return true
			}
			continue
		}
		st := CannotPromote
		if g.Kind.IsPromotable() {
			st = Status(g.Kind, g.Color, g.From, sq)
		}
		if st == MayPromote {
			if f(NewBoardMove(g.From, sq, true)) {
				return true
			}
			if f(NewBoardMove(g.From, sq, false)) {
				return true
			}
			continue
		}
		promote := st == MustPromoteStatus
		if f(NewBoardMove(g.From, sq, promote)) {
			return true
		}
	}
	return false
}

// Listener receives grouped-move batches during enumeration. Returning true
// aborts generation; the abort propagates out as the generator's own return
// value.
type Listener func(GroupedMoves) bool

func isSliderKind(k PieceKind) bool {
	switch k {
	case Lance, Bishop, Rook, PromBishop, PromRook:
		return true
	default:
		return false
	}
}

// pieceAttacks returns the pseudo-attack set of a piece of kind k and color
// c standing on sq, given board occupancy occ. Valid for all fourteen
// kinds; King uses the precomputed king ring.
func pieceAttacks(k PieceKind, c Color, sq Square, occ BitBoard) BitBoard {
	if k == King {
		return kingAttacks[sq]
	}
	if isSliderKind(k) {
		return SliderAttacks(k, c, sq, occ)
	}
	return StepAttacks(k, c, sq)
}

// dropZone[c][k] is the set of squares a piece of base kind k belonging to
// c may be dropped on, ignoring occupancy and the double-pawn rule —
// exactly the must-promote-zone restriction of CanDrop.
var dropZone [2][7]BitBoard

func init() {
	for c := Sente; c <= Gote; c++ {
		for _, k := range HandKinds {
			var m BitBoard
			for sq := Square(0); sq < 81; sq++ {
				if CanDrop(k, c, sq) {
					m = m.Set(sq)
				}
			}
			dropZone[c][k] = m
		}
	}
}

func (p *Position) targetSquares() BitBoard {
	us := p.SideToMove
	switch p.Checkers.PopCount() {
	case 0:
		return p.Occupied[us].Not()
	case 1:
		checker := p.Checkers.LSB()
		ksq := p.KingSquare[us]
		return Between(checker, ksq).Or(SquareBB(checker)).AndNot(p.Occupied[us])
	default:
		return Empty
	}
}

func (p *Position) targetDrops() BitBoard {
	us := p.SideToMove
	switch p.Checkers.PopCount() {
	case 0:
		return p.AllOccupied.Not()
	case 1:
		checker := p.Checkers.LSB()
		if !isSliderKind(p.PieceAt(checker).Kind) {
			return Empty
		}
		return Between(checker, p.KingSquare[us])
	default:
		return Empty
	}
}

// kingSafeOn reports whether color c's king could stand safely on sq, given
// the rest of the current board (sq itself may hold an enemy piece being
// captured, which is excluded from the attacker sets below).
func (p *Position) kingSafeOn(c Color, sq Square) bool {
	them := c.Other()
	occ := p.AllOccupied.Clear(p.KingSquare[c]).Set(sq)
	excl := func(bb BitBoard) BitBoard { return bb.Clear(sq) }

	goldLike := p.Pieces[them][Gold].Or(p.Pieces[them][PromPawn]).
		Or(p.Pieces[them][PromLance]).Or(p.Pieces[them][PromKnight]).
		Or(p.Pieces[them][PromSilver])
	if StepAttacks(Gold, c, sq).And(excl(goldLike)).Any() {
		return false
	}
	if kingAttacks[sq].And(excl(p.Pieces[them][King])).Any() {
		return false
	}
	if StepAttacks(Silver, c, sq).And(excl(p.Pieces[them][Silver])).Any() {
		return false
	}
	if StepAttacks(Knight, c, sq).And(excl(p.Pieces[them][Knight])).Any() {
		return false
	}
	if StepAttacks(Pawn, c, sq).And(excl(p.Pieces[them][Pawn])).Any() {
		return false
	}
	bishops := p.Pieces[them][Bishop].Or(p.Pieces[them][PromBishop])
	if BishopAttacks(sq, occ).And(excl(bishops)).Any() {
		return false
	}
	rooks := p.Pieces[them][Rook].Or(p.Pieces[them][PromRook])
	if RookAttacks(sq, occ).And(excl(rooks)).Any() {
		return false
	}
	if LanceAttacks(c, sq, occ).And(excl(p.Pieces[them][Lance])).Any() {
		return false
	}
	return true
}

// nonKingKinds lists every generated kind other than King, in the order the
// generator walks them.
var nonKingKinds = [...]PieceKind{
	Pawn, Lance, Knight, Silver, Gold, Bishop, Rook,
	PromPawn, PromLance, PromKnight, PromSilver, PromBishop, PromRook,
}

// generateBoardMovesFor enumerates legal board moves for movers whose
// origin square lies in mask, invoking listener with grouped records.
// Returns the abort flag.
func (p *Position) generateBoardMovesFor(mask BitBoard, listener Listener) bool {
	us := p.SideToMove
	ksq := p.KingSquare[us]
	inCheck := p.Checkers.Any()
	targets := p.targetSquares()

	for _, kind := range nonKingKinds {
		movers := p.Pieces[us][kind].And(mask)
		for movers.Any() {
			from := movers.PopLSB()
			attacks := pieceAttacks(kind, us, from, p.AllOccupied)

			if p.Pinned[us].Has(from) {
				if inCheck || kind == Knight {
					continue
				}
				attacks = attacks.And(Line(ksq, from))
			}

			to := attacks.And(targets)
			if to.Any() {
				if listener(GroupedMoves{Kind: kind, Color: us, From: from, To: to}) {
					return true
				}
			}
		}
	}

	if mask.Has(ksq) {
		candidates := kingAttacks[ksq].AndNot(p.Occupied[us])
		var safe BitBoard
		c := candidates
		for c.Any() {
			sq := c.PopLSB()
			if p.kingSafeOn(us, sq) {
				safe = safe.Set(sq)
			}
		}
		if safe.Any() {
			if listener(GroupedMoves{Kind: King, Color: us, From: ksq, To: safe}) {
				return true
			}
		}
	}
	return false
}

// GenerateBoardMoves enumerates every legal board move.
func (p *Position) GenerateBoardMoves(listener Listener) bool {
	return p.generateBoardMovesFor(BoardMask, listener)
}

// GenerateBoardMovesFor restricts enumeration to movers on squares in mask.
func (p *Position) GenerateBoardMovesFor(mask BitBoard, listener Listener) bool {
	return p.generateBoardMovesFor(mask, listener)
}

// wouldBeUchifuzume reports whether dropping a pawn at to for color us would
// deliver an illegal pawn-drop mate: simulate the drop and ask whether the
// opponent has any legal board move left. A drop that gives no check is
// never one. A contact check from a dropped pawn can only be answered by
// moving the king or capturing the pawn — both board moves — so board moves
// alone decide it.
func (p *Position) wouldBeUchifuzume(us Color, to Square) bool {
	sim := p.Clone()
	sim.Play(NewDrop(Pawn, to))
	if sim.Checkers.Empty() {
		return false
	}
	return !sim.GenerateBoardMoves(func(GroupedMoves) bool { return true })
}

// GenerateDropsFor enumerates legal drops of one base kind.
func (p *Position) GenerateDropsFor(kind PieceKind, listener Listener) bool {
	us := p.SideToMove
	if p.Hands[us][kind] == 0 {
		return false
	}
	to := p.targetDrops().And(dropZone[us][kind])
	if kind == Pawn {
		to = to.And(p.PawnlessFiles[us])
		// Only a pawn dropped on the square in front of the enemy king gives
		// check, so that square is the one candidate for a pawn-drop mate.
		if ksq := p.KingSquare[us.Other()]; ksq != NoSquare && p.Checkers.Empty() {
			front := pawnAttacks[us.Other()][ksq].And(to)
			if front.Any() && p.wouldBeUchifuzume(us, front.LSB()) {
				to = to.AndNot(front)
			}
		}
	}
	if !to.Any() {
		return false
	}
	return listener(GroupedMoves{Kind: kind, Color: us, IsDrop: true, To: to})
}

// GenerateDrops enumerates every legal drop.
func (p *Position) GenerateDrops(listener Listener) bool {
	for _, k := range HandKinds {
		if p.GenerateDropsFor(k, listener) {
			return true
		}
	}
	return false
}

// GenerateMoves enumerates all legal moves, drops before board moves.
func (p *Position) GenerateMoves(listener Listener) bool {
	if p.GenerateDrops(listener) {
		return true
	}
	return p.GenerateBoardMoves(listener)
}

// GenerateChecks enumerates only moves that give check to the opponent
// king. Built on top of GenerateMoves by simulating each candidate, the
// same simulate-and-ask approach used by wouldBeUchifuzume: correct by
// construction, at the cost of a clone+replay per candidate destination.
func (p *Position) GenerateChecks(listener Listener) bool {
	return p.GenerateMoves(func(g GroupedMoves) bool {
		var checking BitBoard
		g.forEach(func(mv Move) bool {
			sim := p.Clone()
			sim.Play(mv)
			if sim.Checkers.Any() {
				checking = checking.Set(mv.To())
			}
			return false
		})
		if !checking.Any() {
			return false
		}
		return listener(GroupedMoves{Kind: g.Kind, Color: g.Color, From: g.From, To: checking, IsDrop: g.IsDrop})
	})
}

// HasAnyLegalMove reports whether the side to move has at least one legal
// move, without materializing the full list.
func (p *Position) HasAnyLegalMove() bool {
	return p.GenerateMoves(func(GroupedMoves) bool { return true })
}

// Status reports Won when the side to move has no legal move, Ongoing
// otherwise. Repetition/sennichite adjudication is outside this package.
func (p *Position) Status() GameStatus {
	if p.HasAnyLegalMove() {
		return Ongoing
	}
	return Won
}

// IsLegalBoardMove reports whether m is a legal board move in p, using the
// same helpers as GenerateBoardMoves so the oracle and the enumerator never
// disagree.
func (p *Position) IsLegalBoardMove(m Move) bool {
	if m.IsDrop() {
		return false
	}
	from, to := m.From(), m.To()
	us := p.SideToMove
	mover := p.PieceAt(from)
	if mover.IsEmpty() || mover.Color != us {
		return false
	}
	if p.Occupied[us].Has(to) {
		return false
	}

	if mover.Kind == King {
		if m.IsPromotion() {
			return false
		}
		return kingAttacks[from].Has(to) && p.kingSafeOn(us, to)
	}

	st := CannotPromote
	if mover.Kind.IsPromotable() {
		st = Status(mover.Kind, us, from, to)
	}
	switch st {
	case MustPromoteStatus:
		if !m.IsPromotion() {
			return false
		}
	case CannotPromote:
		if m.IsPromotion() {
			return false
		}
	}

	attacks := pieceAttacks(mover.Kind, us, from, p.AllOccupied)
	if p.Pinned[us].Has(from) {
		if p.Checkers.Any() || mover.Kind == Knight {
			return false
		}
		attacks = attacks.And(Line(p.KingSquare[us], from))
	}
	return attacks.And(p.targetSquares()).Has(to)
}

// IsLegalDrop reports whether m is a legal drop in p.
func (p *Position) IsLegalDrop(m Move) bool {
	if !m.IsDrop() {
		return false
	}
	us := p.SideToMove
	k, to := m.DropKind(), m.To()
	if p.Hands[us][k] == 0 {
		return false
	}
	if p.AllOccupied.Has(to) {
		return false
	}
	if !CanDrop(k, us, to) {
		return false
	}
	if k == Pawn {
		if !p.PawnlessFiles[us].Has(to) {
			return false
		}
		if p.Checkers.Empty() && p.wouldBeUchifuzume(us, to) {
			return false
		}
	}
	switch p.Checkers.PopCount() {
	case 0:
		return true
	case 1:
		return p.targetDrops().Has(to)
	default:
		return false
	}
}

// IsLegal reports whether m is a legal move in p.
func (p *Position) IsLegal(m Move) bool {
	if m.IsDrop() {
		return p.IsLegalDrop(m)
	}
	return p.IsLegalBoardMove(m)
}

// ErrIllegalMove is returned by PlayLegal when the supplied move fails
// IsLegal. Play itself trusts the caller, the same way the teacher's
// board.MakeMove assumes its argument came from the generator; PlayLegal is
// the checked entry point for callers that can't make that guarantee (a
// move parsed from user input or SFEN notation, say).
var ErrIllegalMove = errors.New("shogi: illegal move")

// PlayLegal validates m against IsLegal before applying it, returning
// ErrIllegalMove instead of corrupting position state on a bad move.
func (p *Position) PlayLegal(m Move) (UndoInfo, error) {
	if !p.IsLegal(m) {
		return UndoInfo{}, ErrIllegalMove
	}
	return p.Play(m), nil
}
