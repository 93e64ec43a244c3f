package shogi

// PieceKind enumerates the fourteen shogi piece kinds: eight base kinds and
// their six promoted forms (king and gold have no promoted form).
type PieceKind uint8

const (
	Pawn PieceKind = iota
	Lance
	Knight
	Silver
	Bishop
	Rook
	Gold
	King
	PromPawn
	PromLance
	PromKnight
	PromSilver
	PromBishop
	PromRook
	NoPieceKind PieceKind = 14
)

var kindNames = [...]string{
	"Pawn", "Lance", "Knight", "Silver", "Bishop", "Rook", "Gold", "King",
	"+Pawn", "+Lance", "+Knight", "+Silver", "+Bishop", "+Rook",
}

func (k PieceKind) String() string {
	if k >= NoPieceKind {
		return "None"
	}
	return kindNames[k]
}

// IsPromoted reports whether k is one of the six promoted kinds.
func (k PieceKind) IsPromoted() bool {
	return k >= PromPawn && k <= PromRook
}

// IsPromotable reports whether k has a distinct promoted form: every base
// kind except Gold and King.
func (k PieceKind) IsPromotable() bool {
	switch k {
	case Pawn, Lance, Knight, Silver, Bishop, Rook:
		return true
	default:
		return false
	}
}

var promoteTable = [...]PieceKind{
	Pawn:   PromPawn,
	Lance:  PromLance,
	Knight: PromKnight,
	Silver: PromSilver,
	Bishop: PromBishop,
	Rook:   PromRook,
	Gold:   Gold,
	King:   King,
}

var unpromoteTable = [...]PieceKind{
	Pawn:      Pawn,
	Lance:     Lance,
	Knight:    Knight,
	Silver:    Silver,
	Bishop:    Bishop,
	Rook:      Rook,
	Gold:      Gold,
	King:      King,
	PromPawn:  Pawn,
	PromLance: Lance,
	PromKnight: Knight,
	PromSilver: Silver,
	PromBishop: Bishop,
	PromRook:   Rook,
}

// Promote returns the promoted form of k. Promote is idempotent on already
// promoted kinds and identity on Gold/King.
func (k PieceKind) Promote() PieceKind {
	if k.IsPromoted() {
		return k
	}
	return promoteTable[k]
}

// Unpromote returns the base form of k. Unpromote is idempotent on base
// kinds.
func (k PieceKind) Unpromote() PieceKind {
	return unpromoteTable[k]
}

// GoldMovementEquivalent reports whether k shares Gold's attack pattern:
// Gold itself plus every promoted small piece.
func (k PieceKind) GoldMovementEquivalent() bool {
	switch k {
	case Gold, PromPawn, PromLance, PromKnight, PromSilver:
		return true
	default:
		return false
	}
}

// CanPromote reports whether a piece of kind k belonging to color, landing
// on sq, may promote: the kind must be promotable and sq must lie within
// color's last three ranks.
func CanPromote(k PieceKind, c Color, sq Square) bool {
	return k.IsPromotable() && sq.RelativeRank(c) <= 2
}

// MustPromote reports whether a piece of kind k belonging to color would
// have no legal moves left unless it promotes upon landing on sq: pawns
// and lances on the last rank, knights on the last two ranks.
func MustPromote(k PieceKind, c Color, sq Square) bool {
	rr := sq.RelativeRank(c)
	switch k {
	case Pawn, Lance:
		return rr == 0
	case Knight:
		return rr <= 1
	default:
		return false
	}
}

// CanDrop reports whether a piece of kind k belonging to color may be
// dropped on sq, considering only the per-square/per-kind restriction
// (must-promote zones); it does not check whether sq is occupied or the
// double-pawn rule — those are generator-level concerns.
func CanDrop(k PieceKind, c Color, sq Square) bool {
	if k == King || k.IsPromoted() {
		return false
	}
	return !MustPromote(k, c, sq)
}

// HandMax gives the maximum number of a base kind that can exist across the
// board and both hands combined.
var HandMax = [...]int{
	Pawn:   18,
	Lance:  4,
	Knight: 4,
	Silver: 4,
	Bishop: 2,
	Rook:   2,
	Gold:   4,
}

// HandKinds lists the seven droppable base kinds in the canonical SFEN hand
// ordering: rook, bishop, gold, silver, knight, lance, pawn.
var HandKinds = [...]PieceKind{Rook, Bishop, Gold, Silver, Knight, Lance, Pawn}

// Piece is a (kind, color) pair. NoPiece marks an empty square.
type Piece struct {
	Kind  PieceKind
	Color Color
}

// NoPiece marks an empty square.
var NoPiece = Piece{Kind: NoPieceKind, Color: NoColor}

// IsEmpty reports whether p represents an empty square.
func (p Piece) IsEmpty() bool {
	return p.Kind == NoPieceKind
}

var kindLetters = [...]byte{
	Pawn: 'P', Lance: 'L', Knight: 'N', Silver: 'S',
	Bishop: 'B', Rook: 'R', Gold: 'G', King: 'K',
	PromPawn: 'P', PromLance: 'L', PromKnight: 'N', PromSilver: 'S',
	PromBishop: 'B', PromRook: 'R',
}

// Letter returns the USI-style piece letter for k: a base letter, prefixed
// with "+" if k is promoted.
func (k PieceKind) Letter() string {
	if k.IsPromoted() {
		return "+" + string(kindLetters[k])
	}
	return string(kindLetters[k])
}
