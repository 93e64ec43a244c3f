// Package sfen implements the text snapshot and move-notation collaborator
// for internal/shogi: a four-field position record (board, side to move,
// hands, move number) and the two-square-plus-promotion / drop move
// notation, grounded on the teacher's internal/board/fen.go.
package sfen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hailam/shogi-movegen/internal/shogi"
)

// Snapshot parse errors, matching the closed taxonomy of spec.md §7.
var (
	ErrMissingField      = errors.New("sfen: missing field")
	ErrTooManyFields     = errors.New("sfen: too many fields")
	ErrInvalidBoard      = errors.New("sfen: invalid board field")
	ErrInvalidSideToMove = errors.New("sfen: invalid side-to-move field")
	ErrInvalidHands      = errors.New("sfen: invalid hands field")
	ErrInvalidMoveNumber = errors.New("sfen: invalid move-number field")
)

// StartSFEN is the text snapshot of the standard starting position.
const StartSFEN = "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1"

var baseLetterToKind = map[byte]shogi.PieceKind{
	'P': shogi.Pawn, 'L': shogi.Lance, 'N': shogi.Knight, 'S': shogi.Silver,
	'B': shogi.Bishop, 'R': shogi.Rook, 'G': shogi.Gold, 'K': shogi.King,
}

func upperByte(ch byte) byte {
	if ch >= 'a' && ch <= 'z' {
		return ch - ('a' - 'A')
	}
	return ch
}

// Parse reads a four-field text snapshot into a fully validated Position.
func Parse(s string) (*shogi.Position, error) {
	fields := strings.Fields(s)
	if len(fields) < 4 {
		return nil, ErrMissingField
	}
	if len(fields) > 4 {
		return nil, ErrTooManyFields
	}

	pos := shogi.NewEmptyPosition()
	if err := parseBoard(pos, fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "b":
		pos.SetSideToMove(shogi.Sente)
	case "w":
		pos.SetSideToMove(shogi.Gote)
	default:
		return nil, ErrInvalidSideToMove
	}

	if err := parseHands(pos, fields[2]); err != nil {
		return nil, err
	}

	n, err := strconv.Atoi(fields[3])
	if err != nil || n <= 0 {
		return nil, ErrInvalidMoveNumber
	}
	pos.SetMoveNumber(n)

	pos.Finalize()
	if err := pos.Validate(false); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}
	return pos, nil
}

// ParseMatingProblem is like Parse but allows the attacker's king to be
// absent, as in a tsume (mating-problem) snapshot where only the defender's
// king is required.
func ParseMatingProblem(s string) (*shogi.Position, error) {
	fields := strings.Fields(s)
	if len(fields) < 4 {
		return nil, ErrMissingField
	}
	if len(fields) > 4 {
		return nil, ErrTooManyFields
	}
	pos := shogi.NewEmptyPosition()
	if err := parseBoard(pos, fields[0]); err != nil {
		return nil, err
	}
	switch fields[1] {
	case "b":
		pos.SetSideToMove(shogi.Sente)
	case "w":
		pos.SetSideToMove(shogi.Gote)
	default:
		return nil, ErrInvalidSideToMove
	}
	if err := parseHands(pos, fields[2]); err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(fields[3])
	if err != nil || n <= 0 {
		return nil, ErrInvalidMoveNumber
	}
	pos.SetMoveNumber(n)
	pos.Finalize()
	if err := pos.Validate(true); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}
	return pos, nil
}

func parseBoard(pos *shogi.Position, field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 9 {
		return ErrInvalidBoard
	}
	for r, seg := range ranks {
		file := 0 // internal File; each segment lists traditional file 9 first
		promote := false
		for i := 0; i < len(seg); i++ {
			ch := seg[i]
			switch {
			case ch == '+':
				promote = true
			case ch >= '1' && ch <= '9':
				if promote {
					return ErrInvalidBoard
				}
				file += int(ch - '0')
				if file > 9 {
					return ErrInvalidBoard
				}
			default:
				base, ok := baseLetterToKind[upperByte(ch)]
				if !ok || file > 8 {
					return ErrInvalidBoard
				}
				color := shogi.Sente
				if ch >= 'a' && ch <= 'z' {
					color = shogi.Gote
				}
				kind := base
				if promote {
					if !kind.IsPromotable() {
						return ErrInvalidBoard
					}
					kind = kind.Promote()
				}
				pos.Place(shogi.Piece{Kind: kind, Color: color}, shogi.NewSquare(shogi.File(file), shogi.Rank(r)))
				file++
				promote = false
			}
		}
		if file != 9 {
			return ErrInvalidBoard
		}
	}
	return nil
}

// handOrder is the canonical SFEN hand ordering of spec.md §6.
var handOrder = []shogi.PieceKind{shogi.Rook, shogi.Bishop, shogi.Gold, shogi.Silver, shogi.Knight, shogi.Lance, shogi.Pawn}

func parseHands(pos *shogi.Position, field string) error {
	if field == "-" {
		return nil
	}
	i := 0
	for i < len(field) {
		start := i
		for i < len(field) && field[i] >= '0' && field[i] <= '9' {
			i++
		}
		count := 1
		if i > start {
			n, err := strconv.Atoi(field[start:i])
			if err != nil || n <= 0 {
				return ErrInvalidHands
			}
			count = n
		}
		if i >= len(field) {
			return ErrInvalidHands
		}
		ch := field[i]
		i++
		base, ok := baseLetterToKind[upperByte(ch)]
		if !ok || base == shogi.King {
			return ErrInvalidHands
		}
		color := shogi.Sente
		if ch >= 'a' && ch <= 'z' {
			color = shogi.Gote
		}
		pos.SetHand(color, base, pos.Hands[color][base]+count)
	}
	return nil
}

// Format serializes pos into its four-field text snapshot.
func Format(pos *shogi.Position) string {
	var sb strings.Builder
	sb.WriteString(formatBoard(pos))
	sb.WriteByte(' ')
	if pos.SideToMove == shogi.Sente {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	sb.WriteByte(' ')
	sb.WriteString(formatHands(pos))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.MoveNumber))
	return sb.String()
}

func formatBoard(pos *shogi.Position) string {
	var ranks []string
	for r := shogi.Rank(0); r < 9; r++ {
		var seg strings.Builder
		empty := 0
		for fileTrad := 9; fileTrad >= 1; fileTrad-- {
			sq := shogi.NewSquare(shogi.File(9-fileTrad), r)
			piece := pos.PieceAt(sq)
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				seg.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			letter := piece.Kind.Letter()
			if piece.Color == shogi.Gote {
				letter = strings.ToLower(letter)
			}
			seg.WriteString(letter)
		}
		if empty > 0 {
			seg.WriteString(strconv.Itoa(empty))
		}
		ranks = append(ranks, seg.String())
	}
	return strings.Join(ranks, "/")
}

func formatHands(pos *shogi.Position) string {
	var sb strings.Builder
	for _, c := range []shogi.Color{shogi.Sente, shogi.Gote} {
		for _, k := range handOrder {
			n := pos.Hands[c][k]
			if n == 0 {
				continue
			}
			if n > 1 {
				sb.WriteString(strconv.Itoa(n))
			}
			letter := k.Letter()
			if c == shogi.Gote {
				letter = strings.ToLower(letter)
			}
			sb.WriteString(letter)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// ParseMove parses a move in the notation of spec.md §6 point 2.
func ParseMove(s string) (shogi.Move, error) {
	return shogi.ParseMove(s)
}

// FormatMove renders m in the same notation.
func FormatMove(m shogi.Move) string {
	return m.String()
}
