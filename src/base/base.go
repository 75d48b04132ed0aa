package base

import (
	"fmt"
	"sort"
	"strings"
)

// Forsyth–Edwards Notation, placement field only
const (
	FEN_START_GAME string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"
	FEN_EMPTY_GAME string = "8/8/8/8/8/8/8/8"
)

const Columns = "abcdefgh"

// ---- Color ----

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// ---- Piece ----

type Piece uint8

const (
	WKing        Piece = 19
	WQueen       Piece = 18
	WRook        Piece = 15
	WBishop      Piece = 14
	WKnight      Piece = 13
	WPawn        Piece = 11
	BKing        Piece = 9
	BQueen       Piece = 8
	BRook        Piece = 5
	BBishop      Piece = 4
	BKnight      Piece = 3
	BPawn        Piece = 1
	EmptyPiece   Piece = 99
	InvalidPiece Piece = 0
)

// AllPieces lists the 12 piece codes, white first, in spare pool order.
var AllPieces = []Piece{
	WKing, WQueen, WRook, WBishop, WKnight, WPawn,
	BKing, BQueen, BRook, BBishop, BKnight, BPawn,
}

func PieceIsWhite(p Piece) bool {
	return p >= WPawn && p <= WKing && p.Valid()
}

func PieceIsBlack(p Piece) bool {
	return p >= BPawn && p <= BKing && p.Valid()
}

// Valid reports whether p is one of the 12 real pieces.
func (p Piece) Valid() bool {
	switch p {
	case WKing, WQueen, WRook, WBishop, WKnight, WPawn,
		BKing, BQueen, BRook, BBishop, BKnight, BPawn:
		return true
	}
	return false
}

func (p Piece) Color() Color {
	if PieceIsBlack(p) {
		return Black
	}
	return White
}

// Code returns the two-letter piece code: "wK", "bP", ...
func (p Piece) Code() string {
	if !p.Valid() {
		return ""
	}
	r := ConvertUpperRuneFromPiece(p)
	if p.Color() == Black {
		return "b" + string(r)
	}
	return "w" + string(r)
}

func (p Piece) String() string {
	if c := p.Code(); c != "" {
		return c
	}
	if p == EmptyPiece {
		return "empty"
	}
	return "invalid"
}

func SwapColorPiece(p Piece) Piece {
	switch p {
	case WKing:
		return BKing
	case WQueen:
		return BQueen
	case WRook:
		return BRook
	case WBishop:
		return BBishop
	case WKnight:
		return BKnight
	case WPawn:
		return BPawn
	case BKing:
		return WKing
	case BQueen:
		return WQueen
	case BRook:
		return WRook
	case BBishop:
		return WBishop
	case BKnight:
		return WKnight
	case BPawn:
		return WPawn
	default:
		return InvalidPiece
	}
}

// IsValidPieceCode matches ^[bw][KQRNBP]$.
func IsValidPieceCode(code string) bool {
	_, err := ParsePieceCode(code)
	return err == nil
}

func ParsePieceCode(code string) (Piece, error) {
	if len(code) != 2 || (code[0] != 'w' && code[0] != 'b') {
		return InvalidPiece, &ValidationError{Kind: "piece", Value: code, Reason: "want [bw][KQRNBP]"}
	}
	p := ConvertWPieceFromRune(rune(code[1]))
	if p == InvalidPiece {
		return InvalidPiece, &ValidationError{Kind: "piece", Value: code, Reason: "want [bw][KQRNBP]"}
	}
	if code[0] == 'b' {
		p = SwapColorPiece(p)
	}
	return p, nil
}

func ConvertPieceFromRune(p rune) Piece {
	switch p {
	case 'P':
		return WPawn
	case 'R':
		return WRook
	case 'N':
		return WKnight
	case 'B':
		return WBishop
	case 'Q':
		return WQueen
	case 'K':
		return WKing
	case 'p':
		return BPawn
	case 'r':
		return BRook
	case 'n':
		return BKnight
	case 'b':
		return BBishop
	case 'q':
		return BQueen
	case 'k':
		return BKing
	default:
		return InvalidPiece
	}
}

func ConvertWPieceFromRune(p rune) Piece {
	switch p {
	case 'P':
		return WPawn
	case 'R':
		return WRook
	case 'N':
		return WKnight
	case 'B':
		return WBishop
	case 'Q':
		return WQueen
	case 'K':
		return WKing
	default:
		return InvalidPiece
	}
}

func ConvertRuneFromPiece(p Piece) rune {
	r := ConvertUpperRuneFromPiece(p)
	if r != '.' && PieceIsBlack(p) {
		return r + ('a' - 'A')
	}
	return r
}

func ConvertUpperRuneFromPiece(p Piece) rune {
	switch p {
	case WPawn, BPawn:
		return 'P'
	case WKnight, BKnight:
		return 'N'
	case WBishop, BBishop:
		return 'B'
	case WRook, BRook:
		return 'R'
	case WQueen, BQueen:
		return 'Q'
	case WKing, BKing:
		return 'K'
	default:
		return '.'
	}
}

// ---- Square ----

// Square is a mailbox index: rank*8 + file, a1 = 0, h8 = 63.
type Square uint8

// Offboard is the pointer location outside every square.
const Offboard Square = 64

func NewSquare(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return Offboard
	}
	return Square(rank*8 + file)
}

func (s Square) Valid() bool { return s < 64 }

// File returns 0..7 for a..h.
func (s Square) File() int { return int(s) % 8 }

// Rank returns 0..7 for 1..8.
func (s Square) Rank() int { return int(s) / 8 }

func (s Square) String() string {
	if !s.Valid() {
		return "offboard"
	}
	return string([]byte{Columns[s.File()], byte('1' + s.Rank())})
}

func SquareFromAlgebraic(pos string) (Square, error) {
	// 'a' ~ 'h' to 0-7
	// '1' ~ '8' to 0-7
	if len(pos) != 2 || pos[0] < 'a' || pos[0] > 'h' || pos[1] < '1' || pos[1] > '8' {
		return Offboard, &ValidationError{Kind: "square", Value: pos, Reason: "want [a-h][1-8]"}
	}
	return Square(int(pos[1]-'1')*8 + int(pos[0]-'a')), nil
}

func IsValidSquare(pos string) bool {
	_, err := SquareFromAlgebraic(pos)
	return err == nil
}

// ---- Orientation ----

type Orientation uint8

const (
	OrientWhite Orientation = iota
	OrientBlack
)

func (o Orientation) String() string {
	if o == OrientBlack {
		return "black"
	}
	return "white"
}

func (o Orientation) Flip() Orientation {
	if o == OrientBlack {
		return OrientWhite
	}
	return OrientBlack
}

func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "white":
		return OrientWhite, nil
	case "black":
		return OrientBlack, nil
	}
	return OrientWhite, &ValidationError{Kind: "orientation", Value: s, Reason: "want white or black"}
}

// ---- Position ----

// Position maps occupied squares to pieces; the empty map is the empty board.
type Position map[Square]Piece

func (p Position) Clone() Position {
	c := make(Position, len(p))
	for sq, pc := range p {
		c[sq] = pc
	}
	return c
}

func (p Position) Equal(o Position) bool {
	if len(p) != len(o) {
		return false
	}
	for sq, pc := range p {
		if v, ok := o[sq]; !ok || v != pc {
			return false
		}
	}
	return true
}

// Validate checks every key is a board square and every value a real piece.
func (p Position) Validate() error {
	for _, sq := range p.Squares() {
		if !sq.Valid() {
			return &ValidationError{Kind: "position", Value: fmt.Sprintf("square %d", uint8(sq)), Reason: "not a board square"}
		}
		if pc := p[sq]; !pc.Valid() {
			return &ValidationError{Kind: "position", Value: fmt.Sprintf("%s=%d", sq, uint8(pc)), Reason: "not a piece code"}
		}
	}
	return nil
}

// Squares returns the occupied squares in notation order: rank 8 down to
// rank 1, file a to h.
func (p Position) Squares() []Square {
	sqs := make([]Square, 0, len(p))
	for sq := range p {
		sqs = append(sqs, sq)
	}
	sort.Slice(sqs, func(i, j int) bool { return NotationLess(sqs[i], sqs[j]) })
	return sqs
}

// NotationLess orders squares the way compact notation lists them.
func NotationLess(a, b Square) bool {
	if a.Rank() != b.Rank() {
		return a.Rank() > b.Rank()
	}
	return a.File() < b.File()
}

func (p Position) String() string {
	parts := make([]string, 0, len(p))
	for _, sq := range p.Squares() {
		parts = append(parts, sq.String()+":"+p[sq].String())
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// ParsePosition converts a host-supplied square→code object.
func ParsePosition(obj map[string]string) (Position, error) {
	pos := make(Position, len(obj))
	for k, v := range obj {
		sq, err := SquareFromAlgebraic(k)
		if err != nil {
			return nil, err
		}
		pc, err := ParsePieceCode(v)
		if err != nil {
			return nil, err
		}
		pos[sq] = pc
	}
	return pos, nil
}

func IsValidPosition(obj map[string]string) bool {
	_, err := ParsePosition(obj)
	return err == nil
}

// Object is the inverse of ParsePosition.
func (p Position) Object() map[string]string {
	obj := make(map[string]string, len(p))
	for sq, pc := range p {
		obj[sq.String()] = pc.Code()
	}
	return obj
}
