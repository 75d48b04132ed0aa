package gbase

import (
	"errors"
	"evilboard/src/base"
	"image"
	"image/color"
	"math"
	"time"
)

// ---- Exit Call ----

var ErrExit = errors.New("exit request")

// --- UI constants ---

const (
	AppBgR      = 90
	AppBgG      = 120
	AppBgB      = 130
	WindowW int = 640
	WindowH int = 760
	// frame around the squares
	BoardMargin = 24
	FrameRadius = 8
	SpareCount  = 6
)

// ---- Styles (palettes) ----

type Palette struct {
	Bg          color.RGBA
	Frame       color.RGBA
	FrameStroke color.RGBA
	Light       color.RGBA
	Dark        color.RGBA
	Source      color.RGBA // highlight of the square a drag started on
	Target      color.RGBA // highlight of the square under the pointer
	Notation    color.RGBA
}

func (p Palette) String() string {
	switch p {
	case LightPalette:
		return "light"
	case DarkPalette:
		return "dark"
	default:
	}
	return ""
}

func PaletteFromString(p string) Palette {
	switch p {
	case "light":
		return LightPalette
	case "dark":
		return DarkPalette
	default:
	}
	return Palette{}
}

var LightPalette = Palette{
	Bg:          color.RGBA{0xf7, 0xf7, 0xf7, 0xff},
	Frame:       color.RGBA{0xff, 0xff, 0xff, 0xff},
	FrameStroke: color.RGBA{0x88, 0x88, 0x88, 0xff},
	Light:       color.RGBA{0xf0, 0xd9, 0xb5, 0xff},
	Dark:        color.RGBA{0xb5, 0x88, 0x63, 0xff},
	Source:      color.RGBA{0xf6, 0xe0, 0x5e, 0xc0},
	Target:      color.RGBA{0x22, 0x88, 0xcc, 0xa0},
	Notation:    color.RGBA{0x22, 0x22, 0x22, 0xff},
}

var DarkPalette = Palette{
	Bg:          color.RGBA{0x12, 0x12, 0x12, 0xff},
	Frame:       color.RGBA{0x20, 0x20, 0x20, 0xff},
	FrameStroke: color.RGBA{0xdd, 0xdd, 0xdd, 0xff},
	Light:       color.RGBA{0xde, 0xe3, 0xe6, 0xff},
	Dark:        color.RGBA{0x8c, 0xa2, 0xad, 0xff},
	Source:      color.RGBA{0xe0, 0xc0, 0x40, 0xc0},
	Target:      color.RGBA{0x2a, 0xa1, 0xd1, 0xa0},
	Notation:    color.RGBA{0xee, 0xee, 0xee, 0xff},
}

// SquareColor picks the fill of sq; a1 is dark.
func (p Palette) SquareColor(sq base.Square) color.RGBA {
	if (sq.File()+sq.Rank())%2 == 1 {
		return p.Light
	}
	return p.Dark
}

// ---- Layout ----

// SquareSize is the square edge for a container of the given width: the
// largest size whose 8 squares fit strictly inside it.
func SquareSize(containerWidth int) int {
	if containerWidth <= 0 {
		return 0
	}
	return (containerWidth - 1) / 8
}

// Layout places the board, and optionally a spare row above and below it,
// centred in a window.
type Layout struct {
	Square int
	Board  image.Rectangle
	Top    image.Rectangle // spare row above the board, empty without spares
	Bottom image.Rectangle
	Spares bool
}

func NewLayout(w, h int, spares bool) Layout {
	rows := 8
	if spares {
		rows = 10
	}
	sq := SquareSize(w - 2*BoardMargin)
	if byH := (h - 2*BoardMargin) / rows; byH < sq {
		sq = byH
	}
	if sq < 1 {
		sq = 1
	}
	x0 := (w - 8*sq) / 2
	y0 := (h - rows*sq) / 2
	l := Layout{Square: sq, Spares: spares}
	if spares {
		l.Top = image.Rect(x0, y0, x0+8*sq, y0+sq)
		y0 += sq
	}
	l.Board = image.Rect(x0, y0, x0+8*sq, y0+8*sq)
	if spares {
		l.Bottom = image.Rect(x0, l.Board.Max.Y, x0+8*sq, l.Board.Max.Y+sq)
	}
	return l
}

// SquareRect is the pixel rectangle of sq as seen with orientation o.
func (l Layout) SquareRect(sq base.Square, o base.Orientation) image.Rectangle {
	col, row := sq.File(), 7-sq.Rank()
	if o == base.OrientBlack {
		col, row = 7-sq.File(), sq.Rank()
	}
	x := l.Board.Min.X + col*l.Square
	y := l.Board.Min.Y + row*l.Square
	return image.Rect(x, y, x+l.Square, y+l.Square)
}

// SquareRects is indexed by base.Square.
func (l Layout) SquareRects(o base.Orientation) [64]image.Rectangle {
	var rects [64]image.Rectangle
	for i := range rects {
		rects[i] = l.SquareRect(base.Square(i), o)
	}
	return rects
}

func (l Layout) SquareAt(x, y int, o base.Orientation) base.Square {
	pt := image.Pt(x, y)
	if !pt.In(l.Board) {
		return base.Offboard
	}
	col := (x - l.Board.Min.X) / l.Square
	row := (y - l.Board.Min.Y) / l.Square
	if o == base.OrientBlack {
		return base.NewSquare(7-col, row)
	}
	return base.NewSquare(col, 7-row)
}

// SpareRow lists the spare pieces of c in pool order.
func SpareRow(c base.Color) []base.Piece {
	row := make([]base.Piece, 0, SpareCount)
	for _, p := range base.AllPieces {
		if p.Color() == c {
			row = append(row, p)
		}
	}
	return row
}

// SpareColors returns the colours shown above and below the board: the
// opponent of the viewer sits on top.
func SpareColors(o base.Orientation) (top, bottom base.Color) {
	if o == base.OrientBlack {
		return base.White, base.Black
	}
	return base.Black, base.White
}

// SpareRect is slot i of the top or bottom row; the six slots are centred
// under files b to g.
func (l Layout) SpareRect(i int, top bool) image.Rectangle {
	row := l.Bottom
	if top {
		row = l.Top
	}
	x := row.Min.X + (i+1)*l.Square
	return image.Rect(x, row.Min.Y, x+l.Square, row.Min.Y+l.Square)
}

// SpareAt returns the spare piece under the pointer.
func (l Layout) SpareAt(x, y int, o base.Orientation) (base.Piece, bool) {
	if !l.Spares {
		return base.EmptyPiece, false
	}
	topC, bottomC := SpareColors(o)
	pt := image.Pt(x, y)
	for _, r := range []struct {
		top bool
		c   base.Color
	}{{true, topC}, {false, bottomC}} {
		for i, p := range SpareRow(r.c) {
			if pt.In(l.SpareRect(i, r.top)) {
				return p, true
			}
		}
	}
	return base.EmptyPiece, false
}

// SpareSlot is where piece sits in the spare rows.
func (l Layout) SpareSlot(piece base.Piece, o base.Orientation) (image.Rectangle, bool) {
	if !l.Spares || !piece.Valid() {
		return image.Rectangle{}, false
	}
	topC, _ := SpareColors(o)
	for i, p := range SpareRow(piece.Color()) {
		if p == piece {
			return l.SpareRect(i, piece.Color() == topC), true
		}
	}
	return image.Rectangle{}, false
}

// ---- Tweens ----

// Tween interpolates a sprite between two points and two opacities.
type Tween struct {
	From, To  image.Point
	AlphaFrom float64
	AlphaTo   float64
	Start     time.Time
	Duration  time.Duration
}

// At returns the sprite state at now and whether the tween has ended.
func (t Tween) At(now time.Time) (x, y, alpha float64, done bool) {
	k := 1.0
	if t.Duration > 0 {
		k = float64(now.Sub(t.Start)) / float64(t.Duration)
	}
	if k < 0 {
		k = 0
	}
	if k >= 1 {
		k, done = 1, true
	}
	e := ease(k)
	x = float64(t.From.X) + float64(t.To.X-t.From.X)*e
	y = float64(t.From.Y) + float64(t.To.Y-t.From.Y)*e
	alpha = t.AlphaFrom + (t.AlphaTo-t.AlphaFrom)*e
	return x, y, alpha, done
}

// swing easing: slow start, slow end
func ease(k float64) float64 {
	return 0.5 - math.Cos(k*math.Pi)/2
}
