package gbase

import (
	"evilboard/src/base"
	"image"
	"testing"
	"time"
)

func TestSquareSize(t *testing.T) {
	cases := []struct{ w, want int }{
		{0, 0},
		{-5, 0},
		{1, 0},
		{9, 1},
		{400, 49},
		{401, 50},
		{409, 51},
	}
	for _, c := range cases {
		if got := SquareSize(c.w); got != c.want {
			t.Fatalf("SquareSize(%d) = %d, want %d", c.w, got, c.want)
		}
	}
}

func TestLayoutSquares(t *testing.T) {
	l := NewLayout(448, 448, false)
	// 400px inside the margins
	if l.Square != 49 {
		t.Fatalf("square = %d, want 49", l.Square)
	}
	if l.Board.Dx() != 392 || l.Board.Dy() != 392 {
		t.Fatalf("board = %v", l.Board)
	}
	a8 := base.NewSquare(0, 7)
	if r := l.SquareRect(a8, base.OrientWhite); r.Min != l.Board.Min {
		t.Fatalf("a8 white = %v, want top-left %v", r, l.Board.Min)
	}
	h1 := base.NewSquare(7, 0)
	if r := l.SquareRect(h1, base.OrientBlack); r.Min != l.Board.Min {
		t.Fatalf("h1 black = %v, want top-left %v", r, l.Board.Min)
	}

	for _, o := range []base.Orientation{base.OrientWhite, base.OrientBlack} {
		rects := l.SquareRects(o)
		for i, r := range rects {
			c := r.Min.Add(image.Pt(r.Dx()/2, r.Dy()/2))
			if got := l.SquareAt(c.X, c.Y, o); got != base.Square(i) {
				t.Fatalf("%s: SquareAt centre of %s = %s", o, base.Square(i), got)
			}
		}
	}
	if got := l.SquareAt(l.Board.Max.X, l.Board.Min.Y, base.OrientWhite); got != base.Offboard {
		t.Fatalf("right edge = %s, want offboard", got)
	}
}

func TestLayoutSpares(t *testing.T) {
	l := NewLayout(448, 548, true)
	if l.Square != 49 {
		t.Fatalf("square = %d", l.Square)
	}
	if l.Top.Max.Y != l.Board.Min.Y || l.Bottom.Min.Y != l.Board.Max.Y {
		t.Fatalf("spare rows not adjacent: top %v board %v bottom %v", l.Top, l.Board, l.Bottom)
	}

	r := l.SpareRect(0, true)
	p, ok := l.SpareAt(r.Min.X+1, r.Min.Y+1, base.OrientWhite)
	if !ok || p != base.BKing {
		t.Fatalf("top first slot white = %s %v, want bK", p, ok)
	}
	p, ok = l.SpareAt(r.Min.X+1, r.Min.Y+1, base.OrientBlack)
	if !ok || p != base.WKing {
		t.Fatalf("top first slot black = %s %v, want wK", p, ok)
	}
	r = l.SpareRect(5, false)
	if p, ok = l.SpareAt(r.Min.X+1, r.Min.Y+1, base.OrientWhite); !ok || p != base.WPawn {
		t.Fatalf("bottom last slot = %s %v, want wP", p, ok)
	}
	// file a column holds no spare
	if _, ok = l.SpareAt(l.Top.Min.X+1, l.Top.Min.Y+1, base.OrientWhite); ok {
		t.Fatalf("spare found left of the pool")
	}

	slot, ok := l.SpareSlot(base.BQueen, base.OrientWhite)
	if !ok || slot != l.SpareRect(1, true) {
		t.Fatalf("bQ slot = %v %v", slot, ok)
	}
	if _, ok := NewLayout(448, 448, false).SpareAt(0, 0, base.OrientWhite); ok {
		t.Fatalf("spares reported without spare rows")
	}
}

func TestSpareRow(t *testing.T) {
	want := []base.Piece{base.BKing, base.BQueen, base.BRook, base.BBishop, base.BKnight, base.BPawn}
	got := SpareRow(base.Black)
	if len(got) != len(want) {
		t.Fatalf("len = %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slot %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTween(t *testing.T) {
	start := time.Unix(100, 0)
	tw := Tween{
		From:      image.Pt(0, 0),
		To:        image.Pt(100, 50),
		AlphaFrom: 1,
		AlphaTo:   0,
		Start:     start,
		Duration:  200 * time.Millisecond,
	}
	x, y, a, done := tw.At(start)
	if x != 0 || y != 0 || a != 1 || done {
		t.Fatalf("start = %v,%v,%v,%v", x, y, a, done)
	}
	x, y, _, done = tw.At(start.Add(100 * time.Millisecond))
	if done || x <= 0 || x >= 100 || y <= 0 || y >= 50 {
		t.Fatalf("middle = %v,%v,%v", x, y, done)
	}
	x, y, a, done = tw.At(start.Add(time.Second))
	if x != 100 || y != 50 || a != 0 || !done {
		t.Fatalf("end = %v,%v,%v,%v", x, y, a, done)
	}
	if _, _, _, done := (Tween{}).At(start); !done {
		t.Fatalf("zero duration tween must end at once")
	}
}

func TestPalette(t *testing.T) {
	if PaletteFromString("dark") != DarkPalette || DarkPalette.String() != "dark" {
		t.Fatalf("dark palette round trip failed")
	}
	if LightPalette.SquareColor(base.NewSquare(0, 0)) != LightPalette.Dark {
		t.Fatalf("a1 must be dark")
	}
	if LightPalette.SquareColor(base.NewSquare(7, 0)) != LightPalette.Light {
		t.Fatalf("h1 must be light")
	}
}
