package radius

import (
	"evilboard/src/base"
	"testing"
)

func sq(s string) base.Square {
	v, _ := base.SquareFromAlgebraic(s)
	return v
}

func TestDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"a1", "a1", 0},
		{"a1", "b2", 1},
		{"a1", "h8", 7},
		{"e4", "e5", 1},
		{"e4", "g5", 2},
		{"b7", "b1", 6},
	}
	for _, c := range cases {
		if got := Distance(sq(c.a), sq(c.b)); got != c.want {
			t.Fatalf("Distance(%s, %s) = %d, want %d", c.a, c.b, got, c.want)
		}
		if got := Distance(sq(c.b), sq(c.a)); got != c.want {
			t.Fatalf("Distance is not symmetric for %s, %s", c.a, c.b)
		}
	}
}

func TestSquaresByDistanceFrom(t *testing.T) {
	for o := 0; o < 64; o++ {
		origin := base.Square(o)
		got := SquaresByDistanceFrom(origin)
		if len(got) != 63 {
			t.Fatalf("%s: %d squares", origin, len(got))
		}
		seen := map[base.Square]bool{}
		for i, s := range got {
			if s == origin || seen[s] {
				t.Fatalf("%s: bad entry %s", origin, s)
			}
			seen[s] = true
			if i > 0 && Distance(origin, got[i-1]) > Distance(origin, s) {
				t.Fatalf("%s: not sorted at %d", origin, i)
			}
		}
	}
}

func TestSquaresByDistanceTieOrder(t *testing.T) {
	got := SquaresByDistanceFrom(sq("e4"))
	// ring 1 in scan order a1, a2, ... h8
	want := []string{"d3", "d4", "d5", "e3", "e5", "f3", "f4", "f5"}
	for i, w := range want {
		if got[i].String() != w {
			t.Fatalf("ring 1 = %v, want %v", got[:8], want)
		}
	}
}

func TestSquaresByDistanceIsCopy(t *testing.T) {
	a := SquaresByDistanceFrom(sq("a1"))
	a[0] = sq("h8")
	b := SquaresByDistanceFrom(sq("a1"))
	if b[0] == sq("h8") {
		t.Fatal("caller mutation leaked into the table")
	}
	if SquaresByDistanceFrom(base.Offboard) != nil {
		t.Fatal("offboard origin should give nil")
	}
}

func TestFindClosestPiece(t *testing.T) {
	pos := base.Position{
		sq("a1"): base.WRook,
		sq("h1"): base.WRook,
		sq("d1"): base.WQueen,
	}
	got, ok := FindClosestPiece(pos, base.WRook, sq("c1"))
	if !ok || got != sq("a1") {
		t.Fatalf("got %s %v, want a1", got, ok)
	}
	got, ok = FindClosestPiece(pos, base.WRook, sq("f1"))
	if !ok || got != sq("h1") {
		t.Fatalf("got %s %v, want h1", got, ok)
	}
	if _, ok := FindClosestPiece(pos, base.BRook, sq("c1")); ok {
		t.Fatal("found a piece that is not there")
	}
	// the square itself is never a candidate
	if _, ok := FindClosestPiece(base.Position{sq("d1"): base.WQueen}, base.WQueen, sq("d1")); ok {
		t.Fatal("origin square matched itself")
	}
}
