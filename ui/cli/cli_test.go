package cli

import (
	"bytes"
	"evilboard/src"
	"evilboard/src/base"
	"evilboard/src/config"
	"evilboard/src/diag"
	"strings"
	"testing"
)

func newSession(t *testing.T, input string) (*CLIProcessing, *bytes.Buffer, *src.Board) {
	t.Helper()
	var out bytes.Buffer
	cfg := config.Default()
	cfg.Position = config.PositionFromString("start")
	cfg.SparePieces = true
	tm := NewTerm(&out, true, nil)
	b, err := src.NewBoard(&cfg, tm, EventHooks(&out), diag.Silent(), nil)
	if err != nil {
		t.Fatal(err)
	}
	return NewCLI(b, tm, strings.NewReader(input), &out), &out, b
}

func TestPlainRender(t *testing.T) {
	_, out, _ := newSession(t, "")
	s := out.String()
	if !strings.Contains(s, " r  n  b  q  k  b  n  r ") {
		t.Fatalf("rank 8 missing:\n%s", s)
	}
	if !strings.Contains(s, "   a  b  c  d  e  f  g  h") {
		t.Fatalf("file labels missing:\n%s", s)
	}
	if strings.Contains(s, "\033[") {
		t.Fatal("colour codes written to a buffer")
	}
}

func TestLineMode(t *testing.T) {
	c, out, b := newSession(t, "e2-e4 nonsense\ndrag g8 f6\nfen\nq\nfen\n")
	if err := c.RunLineMode(); err != nil {
		t.Fatal(err)
	}
	want := "rnbqkb1r/pppppppp/5n2/8/4P3/8/PPPP1PPP/RNBQKBNR"
	if b.FEN() != want {
		t.Fatalf("FEN = %q", b.FEN())
	}
	s := out.String()
	if !strings.Contains(s, "~ move wP e2-e4") || !strings.Contains(s, "drop: bN g8 -> f6") {
		t.Fatalf("missing trace:\n%s", s)
	}
	if strings.Count(s, want+"\n") != 1 {
		t.Fatalf("fen should print once before quitting:\n%s", s)
	}
}

func TestSpareAndTrash(t *testing.T) {
	c, out, b := newSession(t, "")
	c.Exec("clear")
	c.Exec("spare bQ d4")
	c.Exec("spare wQ off")
	if !strings.Contains(out.String(), "trash") {
		t.Fatal("spare dropped off the board was not trashed")
	}
	c.Exec("drag d4 off")
	if b.FEN() != "8/8/8/8/3q4/8/8/8" {
		t.Fatalf("FEN = %q", b.FEN())
	}
	if !strings.Contains(out.String(), "snapback end: bQ d4") {
		t.Fatal("board piece dropped off the board did not snap back")
	}
	c.Exec("load 8/8/8/8/8/8/8/4K3")
	if b.FEN() != "8/8/8/8/8/8/8/4K3" {
		t.Fatalf("FEN = %q", b.FEN())
	}
}

func TestFlipRender(t *testing.T) {
	c, out, b := newSession(t, "")
	out.Reset()
	c.Exec("flip")
	if b.Orientation() != base.OrientBlack {
		t.Fatal("board not flipped")
	}
	if !strings.Contains(out.String(), "   h  g  f  e  d  c  b  a") {
		t.Fatalf("black labels missing:\n%s", out.String())
	}
	e2, _ := base.SquareFromAlgebraic("e2")
	x, y := c.term.Center(e2)
	r := c.term.SquareRects()[e2]
	if x < r.Min.X || x >= r.Max.X || y != r.Min.Y {
		t.Fatalf("center %d,%d outside %v", x, y, r)
	}
}

func TestPrintPlan(t *testing.T) {
	var out bytes.Buffer
	if err := PrintPlan(&out, "start", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR"); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "move wP e2-e4\n" {
		t.Fatalf("plan = %q", got)
	}

	out.Reset()
	if err := PrintPlan(&out, "start", "start"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "no changes\n" {
		t.Fatalf("identical plan = %q", out.String())
	}
	if err := PrintPlan(&out, "start", "9/8"); err == nil {
		t.Fatalf("bad target accepted")
	}
}

func TestPrintFEN(t *testing.T) {
	var out bytes.Buffer
	if err := PrintFEN(&out, "rnbqkbnr/pppppppp/44/8/8/8/PPPPPPPP/RNBQKBNR"); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out.String()); got != base.FEN_START_GAME {
		t.Fatalf("canonical = %q", got)
	}
	out.Reset()
	if err := PrintFEN(&out, "empty"); err != nil || strings.TrimSpace(out.String()) != base.FEN_EMPTY_GAME {
		t.Fatalf("empty = %q, %v", out.String(), err)
	}
}
