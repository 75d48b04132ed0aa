package src

import (
	"errors"
	"evilboard/src/base"
	"evilboard/src/config"
	"evilboard/src/diag"
	"evilboard/src/logic/drag"
	"image"
	"testing"
	"time"
)

const cell = 10

type fakeRenderer struct {
	boards    []base.Orientation
	draws     []base.Position
	animSteps int
	floating  bool
	resized   int
	destroyed bool
}

func (f *fakeRenderer) DrawBoard(o base.Orientation, showNotation, sparePieces bool) {
	f.boards = append(f.boards, o)
}

func (f *fakeRenderer) DrawPosition(pos base.Position) { f.draws = append(f.draws, pos) }

// animations finish at once
func (f *fakeRenderer) AnimateMove(from, to base.Square, piece base.Piece, d time.Duration, done func()) {
	f.animSteps++
	done()
}

func (f *fakeRenderer) AnimateAdd(sq base.Square, piece base.Piece, fromSpare bool, d time.Duration, done func()) {
	f.animSteps++
	done()
}

func (f *fakeRenderer) AnimateClear(sq base.Square, piece base.Piece, d time.Duration, done func()) {
	f.animSteps++
	done()
}

func (f *fakeRenderer) SquareRects() [64]image.Rectangle {
	var r [64]image.Rectangle
	for i := range r {
		s := base.Square(i)
		x, y := s.File()*cell, (7-s.Rank())*cell
		r[i] = image.Rect(x, y, x+cell, y+cell)
	}
	return r
}

func (f *fakeRenderer) ShowDraggedPiece(piece base.Piece, origin drag.Origin, x, y int) {
	f.floating = true
}

func (f *fakeRenderer) MoveDraggedPiece(x, y int)                              {}
func (f *fakeRenderer) SetHighlight(sq base.Square, h drag.Highlight, on bool) {}
func (f *fakeRenderer) ClearHighlights()                                       {}

func (f *fakeRenderer) SnapDraggedPiece(to base.Square, d time.Duration, done func()) {
	f.floating = false
	done()
}

func (f *fakeRenderer) ReturnDraggedPiece(to base.Square, d time.Duration, done func()) {
	f.floating = false
	done()
}

func (f *fakeRenderer) TrashDraggedPiece(d time.Duration) { f.floating = false }

func (f *fakeRenderer) Resize() { f.resized++ }

func (f *fakeRenderer) Destroy() { f.destroyed = true }

func (f *fakeRenderer) last() base.Position { return f.draws[len(f.draws)-1] }

type report struct {
	code  int
	value any
}

func newBoard(t *testing.T, cfg *config.Config, hooks Hooks) (*Board, *fakeRenderer, *[]report) {
	t.Helper()
	r := &fakeRenderer{}
	var reports []report
	b, err := NewBoard(cfg, r, hooks, diag.Func(func(code int, msg string, value any) {
		reports = append(reports, report{code, value})
	}), nil)
	if err != nil {
		t.Fatal(err)
	}
	return b, r, &reports
}

func center(s string) (int, int) {
	v, _ := base.SquareFromAlgebraic(s)
	return v.File()*cell + cell/2, (7-v.Rank())*cell + cell/2
}

func startConfig() *config.Config {
	c := config.Default()
	c.Position = config.PositionFromString("start")
	c.Draggable = true
	return &c
}

func TestNewBoardNeedsRenderer(t *testing.T) {
	_, err := NewBoard(nil, nil, Hooks{}, nil, nil)
	var ce *base.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("want ConfigurationError, got %v", err)
	}
}

func TestNewBoardBadTheme(t *testing.T) {
	c := config.Default()
	c.PieceTheme = "pieces.png"
	if _, err := NewBoard(&c, &fakeRenderer{}, Hooks{}, diag.Silent(), nil); err == nil {
		t.Fatal("theme without placeholder accepted")
	}
}

func TestNewBoardDrawsStart(t *testing.T) {
	changes := 0
	b, r, reports := newBoard(t, startConfig(), Hooks{OnChange: func(before, after base.Position) { changes++ }})
	if b.FEN() != base.FEN_START_GAME {
		t.Fatalf("FEN = %q", b.FEN())
	}
	if len(r.boards) != 1 || len(r.draws) != 1 || len(r.last()) != 32 {
		t.Fatal("board was not drawn")
	}
	if changes != 0 || len(*reports) != 0 {
		t.Fatal("construction notified the host")
	}
}

func TestNewBoardInvalidStartReported(t *testing.T) {
	c := config.Default()
	c.Position = config.PositionFromString("rnbqkbnr/ppp")
	b, _, reports := newBoard(t, &c, Hooks{})
	if len(*reports) != 1 || (*reports)[0].code != diag.CodeInvalidStart {
		t.Fatalf("reports = %v", *reports)
	}
	if len(b.Position()) != 0 {
		t.Fatal("invalid start left pieces on the board")
	}
}

func TestSetPositionString(t *testing.T) {
	b, r, reports := newBoard(t, nil, Hooks{})
	if err := b.SetPositionString("start", false); err != nil {
		t.Fatal(err)
	}
	if len(r.last()) != 32 {
		t.Fatal("start not drawn")
	}
	err := b.SetPositionString("garbage", false)
	var fe *base.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("want FormatError, got %v", err)
	}
	if len(*reports) != 1 || (*reports)[0].code != diag.CodeInvalidPosition {
		t.Fatalf("reports = %v", *reports)
	}
	if b.FEN() != base.FEN_START_GAME {
		t.Fatal("failed call changed the board")
	}
}

func TestMoveSkipsMalformed(t *testing.T) {
	ends := 0
	b, r, reports := newBoard(t, startConfig(), Hooks{OnMoveEnd: func(before, after base.Position) { ends++ }})
	next := b.Move(true, "e2-e4", "bogus", "g8-f6")
	if len(*reports) != 1 || (*reports)[0].code != diag.CodeInvalidMove || (*reports)[0].value != "bogus" {
		t.Fatalf("reports = %v", *reports)
	}
	want := "rnbqkb1r/pppppppp/5n2/8/4P3/8/PPPP1PPP/RNBQKBNR"
	if b.FEN() != want || !next.Equal(b.Position()) {
		t.Fatalf("FEN = %q", b.FEN())
	}
	if r.animSteps != 2 || ends != 1 {
		t.Fatalf("steps=%d ends=%d", r.animSteps, ends)
	}
}

func TestOrientation(t *testing.T) {
	b, r, reports := newBoard(t, nil, Hooks{})
	if b.Orientation() != base.OrientWhite {
		t.Fatal("default orientation is not white")
	}
	b.Flip()
	if b.Orientation() != base.OrientBlack || r.boards[len(r.boards)-1] != base.OrientBlack {
		t.Fatal("flip did not redraw black")
	}
	if err := b.SetOrientation("white"); err != nil || b.Orientation() != base.OrientWhite {
		t.Fatal("set white failed")
	}
	if err := b.SetOrientation("upside"); err == nil {
		t.Fatal("bad orientation accepted")
	}
	if len(*reports) != 1 || (*reports)[0].code != diag.CodeInvalidOrientation {
		t.Fatalf("reports = %v", *reports)
	}
}

func TestClearAndStart(t *testing.T) {
	changes := 0
	b, _, _ := newBoard(t, startConfig(), Hooks{OnChange: func(before, after base.Position) { changes++ }})
	if err := b.Clear(false); err != nil || len(b.Position()) != 0 {
		t.Fatal("clear failed")
	}
	if err := b.Clear(false); err != nil || changes != 1 {
		t.Fatalf("second clear notified: %d", changes)
	}
	if err := b.Start(true); err != nil || b.FEN() != base.FEN_START_GAME || changes != 2 {
		t.Fatal("start failed")
	}
}

func TestDragThroughBoard(t *testing.T) {
	var dropped drag.DropEvent
	hooks := Hooks{}
	hooks.OnDrop = func(ev drag.DropEvent) drag.DropDecision {
		dropped = ev
		return drag.Accept
	}
	b, r, _ := newBoard(t, startConfig(), hooks)

	e2, _ := base.SquareFromAlgebraic("e2")
	x, y := center("e2")
	if !b.PointerDownSquare(e2, x, y) || !r.floating {
		t.Fatal("drag did not start")
	}
	b.PointerMove(center("e4"))
	action, ok := b.PointerUp(center("e4"))
	if !ok || action != drag.Drop {
		t.Fatalf("got %v %v", action, ok)
	}
	if b.FEN() != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR" {
		t.Fatalf("FEN = %q", b.FEN())
	}
	if dropped.Origin.Square != e2 || dropped.Piece != base.WPawn {
		t.Fatalf("OnDrop got %+v", dropped)
	}
}

func TestPointerDownIgnoredWhenNotDraggable(t *testing.T) {
	c := startConfig()
	c.Draggable = false
	b, _, _ := newBoard(t, c, Hooks{})
	e2, _ := base.SquareFromAlgebraic("e2")
	if b.PointerDownSquare(e2, 0, 0) {
		t.Fatal("drag started on a board that is not draggable")
	}
	if b.PointerDownSpare(base.WQueen, 0, 0) {
		t.Fatal("spare drag started without spare pieces")
	}
	e4, _ := base.SquareFromAlgebraic("e4")
	c.Draggable = true
	b, _, _ = newBoard(t, c, Hooks{})
	if b.PointerDownSquare(e4, 0, 0) {
		t.Fatal("drag started from an empty square")
	}
}

func TestSpareDragOffboardTrashes(t *testing.T) {
	c := config.Default()
	c.SparePieces = true
	b, _, _ := newBoard(t, &c, Hooks{})
	if !b.PointerDownSpare(base.WQueen, -20, -20) {
		t.Fatal("spare drag did not start")
	}
	if action, _ := b.PointerUp(-20, -20); action != drag.Trash {
		t.Fatalf("got %v, want trash", action)
	}
	b.PointerDownSpare(base.WQueen, -20, -20)
	b.PointerUp(center("d4"))
	if b.FEN() != "8/8/8/8/3Q4/8/8/8" {
		t.Fatalf("FEN = %q", b.FEN())
	}
}

func TestHover(t *testing.T) {
	var over []string
	hooks := Hooks{OnMouseoverSquare: func(sq base.Square, piece base.Piece, hasPiece bool, pos base.Position, o base.Orientation) {
		if hasPiece {
			over = append(over, sq.String()+"="+piece.Code())
		} else {
			over = append(over, sq.String())
		}
	}}
	b, _, _ := newBoard(t, startConfig(), hooks)
	e2, _ := base.SquareFromAlgebraic("e2")
	e4, _ := base.SquareFromAlgebraic("e4")
	b.PointerEnter(e2)
	b.PointerEnter(e4)

	x, y := center("e2")
	b.PointerDownSquare(e2, x, y)
	b.PointerEnter(e4)
	if len(over) != 2 || over[0] != "e2=wP" || over[1] != "e4" {
		t.Fatalf("over = %v", over)
	}
}

func TestDestroy(t *testing.T) {
	b, r, _ := newBoard(t, startConfig(), Hooks{})
	b.Destroy()
	if !r.destroyed || !b.Destroyed() {
		t.Fatal("renderer not destroyed")
	}
	draws := len(r.draws)
	b.Clear(false)
	b.Resize()
	b.Flip()
	if len(r.draws) != draws || r.resized != 0 || b.FEN() != base.FEN_START_GAME {
		t.Fatal("calls after destroy had effects")
	}
}
