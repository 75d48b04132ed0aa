package state

import (
	"errors"
	"evilboard/src/base"
	"evilboard/src/logic/animate"
	"evilboard/src/logic/convert/convfen"
	"testing"
	"time"
)

type fakeRenderer struct {
	draws   []base.Position
	pending []func()
	steps   int
}

func (f *fakeRenderer) DrawPosition(pos base.Position) { f.draws = append(f.draws, pos) }

func (f *fakeRenderer) AnimateMove(from, to base.Square, piece base.Piece, d time.Duration, done func()) {
	f.steps++
	f.pending = append(f.pending, done)
}

func (f *fakeRenderer) AnimateAdd(sq base.Square, piece base.Piece, fromSpare bool, d time.Duration, done func()) {
	f.steps++
	f.pending = append(f.pending, done)
}

func (f *fakeRenderer) AnimateClear(sq base.Square, piece base.Piece, d time.Duration, done func()) {
	f.steps++
	f.pending = append(f.pending, done)
}

func (f *fakeRenderer) finishAll() {
	p := f.pending
	f.pending = nil
	for _, done := range p {
		done()
	}
}

func e4() base.Position {
	pos, _ := convfen.ConvertFENToPosition("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR")
	return pos
}

func TestSetPositionInstant(t *testing.T) {
	r := &fakeRenderer{}
	changes := 0
	c := NewController(r, Options{}, Hooks{OnChange: func(before, after base.Position) { changes++ }}, nil)

	changed, err := c.SetPosition(convfen.StartPosition(), false)
	if err != nil || !changed {
		t.Fatalf("changed=%v err=%v", changed, err)
	}
	if c.FEN() != base.FEN_START_GAME {
		t.Fatalf("FEN = %q", c.FEN())
	}
	if len(r.draws) != 1 || r.steps != 0 {
		t.Fatalf("draws=%d steps=%d", len(r.draws), r.steps)
	}

	changed, _ = c.SetPosition(convfen.StartPosition(), false)
	if changed || changes != 1 || len(r.draws) != 1 {
		t.Fatalf("second identical call changed=%v changes=%d draws=%d", changed, changes, len(r.draws))
	}
}

func TestSetPositionAnimatedIdempotent(t *testing.T) {
	r := &fakeRenderer{}
	changes, ends := 0, 0
	c := NewController(r, Options{}, Hooks{
		OnChange:  func(before, after base.Position) { changes++ },
		OnMoveEnd: func(before, after base.Position) { ends++ },
	}, nil)
	if err := c.Load(convfen.StartPosition()); err != nil {
		t.Fatal(err)
	}

	if _, err := c.SetPosition(e4(), true); err != nil {
		t.Fatal(err)
	}
	if _, err := c.SetPosition(e4(), true); err != nil {
		t.Fatal(err)
	}
	if changes != 1 || r.steps != 1 || c.InFlight() != 1 {
		t.Fatalf("changes=%d steps=%d inflight=%d", changes, r.steps, c.InFlight())
	}
}

func TestStateUpdatesBeforeAnimationEnds(t *testing.T) {
	r := &fakeRenderer{}
	var endBefore, endAfter base.Position
	c := NewController(r, Options{}, Hooks{
		OnMoveEnd: func(before, after base.Position) { endBefore, endAfter = before, after },
	}, nil)
	_ = c.Load(convfen.StartPosition())

	c.SetPosition(e4(), true)
	if c.FEN() != convfenOf(e4()) {
		t.Fatal("stored position did not change before the animation finished")
	}
	if endAfter != nil || len(r.draws) != 0 {
		t.Fatal("batch finished before its steps completed")
	}

	r.finishAll()
	if c.InFlight() != 0 {
		t.Fatalf("inflight = %d", c.InFlight())
	}
	if len(r.draws) != 1 || !r.draws[0].Equal(e4()) {
		t.Fatalf("final redraw = %v", r.draws)
	}
	if !endBefore.Equal(convfen.StartPosition()) || !endAfter.Equal(e4()) {
		t.Fatalf("OnMoveEnd got %v -> %v", endBefore, endAfter)
	}
}

func convfenOf(p base.Position) string { return convfen.ConvertPositionToFEN(p) }

func TestHooksReceiveCopies(t *testing.T) {
	r := &fakeRenderer{}
	c := NewController(r, Options{}, Hooks{OnChange: func(before, after base.Position) {
		for sq := range after {
			delete(after, sq)
		}
		before[0] = base.BKing
	}}, nil)
	c.SetPosition(convfen.StartPosition(), false)
	if c.FEN() != base.FEN_START_GAME {
		t.Fatal("hook mutation reached the controller")
	}
	p := c.Position()
	delete(p, 0)
	if len(c.Position()) != 32 {
		t.Fatal("Position() is not a copy")
	}
}

func TestSetPositionRejectsInvalid(t *testing.T) {
	r := &fakeRenderer{}
	c := NewController(r, Options{}, Hooks{}, nil)
	_ = c.Load(convfen.StartPosition())

	_, err := c.SetPosition(base.Position{base.Offboard: base.WKing}, true)
	var ve *base.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if c.FEN() != base.FEN_START_GAME || r.steps != 0 || len(r.draws) != 0 {
		t.Fatal("invalid position was partially applied")
	}
}

func TestOverlappingBatches(t *testing.T) {
	r := &fakeRenderer{}
	ends := 0
	c := NewController(r, Options{Speeds: animate.Speeds{Move: time.Millisecond}}, Hooks{
		OnMoveEnd: func(before, after base.Position) { ends++ },
	}, nil)
	_ = c.Load(convfen.StartPosition())

	c.SetPosition(e4(), true)
	c.SetPosition(base.Position{}, true)
	if c.InFlight() != 2 || len(c.Position()) != 0 {
		t.Fatalf("inflight=%d pos=%v", c.InFlight(), c.Position())
	}
	r.finishAll()
	if ends != 2 || c.InFlight() != 0 {
		t.Fatalf("ends=%d inflight=%d", ends, c.InFlight())
	}
	// every final redraw shows the last position set
	for _, d := range r.draws {
		if len(d) != 0 {
			t.Fatalf("redraw showed a stale position %v", d)
		}
	}
}
