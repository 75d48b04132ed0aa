package drag

import (
	"evilboard/src/base"
	"evilboard/src/logx"
	"image"
	"time"
)

// Origin is where a dragged piece came from: a board square or the spare
// pool.
type Origin struct {
	Square base.Square
	Spare  bool
}

func FromSquare(sq base.Square) Origin { return Origin{Square: sq} }

func FromSpare() Origin { return Origin{Square: base.Offboard, Spare: true} }

func (o Origin) String() string {
	if o.Spare {
		return "spare"
	}
	return o.Square.String()
}

type State uint8

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

type Action uint8

const (
	Drop Action = iota
	Snapback
	Trash
)

func (a Action) String() string {
	switch a {
	case Snapback:
		return "snapback"
	case Trash:
		return "trash"
	}
	return "drop"
}

type StartDecision uint8

const (
	Proceed StartDecision = iota
	Cancel
)

type DropDecision uint8

const (
	Accept DropDecision = iota
	ForceSnapback
	ForceTrash
)

type Highlight uint8

const (
	HighlightSource Highlight = iota
	HighlightTarget
)

// DropEvent is handed to OnDrop. Target is base.Offboard when the pointer
// left the board; NewPosition is what Drop or Trash would leave behind.
type DropEvent struct {
	Origin      Origin
	Target      base.Square
	Piece       base.Piece
	NewPosition base.Position
	OldPosition base.Position
	Orientation base.Orientation
}

type Hooks struct {
	OnDragStart   func(origin Origin, piece base.Piece, pos base.Position, o base.Orientation) StartDecision
	OnDragMove    func(location, previous base.Square, origin Origin, piece base.Piece, pos base.Position, o base.Orientation)
	OnDrop        func(ev DropEvent) DropDecision
	OnSnapEnd     func(origin Origin, target base.Square, piece base.Piece)
	OnSnapbackEnd func(piece base.Piece, origin Origin, pos base.Position, o base.Orientation)
}

// Surface is the part of a renderer a drag talks to. Done callbacks run on
// the goroutine that drives the machine.
type Surface interface {
	// SquareRects is indexed by base.Square.
	SquareRects() [64]image.Rectangle
	// ShowDraggedPiece hides the piece on a board origin and floats piece
	// under the pointer.
	ShowDraggedPiece(piece base.Piece, origin Origin, x, y int)
	MoveDraggedPiece(x, y int)
	SetHighlight(sq base.Square, h Highlight, on bool)
	ClearHighlights()
	SnapDraggedPiece(to base.Square, d time.Duration, done func())
	ReturnDraggedPiece(to base.Square, d time.Duration, done func())
	TrashDraggedPiece(d time.Duration)
	DrawPosition(pos base.Position)
}

// Store holds the authoritative position.
type Store interface {
	Position() base.Position
	Commit(pos base.Position) (bool, error)
	Orientation() base.Orientation
}

type Speeds struct {
	Snap     time.Duration
	Snapback time.Duration
	Trash    time.Duration
}

type Options struct {
	// OffBoard is the default action for a drop outside the board:
	// Snapback or Trash.
	OffBoard Action
	Speeds   Speeds
	Throttle time.Duration
	Now      func() time.Time
}

type session struct {
	origin   Origin
	piece    base.Piece
	location base.Square
}

// Machine runs one drag at a time.
type Machine struct {
	surface Surface
	store   Store
	hooks   Hooks
	opts    Options
	logger  logx.Logger

	throttle *Throttle
	state    State
	sess     session
	rects    [64]image.Rectangle
}

func NewMachine(s Surface, st Store, opts Options, hooks Hooks, logger logx.Logger) *Machine {
	if logger == nil {
		logger = logx.NewNop()
	}
	if opts.OffBoard != Trash {
		opts.OffBoard = Snapback
	}
	m := &Machine{
		surface: s,
		store:   st,
		hooks:   hooks,
		opts:    opts,
		logger:  logger,
	}
	m.throttle = NewThrottle(opts.Throttle, opts.Now, m.track)
	return m
}

func (m *Machine) State() State { return m.state }

func (m *Machine) Dragging() bool { return m.state == Dragging }

// Session returns the current drag; ok is false when idle.
func (m *Machine) Session() (origin Origin, piece base.Piece, location base.Square, ok bool) {
	if m.state != Dragging {
		return Origin{}, base.EmptyPiece, base.Offboard, false
	}
	return m.sess.origin, m.sess.piece, m.sess.location, true
}

// Start begins a drag and reports whether it did. A running drag is never
// replaced.
func (m *Machine) Start(origin Origin, piece base.Piece, x, y int) bool {
	if m.state == Dragging {
		m.logger.Warnf("drag: start from %s while dragging ignored", origin)
		return false
	}
	if !piece.Valid() || (!origin.Spare && !origin.Square.Valid()) {
		return false
	}
	if m.hooks.OnDragStart != nil {
		if m.hooks.OnDragStart(origin, piece, m.store.Position(), m.store.Orientation()) == Cancel {
			m.logger.Debugf("drag: start from %s cancelled", origin)
			return false
		}
	}

	m.state = Dragging
	m.sess = session{origin: origin, piece: piece, location: base.Offboard}
	if !origin.Spare {
		m.sess.location = origin.Square
	}
	m.rects = m.surface.SquareRects()
	m.throttle.Reset()

	m.surface.ShowDraggedPiece(piece, origin, x, y)
	if !origin.Spare {
		m.surface.SetHighlight(origin.Square, HighlightSource, true)
	}
	m.logger.Debugf("drag: %s from %s", piece.Code(), origin)
	return true
}

// Update feeds a pointer move through the throttle.
func (m *Machine) Update(x, y int) {
	if m.state != Dragging {
		return
	}
	m.throttle.Call(x, y)
}

// Tick releases a coalesced pointer move once its interval is over.
func (m *Machine) Tick() {
	if m.state != Dragging {
		return
	}
	m.throttle.Flush()
}

func (m *Machine) track(x, y int) {
	if m.state != Dragging {
		return
	}
	m.surface.MoveDraggedPiece(x, y)

	loc := m.locate(x, y)
	if loc == m.sess.location {
		return
	}
	prev := m.sess.location
	if prev.Valid() {
		m.surface.SetHighlight(prev, HighlightTarget, false)
	}
	if loc.Valid() {
		m.surface.SetHighlight(loc, HighlightTarget, true)
	}
	if m.hooks.OnDragMove != nil {
		m.hooks.OnDragMove(loc, prev, m.sess.origin, m.sess.piece, m.store.Position(), m.store.Orientation())
	}
	m.sess.location = loc
}

// Stop ends the drag at the pointer and returns the action taken.
func (m *Machine) Stop(x, y int) (Action, bool) {
	if m.state != Dragging {
		return Drop, false
	}
	m.throttle.Reset()
	sess := m.sess
	target := m.locate(x, y)

	action := Drop
	if !target.Valid() {
		action = m.opts.OffBoard
	}

	if m.hooks.OnDrop != nil {
		old := m.store.Position()
		ev := DropEvent{
			Origin:      sess.origin,
			Target:      target,
			Piece:       sess.piece,
			NewPosition: resolve(old, sess, target),
			OldPosition: old.Clone(),
			Orientation: m.store.Orientation(),
		}
		switch m.hooks.OnDrop(ev) {
		case ForceSnapback:
			action = Snapback
		case ForceTrash:
			action = Trash
		}
	}
	// nowhere to return a spare piece to
	if action == Snapback && sess.origin.Spare {
		action = Trash
	}

	m.surface.ClearHighlights()
	m.state = Idle
	m.sess = session{}
	m.logger.Debugf("drag: %s %s -> %s: %s", sess.piece.Code(), sess.origin, target, action)

	switch action {
	case Drop:
		m.drop(sess, target)
	case Snapback:
		m.snapback(sess)
	case Trash:
		m.trash(sess)
	}
	return action, true
}

// Abort drops a running drag without callbacks and restores the board.
func (m *Machine) Abort() {
	if m.state != Dragging {
		return
	}
	m.throttle.Reset()
	m.state = Idle
	m.sess = session{}
	m.surface.ClearHighlights()
	m.surface.DrawPosition(m.store.Position())
}

func (m *Machine) drop(sess session, target base.Square) {
	next := m.store.Position()
	if !sess.origin.Spare {
		delete(next, sess.origin.Square)
	}
	next[target] = sess.piece
	m.commit(next)

	m.surface.SnapDraggedPiece(target, m.opts.Speeds.Snap, func() {
		m.surface.DrawPosition(m.store.Position())
		if m.hooks.OnSnapEnd != nil {
			m.hooks.OnSnapEnd(sess.origin, target, sess.piece)
		}
	})
}

func (m *Machine) snapback(sess session) {
	m.surface.ReturnDraggedPiece(sess.origin.Square, m.opts.Speeds.Snapback, func() {
		m.surface.DrawPosition(m.store.Position())
		if m.hooks.OnSnapbackEnd != nil {
			m.hooks.OnSnapbackEnd(sess.piece, sess.origin, m.store.Position(), m.store.Orientation())
		}
	})
}

func (m *Machine) trash(sess session) {
	next := m.store.Position()
	if !sess.origin.Spare {
		delete(next, sess.origin.Square)
	}
	m.commit(next)
	m.surface.DrawPosition(m.store.Position())
	m.surface.TrashDraggedPiece(m.opts.Speeds.Trash)
}

func (m *Machine) commit(pos base.Position) {
	if _, err := m.store.Commit(pos); err != nil {
		m.logger.Errorf("drag: commit: %v", err)
	}
}

func (m *Machine) locate(x, y int) base.Square {
	pt := image.Pt(x, y)
	for i, r := range m.rects {
		if pt.In(r) {
			return base.Square(i)
		}
	}
	return base.Offboard
}

// resolve is the position a Drop (target on the board) or Trash (target
// off it) leaves.
func resolve(pos base.Position, sess session, target base.Square) base.Position {
	next := pos.Clone()
	if !sess.origin.Spare {
		delete(next, sess.origin.Square)
	}
	if target.Valid() {
		next[target] = sess.piece
	}
	return next
}
