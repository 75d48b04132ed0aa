package src

import (
	"evilboard/src/base"
	"evilboard/src/config"
	"evilboard/src/diag"
	"evilboard/src/logic/animate"
	"evilboard/src/logic/convert/convfen"
	"evilboard/src/logic/convert/convmove"
	"evilboard/src/logic/drag"
	"evilboard/src/logic/state"
	"evilboard/src/logx"
	"strings"
)

// Renderer draws a board. All done callbacks must run on the goroutine that
// calls into the Board.
type Renderer interface {
	state.Renderer
	drag.Surface
	DrawBoard(o base.Orientation, showNotation, sparePieces bool)
	Resize()
	Destroy()
}

type HoverFunc func(sq base.Square, piece base.Piece, hasPiece bool, pos base.Position, o base.Orientation)

// Hooks are all optional. Positions handed to them are copies.
type Hooks struct {
	drag.Hooks
	OnChange          func(before, after base.Position)
	OnMoveEnd         func(before, after base.Position)
	OnMouseoverSquare HoverFunc
	OnMouseoutSquare  HoverFunc
}

// Board is the assembled widget. It is not safe for concurrent use.
type Board struct {
	cfg      config.Config
	render   Renderer
	hooks    Hooks
	reporter diag.Reporter
	logger   logx.Logger

	ctrl        *state.Controller
	drag        *drag.Machine
	orientation base.Orientation
	destroyed   bool
}

// NewBoard corrects cfg, resolves the starting position and draws it. A nil
// cfg means defaults; a nil reporter follows cfg.ShowErrors.
func NewBoard(cfg *config.Config, r Renderer, hooks Hooks, reporter diag.Reporter, logger logx.Logger) (*Board, error) {
	if r == nil {
		return nil, &base.ConfigurationError{Field: "renderer", Reason: "missing"}
	}
	if logger == nil {
		logger = logx.NewNop()
	}
	c := config.Default()
	if cfg != nil {
		c = *cfg
	}
	if reporter == nil {
		reporter = diag.FromName(c.ShowErrors, logger)
	}
	c.Correct(reporter)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	b := &Board{
		cfg:         c,
		render:      r,
		hooks:       hooks,
		reporter:    reporter,
		logger:      logger,
		orientation: c.OrientationValue(),
	}
	b.ctrl = state.NewController(r, state.Options{
		Speeds: animate.Speeds{
			Move:   c.MoveSpeed.Duration(),
			Appear: c.AppearSpeed.Duration(),
			Trash:  c.TrashSpeed.Duration(),
		},
		SparePieces: c.SparePieces,
	}, state.Hooks{OnChange: hooks.OnChange, OnMoveEnd: hooks.OnMoveEnd}, logger)

	offBoard := drag.Snapback
	if c.DropOffBoard == config.DropTrash {
		offBoard = drag.Trash
	}
	b.drag = drag.NewMachine(r, boardStore{b}, drag.Options{
		OffBoard: offBoard,
		Speeds: drag.Speeds{
			Snap:     c.SnapSpeed.Duration(),
			Snapback: c.SnapbackSpeed.Duration(),
			Trash:    c.TrashSpeed.Duration(),
		},
		Throttle: config.Speed(c.DragThrottleRate).Duration(),
	}, hooks.Hooks, logger)

	if c.Position.IsSet() {
		pos, err := c.Position.Resolve()
		if err == nil {
			err = b.ctrl.Load(pos)
		}
		if err != nil {
			reporter.Report(diag.CodeInvalidStart, "Invalid value passed to config.position.", describeStart(c.Position))
		}
	}

	b.drawBoard()
	logger.Debugf("board ready: %s, %s", b.orientation, b.ctrl.FEN())
	return b, nil
}

// Config returns the corrected configuration.
func (b *Board) Config() config.Config { return b.cfg }

func (b *Board) Position() base.Position { return b.ctrl.Position() }

func (b *Board) FEN() string { return b.ctrl.FEN() }

// SetPosition replaces the position. An invalid pos is reported and leaves
// the board unchanged.
func (b *Board) SetPosition(pos base.Position, animated bool) error {
	if b.destroyed {
		return nil
	}
	if _, err := b.ctrl.SetPosition(pos, animated); err != nil {
		b.reporter.Report(diag.CodeInvalidPosition, "Invalid value passed to the position method.", pos.String())
		return err
	}
	return nil
}

// SetPositionString accepts "start" or compact notation.
func (b *Board) SetPositionString(s string, animated bool) error {
	if b.destroyed {
		return nil
	}
	pos, err := parsePositionString(s)
	if err != nil {
		b.reporter.Report(diag.CodeInvalidPosition, "Invalid value passed to the position method.", s)
		return err
	}
	return b.SetPosition(pos, animated)
}

func parsePositionString(s string) (base.Position, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "start":
		return convfen.StartPosition(), nil
	case "fen":
		return nil, &base.ValidationError{Kind: "position", Value: s, Reason: "fen reads the position, use FEN()"}
	}
	return convfen.ConvertFENToPosition(s)
}

// Move applies "e2-e4" moves. Malformed ones are reported and skipped. The
// resulting position is returned.
func (b *Board) Move(animated bool, moves ...string) base.Position {
	if b.destroyed {
		return b.ctrl.Position()
	}
	parsed := make([]convmove.Move, 0, len(moves))
	for _, s := range moves {
		mv, err := convmove.ParseMove(s)
		if err != nil {
			b.reporter.Report(diag.CodeInvalidMove, "Invalid move passed to the move method.", s)
			continue
		}
		parsed = append(parsed, mv)
	}
	next := convmove.ApplyMoves(b.ctrl.Position(), parsed)
	if err := b.SetPosition(next, animated); err != nil {
		b.logger.Errorf("move: %v", err)
	}
	return next
}

func (b *Board) Clear(animated bool) error { return b.SetPosition(base.Position{}, animated) }

func (b *Board) Start(animated bool) error { return b.SetPosition(convfen.StartPosition(), animated) }

func (b *Board) Orientation() base.Orientation { return b.orientation }

// SetOrientation accepts "white", "black" or "flip" and redraws the board.
func (b *Board) SetOrientation(s string) error {
	if b.destroyed {
		return nil
	}
	var o base.Orientation
	if s == "flip" {
		o = b.orientation.Flip()
	} else {
		var err error
		if o, err = base.ParseOrientation(s); err != nil {
			b.reporter.Report(diag.CodeInvalidOrientation, "Invalid value passed to the orientation method.", s)
			return err
		}
	}
	b.orientation = o
	b.drawBoard()
	return nil
}

func (b *Board) Flip() { _ = b.SetOrientation("flip") }

// Resize recomputes the layout and redraws.
func (b *Board) Resize() {
	if b.destroyed {
		return
	}
	b.render.Resize()
	b.drawBoard()
}

// Destroy releases the renderer. Every later call is a no-op.
func (b *Board) Destroy() {
	if b.destroyed {
		return
	}
	b.drag.Abort()
	b.render.Destroy()
	b.destroyed = true
	b.logger.Debug("board destroyed")
}

func (b *Board) Destroyed() bool { return b.destroyed }

func (b *Board) Dragging() bool { return b.drag.Dragging() }

// PointerDownSquare starts a drag from sq when the board is draggable and
// sq holds a piece.
func (b *Board) PointerDownSquare(sq base.Square, x, y int) bool {
	if b.destroyed || !b.cfg.Draggable {
		return false
	}
	pc, ok := b.ctrl.Position()[sq]
	if !ok {
		return false
	}
	return b.drag.Start(drag.FromSquare(sq), pc, x, y)
}

// PointerDownSpare starts a drag out of the spare pool.
func (b *Board) PointerDownSpare(piece base.Piece, x, y int) bool {
	if b.destroyed || !b.cfg.SparePieces {
		return false
	}
	return b.drag.Start(drag.FromSpare(), piece, x, y)
}

func (b *Board) PointerMove(x, y int) {
	if b.destroyed {
		return
	}
	b.drag.Update(x, y)
}

// PointerUp ends a drag; ok is false when nothing was being dragged.
func (b *Board) PointerUp(x, y int) (drag.Action, bool) {
	if b.destroyed {
		return drag.Drop, false
	}
	return b.drag.Stop(x, y)
}

func (b *Board) PointerEnter(sq base.Square) { b.hover(sq, b.hooks.OnMouseoverSquare) }

func (b *Board) PointerLeave(sq base.Square) { b.hover(sq, b.hooks.OnMouseoutSquare) }

func (b *Board) hover(sq base.Square, fn HoverFunc) {
	if b.destroyed || fn == nil || b.drag.Dragging() || !sq.Valid() {
		return
	}
	pos := b.ctrl.Position()
	pc, ok := pos[sq]
	fn(sq, pc, ok, pos, b.orientation)
}

// Tick must be called once per frame while the host runs.
func (b *Board) Tick() {
	if b.destroyed {
		return
	}
	b.drag.Tick()
}

func (b *Board) drawBoard() {
	b.render.DrawBoard(b.orientation, b.cfg.ShowNotation, b.cfg.SparePieces)
	b.render.DrawPosition(b.ctrl.Position())
}

func describeStart(sp config.StartPosition) any {
	if sp.Object != nil {
		return sp.Object
	}
	return sp.Raw
}

type boardStore struct{ b *Board }

func (s boardStore) Position() base.Position { return s.b.ctrl.Position() }

func (s boardStore) Commit(pos base.Position) (bool, error) { return s.b.ctrl.Commit(pos) }

func (s boardStore) Orientation() base.Orientation { return s.b.orientation }
