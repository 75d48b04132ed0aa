package state

import (
	"evilboard/src/base"
	"evilboard/src/logic/animate"
	"evilboard/src/logic/convert/convfen"
	"evilboard/src/logx"
)

type Renderer interface {
	animate.Animator
	DrawPosition(pos base.Position)
}

// Hooks receive copies; mutating them never reaches the controller.
type Hooks struct {
	OnChange  func(before, after base.Position)
	OnMoveEnd func(before, after base.Position)
}

type Options struct {
	Speeds animate.Speeds
	// adds animate out of the spare pool instead of fading in
	SparePieces bool
}

// Controller owns the authoritative position.
type Controller struct {
	current base.Position
	render  Renderer
	hooks   Hooks
	opts    Options
	logger  logx.Logger

	running map[string]*animate.Batch
}

func NewController(r Renderer, opts Options, hooks Hooks, logger logx.Logger) *Controller {
	if logger == nil {
		logger = logx.NewNop()
	}
	return &Controller{
		current: base.Position{},
		render:  r,
		hooks:   hooks,
		opts:    opts,
		logger:  logger,
		running: make(map[string]*animate.Batch),
	}
}

func (c *Controller) Position() base.Position { return c.current.Clone() }

func (c *Controller) FEN() string { return convfen.ConvertPositionToFEN(c.current) }

// InFlight is the number of batches still animating.
func (c *Controller) InFlight() int { return len(c.running) }

// Load replaces the position without drawing or notifying.
func (c *Controller) Load(pos base.Position) error {
	if err := pos.Validate(); err != nil {
		return err
	}
	c.current = pos.Clone()
	return nil
}

// Commit stores candidate without drawing and fires OnChange when the
// position actually changed.
func (c *Controller) Commit(candidate base.Position) (bool, error) {
	if err := candidate.Validate(); err != nil {
		return false, err
	}
	if convfen.ConvertPositionToFEN(candidate) == c.FEN() {
		return false, nil
	}
	before := c.current
	c.current = candidate.Clone()
	c.logger.Debugf("position %s -> %s", convfen.ConvertPositionToFEN(before), c.FEN())
	if c.hooks.OnChange != nil {
		c.hooks.OnChange(before.Clone(), c.current.Clone())
	}
	return true, nil
}

// SetPosition validates and stores candidate, then animates the difference
// or redraws at once. The stored position changes before any animation ends.
func (c *Controller) SetPosition(candidate base.Position, animated bool) (bool, error) {
	if err := candidate.Validate(); err != nil {
		return false, err
	}
	if convfen.ConvertPositionToFEN(candidate) == c.FEN() {
		return false, nil
	}
	before := c.current.Clone()
	if !animated {
		changed, err := c.Commit(candidate)
		if changed {
			c.render.DrawPosition(c.current.Clone())
		}
		return changed, err
	}

	batch := animate.NewBatch(before, candidate, c.logger)
	changed, err := c.Commit(candidate)
	if !changed || err != nil {
		return changed, err
	}
	if batch.Empty() {
		return true, nil
	}
	c.running[batch.ID] = batch
	batch.Run(c.render, c.opts.Speeds, c.opts.SparePieces, c.finish)
	return true, nil
}

func (c *Controller) finish(b *animate.Batch) {
	delete(c.running, b.ID)
	// pixel-exact end state; a newer batch may have moved the position on
	c.render.DrawPosition(c.current.Clone())
	if c.hooks.OnMoveEnd != nil {
		c.hooks.OnMoveEnd(b.Before.Clone(), b.After.Clone())
	}
}
