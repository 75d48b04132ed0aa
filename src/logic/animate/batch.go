package animate

import (
	"evilboard/src/base"
	"evilboard/src/logx"
	"time"

	"github.com/google/uuid"
)

// Animator draws single steps. Each call must invoke done exactly once, on
// the goroutine that drives the board.
type Animator interface {
	AnimateMove(from, to base.Square, piece base.Piece, d time.Duration, done func())
	AnimateAdd(sq base.Square, piece base.Piece, fromSpare bool, d time.Duration, done func())
	AnimateClear(sq base.Square, piece base.Piece, d time.Duration, done func())
}

type Speeds struct {
	Move   time.Duration
	Appear time.Duration
	Trash  time.Duration
}

// Batch is one planned update. Its steps run in parallel and it finishes
// once, after the last of them completes.
type Batch struct {
	ID     string
	Steps  []Step
	Before base.Position
	After  base.Position

	total    int
	finished int
	done     bool
	onFinish func(*Batch)
	logger   logx.Logger
}

func NewBatch(before, after base.Position, logger logx.Logger) *Batch {
	if logger == nil {
		logger = logx.NewNop()
	}
	steps := Plan(before, after)
	return &Batch{
		ID:     uuid.NewString(),
		Steps:  steps,
		Before: before.Clone(),
		After:  after.Clone(),
		total:  len(steps),
		logger: logger,
	}
}

func (b *Batch) Empty() bool { return b.total == 0 }

// Done reports whether onFinish has run.
func (b *Batch) Done() bool { return b.done }

// Run starts every step. Nothing is drawn and onFinish never runs for an
// empty batch.
func (b *Batch) Run(a Animator, sp Speeds, fromSpare bool, onFinish func(*Batch)) {
	if b.total == 0 {
		return
	}
	b.onFinish = onFinish
	b.logger.Debugf("batch %s: %d steps", b.ID, b.total)

	for _, s := range b.Steps {
		switch s.Kind {
		case StepMove:
			a.AnimateMove(s.From, s.To, s.Piece, sp.Move, b.complete)
		case StepAdd:
			// a spare piece travels like a move, a plain add fades in
			d := sp.Appear
			if fromSpare {
				d = sp.Move
			}
			a.AnimateAdd(s.To, s.Piece, fromSpare, d, b.complete)
		case StepClear:
			a.AnimateClear(s.From, s.Piece, sp.Trash, b.complete)
		}
	}
}

func (b *Batch) complete() {
	if b.done {
		b.logger.Warnf("batch %s: completion after finish ignored", b.ID)
		return
	}
	b.finished++
	if b.finished < b.total {
		return
	}
	b.done = true
	b.logger.Debugf("batch %s: finished", b.ID)
	if b.onFinish != nil {
		b.onFinish(b)
	}
}
