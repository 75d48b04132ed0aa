package animate

import (
	"evilboard/src/base"
	"evilboard/src/logic/radius"
	"fmt"
)

type StepKind uint8

const (
	StepMove StepKind = iota
	StepAdd
	StepClear
)

func (k StepKind) String() string {
	switch k {
	case StepMove:
		return "move"
	case StepAdd:
		return "add"
	case StepClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Step is one visual transition. Move uses From and To, Add uses To, Clear
// uses From.
type Step struct {
	Kind  StepKind
	From  base.Square
	To    base.Square
	Piece base.Piece
}

func MoveStep(from, to base.Square, p base.Piece) Step {
	return Step{Kind: StepMove, From: from, To: to, Piece: p}
}

func AddStep(sq base.Square, p base.Piece) Step {
	return Step{Kind: StepAdd, From: base.Offboard, To: sq, Piece: p}
}

func ClearStep(sq base.Square, p base.Piece) Step {
	return Step{Kind: StepClear, From: sq, To: base.Offboard, Piece: p}
}

// Square is the square an Add fills or a Clear empties.
func (s Step) Square() base.Square {
	if s.Kind == StepClear {
		return s.From
	}
	return s.To
}

func (s Step) String() string {
	switch s.Kind {
	case StepMove:
		return fmt.Sprintf("move %s %s-%s", s.Piece, s.From, s.To)
	case StepAdd:
		return fmt.Sprintf("add %s %s", s.Piece, s.To)
	case StepClear:
		return fmt.Sprintf("clear %s %s", s.Piece, s.From)
	}
	return "unknown"
}

// Plan computes the steps that turn before into after: moves first, then
// adds, then clears. Squares are visited in notation order so the result is
// deterministic. Matching is greedy nearest-piece, not a minimum-cost
// assignment.
func Plan(before, after base.Position) []Step {
	oldPos := before.Clone()
	newPos := after.Clone()

	// unchanged squares
	for _, sq := range newPos.Squares() {
		if pc, ok := oldPos[sq]; ok && pc == newPos[sq] {
			delete(oldPos, sq)
			delete(newPos, sq)
		}
	}

	var steps []Step
	movedTo := make(map[base.Square]bool)

	for _, sq := range newPos.Squares() {
		pc := newPos[sq]
		src, ok := radius.FindClosestPiece(oldPos, pc, sq)
		if !ok {
			continue
		}
		steps = append(steps, MoveStep(src, sq, pc))
		delete(oldPos, src)
		delete(newPos, sq)
		movedTo[sq] = true
	}

	for _, sq := range newPos.Squares() {
		steps = append(steps, AddStep(sq, newPos[sq]))
	}

	for _, sq := range oldPos.Squares() {
		// a capture: the moved piece overwrites what stood here
		if movedTo[sq] {
			continue
		}
		steps = append(steps, ClearStep(sq, oldPos[sq]))
	}

	return steps
}

// Apply plays a batch against a copy of pos. Steps of one batch run in
// parallel, so every source is vacated before any target is filled.
func Apply(pos base.Position, steps []Step) base.Position {
	next := pos.Clone()
	for _, s := range steps {
		if s.Kind == StepMove || s.Kind == StepClear {
			delete(next, s.From)
		}
	}
	for _, s := range steps {
		if s.Kind == StepMove || s.Kind == StepAdd {
			next[s.To] = s.Piece
		}
	}
	return next
}
