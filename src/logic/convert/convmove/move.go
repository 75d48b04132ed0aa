package convmove

import (
	"evilboard/src/base"
	"strings"
)

type Move struct {
	From base.Square
	To   base.Square
}

func (m Move) String() string {
	return m.From.String() + "-" + m.To.String()
}

// ParseMove reads the "e2-e4" form.
func ParseMove(s string) (Move, error) {
	from, to, ok := strings.Cut(s, "-")
	if !ok || strings.Contains(to, "-") {
		return Move{}, &base.FormatError{Input: s, Reason: "want <square>-<square>"}
	}
	f, err := base.SquareFromAlgebraic(from)
	if err != nil {
		return Move{}, &base.FormatError{Input: s, Reason: "bad source square"}
	}
	t, err := base.SquareFromAlgebraic(to)
	if err != nil {
		return Move{}, &base.FormatError{Input: s, Reason: "bad target square"}
	}
	return Move{From: f, To: t}, nil
}

// ApplyMoves relocates pieces on a copy of pos. Moves whose source is empty
// are skipped. When several moves share a source only the last one counts.
func ApplyMoves(pos base.Position, moves []Move) base.Position {
	bySource := make(map[base.Square]base.Square, len(moves))
	order := make([]base.Square, 0, len(moves))
	for _, mv := range moves {
		if _, seen := bySource[mv.From]; !seen {
			order = append(order, mv.From)
		}
		bySource[mv.From] = mv.To
	}

	next := pos.Clone()
	for _, from := range order {
		pc, ok := next[from]
		if !ok {
			continue
		}
		delete(next, from)
		next[bySource[from]] = pc
	}
	return next
}
