package cli

import (
	"evilboard/src/base"
	"evilboard/src/logic/animate"
	"evilboard/src/logic/convert/convfen"
	"fmt"
	"io"
	"strings"
)

func parsePosition(s string) (base.Position, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start":
		return convfen.StartPosition(), nil
	case "", "empty":
		return base.Position{}, nil
	}
	return convfen.ConvertFENToPosition(s)
}

// PrintPlan writes the steps that animate from into to, one per line.
func PrintPlan(out io.Writer, from, to string) error {
	before, err := parsePosition(from)
	if err != nil {
		return fmt.Errorf("error from: %w", err)
	}
	after, err := parsePosition(to)
	if err != nil {
		return fmt.Errorf("error to: %w", err)
	}
	steps := animate.Plan(before, after)
	if len(steps) == 0 {
		fmt.Fprintln(out, "no changes")
		return nil
	}
	for _, s := range steps {
		fmt.Fprintln(out, s)
	}
	return nil
}

// PrintFEN writes the canonical notation of s.
func PrintFEN(out io.Writer, s string) error {
	pos, err := parsePosition(s)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, convfen.ConvertPositionToFEN(pos))
	return nil
}
