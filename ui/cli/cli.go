package cli

import (
	"bufio"
	"evilboard/src"
	"evilboard/src/base"
	"evilboard/src/logic/drag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const help = `commands:
  e2-e4 [g8-f6 ...]   move pieces (animated)
  drag e2 e4|off      drag a piece with the pointer
  spare wQ d4|off     drag a spare piece onto the board
  flip | white | black
  start | clear
  fen                 print the position
  load <fen|start>    set the position
  q                   quit`

type CLIProcessing struct {
	board *src.Board
	term  *Term
	in    io.Reader
	out   io.Writer
}

func NewCLI(b *src.Board, t *Term, in io.Reader, out io.Writer) *CLIProcessing {
	return &CLIProcessing{board: b, term: t, in: in, out: out}
}

// EventHooks prints every board callback to out.
func EventHooks(out io.Writer) src.Hooks {
	h := src.Hooks{
		OnChange: func(before, after base.Position) {
			fmt.Fprintf(out, "change: %d -> %d pieces\n", len(before), len(after))
		},
		OnMoveEnd: func(before, after base.Position) {
			fmt.Fprintln(out, "move end")
		},
	}
	h.OnDrop = func(ev drag.DropEvent) drag.DropDecision {
		fmt.Fprintf(out, "drop: %s %s -> %s\n", ev.Piece.Code(), ev.Origin, ev.Target)
		return drag.Accept
	}
	h.OnSnapbackEnd = func(piece base.Piece, origin drag.Origin, pos base.Position, o base.Orientation) {
		fmt.Fprintf(out, "snapback end: %s %s\n", piece.Code(), origin)
	}
	return h
}

// raw processing
// - type a command and press Enter
// - left/right arrow keys flip the board
// - q or Ctrl+C to exit
func (c *CLIProcessing) Run() error {
	f, ok := c.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return c.RunLineMode()
	}
	fd := int(f.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return c.RunLineMode()
	}
	defer term.Restore(fd, oldState) //nolint:errcheck

	r := bufio.NewReader(f)
	var inputBuf strings.Builder
	fmt.Fprint(c.out, "\r\nType a command and press Enter, left/right arrows flip, 'q' to quit.\r\n")

	for {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case b == 3: // Ctrl+C
			fmt.Fprint(c.out, "\r\nInterrupted\r\n")
			return nil
		case b == 0x1b: // escape sequence, possible arrow
			b1, err1 := r.ReadByte()
			b2, err2 := r.ReadByte()
			if err1 == nil && err2 == nil && b1 == '[' && (b2 == 'C' || b2 == 'D') {
				c.board.Flip()
			}
		case b == '\r' || b == '\n':
			line := inputBuf.String()
			inputBuf.Reset()
			fmt.Fprint(c.out, "\r\n")
			if c.Exec(line) {
				return nil
			}
		case b == 127 || b == 8: // backspace
			if s := inputBuf.String(); s != "" {
				inputBuf.Reset()
				inputBuf.WriteString(s[:len(s)-1])
				fmt.Fprint(c.out, "\b \b")
			}
		case b >= 32 && b <= 126:
			inputBuf.WriteByte(b)
			fmt.Fprintf(c.out, "%c", b)
		}
	}
}

func (c *CLIProcessing) RunLineMode() error {
	scanner := bufio.NewScanner(c.in)
	fmt.Fprintln(c.out, "Enter a command, 'help' for the list, 'q' to quit.")
	for scanner.Scan() {
		if c.Exec(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// Exec runs one command line and reports whether it asked to quit.
func (c *CLIProcessing) Exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd := strings.ToLower(fields[0])
	switch cmd {
	case "q", "quit":
		return true
	case "help", "?":
		fmt.Fprintln(c.out, help)
	case "flip":
		c.board.Flip()
	case "white", "black":
		c.board.SetOrientation(cmd) //nolint:errcheck
	case "start":
		c.board.Start(true) //nolint:errcheck
	case "clear":
		c.board.Clear(true) //nolint:errcheck
	case "fen":
		fmt.Fprintln(c.out, c.board.FEN())
	case "load":
		if len(fields) < 2 {
			fmt.Fprintln(c.out, "usage: load <fen|start>")
			break
		}
		if err := c.board.SetPositionString(strings.Join(fields[1:], " "), true); err != nil {
			fmt.Fprintf(c.out, "error load: %v\n", err)
		}
	case "drag":
		if len(fields) != 3 {
			fmt.Fprintln(c.out, "usage: drag <from> <to|off>")
			break
		}
		from, err := base.SquareFromAlgebraic(fields[1])
		if err != nil {
			fmt.Fprintf(c.out, "error drag: %v\n", err)
			break
		}
		x, y := c.term.Center(from)
		if !c.board.PointerDownSquare(from, x, y) {
			fmt.Fprintf(c.out, "nothing to drag on %s\n", from)
			break
		}
		c.release(fields[2])
	case "spare":
		if len(fields) != 3 {
			fmt.Fprintln(c.out, "usage: spare <piece> <to|off>")
			break
		}
		p, err := base.ParsePieceCode(fields[1])
		if err != nil {
			fmt.Fprintf(c.out, "error spare: %v\n", err)
			break
		}
		x, y := c.term.Center(base.Offboard)
		if !c.board.PointerDownSpare(p, x, y) {
			fmt.Fprintln(c.out, "spare pieces are disabled")
			break
		}
		c.release(fields[2])
	default:
		c.board.Move(true, fields...)
	}
	return false
}

// release moves the pointer to to (a square or "off") and lets go.
func (c *CLIProcessing) release(to string) {
	target := base.Offboard
	if to != "off" {
		sq, err := base.SquareFromAlgebraic(to)
		if err != nil {
			fmt.Fprintf(c.out, "%v, dropping off the board\n", err)
		} else {
			target = sq
		}
	}
	x, y := c.term.Center(target)
	c.board.PointerMove(x, y)
	action, _ := c.board.PointerUp(x, y)
	fmt.Fprintf(c.out, "%s\n", action)
}
