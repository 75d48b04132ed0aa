package cli

import (
	"evilboard/src/base"
	"evilboard/src/logic/drag"
	"evilboard/src/logx"
	"fmt"
	"image"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// ANSI-code
const (
	reset      = "\033[0m"
	lightBg    = "\033[47m"
	darkBg     = "\033[100m"
	sourceBg   = "\033[43m"
	targetBg   = "\033[46m"
	whiteF     = "\033[97m"
	blackF     = "\033[30m"
	dimF       = "\033[90m"
	cellWide   = 3
	cellNarrow = 2
	// narrowest terminal that fits the wide layout: labels plus 8 cells
	wideMinCols = 2 + 8*cellWide + 3
)

// Term renders the board as text. Animations finish at once, so every done
// callback runs inside the call that started it.
type Term struct {
	out    io.Writer
	fd     int // -1 when out is not a terminal
	color  bool
	trace  bool
	cellW  int
	logger logx.Logger

	orientation base.Orientation
	notation    bool
	spares      bool
	pos         base.Position
	hidden      base.Square
	highlights  map[base.Square]drag.Highlight
	floating    base.Piece
	closed      bool
}

// NewTerm writes to out. Colours are used only when out is a terminal.
func NewTerm(out io.Writer, trace bool, logger logx.Logger) *Term {
	if logger == nil {
		logger = logx.NewNop()
	}
	t := &Term{
		out:        out,
		fd:         -1,
		trace:      trace,
		cellW:      cellWide,
		logger:     logger,
		pos:        base.Position{},
		hidden:     base.Offboard,
		highlights: make(map[base.Square]drag.Highlight),
		floating:   base.EmptyPiece,
		notation:   true,
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.fd = int(f.Fd())
		t.color = true
	}
	t.Resize()
	return t
}

func pieceGlyph(p base.Piece) string {
	switch p {
	case base.WKing:
		return "♔"
	case base.WQueen:
		return "♕"
	case base.WRook:
		return "♖"
	case base.WBishop:
		return "♗"
	case base.WKnight:
		return "♘"
	case base.WPawn:
		return "♙"
	case base.BKing:
		return "♚"
	case base.BQueen:
		return "♛"
	case base.BRook:
		return "♜"
	case base.BBishop:
		return "♝"
	case base.BKnight:
		return "♞"
	case base.BPawn:
		return "♟"
	default:
		return " "
	}
}

// letter form for plain output: FEN letters, '.' for empty
func pieceLetter(p base.Piece) string {
	if !p.Valid() {
		return "."
	}
	return string(base.ConvertRuneFromPiece(p))
}

// cell returns the screen column and row of sq: row 0 is the top rank.
func (t *Term) cell(sq base.Square) (col, row int) {
	if t.orientation == base.OrientBlack {
		return 7 - sq.File(), sq.Rank()
	}
	return sq.File(), 7 - sq.Rank()
}

// SquareRects maps squares to character cells; line 0 holds the file
// labels, so the top rank sits on line 1.
func (t *Term) SquareRects() [64]image.Rectangle {
	var rects [64]image.Rectangle
	for i := range rects {
		col, row := t.cell(base.Square(i))
		x := 2 + col*t.cellW
		rects[i] = image.Rect(x, 1+row, x+t.cellW, 2+row)
	}
	return rects
}

// Center is a pointer position inside sq; off the board for base.Offboard.
func (t *Term) Center(sq base.Square) (int, int) {
	if !sq.Valid() {
		return -1, -1
	}
	r := t.SquareRects()[sq]
	return r.Min.X + r.Dx()/2, r.Min.Y
}

func (t *Term) DrawBoard(o base.Orientation, showNotation, sparePieces bool) {
	t.orientation = o
	t.notation = showNotation
	t.spares = sparePieces
}

func (t *Term) DrawPosition(pos base.Position) {
	if t.closed {
		return
	}
	t.pos = pos.Clone()
	t.hidden = base.Offboard
	fmt.Fprint(t.out, t.render())
}

func (t *Term) step(format string, args ...any) {
	if t.trace && !t.closed {
		fmt.Fprintf(t.out, "~ "+format+"\n", args...)
	}
}

func (t *Term) AnimateMove(from, to base.Square, piece base.Piece, d time.Duration, done func()) {
	t.step("move %s %s-%s (%s)", piece.Code(), from, to, d)
	done()
}

func (t *Term) AnimateAdd(sq base.Square, piece base.Piece, fromSpare bool, d time.Duration, done func()) {
	if fromSpare {
		t.step("spare %s %s (%s)", piece.Code(), sq, d)
	} else {
		t.step("add %s %s (%s)", piece.Code(), sq, d)
	}
	done()
}

func (t *Term) AnimateClear(sq base.Square, piece base.Piece, d time.Duration, done func()) {
	t.step("clear %s %s (%s)", piece.Code(), sq, d)
	done()
}

func (t *Term) ShowDraggedPiece(piece base.Piece, origin drag.Origin, x, y int) {
	t.floating = piece
	if !origin.Spare {
		t.hidden = origin.Square
	}
	t.step("pick %s from %s", piece.Code(), origin)
}

func (t *Term) MoveDraggedPiece(x, y int) {}

func (t *Term) SetHighlight(sq base.Square, h drag.Highlight, on bool) {
	if on {
		t.highlights[sq] = h
		return
	}
	delete(t.highlights, sq)
}

func (t *Term) ClearHighlights() {
	t.highlights = make(map[base.Square]drag.Highlight)
}

func (t *Term) SnapDraggedPiece(to base.Square, d time.Duration, done func()) {
	t.step("snap %s to %s (%s)", t.floating.Code(), to, d)
	t.floating = base.EmptyPiece
	done()
}

func (t *Term) ReturnDraggedPiece(to base.Square, d time.Duration, done func()) {
	t.step("snapback %s to %s (%s)", t.floating.Code(), to, d)
	t.floating = base.EmptyPiece
	done()
}

func (t *Term) TrashDraggedPiece(d time.Duration) {
	t.step("trash %s (%s)", t.floating.Code(), d)
	t.floating = base.EmptyPiece
}

// Resize switches to narrow cells when the terminal cannot fit wide ones.
func (t *Term) Resize() {
	t.cellW = cellWide
	if t.fd < 0 {
		return
	}
	w, _, err := term.GetSize(t.fd)
	if err != nil {
		t.logger.Debugf("term size: %v", err)
		return
	}
	if w < wideMinCols {
		t.cellW = cellNarrow
	}
}

func (t *Term) Destroy() {
	t.closed = true
	t.pos = base.Position{}
}

func (t *Term) files() string {
	var b strings.Builder
	b.WriteString("  ")
	for col := 0; col < 8; col++ {
		f := col
		if t.orientation == base.OrientBlack {
			f = 7 - col
		}
		b.WriteString(pad(string(base.Columns[f]), t.cellW))
	}
	return b.String()
}

// pad centres s in a cell of width w.
func pad(s string, w int) string {
	if w <= 1 {
		return s
	}
	left := (w - 1) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-1-left)
}

func (t *Term) spareRow(c base.Color) string {
	var b strings.Builder
	b.WriteString("  ")
	for _, p := range base.AllPieces {
		if p.Color() != c {
			continue
		}
		if t.color {
			b.WriteString(pad(pieceGlyph(p), t.cellW))
		} else {
			b.WriteString(pad(pieceLetter(p), t.cellW))
		}
	}
	return b.String()
}

func (t *Term) render() string {
	var b strings.Builder
	top, bottom := base.Black, base.White
	if t.orientation == base.OrientBlack {
		top, bottom = base.White, base.Black
	}

	b.WriteString("\n")
	if t.spares {
		b.WriteString(t.spareRow(top) + "\n")
	}
	if t.notation {
		b.WriteString(t.files() + "\n")
	} else {
		b.WriteString("\n")
	}
	for row := 0; row < 8; row++ {
		rank := 7 - row
		if t.orientation == base.OrientBlack {
			rank = row
		}
		if t.notation {
			fmt.Fprintf(&b, "%d ", rank+1)
		} else {
			b.WriteString("  ")
		}
		for col := 0; col < 8; col++ {
			file := col
			if t.orientation == base.OrientBlack {
				file = 7 - col
			}
			b.WriteString(t.square(base.NewSquare(file, rank)))
		}
		if t.notation {
			fmt.Fprintf(&b, " %d", rank+1)
		}
		b.WriteString("\n")
	}
	if t.notation {
		b.WriteString(t.files() + "\n")
	}
	if t.spares {
		b.WriteString(t.spareRow(bottom) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (t *Term) square(sq base.Square) string {
	p, ok := t.pos[sq]
	if !ok || sq == t.hidden {
		p = base.EmptyPiece
	}
	if !t.color {
		return pad(pieceLetter(p), t.cellW)
	}

	light := (sq.File()+sq.Rank())%2 == 1
	bg := darkBg
	if light {
		bg = lightBg
	}
	if h, ok := t.highlights[sq]; ok {
		bg = targetBg
		if h == drag.HighlightSource {
			bg = sourceBg
		}
	}
	fg := dimF
	switch {
	case base.PieceIsWhite(p) && !light:
		fg = whiteF
	case p.Valid():
		fg = blackF
	}
	return bg + fg + pad(pieceGlyph(p), t.cellW) + reset
}
