package gdraw

import (
	"evilboard/src/base"
	"evilboard/src/logic/drag"
	"evilboard/src/logx"
	"evilboard/ui/gui/gbase"
	"evilboard/ui/gui/ghelper"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

type floating struct {
	piece base.Piece
	x, y  int // pointer, the piece is centred on it
}

// BoardDrawer renders the board with ebiten. Done callbacks run from Update,
// on the game loop goroutine. Animations started after Destroy complete at
// once; the ones in flight at Destroy never call back.
type BoardDrawer struct {
	assets *ghelper.GUIAssetsWorker
	theme  gbase.Palette
	logger logx.Logger
	now    func() time.Time

	w, h   int
	layout gbase.Layout
	frame  *ebiten.Image
	outer  image.Rectangle // where frame goes

	orientation base.Orientation
	notation    bool
	spares      bool
	pos         base.Position
	hidden      map[base.Square]bool
	highlights  map[base.Square]drag.Highlight
	sprites     gbase.Sprites
	drag        *floating
}

func NewBoardDrawer(assets *ghelper.GUIAssetsWorker, theme gbase.Palette, w, h int, logger logx.Logger) *BoardDrawer {
	if logger == nil {
		logger = logx.NewNop()
	}
	d := &BoardDrawer{
		assets:     assets,
		theme:      theme,
		logger:     logger,
		now:        time.Now,
		w:          w,
		h:          h,
		notation:   true,
		pos:        base.Position{},
		hidden:     make(map[base.Square]bool),
		highlights: make(map[base.Square]drag.Highlight),
	}
	d.relayout()
	return d
}

// SetWindow records a new window size and reports whether it changed.
func (d *BoardDrawer) SetWindow(w, h int) bool {
	if w == d.w && h == d.h {
		return false
	}
	d.w, d.h = w, h
	return true
}

func (d *BoardDrawer) Layout() gbase.Layout { return d.layout }

func (d *BoardDrawer) Orientation() base.Orientation { return d.orientation }

func (d *BoardDrawer) relayout() {
	d.layout = gbase.NewLayout(d.w, d.h, d.spares)
	outer := d.layout.Board
	if d.spares {
		outer = outer.Union(d.layout.Top).Union(d.layout.Bottom)
	}
	d.outer = outer.Inset(-gbase.BoardMargin / 2)
	d.frame = ghelper.RenderRoundedRect(d.outer.Dx(), d.outer.Dy(), gbase.FrameRadius, d.theme.Frame, d.theme.FrameStroke, 2)
	if d.assets != nil {
		if err := d.assets.Reload(d.layout.Square); err != nil {
			d.logger.Errorf("reload pieces: %v", err)
		}
	}
}

// ---- src.Renderer ----

func (d *BoardDrawer) DrawBoard(o base.Orientation, showNotation, sparePieces bool) {
	d.orientation = o
	d.notation = showNotation
	if d.spares != sparePieces || d.frame == nil {
		d.spares = sparePieces
		d.relayout()
	}
}

func (d *BoardDrawer) DrawPosition(pos base.Position) {
	if d.sprites.Closed() {
		return
	}
	d.pos = pos.Clone()
	d.hidden = make(map[base.Square]bool)
}

func (d *BoardDrawer) Resize() { d.relayout() }

func (d *BoardDrawer) Destroy() {
	d.sprites.Close()
	d.drag = nil
	d.pos = base.Position{}
}

func (d *BoardDrawer) SquareRects() [64]image.Rectangle {
	return d.layout.SquareRects(d.orientation)
}

func (d *BoardDrawer) squareMin(sq base.Square) image.Point {
	return d.layout.SquareRect(sq, d.orientation).Min
}

func (d *BoardDrawer) animate(piece base.Piece, tw gbase.Tween, done func()) {
	if s := d.sprites.Add(piece, tw, d.now(), done); s != nil {
		d.logger.Debugf("sprite %s: %s %v -> %v", s.ID, piece.Code(), tw.From, tw.To)
	}
}

func (d *BoardDrawer) AnimateMove(from, to base.Square, piece base.Piece, dur time.Duration, done func()) {
	d.hidden[from] = true
	d.animate(piece, gbase.Tween{
		From: d.squareMin(from), To: d.squareMin(to),
		AlphaFrom: 1, AlphaTo: 1, Duration: dur,
	}, done)
}

func (d *BoardDrawer) AnimateAdd(sq base.Square, piece base.Piece, fromSpare bool, dur time.Duration, done func()) {
	to := d.squareMin(sq)
	tw := gbase.Tween{From: to, To: to, AlphaFrom: 0, AlphaTo: 1, Duration: dur}
	if slot, ok := d.layout.SpareSlot(piece, d.orientation); fromSpare && ok {
		tw.From, tw.AlphaFrom = slot.Min, 1
	}
	d.animate(piece, tw, done)
}

func (d *BoardDrawer) AnimateClear(sq base.Square, piece base.Piece, dur time.Duration, done func()) {
	d.hidden[sq] = true
	at := d.squareMin(sq)
	d.animate(piece, gbase.Tween{From: at, To: at, AlphaFrom: 1, AlphaTo: 0, Duration: dur}, done)
}

// ---- drag.Surface ----

func (d *BoardDrawer) ShowDraggedPiece(piece base.Piece, origin drag.Origin, x, y int) {
	d.drag = &floating{piece: piece, x: x, y: y}
	if !origin.Spare {
		d.hidden[origin.Square] = true
	}
}

func (d *BoardDrawer) MoveDraggedPiece(x, y int) {
	if d.drag != nil {
		d.drag.x, d.drag.y = x, y
	}
}

func (d *BoardDrawer) SetHighlight(sq base.Square, h drag.Highlight, on bool) {
	if on {
		d.highlights[sq] = h
		return
	}
	delete(d.highlights, sq)
}

func (d *BoardDrawer) ClearHighlights() {
	d.highlights = make(map[base.Square]drag.Highlight)
}

// floatingMin is the top-left corner of the dragged piece.
func (d *BoardDrawer) floatingMin() image.Point {
	half := d.layout.Square / 2
	return image.Pt(d.drag.x-half, d.drag.y-half)
}

func (d *BoardDrawer) release(to image.Point, alphaTo float64, dur time.Duration, done func()) {
	if d.drag == nil {
		if done != nil {
			done()
		}
		return
	}
	from := d.floatingMin()
	piece := d.drag.piece
	d.drag = nil
	d.animate(piece, gbase.Tween{From: from, To: to, AlphaFrom: 1, AlphaTo: alphaTo, Duration: dur}, done)
}

func (d *BoardDrawer) SnapDraggedPiece(to base.Square, dur time.Duration, done func()) {
	d.hidden[to] = true
	d.release(d.squareMin(to), 1, dur, done)
}

func (d *BoardDrawer) ReturnDraggedPiece(to base.Square, dur time.Duration, done func()) {
	d.release(d.squareMin(to), 1, dur, done)
}

func (d *BoardDrawer) TrashDraggedPiece(dur time.Duration) {
	if d.drag == nil {
		return
	}
	d.release(d.floatingMin(), 0, dur, nil)
}

// ---- game loop ----

func (d *BoardDrawer) Update(now time.Time) { d.sprites.Update(now) }

// Animating reports whether any sprite is still moving.
func (d *BoardDrawer) Animating() bool { return d.sprites.Len() > 0 }

func (d *BoardDrawer) Draw(screen *ebiten.Image) {
	screen.Fill(d.theme.Bg)
	if d.sprites.Closed() {
		return
	}
	sq := d.layout.Square
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(d.outer.Min.X), float64(d.outer.Min.Y))
	screen.DrawImage(d.frame, op)

	for i := 0; i < 64; i++ {
		s := base.Square(i)
		r := d.layout.SquareRect(s, d.orientation)
		ghelper.FillRect(screen, r, d.theme.SquareColor(s))
		if h, ok := d.highlights[s]; ok {
			c := d.theme.Target
			if h == drag.HighlightSource {
				c = d.theme.Source
			}
			ghelper.DrawRectStroke(screen, r, max(2, sq/16), c)
		}
	}
	if d.notation {
		d.drawNotation(screen)
	}

	for s, p := range d.pos {
		if d.hidden[s] {
			continue
		}
		r := d.layout.SquareRect(s, d.orientation)
		ghelper.DrawPiece(screen, d.assets.Piece(p), float64(r.Min.X), float64(r.Min.Y), sq, 1)
	}
	if d.spares {
		top, bottom := gbase.SpareColors(d.orientation)
		for i, p := range gbase.SpareRow(top) {
			r := d.layout.SpareRect(i, true)
			ghelper.DrawPiece(screen, d.assets.Piece(p), float64(r.Min.X), float64(r.Min.Y), sq, 1)
		}
		for i, p := range gbase.SpareRow(bottom) {
			r := d.layout.SpareRect(i, false)
			ghelper.DrawPiece(screen, d.assets.Piece(p), float64(r.Min.X), float64(r.Min.Y), sq, 1)
		}
	}

	now := d.now()
	d.sprites.Each(func(s *gbase.Sprite) {
		x, y, a, _ := s.Tween.At(now)
		ghelper.DrawPiece(screen, d.assets.Piece(s.Piece), x, y, sq, a)
	})
	if d.drag != nil {
		at := d.floatingMin()
		ghelper.DrawPiece(screen, d.assets.Piece(d.drag.piece), float64(at.X), float64(at.Y), sq, 1)
	}
}

// file letters along the bottom row, rank digits along the left column
func (d *BoardDrawer) drawNotation(screen *ebiten.Image) {
	face := d.assets.Fonts().Notation
	pad := max(2, d.layout.Square/20)
	bottomRank, leftFile := 0, 0
	if d.orientation == base.OrientBlack {
		bottomRank, leftFile = 7, 7
	}
	for f := 0; f < 8; f++ {
		s := base.NewSquare(f, bottomRank)
		r := d.layout.SquareRect(s, d.orientation)
		label := string(base.Columns[f])
		w := text.BoundString(face, label).Dx()
		text.Draw(screen, label, face, r.Max.X-w-pad, r.Max.Y-pad, d.theme.Notation)
	}
	for rk := 0; rk < 8; rk++ {
		s := base.NewSquare(leftFile, rk)
		r := d.layout.SquareRect(s, d.orientation)
		h := text.BoundString(face, "8").Dy()
		text.Draw(screen, string(rune('1'+rk)), face, r.Min.X+pad, r.Min.Y+h+pad, d.theme.Notation)
	}
}
