package ghelper

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
)

var pixel *ebiten.Image

func onePixel() *ebiten.Image {
	if pixel == nil {
		pixel = ebiten.NewImage(1, 1)
		pixel.Fill(color.White)
	}
	return pixel
}

func RenderRoundedRect(w, h, radius int, fill color.RGBA, stroke color.RGBA, strokeW float64) *ebiten.Image {
	// create a context with alpha and draw rounded rectangle using gg (anti-aliased)
	dc := gg.NewContext(w, h)
	dc.SetRGBA255(int(fill.R), int(fill.G), int(fill.B), int(fill.A))
	dc.DrawRoundedRectangle(strokeW/2, strokeW/2, float64(w)-strokeW, float64(h)-strokeW, float64(radius))
	dc.FillPreserve()
	dc.SetRGBA255(int(stroke.R), int(stroke.G), int(stroke.B), int(stroke.A))
	dc.SetLineWidth(strokeW)
	dc.Stroke()
	return ebiten.NewImageFromImage(dc.Image())
}

// FillRect paints r with c through a scaled white pixel.
func FillRect(screen *ebiten.Image, r image.Rectangle, c color.Color) {
	if screen == nil || r.Empty() {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorScale.ScaleWithColor(c)
	screen.DrawImage(onePixel(), op)
}

func DrawRectStroke(screen *ebiten.Image, r image.Rectangle, thickness int, col color.Color) {
	if screen == nil || r.Empty() || thickness <= 0 {
		return
	}
	th := int(math.Min(float64(thickness), float64(min(r.Dx(), r.Dy()))/2))

	// up
	FillRect(screen, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+th), col)
	// down
	FillRect(screen, image.Rect(r.Min.X, r.Max.Y-th, r.Max.X, r.Max.Y), col)
	// left
	FillRect(screen, image.Rect(r.Min.X, r.Min.Y+th, r.Min.X+th, r.Max.Y-th), col)
	// right
	FillRect(screen, image.Rect(r.Max.X-th, r.Min.Y+th, r.Max.X, r.Max.Y-th), col)
}

// DrawPiece draws img scaled into a size x size box at x, y.
func DrawPiece(screen, img *ebiten.Image, x, y float64, size int, alpha float64) {
	if img == nil {
		return
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(size)/float64(b.Dx()), float64(size)/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}
