package gimages

import (
	"bytes"
	"evilboard/src/base"
	"evilboard/src/logx"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
)

// LoadPieces rasterizes the image resolve names for every piece, relative
// to workdir. Pieces whose file is missing or broken get a drawn disc.
func LoadPieces(workdir string, resolve func(base.Piece) string, size int, face font.Face, logger logx.Logger) map[base.Piece]image.Image {
	if logger == nil {
		logger = logx.NewNop()
	}
	figureImages := make(map[base.Piece]image.Image, len(base.AllPieces))
	for _, p := range base.AllPieces {
		path := resolve(p)
		if path != "" && !filepath.IsAbs(path) {
			path = filepath.Join(workdir, path)
		}
		img, err := Rasterize(path, size)
		if err != nil {
			logger.Debugf("piece %s: %v, drawing a disc", p.Code(), err)
			img = Disc(p, size, face)
		}
		figureImages[p] = img
	}
	return figureImages
}

// Rasterize loads an svg at size x size, or decodes a png/jpeg as is.
func Rasterize(path string, size int) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("no image")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return RenderSVG(data, size)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func RenderSVG(data []byte, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse piece svg: %w", err)
	}
	if icon.ViewBox.W <= 0 {
		icon.ViewBox.W = float64(size)
	}
	if icon.ViewBox.H <= 0 {
		icon.ViewBox.H = float64(size)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

// Disc draws p as a filled circle with its letter.
func Disc(p base.Piece, size int, face font.Face) image.Image {
	s := float64(size)
	dc := gg.NewContext(size, size)
	fill, ink := color.RGBA{0xfa, 0xfa, 0xfa, 0xff}, color.RGBA{0x22, 0x22, 0x22, 0xff}
	if p.Color() == base.Black {
		fill, ink = ink, fill
	}
	dc.DrawCircle(s/2, s/2, s/2-s/12)
	dc.SetRGBA255(int(fill.R), int(fill.G), int(fill.B), int(fill.A))
	dc.FillPreserve()
	dc.SetRGBA255(0x88, 0x88, 0x88, 0xff)
	dc.SetLineWidth(s / 24)
	dc.Stroke()
	if face != nil {
		dc.SetFontFace(face)
		dc.SetRGBA255(int(ink.R), int(ink.G), int(ink.B), int(ink.A))
		dc.DrawStringAnchored(string(base.ConvertUpperRuneFromPiece(p)), s/2, s/2, 0.5, 0.35)
	}
	return dc.Image()
}
