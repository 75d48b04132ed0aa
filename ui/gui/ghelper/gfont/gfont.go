package gfont

import (
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type Fonts struct {
	Notation font.Face // file and rank labels
	Bold     font.Face

	regular *opentype.Font
	bold    *opentype.Font
}

// LoadFonts uses the Go fonts unless workdir holds a Notation.ttf.
func LoadFonts(workdir string) (*Fonts, error) {
	regular := goregular.TTF
	if workdir != "" {
		if b, err := os.ReadFile(workdir + "/Notation.ttf"); err == nil {
			regular = b
		}
	}
	r, err := opentype.Parse(regular)
	if err != nil {
		return nil, err
	}
	b, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, err
	}

	fonts := &Fonts{regular: r, bold: b}
	if fonts.Notation, err = fonts.face(r, 12); err != nil {
		return nil, err
	}
	if fonts.Bold, err = fonts.face(b, 16); err != nil {
		return nil, err
	}
	return fonts, nil
}

// Glyph is a bold face sized for letters drawn inside a square of size px.
func (f *Fonts) Glyph(size int) (font.Face, error) {
	return f.face(f.bold, float64(size)*0.55)
}

func (f *Fonts) face(ft *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
