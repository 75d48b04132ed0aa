package gimages

import (
	"evilboard/src/base"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45" width="45" height="45">
<rect x="0" y="0" width="45" height="45" fill="#000000"/>
</svg>`

func TestRenderSVG(t *testing.T) {
	img, err := RenderSVG([]byte(squareSVG), 30)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if img.Bounds().Dx() != 30 || img.Bounds().Dy() != 30 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if _, _, _, a := img.At(15, 15).RGBA(); a == 0 {
		t.Fatalf("centre pixel is transparent")
	}
}

func TestDisc(t *testing.T) {
	img := Disc(base.BKnight, 40, nil)
	if img.Bounds().Dx() != 40 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if _, _, _, a := img.At(20, 20).RGBA(); a == 0 {
		t.Fatalf("disc centre is transparent")
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Fatalf("disc corner is painted")
	}
}

func TestLoadPiecesFallsBack(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "wK.png"))
	if err != nil {
		t.Fatal(err)
	}
	src := image.NewRGBA(image.Rect(0, 0, 12, 12))
	src.Set(5, 5, color.RGBA{0xff, 0, 0, 0xff})
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()
	if err := os.WriteFile(filepath.Join(dir, "bQ.svg"), []byte(squareSVG), 0644); err != nil {
		t.Fatal(err)
	}

	resolve := func(p base.Piece) string {
		if p == base.BQueen {
			return p.Code() + ".svg"
		}
		return p.Code() + ".png"
	}
	imgs := LoadPieces(dir, resolve, 32, nil, nil)
	if len(imgs) != 12 {
		t.Fatalf("got %d images", len(imgs))
	}
	if b := imgs[base.WKing].Bounds(); b.Dx() != 12 {
		t.Fatalf("wK should come from the png, bounds %v", b)
	}
	if b := imgs[base.BQueen].Bounds(); b.Dx() != 32 {
		t.Fatalf("bQ should be rasterized at 32, bounds %v", b)
	}
	if b := imgs[base.WPawn].Bounds(); b.Dx() != 32 {
		t.Fatalf("wP fallback bounds %v", b)
	}
}

func TestRasterizeErrors(t *testing.T) {
	if _, err := Rasterize("", 10); err == nil {
		t.Fatalf("empty path accepted")
	}
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Rasterize(path, 10)
	if err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("err = %v", err)
	}
}
