package ghelper

import (
	"evilboard/src/base"
	"evilboard/src/logx"
	"evilboard/ui/gui/ghelper/gfont"
	"evilboard/ui/gui/ghelper/gimages"

	"github.com/hajimehoshi/ebiten/v2"
)

type GUIAssetsWorker struct {
	pieceImages map[base.Piece]*ebiten.Image
	fonts       *gfont.Fonts
	workdir     string
	resolve     func(base.Piece) string
	size        int
	logger      logx.Logger
}

// NewGUIAssetsWorker loads fonts and piece images; resolve maps a piece to
// an image path under workdir.
func NewGUIAssetsWorker(workdir string, resolve func(base.Piece) string, size int, logger logx.Logger) (*GUIAssetsWorker, error) {
	if logger == nil {
		logger = logx.NewNop()
	}
	fonts, err := gfont.LoadFonts(workdir)
	if err != nil {
		return nil, err
	}
	aw := &GUIAssetsWorker{fonts: fonts, workdir: workdir, resolve: resolve, logger: logger}
	if err := aw.Reload(size); err != nil {
		return nil, err
	}
	return aw, nil
}

// Reload rasterizes the pieces again when the square size changed.
func (aw *GUIAssetsWorker) Reload(size int) error {
	if size == aw.size && aw.pieceImages != nil {
		return nil
	}
	face, err := aw.fonts.Glyph(size)
	if err != nil {
		return err
	}
	imgs := gimages.LoadPieces(aw.workdir, aw.resolve, size, face, aw.logger)
	aw.pieceImages = make(map[base.Piece]*ebiten.Image, len(imgs))
	for p, img := range imgs {
		aw.pieceImages[p] = ebiten.NewImageFromImage(img)
	}
	aw.size = size
	aw.logger.Debugf("assets: pieces at %dpx", size)
	return nil
}

func (aw *GUIAssetsWorker) Piece(p base.Piece) *ebiten.Image {
	return aw.pieceImages[p]
}

func (aw *GUIAssetsWorker) Fonts() *gfont.Fonts {
	return aw.fonts
}
