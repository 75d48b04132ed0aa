package gui

import (
	"errors"
	"evilboard/src"
	"evilboard/src/base"
	"evilboard/src/config"
	"evilboard/src/diag"
	"evilboard/src/logic/drag"
	"evilboard/src/logx"
	"evilboard/ui/gui/gbase"
	"evilboard/ui/gui/gbase/gconf"
	"evilboard/ui/gui/gdraw"
	"evilboard/ui/gui/ghelper"
	"evilboard/ui/gui/grules"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

type GUIProcessing struct {
	board  *src.Board
	drawer *gdraw.BoardDrawer
	rules  *grules.Rules // nil unless legal moves are enforced
	conf   *gconf.Config
	logx   logx.Logger

	prevMouseDown bool
	hover         base.Square
}

// NewGUI builds the board on an ebiten renderer. With conf.Legal set, only
// legal moves of the side to move can be dragged.
func NewGUI(cfg *config.Config, conf *gconf.Config, logger logx.Logger) (*GUIProcessing, error) {
	if logger == nil {
		logger = logx.NewNop()
	}
	c := config.Default()
	if cfg != nil {
		c = *cfg
	}
	cfg = &c
	assets, err := ghelper.NewGUIAssetsWorker(conf.PieceDir, cfg.PieceImage, gbase.SquareSize(conf.WindowW-2*gbase.BoardMargin), logger)
	if err != nil {
		return nil, err
	}
	gp := &GUIProcessing{
		drawer: gdraw.NewBoardDrawer(assets, gbase.PaletteFromString(conf.Theme), conf.WindowW, conf.WindowH, logger),
		conf:   conf,
		logx:   logger,
		hover:  base.Offboard,
	}

	hooks := src.Hooks{
		OnChange: func(before, after base.Position) {
			logger.Debugf("gui: %d -> %d pieces", len(before), len(after))
		},
	}
	if conf.Legal {
		gp.rules = grules.New(logger)
		cfg.SparePieces = false
		cfg.Draggable = true
		hooks.Hooks = gp.rules.Hooks(hooks.Hooks, func(placement string) {
			if err := gp.board.SetPositionString(placement, false); err != nil {
				logger.Errorf("gui: sync position: %v", err)
			}
		})
	}

	gp.board, err = src.NewBoard(cfg, gp.drawer, hooks, diag.FromName(cfg.ShowErrors, logger), logger)
	if err != nil {
		return nil, err
	}
	if gp.rules != nil {
		gp.resetRules()
	}
	return gp, nil
}

func (gp *GUIProcessing) Board() *src.Board { return gp.board }

// resetRules restarts the game from whatever the board shows, white to move.
func (gp *GUIProcessing) resetRules() {
	if gp.rules == nil {
		return
	}
	if err := gp.rules.Reset(gp.board.FEN(), base.White); err != nil {
		gp.logx.Warnf("gui: rules off for this position: %v", err)
	}
}

func (gp *GUIProcessing) Run() error {
	ebiten.SetWindowSize(gp.conf.WindowW, gp.conf.WindowH)
	ebiten.SetWindowTitle("EvilBoard")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err := ebiten.RunGame(gp)
	gp.board.Destroy()
	if errors.Is(err, gbase.ErrExit) {
		return nil
	}
	return err
}

func (gp *GUIProcessing) Update() error {
	if err := gp.keys(); err != nil {
		return err
	}
	// the pointer is read before Tick, so a flushed move is this frame's
	gp.inputs()
	gp.board.Tick()
	gp.drawer.Update(time.Now())
	return nil
}

func (gp *GUIProcessing) inputs() {
	mx, my := ebiten.CursorPosition()
	mouseDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	justPressed := mouseDown && !gp.prevMouseDown
	justReleased := !mouseDown && gp.prevMouseDown
	gp.prevMouseDown = mouseDown

	layout := gp.drawer.Layout()
	o := gp.board.Orientation()

	if sq := layout.SquareAt(mx, my, o); sq != gp.hover {
		if gp.hover.Valid() {
			gp.board.PointerLeave(gp.hover)
		}
		if sq.Valid() {
			gp.board.PointerEnter(sq)
		}
		gp.hover = sq
	}

	switch {
	case justPressed:
		if sq := layout.SquareAt(mx, my, o); sq.Valid() {
			gp.board.PointerDownSquare(sq, mx, my)
		} else if p, ok := layout.SpareAt(mx, my, o); ok {
			gp.board.PointerDownSpare(p, mx, my)
		}
	case justReleased:
		if action, ok := gp.board.PointerUp(mx, my); ok && action != drag.Drop {
			gp.logx.Debugf("gui: %s", action)
		}
	case mouseDown:
		gp.board.PointerMove(mx, my)
	}
}

func (gp *GUIProcessing) Draw(screen *ebiten.Image) {
	gp.drawer.Draw(screen)
}

func (gp *GUIProcessing) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	if gp.drawer.SetWindow(outsideWidth, outsideHeight) {
		gp.board.Resize()
	}
	return outsideWidth, outsideHeight
}
