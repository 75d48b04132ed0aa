package gui

import (
	"evilboard/ui/gui/gbase"
	"evilboard/ui/gui/ghelper/gclipboard"
	"evilboard/ui/gui/ghelper/gdialog"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keys
//   - F flip, S start position, X clear
//   - C copy the position, V paste one
//   - O open a file holding a position
//   - Esc quit
func (gp *GUIProcessing) keys() error {
	if gp.board.Dragging() {
		return nil
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return gbase.ErrExit
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		gp.board.Flip()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		if err := gp.board.Start(true); err == nil {
			gp.resetRules()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		if gp.rules == nil {
			gp.board.Clear(true) //nolint:errcheck
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		if err := gclipboard.WriteAll(gp.board.FEN()); err != nil {
			gp.logx.Errorf("gui: copy: %v", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		s, err := gclipboard.ReadAll()
		if err != nil {
			gp.logx.Errorf("gui: paste: %v", err)
			break
		}
		gp.load(s)
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		res, err := gdialog.OpenFile("Open position", "fen", "txt")
		if err != nil {
			if !gdialog.Cancelled(err) {
				gp.logx.Errorf("gui: open: %v", err)
			}
			break
		}
		gp.load(string(res.Data))
	}
	return nil
}

// load takes the first field of a FEN line, so full FEN records work too.
func (gp *GUIProcessing) load(s string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return
	}
	if err := gp.board.SetPositionString(fields[0], true); err != nil {
		gp.logx.Warnf("gui: load %q: %v", fields[0], err)
		return
	}
	gp.resetRules()
}
