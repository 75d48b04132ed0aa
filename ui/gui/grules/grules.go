// Package grules lets the GUI veto drags that are not legal chess moves.
// The board itself knows nothing about rules.
package grules

import (
	"evilboard/src/base"
	"evilboard/src/logic/drag"
	"evilboard/src/logx"
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

type Rules struct {
	game   *nchess.Game
	logger logx.Logger
}

func New(logger logx.Logger) *Rules {
	if logger == nil {
		logger = logx.NewNop()
	}
	return &Rules{game: nchess.NewGame(), logger: logger}
}

// Reset starts a new game from a piece placement with turn to move.
// Castling rights are granted wherever king and rook stand on their home
// squares.
func (r *Rules) Reset(placement string, turn base.Color) error {
	side := "w"
	if turn == base.Black {
		side = "b"
	}
	fen := fmt.Sprintf("%s %s %s - 0 1", placement, side, castling(placement))
	option, err := nchess.FEN(fen)
	if err != nil {
		return fmt.Errorf("parse fen %q: %w", fen, err)
	}
	r.game = nchess.NewGame(option)
	r.logger.Debugf("rules: reset %s", fen)
	return nil
}

func castling(placement string) string {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return "-"
	}
	expand := func(rank string) string {
		var b strings.Builder
		for _, c := range rank {
			if c >= '1' && c <= '8' {
				b.WriteString(strings.Repeat(".", int(c-'0')))
				continue
			}
			b.WriteRune(c)
		}
		return b.String()
	}
	white, black := expand(ranks[7]), expand(ranks[0])
	if len(white) != 8 || len(black) != 8 {
		return "-"
	}
	var rights strings.Builder
	if white[4] == 'K' {
		if white[7] == 'R' {
			rights.WriteByte('K')
		}
		if white[0] == 'R' {
			rights.WriteByte('Q')
		}
	}
	if black[4] == 'k' {
		if black[7] == 'r' {
			rights.WriteByte('k')
		}
		if black[0] == 'r' {
			rights.WriteByte('q')
		}
	}
	if rights.Len() == 0 {
		return "-"
	}
	return rights.String()
}

func (r *Rules) Turn() base.Color {
	if r.game.Position().Turn() == nchess.Black {
		return base.Black
	}
	return base.White
}

// Placement is the piece field of the game's FEN.
func (r *Rules) Placement() string {
	return strings.Fields(r.game.FEN())[0]
}

func (r *Rules) Over() bool {
	return r.game.Outcome() != nchess.NoOutcome
}

// Play makes the move if it is legal. Pawns reaching the last rank become
// queens.
func (r *Rules) Play(from, to base.Square, piece base.Piece) error {
	if r.Over() {
		return fmt.Errorf("game is over: %s", r.game.Outcome())
	}
	uci := from.String() + to.String()
	if (piece == base.WPawn && to.Rank() == 7) || (piece == base.BPawn && to.Rank() == 0) {
		uci += "q"
	}
	if err := r.game.PushNotationMove(uci, nchess.UCINotation{}, nil); err != nil {
		return fmt.Errorf("illegal move %s: %w", uci, err)
	}
	r.logger.Debugf("rules: played %s, %s to move", uci, r.Turn())
	return nil
}

// Hooks wraps inner so that only the side to move can drag and only legal
// drops stand. sync receives the placement after every accepted drop, so
// castling, en passant and promotion show up on the board.
func (r *Rules) Hooks(inner drag.Hooks, sync func(placement string)) drag.Hooks {
	h := inner
	h.OnDragStart = func(origin drag.Origin, piece base.Piece, pos base.Position, o base.Orientation) drag.StartDecision {
		if origin.Spare || r.Over() || piece.Color() != r.Turn() {
			return drag.Cancel
		}
		if inner.OnDragStart != nil {
			return inner.OnDragStart(origin, piece, pos, o)
		}
		return drag.Proceed
	}
	h.OnDrop = func(ev drag.DropEvent) drag.DropDecision {
		if inner.OnDrop != nil {
			if d := inner.OnDrop(ev); d != drag.Accept {
				return d
			}
		}
		if !ev.Target.Valid() || ev.Target == ev.Origin.Square {
			return drag.ForceSnapback
		}
		if err := r.Play(ev.Origin.Square, ev.Target, ev.Piece); err != nil {
			r.logger.Debugf("rules: %v", err)
			return drag.ForceSnapback
		}
		return drag.Accept
	}
	h.OnSnapEnd = func(origin drag.Origin, target base.Square, piece base.Piece) {
		if inner.OnSnapEnd != nil {
			inner.OnSnapEnd(origin, target, piece)
		}
		if sync != nil {
			sync(r.Placement())
		}
	}
	return h
}
