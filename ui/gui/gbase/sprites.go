package gbase

import (
	"evilboard/src/base"
	"time"

	"github.com/google/uuid"
)

// Sprite is a piece in flight.
type Sprite struct {
	ID    uuid.UUID
	Piece base.Piece
	Tween Tween
	done  func()
}

// Sprites holds the running tweens of a board. After Close the sprites in
// flight are dropped with their callbacks, and every later Add completes at
// once.
type Sprites struct {
	list   []*Sprite
	closed bool
}

// Add starts a tween at now and returns its sprite, or nil when closed.
func (s *Sprites) Add(piece base.Piece, tw Tween, now time.Time, done func()) *Sprite {
	if s.closed {
		if done != nil {
			done()
		}
		return nil
	}
	tw.Start = now
	sp := &Sprite{ID: uuid.New(), Piece: piece, Tween: tw, done: done}
	s.list = append(s.list, sp)
	return sp
}

// Update ends finished tweens; their callbacks run after the list is settled,
// so they may add new sprites.
func (s *Sprites) Update(now time.Time) {
	if len(s.list) == 0 {
		return
	}
	var finished []func()
	live := s.list[:0]
	for _, sp := range s.list {
		if _, _, _, done := sp.Tween.At(now); done {
			if sp.done != nil {
				finished = append(finished, sp.done)
			}
			continue
		}
		live = append(live, sp)
	}
	for i := len(live); i < len(s.list); i++ {
		s.list[i] = nil
	}
	s.list = live
	for _, fn := range finished {
		fn()
	}
}

func (s *Sprites) Each(fn func(sp *Sprite)) {
	for _, sp := range s.list {
		fn(sp)
	}
}

func (s *Sprites) Len() int { return len(s.list) }

func (s *Sprites) Close() {
	s.closed = true
	s.list = nil
}

func (s *Sprites) Closed() bool { return s.closed }
