// Package radius measures board distance between squares.
package radius

import (
	"evilboard/src/base"
	"sort"
)

// Distance is the Chebyshev (king move) distance between a and b.
func Distance(a, b base.Square) int {
	df := abs(a.File() - b.File())
	dr := abs(a.Rank() - b.Rank())
	if df >= dr {
		return df
	}
	return dr
}

// per-origin radius, computed once
var table = buildTable()

func buildTable() [64][]base.Square {
	var t [64][]base.Square
	for o := 0; o < 64; o++ {
		origin := base.Square(o)
		squares := make([]base.Square, 0, 63)
		// scan order: file-major, rank ascending (a1, a2, ... h8)
		for file := 0; file < 8; file++ {
			for rank := 0; rank < 8; rank++ {
				s := base.NewSquare(file, rank)
				if s == origin {
					continue
				}
				squares = append(squares, s)
			}
		}
		sort.SliceStable(squares, func(i, j int) bool {
			return Distance(origin, squares[i]) < Distance(origin, squares[j])
		})
		t[o] = squares
	}
	return t
}

// SquaresByDistanceFrom returns the other 63 squares nearest first. Ties keep
// scan order.
func SquaresByDistanceFrom(origin base.Square) []base.Square {
	if !origin.Valid() {
		return nil
	}
	out := make([]base.Square, len(table[origin]))
	copy(out, table[origin])
	return out
}

// FindClosestPiece returns the nearest square to sq holding piece in pos.
func FindClosestPiece(pos base.Position, piece base.Piece, sq base.Square) (base.Square, bool) {
	if !sq.Valid() {
		return base.Offboard, false
	}
	for _, s := range table[sq] {
		if pc, ok := pos[s]; ok && pc == piece {
			return s, true
		}
	}
	return base.Offboard, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
