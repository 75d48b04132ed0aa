package convfen

import (
	"evilboard/src/base"
	"fmt"
	"strconv"
	"strings"
)

// ConvertPositionToFEN emits the placement field, ranks 8 to 1, files a to h,
// empty runs collapsed into a single digit.
func ConvertPositionToFEN(pos base.Position) string {
	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc, ok := pos[base.NewSquare(file, rank)]
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteRune(base.ConvertRuneFromPiece(pc))
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			b.WriteByte('/')
		}
	}
	return b.String()
}

// ConvertFENToPosition decodes the placement field. Anything after the first
// space (side to move, castling, ...) is ignored.
func ConvertFENToPosition(fen string) (base.Position, error) {
	placement, _, _ := strings.Cut(strings.TrimSpace(fen), " ")
	if placement == "" {
		return nil, &base.FormatError{Input: fen, Reason: "empty placement"}
	}

	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return nil, &base.FormatError{Input: fen, Reason: fmt.Sprintf("must be 8 rows, but there are %d", len(ranks))}
	}

	pos := make(base.Position)
	for r := 0; r < 8; r++ {
		row := ranks[r]
		count := 0
		for _, ch := range row {
			if count == 8 {
				return nil, &base.FormatError{Input: fen, Reason: fmt.Sprintf("row %d overflows 8 files", r+1)}
			}
			if ch >= '1' && ch <= '8' {
				empty := int(ch - '0')
				if empty+count > 8 {
					return nil, &base.FormatError{Input: fen, Reason: fmt.Sprintf("row %d overflows 8 files", r+1)}
				}
				count += empty
				continue
			}
			pc := base.ConvertPieceFromRune(ch)
			if pc == base.InvalidPiece {
				return nil, &base.FormatError{Input: fen, Reason: fmt.Sprintf("bad piece letter %q in row %d", ch, r+1)}
			}
			// row 0 of the input is rank 8
			pos[base.NewSquare(count, 7-r)] = pc
			count++
		}
		if count != 8 {
			return nil, &base.FormatError{Input: fen, Reason: fmt.Sprintf("row %d has %d files, want 8", r+1, count)}
		}
	}
	return pos, nil
}

func IsValidFEN(fen string) bool {
	_, err := ConvertFENToPosition(fen)
	return err == nil
}

// StartPosition returns a fresh copy of the standard opening setup.
func StartPosition() base.Position {
	pos, _ := ConvertFENToPosition(base.FEN_START_GAME)
	return pos
}
