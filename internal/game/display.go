package game

import (
	"fmt"
	"strings"
)

func symbol(c Cell) string {
	switch c {
	case Red:
		return "X"
	case Blue:
		return "O"
	}
	return "."
}

// ToDisplayText renders the board with 1-based column numbers on top.
// Highlighted cells are bracketed.
func ToDisplayText(b Board, highlight []Point) string {
	hl := make(map[Point]bool, len(highlight))
	for _, p := range highlight {
		hl[p] = true
	}
	var sb strings.Builder
	for c := 0; c < b.width; c++ {
		fmt.Fprintf(&sb, "%3d", c+1)
	}
	sb.WriteString("\n")
	for r := 0; r < b.height; r++ {
		for c := 0; c < b.width; c++ {
			s := symbol(b.At(r, c))
			if hl[Point{Row: r, Col: c}] {
				sb.WriteString("[" + s + "]")
			} else {
				sb.WriteString(" " + s + " ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Rows returns one string of X, O and '.' per row, top row first.
// ParseBoard accepts the result.
func Rows(b Board) []string {
	out := make([]string, b.height)
	for r := range out {
		var sb strings.Builder
		for c := 0; c < b.width; c++ {
			sb.WriteString(symbol(b.At(r, c)))
		}
		out[r] = sb.String()
	}
	return out
}

// ParseBoard builds a board from rows of X, O and '.', top row first.
// Blank characters are ignored. It exists for fixtures and console input.
func ParseBoard(cfg Config, rows ...string) (Board, error) {
	if len(rows) != cfg.Height {
		return Board{}, fmt.Errorf("%w: %d rows for height %d", ErrBadSnapshot, len(rows), cfg.Height)
	}
	b := NewBoard(cfg)
	for r, line := range rows {
		line = strings.ReplaceAll(line, " ", "")
		if len(line) != cfg.Width {
			return Board{}, fmt.Errorf("%w: row %d has %d cells", ErrBadSnapshot, r, len(line))
		}
		for c, ch := range line {
			switch ch {
			case 'X', 'x', 'R', 'r':
				b.set(r, c, Red)
			case 'O', 'o', 'B', 'b':
				b.set(r, c, Blue)
			case '.', '_', '-':
			default:
				return Board{}, fmt.Errorf("%w: unexpected %q", ErrBadSnapshot, ch)
			}
		}
	}
	return b, nil
}
