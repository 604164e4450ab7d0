package game

// axes are the four line directions as (dRow, dCol): horizontal, vertical,
// diagonal down-right and diagonal down-left. Each is walked both ways.
var axes = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// CheckWin reports whether the piece at (row, col) belongs to a run of at
// least cfg.WinLength cells of colour c along any axis
func CheckWin(b Board, row, col int, c Cell, cfg Config) bool {
	if c == Empty {
		return false
	}
	for _, d := range axes {
		neg, pos := runLength(b, row, col, d[0], d[1], c, cfg.Topology)
		if 1+neg+pos >= cfg.WinLength {
			return true
		}
	}
	return false
}

// WinningLine returns the colour and the cells of the first winning run through (row, col),
// ordered from the negative end of the axis to the positive end
func WinningLine(b Board, row, col int, cfg Config) (Cell, []Point) {
	c := b.At(row, col)
	if c == Empty {
		return Empty, nil
	}
	for _, d := range axes {
		neg, pos := runLength(b, row, col, d[0], d[1], c, cfg.Topology)
		if 1+neg+pos < cfg.WinLength {
			continue
		}
		line := make([]Point, 0, 1+neg+pos)
		for k := -neg; k <= pos; k++ {
			pc := col + k*d[1]
			if cfg.Topology == Cylinder {
				pc = wrapCol(pc, b.width)
			}
			line = append(line, Point{Row: row + k*d[0], Col: pc})
		}
		return c, line
	}
	return Empty, nil
}

// FindWinner scans the board row by row and returns the first winning colour
// together with its run, or Empty when nobody has won
func FindWinner(b Board, cfg Config) (Cell, []Point) {
	for r := 0; r < b.height; r++ {
		for col := 0; col < b.width; col++ {
			if b.cells[r*b.width+col] == Empty {
				continue
			}
			if w, line := WinningLine(b, r, col, cfg); w != Empty {
				return w, line
			}
		}
	}
	return Empty, nil
}

// IsDraw reports a full board with no winner
func IsDraw(b Board, cfg Config) bool {
	if !IsBoardFull(b) {
		return false
	}
	w, _ := FindWinner(b, cfg)
	return w == Empty
}

// runLength counts matching cells beyond (row, col) in the negative and positive
// direction of (dr, dc). A horizontal run on a cylinder may cover the whole row
// but never counts a cell twice.
func runLength(b Board, row, col, dr, dc int, c Cell, topo Topology) (neg, pos int) {
	limit := b.width * b.height
	if topo == Cylinder && dr == 0 {
		limit = b.width - 1
	}
	for k := 1; pos < limit; k++ {
		i, ok := b.locate(row+k*dr, col+k*dc, topo)
		if !ok || b.cells[i] != c {
			break
		}
		pos++
	}
	for k := 1; neg < limit-pos; k++ {
		i, ok := b.locate(row-k*dr, col-k*dc, topo)
		if !ok || b.cells[i] != c {
			break
		}
		neg++
	}
	return neg, pos
}
