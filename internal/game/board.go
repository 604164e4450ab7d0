package game

import "github.com/samber/lo"

type Cell uint8

const (
	Empty Cell = iota
	Red        // moves first
	Blue
)

func (c Cell) String() string {
	switch c {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	default:
		return "Empty"
	}
}

// Opponent returns the other colour; Empty maps to Red
func Opponent(c Cell) Cell {
	if c == Red {
		return Blue
	}
	return Red
}

// Point addresses a cell, row 0 is the top of the board
type Point struct {
	Row int
	Col int
}

// Board is a height x width grid stored row-major in a single buffer
type Board struct {
	width  int
	height int
	cells  []Cell
}

// NewBoard creates an empty board sized by the configuration
func NewBoard(cfg Config) Board {
	return Board{
		width:  cfg.Width,
		height: cfg.Height,
		cells:  make([]Cell, cfg.Width*cfg.Height),
	}
}

func (b Board) Width() int  { return b.width }
func (b Board) Height() int { return b.height }

// At returns the cell at (row, col); out of range reads as Empty
func (b Board) At(row, col int) Cell {
	i, ok := b.locate(row, col, Rectangle)
	if !ok {
		return Empty
	}
	return b.cells[i]
}

func (b *Board) set(row, col int, c Cell) {
	b.cells[row*b.width+col] = c
}

// Clone returns a board that shares no storage with b
func (b Board) Clone() Board {
	nb := Board{width: b.width, height: b.height, cells: make([]Cell, len(b.cells))}
	copy(nb.cells, b.cells)
	return nb
}

// Cells returns a row-major copy of the grid
func (b Board) Cells() []Cell {
	out := make([]Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

// Equal reports whether both boards have the same size and contents
func (b Board) Equal(o Board) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// locate maps (row, col) to a buffer index. Rows never wrap; on a cylinder the
// column is normalized into [0,width), otherwise it is bounds checked.
// Win detection and the evaluator both go through here.
func (b Board) locate(row, col int, topo Topology) (int, bool) {
	if row < 0 || row >= b.height {
		return 0, false
	}
	if topo == Cylinder {
		col = wrapCol(col, b.width)
	} else if col < 0 || col >= b.width {
		return 0, false
	}
	return row*b.width + col, true
}

func wrapCol(col, width int) int {
	col %= width
	if col < 0 {
		col += width
	}
	return col
}

// IsColumnFull reports whether the top cell of col is taken; out of range columns count as full
func IsColumnFull(b Board, col int) bool {
	if col < 0 || col >= b.width {
		return true
	}
	return b.cells[col] != Empty
}

// IsBoardFull reports whether every column is full
func IsBoardFull(b Board) bool {
	for c := 0; c < b.width; c++ {
		if !IsColumnFull(b, c) {
			return false
		}
	}
	return true
}

// AvailableColumns lists the playable columns in ascending order. Search
// iterates in this order, so the leftmost column wins ties.
func AvailableColumns(b Board) []int {
	return lo.Filter(lo.Range(b.width), func(c int, _ int) bool {
		return !IsColumnFull(b, c)
	})
}

// DropRow returns the row a piece dropped in col lands on, or -1 if it cannot
func DropRow(b Board, col int) int {
	if col < 0 || col >= b.width {
		return -1
	}
	for r := b.height - 1; r >= 0; r-- {
		if b.cells[r*b.width+col] == Empty {
			return r
		}
	}
	return -1
}

// PieceCount returns the number of non-empty cells
func PieceCount(b Board) int {
	return lo.CountBy(b.cells, func(c Cell) bool { return c != Empty })
}
