package game

import "errors"

var (
	ErrColOutOfRange = errors.New("column out of range")
	ErrColFull       = errors.New("column full")
	ErrInvalidPlayer = errors.New("invalid player")
)

// AddPeon drops a piece into col on the board in place and returns the row it landed on
func AddPeon(board *Board, col int, cell Cell) (int, error) {
	// rejects columns outside bounds
	if col < 0 || col >= board.width {
		return -1, ErrColOutOfRange
	}
	// rejects non playable cell values
	if cell != Red && cell != Blue {
		return -1, ErrInvalidPlayer
	}
	row := DropRow(*board, col)
	if row < 0 {
		return -1, ErrColFull
	}
	board.set(row, col, cell)
	return row, nil
}

// MakeMove returns a copy of board with cell dropped into col; board itself is left untouched
func MakeMove(board Board, col int, cell Cell) (Board, error) {
	nb := board.Clone()
	if _, err := AddPeon(&nb, col, cell); err != nil {
		return board, err
	}
	return nb, nil
}
