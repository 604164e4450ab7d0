package game

import (
	"errors"
	"fmt"
)

var ErrBadSnapshot = errors.New("bad snapshot")

// Snapshot is the flat shape persistence layers store: the configuration, the
// grid as row-major small ints (0 empty, 1 Red, 2 Blue) and whose turn it is
type Snapshot struct {
	Width       int
	Height      int
	WinLength   int
	Topology    Topology
	Cells       []int
	NextPlayer  Cell
	Player1Name string
	Player2Name string
	Player1Kind PlayerKind
	Player2Kind PlayerKind
	MoveCount   int
}

// TakeSnapshot copies the persistent part of g
func TakeSnapshot(g *Game) Snapshot {
	cells := make([]int, len(g.Board.cells))
	for i, c := range g.Board.cells {
		cells[i] = int(c)
	}
	return Snapshot{
		Width:       g.Config.Width,
		Height:      g.Config.Height,
		WinLength:   g.Config.WinLength,
		Topology:    g.Config.Topology,
		Cells:       cells,
		NextPlayer:  g.NextPlayer,
		Player1Name: g.Player1Name,
		Player2Name: g.Player2Name,
		Player1Kind: g.Player1Kind,
		Player2Kind: g.Player2Kind,
		MoveCount:   g.MoveCount,
	}
}

// Restore rebuilds a game from a snapshot. The grid must match the
// configuration and respect gravity; winner and game-over are recomputed.
func Restore(s Snapshot) (*Game, error) {
	cfg, err := NewConfig(s.Width, s.Height, s.WinLength, s.Topology)
	if err != nil {
		return nil, err
	}
	if len(s.Cells) != cfg.Width*cfg.Height {
		return nil, fmt.Errorf("%w: %d cells for a %dx%d board", ErrBadSnapshot, len(s.Cells), cfg.Width, cfg.Height)
	}
	if s.NextPlayer != Red && s.NextPlayer != Blue {
		return nil, fmt.Errorf("%w: next player %d", ErrBadSnapshot, s.NextPlayer)
	}
	g, err := NewGame(cfg, s.Player1Name, s.Player2Name)
	if err != nil {
		return nil, err
	}
	for i, v := range s.Cells {
		if v < int(Empty) || v > int(Blue) {
			return nil, fmt.Errorf("%w: cell %d holds %d", ErrBadSnapshot, i, v)
		}
		g.Board.cells[i] = Cell(v)
	}
	// a piece may only sit on the bottom row or on another piece
	for r := 0; r < cfg.Height-1; r++ {
		for c := 0; c < cfg.Width; c++ {
			if g.Board.At(r, c) != Empty && g.Board.At(r+1, c) == Empty {
				return nil, fmt.Errorf("%w: floating piece at row %d column %d", ErrBadSnapshot, r, c)
			}
		}
	}
	g.NextPlayer = s.NextPlayer
	g.Player1Kind, g.Player2Kind = s.Player1Kind, s.Player2Kind
	g.MoveCount = s.MoveCount
	if s.MoveCount == 0 {
		g.MoveCount = PieceCount(g.Board)
	}
	if w, line := Winner(g); w != Empty {
		g.Winner, g.WinningCells, g.Over = w, line, true
	} else if IsFull(g) {
		g.Over = true
	}
	return g, nil
}
