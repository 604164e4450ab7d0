package store

import (
	"fmt"
	"time"

	"connectx/internal/game"
)

// SavedGame is the persisted form of a game. Cells are row-major, top row
// first: 0 empty, 1 Red, 2 Blue.
type SavedGame struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SavedAt     time.Time `json:"saved_at"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	WinLength   int       `json:"win_length"`
	Topology    string    `json:"topology"`
	Cells       []int     `json:"cells"`
	NextPlayer  int       `json:"next_player"`
	Player1Name string    `json:"player1_name"`
	Player2Name string    `json:"player2_name"`
	Player1Kind string    `json:"player1_kind"`
	Player2Kind string    `json:"player2_kind"`
	MoveCount   int       `json:"move_count"`
	Checksum    string    `json:"checksum"`
}

// Summary is the listing view of a saved game
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SavedAt   time.Time `json:"saved_at"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	WinLength int       `json:"win_length"`
	Topology  string    `json:"topology"`
	MoveCount int       `json:"move_count"`
}

// FromGame captures g under the given display name. ID, SavedAt and Checksum
// are filled in by the repository on Save.
func FromGame(g *game.Game, name string) *SavedGame {
	s := game.TakeSnapshot(g)
	return &SavedGame{
		Name:        name,
		Width:       s.Width,
		Height:      s.Height,
		WinLength:   s.WinLength,
		Topology:    s.Topology.String(),
		Cells:       s.Cells,
		NextPlayer:  int(s.NextPlayer),
		Player1Name: s.Player1Name,
		Player2Name: s.Player2Name,
		Player1Kind: s.Player1Kind.String(),
		Player2Kind: s.Player2Kind.String(),
		MoveCount:   s.MoveCount,
	}
}

// Snapshot converts the stored fields back into the core representation
func (s *SavedGame) Snapshot() (game.Snapshot, error) {
	topo, err := game.ParseTopology(s.Topology)
	if err != nil {
		return game.Snapshot{}, err
	}
	k1, err := game.ParsePlayerKind(s.Player1Kind)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("player 1: %w", err)
	}
	k2, err := game.ParsePlayerKind(s.Player2Kind)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("player 2: %w", err)
	}
	return game.Snapshot{
		Width:       s.Width,
		Height:      s.Height,
		WinLength:   s.WinLength,
		Topology:    topo,
		Cells:       append([]int(nil), s.Cells...),
		NextPlayer:  game.Cell(s.NextPlayer),
		Player1Name: s.Player1Name,
		Player2Name: s.Player2Name,
		Player1Kind: k1,
		Player2Kind: k2,
		MoveCount:   s.MoveCount,
	}, nil
}

// Restore rebuilds the live game, recomputing winner and game-over
func (s *SavedGame) Restore() (*game.Game, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return game.Restore(snap)
}

// Summary returns the listing view of s
func (s *SavedGame) Summary() Summary {
	return Summary{
		ID:        s.ID,
		Name:      s.Name,
		SavedAt:   s.SavedAt,
		Width:     s.Width,
		Height:    s.Height,
		WinLength: s.WinLength,
		Topology:  s.Topology,
		MoveCount: s.MoveCount,
	}
}

func (s *SavedGame) clone() *SavedGame {
	cp := *s
	cp.Cells = append([]int(nil), s.Cells...)
	return &cp
}
