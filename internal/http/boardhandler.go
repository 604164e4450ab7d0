package httphandler

import (
	"github.com/samber/lo"

	"connectx/internal/game"
)

type cellView struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type playerView struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Color string `json:"color"`
}

// gameView is the JSON shape of a live game. Rows are top row first using
// X for Red, O for Blue and '.' for empty.
type gameView struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Width        int           `json:"width"`
	Height       int           `json:"height"`
	WinLength    int           `json:"win_length"`
	Topology     string        `json:"topology"`
	Rows         []string      `json:"rows"`
	NextPlayer   string        `json:"next_player"`
	Over         bool          `json:"over"`
	Draw         bool          `json:"draw"`
	Winner       string        `json:"winner,omitempty"`
	WinningCells []cellView    `json:"winning_cells,omitempty"`
	LastMove     *cellView     `json:"last_move,omitempty"`
	MoveCount    int           `json:"move_count"`
	Available    []int         `json:"available"`
	Players      [2]playerView `json:"players"`
	Level        int           `json:"level"`
	LevelName    string        `json:"level_name"`
	Rev          int           `json:"rev"`
}

func toCellViews(ps []game.Point) []cellView {
	return lo.Map(ps, func(p game.Point, _ int) cellView {
		return cellView{Row: p.Row, Col: p.Col}
	})
}

// viewOf builds the response for rm
func viewOf(rm *Room) gameView {
	g := rm.Game
	v := gameView{
		ID:           rm.ID,
		Name:         rm.Name,
		Width:        g.Config.Width,
		Height:       g.Config.Height,
		WinLength:    g.Config.WinLength,
		Topology:     g.Config.Topology.String(),
		Rows:         game.Rows(g.Board),
		NextPlayer:   g.NextPlayer.String(),
		Over:         g.Over,
		Draw:         g.Over && g.Winner == game.Empty,
		WinningCells: toCellViews(g.WinningCells),
		MoveCount:    g.MoveCount,
		Available:    game.AvailableColumns(g.Board),
		Level:        rm.Level,
		LevelName:    game.LevelName(rm.Level),
		Rev:          rm.Rev,
	}
	if g.Over {
		v.NextPlayer = ""
		v.Available = []int{}
	}
	if g.Winner != game.Empty {
		v.Winner = g.Winner.String()
	}
	if g.LastCol >= 0 {
		v.LastMove = &cellView{Row: g.LastRow, Col: g.LastCol}
	}
	for i, c := range []game.Cell{game.Red, game.Blue} {
		v.Players[i] = playerView{
			Name:  game.NameOf(g, c),
			Kind:  game.KindOf(g, c).String(),
			Color: c.String(),
		}
	}
	return v
}
