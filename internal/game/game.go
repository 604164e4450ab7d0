package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrGameOver = errors.New("game over")

// PlayerKind tells whether a seat is played by a person or by an engine
type PlayerKind uint8

const (
	Human PlayerKind = iota
	Computer
)

func (k PlayerKind) String() string {
	if k == Computer {
		return "computer"
	}
	return "human"
}

// ParsePlayerKind accepts "human"/"h" and "computer"/"ai"/"c"
func ParsePlayerKind(s string) (PlayerKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human", "h", "":
		return Human, nil
	case "computer", "ai", "c", "bot":
		return Computer, nil
	}
	return Human, fmt.Errorf("unknown player kind %q", s)
}

// Game is the live state owned by a driver. Only the driver mutates Board;
// engines read it and work on clones.
type Game struct {
	Config       Config
	Board        Board
	NextPlayer   Cell
	Over         bool
	Winner       Cell
	WinningCells []Point
	Player1Name  string
	Player2Name  string
	Player1Kind  PlayerKind
	Player2Kind  PlayerKind
	MoveCount    int
	LastRow      int
	LastCol      int
}

// NewGame validates cfg and returns an empty game with Red (player 1) to move
func NewGame(cfg Config, player1, player2 string) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Game{
		Config:      cfg,
		Board:       NewBoard(cfg),
		NextPlayer:  Red,
		Winner:      Empty,
		Player1Name: player1,
		Player2Name: player2,
		LastRow:     -1,
		LastCol:     -1,
	}, nil
}

// ToggleTurn hands the move to the other colour
func ToggleTurn(g *Game) {
	g.NextPlayer = Opponent(g.NextPlayer)
}

// ProcessMove drops a piece for the side to move and hands the turn over.
// It reports false and leaves the game untouched when the column is out of
// range or full, or the game is already over.
func ProcessMove(g *Game, col int) (bool, int) {
	if g.Over {
		return false, -1
	}
	row, err := AddPeon(&g.Board, col, g.NextPlayer)
	if err != nil {
		return false, -1
	}
	g.MoveCount++
	g.LastRow = row
	g.LastCol = col
	ToggleTurn(g)
	return true, row
}

// Play applies a move for the side to move and settles the result: a win at the
// landing cell or a full board ends the game
func Play(g *Game, col int) error {
	if g.Over {
		return ErrGameOver
	}
	// reports the precise reason before touching the board
	if col < 0 || col >= g.Config.Width {
		return ErrColOutOfRange
	}
	if IsColumnFull(g.Board, col) {
		return ErrColFull
	}
	ok, row := ProcessMove(g, col)
	if !ok {
		return ErrColFull
	}
	if w, line := WinAt(g, row, col); w != Empty {
		g.Winner, g.WinningCells, g.Over = w, line, true
		return nil
	}
	if IsFull(g) {
		g.Over = true
	}
	return nil
}

// WinAt checks the run through (row, col)
func WinAt(g *Game, row, col int) (Cell, []Point) {
	return WinningLine(g.Board, row, col, g.Config)
}

// Winner scans the whole board
func Winner(g *Game) (Cell, []Point) {
	return FindWinner(g.Board, g.Config)
}

// IsFull reports whether no column is playable
func IsFull(g *Game) bool {
	return IsBoardFull(g.Board)
}

// KindOf returns the kind of the seat playing colour c
func KindOf(g *Game, c Cell) PlayerKind {
	if c == Blue {
		return g.Player2Kind
	}
	return g.Player1Kind
}

// NameOf returns the name of the seat playing colour c
func NameOf(g *Game, c Cell) string {
	if c == Blue {
		return g.Player2Name
	}
	return g.Player1Name
}

// Reset clears the board but keeps configuration, names and kinds
func Reset(g *Game) {
	p1, p2 := g.Player1Name, g.Player2Name
	k1, k2 := g.Player1Kind, g.Player2Kind
	ng, _ := NewGame(g.Config, p1, p2)
	*g = *ng
	g.Player1Kind, g.Player2Kind = k1, k2
}
