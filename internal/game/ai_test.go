package game

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/matryer/is"
)

// threeInRow has Red one move from a horizontal win in column 3
// and Blue one move from a vertical win in column 6
var threeInRow = []string{
	".......",
	".......",
	".......",
	"......O",
	"......O",
	"XXX...O",
}

func TestSearchTakesImmediateWin(t *testing.T) {
	cfg := DefaultConfig()
	b := mustBoard(t, cfg,
		".......",
		".......",
		".......",
		".......",
		"OO.....",
		"XXX....",
	)
	for _, depth := range []int{0, 1, 3, 5} {
		is := is.New(t)
		res, err := NewMinimax(depth).Search(b, Red, cfg)
		is.NoErr(err)
		is.Equal(res.Column, 3)
		is.Equal(res.Reason, ForcedWin)
	}
}

func TestSearchPrefersWinOverBlock(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	b := mustBoard(t, cfg, threeInRow...)

	res, err := NewMinimax(4).Search(b, Red, cfg)
	is.NoErr(err)
	is.Equal(res.Column, 3)
	is.Equal(res.Reason, ForcedWin)

	res, err = NewMinimax(4).Search(b, Blue, cfg)
	is.NoErr(err)
	is.Equal(res.Column, 6)
	is.Equal(res.Reason, ForcedWin)
}

func TestSearchBlocksImmediateLoss(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	b := mustBoard(t, cfg,
		".......",
		".......",
		".......",
		".......",
		"OO.....",
		"XX.X...",
	)
	for _, depth := range []int{1, 4} {
		res, err := NewMinimax(depth).Search(b, Blue, cfg)
		is.NoErr(err)
		is.Equal(res.Column, 2)
		is.Equal(res.Reason, ForcedBlock)
	}
}

func TestSearchOnCylinderSeesWrappedThreat(t *testing.T) {
	is := is.New(t)
	cfg := mustConfig(t, 7, 6, 4, Cylinder)
	b := mustBoard(t, cfg,
		".......",
		".......",
		".......",
		".......",
		"..O....",
		"XXO...X",
	)
	// column 5 completes 5-6-0-1 only because the row wraps
	res, err := NewMinimax(2).Search(b, Red, cfg)
	is.NoErr(err)
	is.Equal(res.Column, 5)
	is.Equal(res.Reason, ForcedWin)

	res, err = NewMinimax(2).Search(b, Blue, cfg)
	is.NoErr(err)
	is.Equal(res.Column, 5)
	is.Equal(res.Reason, ForcedBlock)
}

func TestSearchReturnsAPlayableColumn(t *testing.T) {
	for _, cfg := range []Config{
		DefaultConfig(),
		mustConfig(t, 3, 3, 3, Rectangle),
		mustConfig(t, 9, 7, 5, Cylinder),
		mustConfig(t, 20, 20, 20, Rectangle),
	} {
		t.Run(cfg.String(), func(t *testing.T) {
			is := is.New(t)
			b := NewBoard(cfg)
			res, err := NewMinimax(2).Search(b, Red, cfg)
			is.NoErr(err)
			is.Equal(res.Reason, Searched)
			is.True(res.Column >= 0 && res.Column < cfg.Width)
			is.True(res.Nodes > 0)
		})
	}
}

func TestSearchOnFullBoard(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	b := mustBoard(t, cfg, drawRows...)
	for _, p := range []Player{NewMinimax(3), Greedy{}, Random{}} {
		col, err := p.GetBestMove(b, Red, cfg)
		is.True(errors.Is(err, ErrNoMove))
		is.Equal(col, -1)
	}
}

func TestSearchRejectsEmptySide(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	_, err := NewMinimax(2).Search(NewBoard(cfg), Empty, cfg)
	is.True(errors.Is(err, ErrInvalidPlayer))
	_, err = Greedy{}.GetBestMove(NewBoard(cfg), Empty, cfg)
	is.True(errors.Is(err, ErrInvalidPlayer))
}

func TestDepthZeroSearchMatchesGreedy(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	b := NewBoard(cfg)
	res, err := NewMinimax(0).Search(b, Red, cfg)
	is.NoErr(err)
	greedy, err := Greedy{}.GetBestMove(b, Red, cfg)
	is.NoErr(err)
	is.Equal(res.Column, greedy)
	is.Equal(res.Column, 3)
}

func TestAlphaBetaTerminalValues(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	won := mustBoard(t, cfg,
		".......",
		".......",
		".......",
		".......",
		"OOO....",
		"XXXX...",
	)
	is.Equal(AlphaBeta(won, 3, math.MinInt64, math.MaxInt64, false, Red, cfg), int64(WinScore+3))
	is.Equal(AlphaBeta(won, 3, math.MinInt64, math.MaxInt64, true, Blue, cfg), int64(-WinScore-3))

	draw := mustBoard(t, cfg, drawRows...)
	is.Equal(AlphaBeta(draw, 5, math.MinInt64, math.MaxInt64, true, Red, cfg), int64(0))

	open := mustBoard(t, cfg,
		".......",
		".......",
		".......",
		".......",
		".......",
		"..XO...",
	)
	is.Equal(AlphaBeta(open, 0, math.MinInt64, math.MaxInt64, true, Red, cfg), Evaluate(open, Red, cfg))
	is.Equal(AlphaBeta(open, -1, math.MinInt64, math.MaxInt64, false, Blue, cfg), Evaluate(open, Blue, cfg))
}

func TestAlphaBetaPrefersFasterWin(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	b := mustBoard(t, cfg,
		".......",
		".......",
		".......",
		".......",
		"OO.....",
		"XXX....",
	)
	// Red to move wins at once, so the score keeps all but one ply of depth
	is.Equal(AlphaBeta(b, 3, math.MinInt64, math.MaxInt64, true, Red, cfg), int64(WinScore+2))
}

// randomPosition plays up to plies random moves and gives up if someone wins
func randomPosition(rng *rand.Rand, cfg Config, plies int) (Board, Cell, bool) {
	b := NewBoard(cfg)
	side := Red
	for i := 0; i < plies; i++ {
		moves := AvailableColumns(b)
		if len(moves) == 0 {
			return b, side, false
		}
		col := moves[rng.IntN(len(moves))]
		row, err := AddPeon(&b, col, side)
		if err != nil || CheckWin(b, row, col, side, cfg) {
			return b, side, false
		}
		side = Opponent(side)
	}
	return b, side, len(AvailableColumns(b)) > 0
}

func TestPruningDoesNotChangeTheChoice(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 42))
	configs := []Config{
		DefaultConfig(),
		mustConfig(t, 6, 5, 4, Cylinder),
		mustConfig(t, 5, 4, 3, Rectangle),
	}
	checked := 0
	for i := 0; checked < 30 && i < 500; i++ {
		cfg := configs[i%len(configs)]
		b, side, ok := randomPosition(rng, cfg, 2+rng.IntN(10))
		if !ok {
			continue
		}
		checked++

		is := is.New(t)
		pruned := &Minimax{Depth: 4}
		full := &Minimax{Depth: 4, DisablePruning: true}
		a, err := pruned.Search(b, side, cfg)
		is.NoErr(err)
		f, err := full.Search(b, side, cfg)
		is.NoErr(err)
		is.Equal(a.Column, f.Column)
		is.Equal(a.Reason, f.Reason)
		is.Equal(a.Score, f.Score)
		is.True(a.Nodes <= f.Nodes)
	}
	if checked == 0 {
		t.Fatal("no positions generated")
	}
}

func TestSearchKeepsLeftmostBestColumn(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 11))
	cfg := DefaultConfig()
	const depth = 3
	checked := 0
	for i := 0; checked < 20 && i < 500; i++ {
		b, side, ok := randomPosition(rng, cfg, rng.IntN(12))
		if !ok {
			continue
		}
		is := is.New(t)
		res, err := NewMinimax(depth).Search(b, side, cfg)
		is.NoErr(err)
		if res.Reason != Searched {
			continue
		}
		checked++

		want, best := -1, int64(math.MinInt64)
		for _, col := range AvailableColumns(b) {
			nb, err := MakeMove(b, col, side)
			is.NoErr(err)
			sc := AlphaBeta(nb, depth-1, math.MinInt64, math.MaxInt64, false, side, cfg)
			if want < 0 || sc > best {
				want, best = col, sc
			}
		}
		is.Equal(res.Column, want)
		is.Equal(res.Score, best)
	}
	if checked == 0 {
		t.Fatal("no searched positions")
	}
}

func TestGreedyTakesWinsAndBlocks(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	b := mustBoard(t, cfg, threeInRow...)
	col, err := Greedy{}.GetBestMove(b, Red, cfg)
	is.NoErr(err)
	is.Equal(col, 3)

	b = mustBoard(t, cfg,
		".......",
		".......",
		".......",
		".......",
		"OO.....",
		"XX.X...",
	)
	col, err = Greedy{}.GetBestMove(b, Blue, cfg)
	is.NoErr(err)
	is.Equal(col, 2)
}

func TestRandomPlaysOnlyOpenColumns(t *testing.T) {
	is := is.New(t)
	cfg := mustConfig(t, 3, 3, 3, Rectangle)
	b := mustBoard(t, cfg,
		"X.O",
		"O.X",
		"XOO",
	)
	for i := 0; i < 50; i++ {
		col, err := Random{}.GetBestMove(b, Red, cfg)
		is.NoErr(err)
		is.Equal(col, 1)
	}
}

func TestForLevel(t *testing.T) {
	is := is.New(t)
	is.Equal(ForLevel(0, 6), Player(Random{}))
	is.Equal(ForLevel(1, 6), Player(Random{}))
	is.Equal(ForLevel(2, 6), Player(Greedy{}))

	depthOf := func(p Player) int {
		m, ok := p.(*Minimax)
		is.True(ok)
		return m.Depth
	}
	is.Equal(depthOf(ForLevel(3, 6)), 3)
	is.Equal(depthOf(ForLevel(4, 6)), 4)
	is.Equal(depthOf(ForLevel(4, 2)), 2)
	is.Equal(depthOf(ForLevel(5, 8)), 8)
	is.Equal(depthOf(ForLevel(9, 0)), DefaultDepth)

	is.Equal(LevelName(1), "Easy")
	is.Equal(LevelName(5), "Master")
	is.Equal(ForcedBlock.String(), "forced-block")
}
