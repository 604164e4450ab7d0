package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func playAll(t *testing.T, g *Game, cols ...int) {
	t.Helper()
	for _, c := range cols {
		if err := Play(g, c); err != nil {
			t.Fatalf("play %d: %v", c, err)
		}
	}
}

func TestNewGameValidatesConfig(t *testing.T) {
	is := is.New(t)
	_, err := NewGame(Config{Width: 2, Height: 6, WinLength: 4}, "a", "b")
	is.True(errors.Is(err, ErrConfiguration))

	g, err := NewGame(DefaultConfig(), "alice", "bob")
	is.NoErr(err)
	is.Equal(g.NextPlayer, Red)
	is.Equal(g.Winner, Empty)
	is.Equal(g.LastCol, -1)
	is.True(!g.Over)
}

func TestProcessMoveTogglesTurn(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(mustConfig(t, 3, 3, 3, Rectangle), "a", "b")
	is.NoErr(err)

	ok, row := ProcessMove(g, 1)
	is.True(ok)
	is.Equal(row, 2)
	is.Equal(g.NextPlayer, Blue)
	is.Equal(g.MoveCount, 1)
	is.Equal(g.LastRow, 2)
	is.Equal(g.LastCol, 1)
	is.Equal(g.Board.At(2, 1), Red)

	ProcessMove(g, 1)
	ProcessMove(g, 1)
	before := g.Board.Clone()
	ok, row = ProcessMove(g, 1)
	is.True(!ok)
	is.Equal(row, -1)
	is.Equal(g.NextPlayer, Blue)
	is.Equal(g.MoveCount, 3)
	is.True(g.Board.Equal(before))

	ok, _ = ProcessMove(g, 5)
	is.True(!ok)
}

func TestPlayDetectsWin(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(DefaultConfig(), "a", "b")
	is.NoErr(err)
	playAll(t, g, 0, 0, 1, 1, 2, 2)
	is.True(!g.Over)

	is.NoErr(Play(g, 3))
	is.True(g.Over)
	is.Equal(g.Winner, Red)
	is.Equal(g.WinningCells, []Point{{5, 0}, {5, 1}, {5, 2}, {5, 3}})

	err = Play(g, 4)
	is.True(errors.Is(err, ErrGameOver))
	ok, _ := ProcessMove(g, 4)
	is.True(!ok)
	is.Equal(g.MoveCount, 7)
}

func TestPlayEndsInDraw(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(mustConfig(t, 3, 3, 3, Rectangle), "a", "b")
	is.NoErr(err)
	playAll(t, g, 1, 0, 2, 1, 0, 2, 0, 1, 2)
	is.True(g.Over)
	is.Equal(g.Winner, Empty)
	is.Equal(len(g.WinningCells), 0)
	is.True(IsFull(g))
	is.True(IsDraw(g.Board, g.Config))
}

func TestPlayReportsBadColumns(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(mustConfig(t, 3, 3, 3, Rectangle), "a", "b")
	is.NoErr(err)
	is.True(errors.Is(Play(g, 3), ErrColOutOfRange))
	is.True(errors.Is(Play(g, -1), ErrColOutOfRange))
	playAll(t, g, 0, 0, 0)
	is.True(errors.Is(Play(g, 0), ErrColFull))
	is.Equal(g.NextPlayer, Blue)
	is.Equal(g.MoveCount, 3)
}

func TestSeatsAndReset(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(DefaultConfig(), "alice", "engine")
	is.NoErr(err)
	g.Player2Kind = Computer
	is.Equal(NameOf(g, Red), "alice")
	is.Equal(NameOf(g, Blue), "engine")
	is.Equal(KindOf(g, Blue), Computer)
	is.Equal(KindOf(g, Red), Human)

	playAll(t, g, 3, 3, 4)
	Reset(g)
	is.Equal(PieceCount(g.Board), 0)
	is.Equal(g.NextPlayer, Red)
	is.Equal(g.MoveCount, 0)
	is.Equal(g.Player2Name, "engine")
	is.Equal(g.Player2Kind, Computer)
}

func TestParsePlayerKind(t *testing.T) {
	is := is.New(t)
	k, err := ParsePlayerKind("AI")
	is.NoErr(err)
	is.Equal(k, Computer)
	k, err = ParsePlayerKind("human")
	is.NoErr(err)
	is.Equal(k, Human)
	_, err = ParsePlayerKind("robot")
	is.True(err != nil)
}

func TestSnapshotRoundTrip(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(mustConfig(t, 6, 5, 4, Cylinder), "alice", "engine")
	is.NoErr(err)
	g.Player2Kind = Computer
	playAll(t, g, 0, 5, 0, 2, 1)

	r, err := Restore(TakeSnapshot(g))
	is.NoErr(err)
	is.Equal(r.Config, g.Config)
	is.True(r.Board.Equal(g.Board))
	is.Equal(r.NextPlayer, Blue)
	is.Equal(r.MoveCount, 5)
	is.Equal(r.Player1Name, "alice")
	is.Equal(r.Player2Kind, Computer)
	is.True(!r.Over)
}

func TestRestoreRecomputesResult(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(DefaultConfig(), "a", "b")
	is.NoErr(err)
	playAll(t, g, 0, 0, 1, 1, 2, 2, 3)

	s := TakeSnapshot(g)
	s.MoveCount = 0
	r, err := Restore(s)
	is.NoErr(err)
	is.True(r.Over)
	is.Equal(r.Winner, Red)
	is.Equal(r.WinningCells, g.WinningCells)
	is.Equal(r.MoveCount, 7)
}

func TestRestoreRejectsBadSnapshots(t *testing.T) {
	g, err := NewGame(mustConfig(t, 3, 3, 3, Rectangle), "a", "b")
	if err != nil {
		t.Fatal(err)
	}
	playAll(t, g, 0)
	good := TakeSnapshot(g)

	cases := map[string]func(s *Snapshot){
		"short grid":   func(s *Snapshot) { s.Cells = s.Cells[:8] },
		"floating":     func(s *Snapshot) { s.Cells[4] = int(Blue) },
		"unknown cell": func(s *Snapshot) { s.Cells[6] = 3 },
		"no side":      func(s *Snapshot) { s.NextPlayer = Empty },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			s := good
			s.Cells = append([]int(nil), good.Cells...)
			mutate(&s)
			_, err := Restore(s)
			is.True(errors.Is(err, ErrBadSnapshot))
		})
	}

	is := is.New(t)
	bad := good
	bad.WinLength = 9
	_, err = Restore(bad)
	is.True(errors.Is(err, ErrConfiguration))
}
