package game

import (
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

/*
function alphabeta(node, depth, α, β, maximizingPlayer) is
    if node is terminal or depth = 0 then
        return the value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
            α := max(α, value)
            if β ≤ α then break
        return value
    else
        value := +∞
        for each child of node do
            value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
            β := min(β, value)
            if β ≤ α then break
        return value
*/

const (
	// WinScore is the magnitude of a decided position before the depth adjustment
	WinScore = 10000
	// DefaultDepth is the search depth used when none is configured
	DefaultDepth = 6
)

// ErrNoMove is returned when a move is requested on a board without playable columns
var ErrNoMove = errors.New("no available move")

// Player is anything that can choose a column for the side to move
type Player interface {
	GetBestMove(b Board, side Cell, cfg Config) (int, error)
}

type MoveReason uint8

const (
	Searched MoveReason = iota
	ForcedWin
	ForcedBlock
)

func (r MoveReason) String() string {
	switch r {
	case ForcedWin:
		return "forced-win"
	case ForcedBlock:
		return "forced-block"
	}
	return "searched"
}

// SearchResult is the root decision of a search. Score and Nodes are only
// meaningful when Reason is Searched.
type SearchResult struct {
	Column int
	Score  int64
	Reason MoveReason
	Nodes  int
}

// FindWinningMove returns the leftmost column where c wins immediately
func FindWinningMove(b Board, c Cell, cfg Config) (int, bool) {
	for _, col := range AvailableColumns(b) {
		row := DropRow(b, col)
		nb, err := MakeMove(b, col, c)
		if err != nil {
			continue
		}
		if CheckWin(nb, row, col, c, cfg) {
			return col, true
		}
	}
	return -1, false
}

// Minimax is a fixed-depth alpha-beta engine. It holds no search state, so one
// value can serve concurrent callers.
type Minimax struct {
	Depth int
	// DisablePruning searches every node; the chosen move and score do not change
	DisablePruning bool
}

// NewMinimax returns an engine searching depth plies
func NewMinimax(depth int) *Minimax {
	return &Minimax{Depth: depth}
}

func (m *Minimax) GetBestMove(b Board, side Cell, cfg Config) (int, error) {
	res, err := m.Search(b, side, cfg)
	if err != nil {
		return -1, err
	}
	return res.Column, nil
}

// Search plays an immediate win, else blocks an immediate loss, else runs
// minimax on every available column and keeps the first best one
func (m *Minimax) Search(b Board, side Cell, cfg Config) (SearchResult, error) {
	if side != Red && side != Blue {
		return SearchResult{Column: -1}, ErrInvalidPlayer
	}
	moves := AvailableColumns(b)
	if len(moves) == 0 {
		return SearchResult{Column: -1}, ErrNoMove
	}
	if col, ok := FindWinningMove(b, side, cfg); ok {
		return SearchResult{Column: col, Reason: ForcedWin}, nil
	}
	if col, ok := FindWinningMove(b, Opponent(side), cfg); ok {
		return SearchResult{Column: col, Reason: ForcedBlock}, nil
	}

	start := time.Now()
	s := &searcher{cfg: cfg, ai: side, pruning: !m.DisablePruning}
	res := SearchResult{Column: -1, Score: math.MinInt64}
	for _, col := range moves {
		nb, err := MakeMove(b, col, side)
		if err != nil {
			continue
		}
		score := s.minimax(nb, m.Depth-1, math.MinInt64, math.MaxInt64, false)
		// strict comparison keeps the leftmost column on ties
		if res.Column < 0 || score > res.Score {
			res.Column = col
			res.Score = score
		}
	}
	res.Nodes = s.nodes
	log.Debug().
		Int("depth", m.Depth).
		Int("column", res.Column).
		Int64("score", res.Score).
		Int("nodes", res.Nodes).
		Bool("pruning", s.pruning).
		Dur("took", time.Since(start)).
		Msg("minimax-search-done")
	return res, nil
}

// AlphaBeta scores b for ai with depth plies left, maximizing when ai is to move
func AlphaBeta(b Board, depth int, alpha, beta int64, maximizing bool, ai Cell, cfg Config) int64 {
	s := &searcher{cfg: cfg, ai: ai, pruning: true}
	return s.minimax(b, depth, alpha, beta, maximizing)
}

type searcher struct {
	cfg     Config
	ai      Cell
	pruning bool
	nodes   int
}

func (s *searcher) minimax(b Board, depth int, alpha, beta int64, maximizing bool) int64 {
	s.nodes++
	aiWon, oppWon := scanWins(b, s.ai, s.cfg)
	switch {
	case aiWon:
		// sooner wins keep more depth
		return WinScore + int64(depth)
	case oppWon:
		return -WinScore - int64(depth)
	case IsBoardFull(b):
		return 0
	case depth <= 0:
		return Evaluate(b, s.ai, s.cfg)
	}

	mover := s.ai
	best := int64(math.MinInt64)
	if !maximizing {
		mover = Opponent(s.ai)
		best = math.MaxInt64
	}
	for _, col := range AvailableColumns(b) {
		nb, err := MakeMove(b, col, mover)
		if err != nil {
			continue
		}
		score := s.minimax(nb, depth-1, alpha, beta, !maximizing)
		if maximizing {
			best = max(best, score)
			alpha = max(alpha, best)
		} else {
			best = min(best, score)
			beta = min(beta, best)
		}
		if s.pruning && beta <= alpha {
			break
		}
	}
	return best
}

// scanWins looks for a completed line of ai, then of its opponent, at any filled cell
func scanWins(b Board, ai Cell, cfg Config) (aiWon, oppWon bool) {
	opp := Opponent(ai)
	for r := 0; r < b.height; r++ {
		for c := 0; c < b.width; c++ {
			switch b.cells[r*b.width+c] {
			case ai:
				if CheckWin(b, r, c, ai, cfg) {
					return true, false
				}
			case opp:
				if !oppWon && CheckWin(b, r, c, opp, cfg) {
					oppWon = true
				}
			}
		}
	}
	return false, oppWon
}

// Greedy takes immediate wins and blocks, otherwise the move with the best static evaluation
type Greedy struct{}

func (Greedy) GetBestMove(b Board, side Cell, cfg Config) (int, error) {
	if side != Red && side != Blue {
		return -1, ErrInvalidPlayer
	}
	moves := AvailableColumns(b)
	if len(moves) == 0 {
		return -1, ErrNoMove
	}
	if col, ok := FindWinningMove(b, side, cfg); ok {
		return col, nil
	}
	if col, ok := FindWinningMove(b, Opponent(side), cfg); ok {
		return col, nil
	}
	best := -1
	bestScore := int64(math.MinInt64)
	for _, col := range moves {
		nb, err := MakeMove(b, col, side)
		if err != nil {
			continue
		}
		if sc := Evaluate(nb, side, cfg); best < 0 || sc > bestScore {
			best, bestScore = col, sc
		}
	}
	return best, nil
}

// Random picks any playable column
type Random struct{}

func (Random) GetBestMove(b Board, _ Cell, _ Config) (int, error) {
	moves := AvailableColumns(b)
	if len(moves) == 0 {
		return -1, ErrNoMove
	}
	return moves[frand.Intn(len(moves))], nil
}

// ForLevel maps a difficulty from 1 (random) to 5 (full depth) onto an engine
func ForLevel(level, depth int) Player {
	if depth < 1 {
		depth = DefaultDepth
	}
	switch {
	case level <= 1:
		return Random{}
	case level == 2:
		return Greedy{}
	case level == 3:
		return NewMinimax(min(3, depth))
	case level == 4:
		return NewMinimax(min(4, depth))
	}
	return NewMinimax(depth)
}

// LevelName returns a label for a difficulty level
func LevelName(n int) string {
	switch {
	case n <= 1:
		return "Easy"
	case n == 2:
		return "Normal"
	case n == 3:
		return "Hard"
	case n == 4:
		return "Expert"
	}
	return "Master"
}
