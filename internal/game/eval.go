package game

import "math"

// CenterBonus is added for every piece the evaluated side holds in the centre column
const CenterBonus = 3

// pow10 holds 10^n for n in [0,18]; larger exponents saturate at MaxInt64
var pow10 = func() [19]int64 {
	var t [19]int64
	t[0] = 1
	for i := 1; i < len(t); i++ {
		t[i] = t[i-1] * 10
	}
	return t
}()

func windowWeight(n int) int64 {
	if n < len(pow10) {
		return pow10[n]
	}
	return math.MaxInt64
}

// addSat adds without wrapping, clamping to [-MaxInt64, MaxInt64]
func addSat(a, b int64) int64 {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return math.MaxInt64
	case b < 0 && a < -math.MaxInt64-b:
		return -math.MaxInt64
	}
	return a + b
}

// Evaluate scores a position from me's point of view. Every window of
// WinLength cells along an axis that holds only one colour is worth
// +/-10^pieces; mixed windows are dead. Windows are bounds checked as on a
// rectangle even when the board is a cylinder.
func Evaluate(b Board, me Cell, cfg Config) int64 {
	var score int64
	for r := 0; r < b.height; r++ {
		for c := 0; c < b.width; c++ {
			for _, d := range axes {
				score = addSat(score, evalWindow(b, r, c, d[0], d[1], me, cfg.WinLength))
			}
		}
	}
	center := b.width / 2
	for r := 0; r < b.height; r++ {
		if b.cells[r*b.width+center] == me {
			score = addSat(score, CenterBonus)
		}
	}
	return score
}

func evalWindow(b Board, row, col, dr, dc int, me Cell, n int) int64 {
	// the far end must fit, otherwise the window does not exist
	if _, ok := b.locate(row+(n-1)*dr, col+(n-1)*dc, Rectangle); !ok {
		return 0
	}
	opp := Opponent(me)
	mine, theirs := 0, 0
	for k := 0; k < n; k++ {
		switch b.cells[(row+k*dr)*b.width+col+k*dc] {
		case me:
			mine++
		case opp:
			theirs++
		}
	}
	switch {
	case mine > 0 && theirs > 0:
		return 0
	case mine > 0:
		return windowWeight(mine)
	case theirs > 0:
		return -windowWeight(theirs)
	}
	return 0
}
