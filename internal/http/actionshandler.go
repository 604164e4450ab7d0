package httphandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"connectx/internal/game"
)

type moveRequest struct {
	Column *int `json:"column"` // 0-based
}

type hintView struct {
	Column int    `json:"column"`
	Reason string `json:"reason"`
	Score  int64  `json:"score"`
	Nodes  int    `json:"nodes"`
}

// autoplay lets the engine move for computer seats until a human is to move
// or the game ends; callers hold rm.mu
func (a *API) autoplay(r *http.Request, rm *Room) error {
	g := rm.Game
	engine := game.ForLevel(rm.Level, a.depth)
	for !g.Over && game.KindOf(g, g.NextPlayer) == game.Computer {
		side := g.NextPlayer
		col, err := engine.GetBestMove(g.Board, side, g.Config)
		if err != nil {
			return err
		}
		if err := game.Play(g, col); err != nil {
			return err
		}
		rm.Rev++
		hlog.FromRequest(r).Debug().
			Str("side", side.String()).
			Int("column", col).
			Int("level", rm.Level).
			Msg("computer-move")
	}
	return nil
}

// Play applies a human move, answers with the computer reply and saves the game
func (a *API) Play(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Column == nil {
		writeError(w, r, errMissingColumn)
		return
	}

	rm, err := a.lock(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer rm.mu.Unlock()
	g := rm.Game
	if !g.Over && game.KindOf(g, g.NextPlayer) == game.Computer {
		writeError(w, r, errComputerToMove)
		return
	}
	if err := game.Play(g, *req.Column); err != nil {
		writeError(w, r, err)
		return
	}
	rm.Rev++
	if err := a.autoplay(r, rm); err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.persist(r.Context(), rm); err != nil {
		writeError(w, r, err)
		return
	}
	if g.Over {
		hlog.FromRequest(r).Info().Str("id", rm.ID).Str("winner", g.Winner.String()).Msg("game-over")
	}
	writeJSON(w, http.StatusOK, viewOf(rm))
}

// Hint runs a full-depth search for the side to move without playing it
func (a *API) Hint(w http.ResponseWriter, r *http.Request) {
	rm, err := a.lock(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer rm.mu.Unlock()
	g := rm.Game
	if g.Over {
		writeError(w, r, game.ErrGameOver)
		return
	}
	res, err := game.NewMinimax(a.depth).Search(g.Board, g.NextPlayer, g.Config)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hintView{
		Column: res.Column,
		Reason: res.Reason.String(),
		Score:  res.Score,
		Nodes:  res.Nodes,
	})
}
