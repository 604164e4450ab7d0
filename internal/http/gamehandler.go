package httphandler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"connectx/internal/game"
)

// createRequest picks a preset or spells the configuration out. With neither,
// the classic board is used.
type createRequest struct {
	Name        string `json:"name"`
	Preset      string `json:"preset"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	WinLength   int    `json:"win_length"`
	Topology    string `json:"topology"`
	Player1     string `json:"player1"`
	Player2     string `json:"player2"`
	Player1Kind string `json:"player1_kind"`
	Player2Kind string `json:"player2_kind"`
	Level       int    `json:"level"`
}

func (a *API) configOf(req createRequest) (game.Config, error) {
	if req.Preset != "" {
		return a.presets.Get(req.Preset)
	}
	if req.Width == 0 && req.Height == 0 && req.WinLength == 0 {
		return game.DefaultConfig(), nil
	}
	topo, err := game.ParseTopology(req.Topology)
	if err != nil {
		return game.Config{}, err
	}
	return game.NewConfig(req.Width, req.Height, req.WinLength, topo)
}

// clampLevel maps an unset level to the strongest one
func clampLevel(lv int) int {
	if lv <= 0 || lv > MaxLevel {
		return MaxLevel
	}
	return lv
}

func seatName(name string, kind game.PlayerKind, seat, level int) string {
	if name != "" {
		return name
	}
	if kind == game.Computer {
		return "Bot " + game.LevelName(level)
	}
	return fmt.Sprintf("Player %d", seat)
}

// CreateGame starts a game and lets computer seats move until a human is to play
func (a *API) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	cfg, err := a.configOf(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	k1, err := game.ParsePlayerKind(req.Player1Kind)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %q", errUnknownKind, req.Player1Kind))
		return
	}
	k2, err := game.ParsePlayerKind(req.Player2Kind)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %q", errUnknownKind, req.Player2Kind))
		return
	}
	level := clampLevel(req.Level)

	g, err := game.NewGame(cfg, seatName(req.Player1, k1, 1, level), seatName(req.Player2, k2, 2, level))
	if err != nil {
		writeError(w, r, err)
		return
	}
	g.Player1Kind, g.Player2Kind = k1, k2
	rm := &Room{Name: req.Name, Game: g, Level: level, Rev: 1}

	// the room becomes visible to other requests once persist caches it
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if err := a.autoplay(r, rm); err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.persist(r.Context(), rm); err != nil {
		writeError(w, r, err)
		return
	}
	hlog.FromRequest(r).Info().Str("id", rm.ID).Stringer("config", cfg).Msg("game-created")
	writeJSON(w, http.StatusCreated, viewOf(rm))
}

// ListGames lists saved games, newest first
func (a *API) ListGames(w http.ResponseWriter, r *http.Request) {
	list, err := a.repo.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ShowGame returns the current state of a game
func (a *API) ShowGame(w http.ResponseWriter, r *http.Request) {
	rm, err := a.lock(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer rm.mu.Unlock()
	writeJSON(w, http.StatusOK, viewOf(rm))
}

// DeleteGame drops a game from memory and storage
func (a *API) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.forget(id)
	if err := a.repo.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPresets returns every named configuration
func (a *API) ListPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.presets.All())
}
