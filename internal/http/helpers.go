package httphandler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"connectx/internal/game"
	"connectx/internal/store"
)

var (
	errBadRequest     = errors.New("bad request")
	errComputerToMove = errors.New("the side to move is played by the computer")
	errMissingColumn  = errors.New("column is required")
	errUnknownKind    = errors.New("unknown player kind")
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusOf maps domain errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrNoMove),
		errors.Is(err, errComputerToMove):
		return http.StatusConflict
	case errors.Is(err, game.ErrColFull),
		errors.Is(err, game.ErrColOutOfRange),
		errors.Is(err, game.ErrInvalidPlayer),
		errors.Is(err, game.ErrConfiguration),
		errors.Is(err, errBadRequest),
		errors.Is(err, errMissingColumn),
		errors.Is(err, errUnknownKind):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrChecksum),
		errors.Is(err, store.ErrInvalidID),
		errors.Is(err, game.ErrBadSnapshot):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	switch {
	case status >= http.StatusInternalServerError:
		hlog.FromRequest(r).Error().Err(err).Msg("request-failed")
	case status == http.StatusUnprocessableEntity:
		hlog.FromRequest(r).Warn().Err(err).Msg("saved-game-rejected")
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

// decode reads a JSON body into v; an empty body leaves v untouched
func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return errors.Join(errBadRequest, err)
}

// NotFound answers unknown routes
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
}
