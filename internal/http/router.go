package httphandler

import (
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

// NewRouter wires all routes and middleware
func NewRouter(api *API) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.RemoteAddrHandler("ip"))
	r.Use(hlog.AccessHandler(func(r *nethttp.Request, status, size int, took time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("took", took).
			Msg("http-request")
	}))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, nethttp.StatusOK, map[string]bool{"ok": true})
	})

	// presets
	r.Get("/presets", api.ListPresets)

	// games and moves
	r.Route("/games", func(r chi.Router) {
		r.Post("/", api.CreateGame)
		r.Get("/", api.ListGames)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", api.ShowGame)
			r.Delete("/", api.DeleteGame)
			r.Post("/moves", api.Play)
			r.Get("/hint", api.Hint)
		})
	})

	r.NotFound(NotFound)
	r.MethodNotAllowed(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, nethttp.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
	})
	return r
}
