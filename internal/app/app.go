package app

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"connectx/internal/config"
	httphandler "connectx/internal/http"
	"connectx/internal/store"
)

// App holds the opened stores and the HTTP router built over them
type App struct {
	Repo    store.Repository
	Presets *store.Presets
	Handler http.Handler
}

// Boot opens the saved game repository and the presets under cfg.DataDir and builds the router
func Boot(ctx context.Context, cfg config.Config) (*App, error) {
	// Opens the repository selected by the storage setting
	repo, err := store.Open(ctx, cfg.Storage, cfg.DataDir)
	if err != nil {
		return nil, err
	}

	// Loads presets, falling back to the built-in set
	presets, err := store.LoadPresets(cfg.PresetsPath)
	if err != nil {
		repo.Close()
		return nil, err
	}
	log.Info().
		Str("storage", cfg.Storage).
		Str("data-dir", cfg.DataDir).
		Strs("presets", presets.Names()).
		Msg("app-booted")

	// Builds the HTTP router
	api := httphandler.NewAPI(repo, presets, cfg.AIDepth)
	return &App{Repo: repo, Presets: presets, Handler: httphandler.NewRouter(api)}, nil
}

// Close releases the repository
func (a *App) Close() error {
	return a.Repo.Close()
}
