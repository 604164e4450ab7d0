package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"connectx/internal/config"
	"connectx/internal/shell"
	"connectx/internal/store"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	var cfg config.Config
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	repo, err := store.Open(ctx, cfg.Storage, cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("open-storage")
	}
	defer repo.Close()
	presets, err := store.LoadPresets(cfg.PresetsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load-presets")
	}

	sh := shell.New(os.Stdout, repo, presets, cfg.AIDepth)
	if err := sh.Loop(ctx, filepath.Join(cfg.DataDir, ".connectx_history")); err != nil {
		log.Error().Err(err).Msg("shell")
	}
}
