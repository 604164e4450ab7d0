package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"connectx/internal/game"
)

const EnvPrefix = "CONNECTX"

// Config is the application configuration. Values come from flags, then
// CONNECTX_* environment variables, then the optional config file.
type Config struct {
	DataDir     string
	Listen      string
	Storage     string
	AIDepth     int
	PresetsPath string
	Debug       bool
}

var ErrInvalid = errors.New("invalid configuration")

// Load parses args (without the program name) and merges the other sources
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("connectx", pflag.ContinueOnError)
	fs.String("data-dir", "./data", "directory holding saved games and presets")
	fs.String("listen", ":8090", "address the HTTP server listens on")
	fs.String("storage", "json", "saved game storage: json or sqlite")
	fs.Int("ai-depth", game.DefaultDepth, "search depth of the strongest computer level")
	fs.String("presets", "", "presets file, defaults to <data-dir>/presets.yaml")
	fs.Bool("debug", false, "debug logging")
	fs.String("config", "", "optional config file (yaml, json or toml)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return err
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
	}

	c.DataDir = v.GetString("data-dir")
	c.Listen = v.GetString("listen")
	c.Storage = strings.ToLower(v.GetString("storage"))
	c.AIDepth = v.GetInt("ai-depth")
	c.PresetsPath = v.GetString("presets")
	c.Debug = v.GetBool("debug")
	if c.PresetsPath == "" {
		c.PresetsPath = filepath.Join(c.DataDir, "presets.yaml")
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	switch c.Storage {
	case "json", "sqlite":
	default:
		return fmt.Errorf("%w: storage %q", ErrInvalid, c.Storage)
	}
	if c.AIDepth < 1 {
		return fmt.Errorf("%w: ai-depth %d", ErrInvalid, c.AIDepth)
	}
	return nil
}
