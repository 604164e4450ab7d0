package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"connectx/internal/game"
)

func TestPresetsDefaultWhenMissing(t *testing.T) {
	p, err := LoadPresets(filepath.Join(t.TempDir(), "presets.yaml"))
	require.NoError(t, err)
	require.Equal(t, []string{"classic", "cylinder", "small"}, p.Names())

	cfg, err := p.Get("cylinder")
	require.NoError(t, err)
	require.Equal(t, game.Config{Width: 7, Height: 6, WinLength: 4, Topology: game.Cylinder}, cfg)

	_, err = p.Get("huge")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPresetsPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "presets.yaml")
	p, err := LoadPresets(path)
	require.NoError(t, err)

	wide, err := game.NewConfig(9, 7, 5, game.Cylinder)
	require.NoError(t, err)
	require.NoError(t, p.Put("wide", wide))
	require.NoError(t, p.Delete("small"))
	require.NoError(t, p.Delete("never-existed"))

	reloaded, err := LoadPresets(path)
	require.NoError(t, err)
	require.Equal(t, []string{"classic", "cylinder", "wide"}, reloaded.Names())
	cfg, err := reloaded.Get("wide")
	require.NoError(t, err)
	require.Equal(t, wide, cfg)

	require.Error(t, p.Put("", wide))
	require.ErrorIs(t, p.Put("bad", game.Config{Width: 1}), game.ErrConfiguration)
}

func TestPresetsFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	yml := `
tiny:
  width: 3
  height: 3
  win_length: 3
  topology: cyl
broken:
  width: 30
  height: 6
  win_length: 4
  topology: rectangle
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	p, err := LoadPresets(path)
	require.NoError(t, err)
	require.Equal(t, []string{"broken", "tiny"}, p.Names())

	cfg, err := p.Get("tiny")
	require.NoError(t, err)
	require.Equal(t, game.Cylinder, cfg.Topology)

	_, err = p.Get("broken")
	require.ErrorIs(t, err, game.ErrConfiguration)

	require.NoError(t, os.WriteFile(path, []byte("tiny: [1, 2"), 0o644))
	_, err = LoadPresets(path)
	require.Error(t, err)
}

func TestPresetsNullDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("~\n"), 0o644))

	p, err := LoadPresets(path)
	require.NoError(t, err)
	require.Empty(t, p.Names())

	require.NoError(t, p.Put("classic", game.DefaultConfig()))
	reloaded, err := LoadPresets(path)
	require.NoError(t, err)
	require.Equal(t, []string{"classic"}, reloaded.Names())
}
