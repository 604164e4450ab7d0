package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"connectx/internal/game"
)

// Preset is a named board configuration as written in presets.yaml
type Preset struct {
	Width     int    `yaml:"width" json:"width"`
	Height    int    `yaml:"height" json:"height"`
	WinLength int    `yaml:"win_length" json:"win_length"`
	Topology  string `yaml:"topology" json:"topology"`
}

// PresetOf converts a validated configuration
func PresetOf(cfg game.Config) Preset {
	return Preset{Width: cfg.Width, Height: cfg.Height, WinLength: cfg.WinLength, Topology: cfg.Topology.String()}
}

// Config validates the preset into a core configuration
func (p Preset) Config() (game.Config, error) {
	topo, err := game.ParseTopology(p.Topology)
	if err != nil {
		return game.Config{}, err
	}
	return game.NewConfig(p.Width, p.Height, p.WinLength, topo)
}

// DefaultPresets are used when no presets file exists yet
func DefaultPresets() map[string]Preset {
	return map[string]Preset{
		"classic":  {Width: 7, Height: 6, WinLength: 4, Topology: "rectangle"},
		"cylinder": {Width: 7, Height: 6, WinLength: 4, Topology: "cylinder"},
		"small":    {Width: 5, Height: 5, WinLength: 3, Topology: "rectangle"},
	}
}

// Presets is a YAML backed set of named configurations
type Presets struct {
	mu    sync.RWMutex
	path  string // empty keeps presets in memory only
	items map[string]Preset
}

// LoadPresets reads path, falling back to the defaults when the file does not exist
func LoadPresets(path string) (*Presets, error) {
	p := &Presets{path: path, items: DefaultPresets()}
	if path == "" {
		return p, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	items := map[string]Preset{}
	if err := yaml.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	// a null document leaves the map nil
	if items == nil {
		items = map[string]Preset{}
	}
	p.items = items
	return p, nil
}

// Names lists preset names alphabetically
func (p *Presets) Names() []string {
	p.mu.RLock()
	names := lo.Keys(p.items)
	p.mu.RUnlock()
	slices.Sort(names)
	return names
}

// All returns a copy of every preset
func (p *Presets) All() map[string]Preset {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return lo.Assign(p.items)
}

// Get returns the validated configuration of name
func (p *Presets) Get(name string) (game.Config, error) {
	p.mu.RLock()
	pr, ok := p.items[name]
	p.mu.RUnlock()
	if !ok {
		return game.Config{}, fmt.Errorf("preset %q: %w", name, ErrNotFound)
	}
	return pr.Config()
}

// Put adds or replaces a preset and persists the set
func (p *Presets) Put(name string, cfg game.Config) error {
	if name == "" {
		return errors.New("empty preset name")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items[name] = PresetOf(cfg)
	return p.saveLocked()
}

// Delete removes a preset; a missing name is not an error
func (p *Presets) Delete(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.items[name]; !ok {
		return nil
	}
	delete(p.items, name)
	return p.saveLocked()
}

func (p *Presets) saveLocked() error {
	if p.path == "" {
		return nil
	}
	data, err := yaml.Marshal(p.items)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}
