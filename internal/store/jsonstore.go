package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// JSONRepository keeps one indented JSON file per game and an in-memory index
type JSONRepository struct {
	mu   sync.RWMutex          // guards byID
	byID map[string]*SavedGame // games by id
	dir  string                // directory holding <id>.json
	now  func() time.Time
}

// OpenJSON opens or creates the repository under dir and loads the games already on disk
func OpenJSON(dir string) (*JSONRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	r := &JSONRepository{
		byID: make(map[string]*SavedGame),
		dir:  dir,
		now:  time.Now,
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var g SavedGame
		if err := json.Unmarshal(b, &g); err != nil || checkID(g.ID) != nil {
			// an unreadable file must not hide the rest of the saves
			log.Warn().Err(err).Str("file", e.Name()).Msg("skipping-unreadable-save")
			continue
		}
		r.byID[g.ID] = &g
	}
	log.Debug().Int("games", len(r.byID)).Str("dir", dir).Msg("json-repository-opened")
	return r, nil
}

func (r *JSONRepository) path(id string) string {
	return filepath.Join(r.dir, id+".json")
}

func (r *JSONRepository) List(ctx context.Context) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := lo.MapToSlice(r.byID, func(_ string, g *SavedGame) Summary { return g.Summary() })
	r.mu.RUnlock()
	sortNewestFirst(out)
	return out, nil
}

func (r *JSONRepository) Save(ctx context.Context, g *SavedGame) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := prepare(g, r.now()); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// write then rename so a crash never leaves half a file behind
	tmp := r.path(g.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, r.path(g.ID)); err != nil {
		return "", err
	}
	r.byID[g.ID] = g.clone()
	return g.ID, nil
}

func (r *JSONRepository) Load(ctx context.Context, id string) (*SavedGame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if checkID(id) != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r.mu.RLock()
	g := r.byID[id]
	r.mu.RUnlock()
	if g == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := Verify(g); err != nil {
		return nil, err
	}
	return g.clone(), nil
}

func (r *JSONRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if checkID(id) != nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := os.Remove(r.path(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	delete(r.byID, id)
	return nil
}

func (r *JSONRepository) Close() error { return nil }
