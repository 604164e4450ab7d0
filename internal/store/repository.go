package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"connectx/internal/util"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid saved game id")
)

// Repository persists saved games
type Repository interface {
	// List returns every saved game, newest first
	List(ctx context.Context) ([]Summary, error)
	// Save stores g, generating an id when g.ID is empty, and returns the id
	Save(ctx context.Context, g *SavedGame) (string, error)
	// Load returns the game stored under id after verifying its checksum
	Load(ctx context.Context, id string) (*SavedGame, error)
	// Delete removes id; deleting a missing id is not an error
	Delete(ctx context.Context, id string) error
	Close() error
}

const (
	KindJSON   = "json"
	KindSQLite = "sqlite"
)

// Open opens the repository of the given kind under dir
func Open(ctx context.Context, kind, dir string) (Repository, error) {
	switch kind {
	case KindJSON, "":
		r, err := OpenJSON(filepath.Join(dir, "games"))
		if err != nil {
			return nil, err
		}
		return r, nil
	case KindSQLite:
		r, err := OpenSQLite(ctx, filepath.Join(dir, "connectx.db"))
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	return nil, fmt.Errorf("unknown storage %q", kind)
}

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

func checkID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// prepare stamps g before it is written: id, save time and checksum
func prepare(g *SavedGame, now time.Time) error {
	if g.ID == "" {
		id, err := util.NewGameID(now)
		if err != nil {
			return err
		}
		g.ID = id
	}
	if err := checkID(g.ID); err != nil {
		return err
	}
	if g.Name == "" {
		g.Name = g.ID
	}
	g.SavedAt = now.UTC()
	g.Checksum = Checksum(g)
	return nil
}

// sortNewestFirst orders by save time, then id for a stable listing
func sortNewestFirst(out []Summary) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].SavedAt.Equal(out[j].SavedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].SavedAt.After(out[j].SavedAt)
	})
}
