package httphandler

import (
	"context"
	"fmt"
	"sync"

	"connectx/internal/game"
	"connectx/internal/store"
)

// MaxLevel is the strongest computer level; it searches at the configured depth
const MaxLevel = 5

// Room is a live game held in memory between requests. mu serializes moves,
// hints and reads of one game; searches never hold the API lock.
type Room struct {
	mu      sync.Mutex
	ID      string
	Name    string
	Game    *game.Game
	Level   int  // computer strength, 1..MaxLevel
	Rev     int  // bumped on every change
	deleted bool // set once the game is removed; later requests see ErrNotFound
}

// API serves games over JSON. mu only guards the rooms map; each Room carries
// its own lock, so a long search blocks its own game and nothing else.
type API struct {
	mu      sync.Mutex
	rooms   map[string]*Room
	repo    store.Repository
	presets *store.Presets
	depth   int
}

// NewAPI builds the handlers over a repository and a preset set.
// depth is the search depth of the strongest level and of hints.
func NewAPI(repo store.Repository, presets *store.Presets, depth int) *API {
	if depth < 1 {
		depth = game.DefaultDepth
	}
	return &API{
		rooms:   make(map[string]*Room),
		repo:    repo,
		presets: presets,
		depth:   depth,
	}
}

// cached returns the room held in memory, if any
func (a *API) cached(id string) *Room {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rooms[id]
}

// room returns the cached game or loads it from the repository. Two concurrent
// loads of the same id settle on the first room stored.
func (a *API) room(ctx context.Context, id string) (*Room, error) {
	if rm := a.cached(id); rm != nil {
		return rm, nil
	}
	sg, err := a.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	g, err := sg.Restore()
	if err != nil {
		return nil, err
	}
	loaded := &Room{ID: sg.ID, Name: sg.Name, Game: g, Level: MaxLevel, Rev: 1}

	a.mu.Lock()
	defer a.mu.Unlock()
	if rm := a.rooms[id]; rm != nil {
		return rm, nil
	}
	a.rooms[id] = loaded
	return loaded, nil
}

// lock returns the room for id with its mutex held; the caller unlocks it
func (a *API) lock(ctx context.Context, id string) (*Room, error) {
	rm, err := a.room(ctx, id)
	if err != nil {
		return nil, err
	}
	rm.mu.Lock()
	if rm.deleted {
		rm.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return rm, nil
}

// persist saves the room and records the id the repository assigned; callers hold rm.mu
func (a *API) persist(ctx context.Context, rm *Room) error {
	sg := store.FromGame(rm.Game, rm.Name)
	sg.ID = rm.ID
	id, err := a.repo.Save(ctx, sg)
	if err != nil {
		return err
	}
	rm.ID, rm.Name = id, sg.Name

	a.mu.Lock()
	a.rooms[id] = rm
	a.mu.Unlock()
	return nil
}

// forget marks the room deleted and drops it from the cache
func (a *API) forget(id string) {
	if rm := a.cached(id); rm != nil {
		// waits for a search in flight on this game
		rm.mu.Lock()
		rm.deleted = true
		rm.mu.Unlock()
	}
	a.mu.Lock()
	delete(a.rooms, id)
	a.mu.Unlock()
}
