package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	saved_at     INTEGER NOT NULL,
	width        INTEGER NOT NULL,
	height       INTEGER NOT NULL,
	win_length   INTEGER NOT NULL,
	topology     TEXT NOT NULL,
	cells        TEXT NOT NULL,
	next_player  INTEGER NOT NULL,
	player1_name TEXT NOT NULL,
	player2_name TEXT NOT NULL,
	player1_kind TEXT NOT NULL,
	player2_kind TEXT NOT NULL,
	move_count   INTEGER NOT NULL,
	checksum     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS games_saved_at ON games (saved_at DESC);
`

const upsert = `
INSERT INTO games (id, name, saved_at, width, height, win_length, topology, cells,
	next_player, player1_name, player2_name, player1_kind, player2_kind, move_count, checksum)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	saved_at = excluded.saved_at,
	width = excluded.width,
	height = excluded.height,
	win_length = excluded.win_length,
	topology = excluded.topology,
	cells = excluded.cells,
	next_player = excluded.next_player,
	player1_name = excluded.player1_name,
	player2_name = excluded.player2_name,
	player1_kind = excluded.player1_kind,
	player2_kind = excluded.player2_kind,
	move_count = excluded.move_count,
	checksum = excluded.checksum`

// SQLiteRepository stores saved games in a single SQLite table
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens or creates the database file at path
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one writer at a time; readers queue behind it
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 2000"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	log.Debug().Str("path", path).Msg("sqlite-repository-opened")
	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// isBusy reports the transient lock errors worth retrying
func isBusy(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code() & 0xff
	return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
}

// withRetry runs fn until it succeeds, fails for a reason other than a busy database, or ctx ends
func withRetry(ctx context.Context, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(20*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(isBusy),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Warn().Err(err).Uint("n", n).Msg("sqlite-busy-retrying")
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Summary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, saved_at, width, height, win_length, topology, move_count
		FROM games ORDER BY saved_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		var savedAt int64
		if err := rows.Scan(&s.ID, &s.Name, &savedAt, &s.Width, &s.Height, &s.WinLength, &s.Topology, &s.MoveCount); err != nil {
			return nil, err
		}
		s.SavedAt = time.Unix(0, savedAt).UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, g *SavedGame) (string, error) {
	if err := prepare(g, r.now()); err != nil {
		return "", err
	}
	cells, err := json.Marshal(g.Cells)
	if err != nil {
		return "", err
	}
	err = withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, upsert,
			g.ID, g.Name, g.SavedAt.UnixNano(), g.Width, g.Height, g.WinLength, g.Topology, string(cells),
			g.NextPlayer, g.Player1Name, g.Player2Name, g.Player1Kind, g.Player2Kind, g.MoveCount, g.Checksum)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("save %s: %w", g.ID, err)
	}
	return g.ID, nil
}

func (r *SQLiteRepository) Load(ctx context.Context, id string) (*SavedGame, error) {
	var g SavedGame
	var savedAt int64
	var cells string
	err := r.db.QueryRowContext(ctx, `SELECT id, name, saved_at, width, height, win_length, topology, cells,
		next_player, player1_name, player2_name, player1_kind, player2_kind, move_count, checksum
		FROM games WHERE id = ?`, id).Scan(
		&g.ID, &g.Name, &savedAt, &g.Width, &g.Height, &g.WinLength, &g.Topology, &cells,
		&g.NextPlayer, &g.Player1Name, &g.Player2Name, &g.Player1Kind, &g.Player2Kind, &g.MoveCount, &g.Checksum)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(cells), &g.Cells); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrChecksum, id, err)
	}
	g.SavedAt = time.Unix(0, savedAt).UTC()
	if err := Verify(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	return withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
		return err
	})
}

func (r *SQLiteRepository) Close() error { return r.db.Close() }
