// Package leaderboard keeps the player's name and final scores in a local
// SQLite database.
package leaderboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/opd-ai/go-slingshot/pkg/logging"
	"github.com/opd-ai/go-slingshot/pkg/validation"
)

// ErrNotFound is returned when no player name has been saved yet.
var ErrNotFound = errors.New("leaderboard: not found")

const schema = `
CREATE TABLE IF NOT EXISTS player (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS scores (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	score INTEGER NOT NULL,
	orbits INTEGER NOT NULL,
	star TEXT NOT NULL,
	recorded_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS scores_by_score ON scores (score DESC);`

// Entry is one finished game.
type Entry struct {
	ID         int64
	Name       string
	Score      int
	Orbits     int
	Star       string
	RecordedAt time.Time
}

// Store is the local score database.
type Store struct {
	db     *sql.DB
	logger *logging.Logger
	now    func() time.Time
}

// Open opens (creating if needed) the database at path. Use ":memory:"
// for a throwaway store.
func Open(path string, logger *logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, logging.WrapError(err, "open leaderboard", "path", path)
	}
	// One connection keeps ":memory:" databases shared and serializes writes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, logging.WrapError(err, "create leaderboard schema", "path", path)
	}

	return &Store{db: db, logger: logger.Component("leaderboard"), now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetPlayerName validates and saves the local player's name.
func (s *Store) SetPlayerName(ctx context.Context, name string) (string, error) {
	clean, err := validation.ValidatePlayerName(name)
	if err != nil {
		return "", err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO player (id, name) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`, clean)
	if err != nil {
		return "", fmt.Errorf("save player name: %w", err)
	}
	return clean, nil
}

// GetPlayerName returns the saved name or ErrNotFound.
func (s *Store) GetPlayerName(ctx context.Context) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM player WHERE id = 1`).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load player name: %w", err)
	}
	return name, nil
}

// RecordScore stores a finished game and returns it with its ID.
func (s *Store) RecordScore(ctx context.Context, name string, score, orbits int, star string) (Entry, error) {
	clean, err := validation.ValidatePlayerName(name)
	if err != nil {
		return Entry{}, err
	}
	e := Entry{
		Name:       clean,
		Score:      score,
		Orbits:     orbits,
		Star:       star,
		RecordedAt: s.now().UTC().Truncate(time.Second),
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (name, score, orbits, star, recorded_at) VALUES (?, ?, ?, ?, ?)`,
		e.Name, e.Score, e.Orbits, e.Star, e.RecordedAt.Unix())
	if err != nil {
		return Entry{}, fmt.Errorf("record score: %w", err)
	}
	e.ID, _ = res.LastInsertId()

	s.logger.Info(ctx, "score recorded",
		"player", e.Name,
		"score", e.Score,
		"orbits", e.Orbits,
	)
	return e, nil
}

// Top returns up to n entries, highest score first; ties go to the
// earlier game.
func (s *Store) Top(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, score, orbits, star, recorded_at FROM scores
		 ORDER BY score DESC, id ASC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at int64
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.Orbits, &e.Star, &at); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		e.RecordedAt = time.Unix(at, 0).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Best returns the top score, or ErrNotFound for an empty board.
func (s *Store) Best(ctx context.Context) (Entry, error) {
	top, err := s.Top(ctx, 1)
	if err != nil {
		return Entry{}, err
	}
	if len(top) == 0 {
		return Entry{}, ErrNotFound
	}
	return top[0], nil
}
