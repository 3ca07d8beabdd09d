// Package storage provides a SQLite journal of finished games.
// Each entry keeps the seed, the effective rules and the accepted moves,
// which is everything needed to replay the game move by move.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-2048/internal/config"
)

// Store manages the SQLite database connection for the game journal.
type Store struct {
	db *sql.DB
}

// GameRecord is one journaled game.
type GameRecord struct {
	ID        string // UUID assigned by SaveGame
	GameID    string // Variant ID, e.g. "2048"
	Seed      int64
	Score     int
	MaxTile   int
	Config    config.T2048Config
	Moves     []string
	CreatedAt time.Time
}

// GameSummary is a journal entry without its move list.
type GameSummary struct {
	ID        string
	GameID    string
	Seed      int64
	Score     int
	MaxTile   int
	MoveCount int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL,
			move_count INTEGER NOT NULL,
			rules_yaml TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_game_id ON games(game_id, created_at DESC);

		CREATE TABLE IF NOT EXISTS game_moves (
			entry_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			direction TEXT NOT NULL,
			PRIMARY KEY (entry_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame journals a finished game and returns its new ID.
// The game row and its moves are written in one transaction.
func (s *Store) SaveGame(rec GameRecord) (string, error) {
	rules, err := config.Marshal(rec.Config)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode rules: %w", err)
	}

	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	_, err = tx.Exec(
		`INSERT INTO games (id, game_id, seed, score, max_tile, move_count, rules_yaml)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, rec.GameID, rec.Seed, rec.Score, rec.MaxTile, len(rec.Moves), string(rules),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO game_moves (entry_id, seq, direction) VALUES (?, ?, ?)")
	if err != nil {
		return "", fmt.Errorf("storage: cannot prepare move insert: %w", err)
	}
	defer stmt.Close()

	for seq, dir := range rec.Moves {
		if _, err := stmt.Exec(id, seq, dir); err != nil {
			return "", fmt.Errorf("storage: cannot save move %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit game: %w", err)
	}
	return id, nil
}

// GameByID loads a journaled game with its moves.
// Returns nil, nil if no game has that ID.
func (s *Store) GameByID(id string) (*GameRecord, error) {
	var rec GameRecord
	var rules string
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, game_id, seed, score, max_tile, rules_yaml, created_at
		 FROM games
		 WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.GameID, &rec.Seed, &rec.Score, &rec.MaxTile, &rules, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query game: %w", err)
	}

	rec.Config, err = config.Parse([]byte(rules))
	if err != nil {
		return nil, fmt.Errorf("storage: game %s has invalid rules: %w", id, err)
	}
	rec.CreatedAt = parseTime(createdAt)

	rec.Moves, err = s.moves(id)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// moves returns the directions of a game in play order.
func (s *Store) moves(id string) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT direction FROM game_moves WHERE entry_id = ? ORDER BY seq",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query moves: %w", err)
	}
	defer rows.Close()

	moves := []string{}
	for rows.Next() {
		var dir string
		if err := rows.Scan(&dir); err != nil {
			return nil, fmt.Errorf("storage: cannot scan move: %w", err)
		}
		moves = append(moves, dir)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return moves, nil
}

// RecentGames lists the most recent games, newest first.
// An empty gameID lists every variant.
func (s *Store) RecentGames(gameID string, limit int) ([]GameSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, score, max_tile, move_count, created_at
		 FROM games
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var games []GameSummary
	for rows.Next() {
		var g GameSummary
		var createdAt any
		if err := rows.Scan(&g.ID, &g.GameID, &g.Seed, &g.Score, &g.MaxTile, &g.MoveCount, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.CreatedAt = parseTime(createdAt)
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return games, nil
}

// ClearGames deletes all journaled games for the given variant.
func (s *Store) ClearGames(gameID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	_, err = tx.Exec(
		"DELETE FROM game_moves WHERE entry_id IN (SELECT id FROM games WHERE game_id = ?)",
		gameID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot clear moves: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM games WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
