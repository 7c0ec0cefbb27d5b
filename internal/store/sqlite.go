// Package store persists careers: a SQLite slot index with season review
// history, plain file slots and a compressed week log.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tatianab/scout-career/internal/models"
)

// ErrNoSlot is returned when a slot has never been saved.
var ErrNoSlot = errors.New("no such save slot")

// SlotInfo describes one saved career without decoding its state.
type SlotInfo struct {
	Name      string
	ScoutName string
	Season    int
	Week      int
	SavedAt   time.Time
}

// SQLite keeps every save slot as a compressed state blob alongside the
// season reviews it has produced.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS slots (
			name TEXT PRIMARY KEY,
			scout_name TEXT NOT NULL,
			season INTEGER NOT NULL,
			week INTEGER NOT NULL,
			state BLOB NOT NULL,
			saved_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS reviews (
			slot TEXT NOT NULL REFERENCES slots(name) ON DELETE CASCADE,
			season INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			reports INTEGER NOT NULL,
			average_quality REAL NOT NULL,
			successful INTEGER NOT NULL,
			reputation_delta REAL NOT NULL,
			PRIMARY KEY (slot, season)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the database.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveSlot writes g into the named slot and records its season reviews.
func (s *SQLite) SaveSlot(ctx context.Context, name string, g models.GameState) error {
	blob, err := models.EncodeState(g)
	if err != nil {
		return fmt.Errorf("save slot %s: %w", name, err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `INSERT INTO slots(name, scout_name, season, week, state, saved_at)
		VALUES(?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET scout_name=excluded.scout_name, season=excluded.season,
			week=excluded.week, state=excluded.state, saved_at=excluded.saved_at`,
		name, g.Scout.Name, g.CurrentSeason, g.CurrentWeek, blob, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save slot %s: %w", name, err)
	}
	for _, rv := range g.Reviews {
		_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO reviews(slot, season, outcome, reports, average_quality, successful, reputation_delta)
			VALUES(?, ?, ?, ?, ?, ?, ?)`,
			name, rv.Season, rv.Outcome, rv.ReportsSubmitted, rv.AverageQuality, rv.SuccessfulRecommendations, rv.ReputationDelta)
		if err != nil {
			return fmt.Errorf("save review %s/%d: %w", name, rv.Season, err)
		}
	}
	return tx.Commit()
}

// LoadSlot decodes the state stored in the named slot.
func (s *SQLite) LoadSlot(ctx context.Context, name string) (models.GameState, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `SELECT state FROM slots WHERE name=?`, name).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GameState{}, fmt.Errorf("load slot %s: %w", name, ErrNoSlot)
	}
	if err != nil {
		return models.GameState{}, fmt.Errorf("load slot %s: %w", name, err)
	}
	return models.DecodeState(blob)
}

// Slots lists saved careers, most recently saved first.
func (s *SQLite) Slots(ctx context.Context) ([]SlotInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, scout_name, season, week, saved_at FROM slots ORDER BY saved_at DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SlotInfo
	for rows.Next() {
		var (
			info  SlotInfo
			saved string
		)
		if err := rows.Scan(&info.Name, &info.ScoutName, &info.Season, &info.Week, &saved); err != nil {
			return nil, err
		}
		info.SavedAt, _ = time.Parse(time.RFC3339, saved)
		out = append(out, info)
	}
	return out, rows.Err()
}

// DeleteSlot removes a slot and its reviews.
func (s *SQLite) DeleteSlot(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE name=?`, name)
	return err
}

// Reviews returns the season reviews recorded for a slot, oldest first.
func (s *SQLite) Reviews(ctx context.Context, slot string) ([]models.PerformanceReview, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT season, outcome, reports, average_quality, successful, reputation_delta
		FROM reviews WHERE slot=? ORDER BY season`, slot)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PerformanceReview
	for rows.Next() {
		var rv models.PerformanceReview
		if err := rows.Scan(&rv.Season, &rv.Outcome, &rv.ReportsSubmitted, &rv.AverageQuality, &rv.SuccessfulRecommendations, &rv.ReputationDelta); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// Slot binds the database to one slot name so it can serve as an autosave
// target.
func (s *SQLite) Slot(name string) SlotSaver {
	return SlotSaver{db: s, name: name}
}

// SlotSaver saves into a fixed slot.
type SlotSaver struct {
	db   *SQLite
	name string
}

// Save implements the engine's autosave target.
func (s SlotSaver) Save(ctx context.Context, g models.GameState) error {
	return s.db.SaveSlot(ctx, s.name, g)
}
