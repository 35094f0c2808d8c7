// Package store caches fetched daily bars in SQLite so repeated analyses
// do not hammer the upstream market-data API. Only raw inputs are stored;
// computed runs are never persisted.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"MeanSentinel/internal/model"
)

// BarStore persists daily bars and a log of which ranges were fetched.
type BarStore struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewBarStore opens (or creates) the SQLite database and runs migrations.
func NewBarStore(dbPath string, logger zerolog.Logger) (*BarStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so reads don't block the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &BarStore{db: db, log: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info().Str("path", dbPath).Msg("bar store opened")
	return s, nil
}

func (s *BarStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_bars (
			symbol TEXT NOT NULL,
			ts     INTEGER NOT NULL,
			open   REAL,
			high   REAL,
			low    REAL,
			close  REAL,
			volume REAL,
			PRIMARY KEY (symbol, ts)
		)`,
		`CREATE TABLE IF NOT EXISTS fetch_log (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol     TEXT NOT NULL,
			start_ts   INTEGER NOT NULL,
			end_ts     INTEGER NOT NULL,
			fetched_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_symbol ON fetch_log(symbol, start_ts, end_ts)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// LoadBars returns the cached bars for [start, end] and whether the range
// is fully covered by a previous fetch. Ranges ending before today are
// immutable; ranges that include today are only trusted if they were
// fetched today.
func (s *BarStore) LoadBars(symbol string, start, end time.Time) ([]model.OHLCV, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	covered, err := s.covered(symbol, start, end)
	if err != nil {
		return nil, false, err
	}
	if !covered {
		return nil, false, nil
	}

	rows, err := s.db.Query(
		`SELECT ts, open, high, low, close, volume FROM daily_bars
		 WHERE symbol = ? AND ts BETWEEN ? AND ? ORDER BY ts`,
		symbol, start.Unix(), end.Unix(),
	)
	if err != nil {
		return nil, false, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []model.OHLCV
	for rows.Next() {
		var ts int64
		var b model.OHLCV
		if err := rows.Scan(&ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, false, fmt.Errorf("scan bar: %w", err)
		}
		b.Time = time.Unix(ts, 0)
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate bars: %w", err)
	}
	return bars, true, nil
}

func (s *BarStore) covered(symbol string, start, end time.Time) (bool, error) {
	today := time.Now().Truncate(24 * time.Hour)
	row := s.db.QueryRow(
		`SELECT COUNT(*) FROM fetch_log
		 WHERE symbol = ? AND start_ts <= ? AND end_ts >= ? AND (? < ? OR fetched_at >= ?)`,
		symbol, start.Unix(), end.Unix(), end.Unix(), today.Unix(), today.Unix(),
	)
	var n int
	if err := row.Scan(&n); err != nil {
		return false, fmt.Errorf("check coverage: %w", err)
	}
	return n > 0, nil
}

// SaveBars upserts the fetched bars and records range coverage.
func (s *BarStore) SaveBars(symbol string, start, end time.Time, bars []model.OHLCV) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, b := range bars {
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO daily_bars (symbol, ts, open, high, low, close, volume)
			 VALUES (?,?,?,?,?,?,?)`,
			symbol, b.Time.Unix(), b.Open, b.High, b.Low, b.Close, b.Volume,
		); err != nil {
			return fmt.Errorf("insert bar: %w", err)
		}
	}
	if _, err := tx.Exec(
		`INSERT INTO fetch_log (symbol, start_ts, end_ts, fetched_at) VALUES (?,?,?,?)`,
		symbol, start.Unix(), end.Unix(), time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("insert fetch log: %w", err)
	}
	return tx.Commit()
}

func (s *BarStore) Close() error {
	s.log.Info().Msg("closing bar store")
	return s.db.Close()
}
