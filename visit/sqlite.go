package visit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dripsim/drip"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT NOT NULL,
	day        TEXT NOT NULL,
	PRIMARY KEY (session_id, day)
);
CREATE TABLE IF NOT EXISTS daily (
	day   TEXT PRIMARY KEY,
	count INTEGER NOT NULL DEFAULT 0
);`

// SQLiteStore is the SQLite-backed Store.
type SQLiteStore struct {
	conn *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// Open creates (if needed) and opens the visit database at path.
func Open(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL mode for concurrent readers under the HTTP server
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteStore{conn: conn}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error { return s.conn.Close() }

// IncrementIfFirstVisit implements Store.
func (s *SQLiteStore) IncrementIfFirstVisit(ctx context.Context, sessionID string) (Stats, error) {
	day := drip.Today().String()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions (session_id, day) VALUES (?, ?)`, sessionID, day)
	if err != nil {
		return Stats{}, err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return Stats{}, err
	}
	if inserted == 1 {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO daily (day, count) VALUES (?, 1)
			 ON CONFLICT(day) DO UPDATE SET count = count + 1`, day)
		if err != nil {
			return Stats{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return Stats{}, err
	}
	return s.Totals(ctx)
}

// Totals implements Store.
func (s *SQLiteStore) Totals(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.conn.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(count), 0) FROM daily`).Scan(&stats.Total)
	if err != nil {
		return Stats{}, err
	}
	err = s.conn.QueryRowContext(ctx,
		`SELECT COALESCE(count, 0) FROM daily WHERE day = ?`, drip.Today().String()).Scan(&stats.Today)
	if err == sql.ErrNoRows {
		return stats, nil
	}
	if err != nil {
		return Stats{}, err
	}
	return stats, nil
}
