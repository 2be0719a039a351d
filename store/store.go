// Package store persists scan verdicts to an append-only sqlite log. Rows
// are only ever inserted; nothing mutates or deletes existing history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

type Entry struct {
	ID           int64   `json:"id"`
	URL          string  `json:"url"`
	Prediction   string  `json:"prediction"`
	Confidence   float64 `json:"confidence"`
	RiskScore    float64 `json:"risk_score"`
	Severity     string  `json:"severity"`
	VTMalicious  int     `json:"vt_malicious"`
	VTSuspicious int     `json:"vt_suspicious"`
	Country      string  `json:"country"`
	Timestamp    string  `json:"timestamp"`
}

type Store struct {
	db *sql.DB
}

// Columns added after the first release. Open backfills them so a database
// created by an older build keeps working.
var requiredColumns = []struct {
	name string
	ddl  string
}{
	{"vt_malicious", "INTEGER DEFAULT 0"},
	{"vt_suspicious", "INTEGER DEFAULT 0"},
	{"country", "TEXT DEFAULT 'Unknown'"},
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT NOT NULL,
			prediction TEXT NOT NULL,
			confidence REAL NOT NULL,
			risk_score REAL NOT NULL,
			severity TEXT NOT NULL,
			timestamp TEXT NOT NULL
		);`)
	if err != nil {
		return fmt.Errorf("create logs table: %w", err)
	}

	existing, err := s.columnNames(ctx)
	if err != nil {
		return err
	}

	for _, col := range requiredColumns {
		if existing[col.name] {
			continue
		}
		logrus.WithField("column", col.name).Info("[DB] adding missing column")
		stmt := fmt.Sprintf("ALTER TABLE logs ADD COLUMN %s %s", col.name, col.ddl)
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("add column %s: %w", col.name, err)
		}
	}
	return nil
}

func (s *Store) columnNames(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `PRAGMA table_info(logs)`)
	if err != nil {
		return nil, fmt.Errorf("read table info: %w", err)
	}
	defer rows.Close()

	names := make(map[string]bool)
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scan table info: %w", err)
		}
		names[name] = true
	}
	return names, rows.Err()
}

// Append inserts one verdict row. The timestamp is stamped at insert time
// when the entry carries none.
func (s *Store) Append(ctx context.Context, e Entry) error {
	ts := e.Timestamp
	if ts == "" {
		ts = time.Now().Format("2006-01-02 15:04:05")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO logs (url, prediction, confidence, risk_score, severity,
			vt_malicious, vt_suspicious, country, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.URL, e.Prediction, e.Confidence, e.RiskScore, e.Severity,
		e.VTMalicious, e.VTSuspicious, e.Country, ts,
	)
	if err != nil {
		return fmt.Errorf("insert log: %w", err)
	}
	return nil
}

// List returns the full scan history, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, prediction, confidence, risk_score, severity,
			vt_malicious, vt_suspicious, country, timestamp
		FROM logs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.URL, &e.Prediction, &e.Confidence,
			&e.RiskScore, &e.Severity, &e.VTMalicious, &e.VTSuspicious,
			&e.Country, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan log row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
