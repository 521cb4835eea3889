// Package sqlite provides the SQLite-backed roll history.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/rollexpr/internal/core/dice"
	"github.com/louisbranch/rollexpr/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/rollexpr/internal/random"
	"github.com/louisbranch/rollexpr/internal/services/roller"
	"github.com/louisbranch/rollexpr/internal/services/roller/storage/sqlite/migrations"
)

const timeFormat = time.RFC3339Nano

// Store persists roller history entries.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite store at the provided path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Record inserts entry.
func (s *Store) Record(ctx context.Context, entry roller.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(entry.ID) == "" {
		return fmt.Errorf("entry id is required")
	}
	if entry.RolledAt.IsZero() {
		entry.RolledAt = time.Now().UTC()
	}
	rolls, err := json.Marshal(entry.Rolls)
	if err != nil {
		return fmt.Errorf("encode rolls: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO roll_history (id, expression, mode, total, seed, seed_source, rolls, rolled_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Expression,
		entry.Mode.String(),
		entry.Total,
		entry.Seed,
		string(entry.SeedSource),
		string(rolls),
		entry.RolledAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("insert roll %s: %w", entry.ID, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]roller.Entry, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, expression, mode, total, seed, seed_source, rolls, rolled_at
FROM roll_history
ORDER BY seq DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query roll history: %w", err)
	}
	defer rows.Close()

	entries := []roller.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roll history: %w", err)
	}
	return entries, nil
}

func scanEntry(rows *sql.Rows) (roller.Entry, error) {
	var (
		entry      roller.Entry
		mode       string
		seedSource string
		rolls      string
		rolledAt   string
	)
	if err := rows.Scan(&entry.ID, &entry.Expression, &mode, &entry.Total, &entry.Seed, &seedSource, &rolls, &rolledAt); err != nil {
		return roller.Entry{}, fmt.Errorf("scan roll history: %w", err)
	}

	var err error
	if entry.Mode, err = dice.ParseMode(mode); err != nil {
		return roller.Entry{}, fmt.Errorf("roll %s: %w", entry.ID, err)
	}
	if err := json.Unmarshal([]byte(rolls), &entry.Rolls); err != nil {
		return roller.Entry{}, fmt.Errorf("decode rolls of %s: %w", entry.ID, err)
	}
	if entry.RolledAt, err = time.Parse(timeFormat, rolledAt); err != nil {
		return roller.Entry{}, fmt.Errorf("parse rolled_at of %s: %w", entry.ID, err)
	}
	entry.SeedSource = random.SeedSource(seedSource)
	return entry, nil
}

var _ roller.HistoryStore = (*Store)(nil)
