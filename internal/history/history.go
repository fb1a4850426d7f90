package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Record is one successfully created issue. History is written after
// the fact and read back by the history command; it is neither a cache
// nor a queue, and losing it never affects issue creation.
type Record struct {
	ID         string
	IssueKey   string
	IssueURL   string
	ProjectKey string
	Title      string
	IssueType  string
	CreatedAt  time.Time
}

// Store keeps creation records in a local SQLite database.
type Store struct {
	db *sqlx.DB
}

// Open opens (or creates) the history database at dbPath, enables WAL
// mode, and runs any pending schema migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *Store) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Append inserts a creation record. A missing ID gets a fresh UUID and
// a zero CreatedAt defaults to now.
func (s *Store) Append(ctx context.Context, r Record) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO created_issues (
			id, issue_key, issue_url, project_key, title, issue_type, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.IssueKey, r.IssueURL, r.ProjectKey,
		r.Title, r.IssueType, r.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("appending history record %s: %w", r.IssueKey, err)
	}

	return nil
}

// Recent retrieves up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, issue_key, issue_url, project_key, title, issue_type, created_at
		FROM created_issues
		ORDER BY created_at DESC, id
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r         Record
			createdAt time.Time
		)
		err := rows.Scan(
			&r.ID, &r.IssueKey, &r.IssueURL, &r.ProjectKey,
			&r.Title, &r.IssueType, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		r.CreatedAt = createdAt
		records = append(records, r)
	}

	return records, rows.Err()
}
