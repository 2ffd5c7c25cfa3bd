// Package history archives summarized sessions to SQLite. It implements
// report.SessionSink, so a reporter configured with a Store persists every
// session it summarizes.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/verityhq/verity/report"
)

//go:embed schema.sql
var schemaSQL string

// Store provides durable storage for session results.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db *sql.DB
}

// Session is one archived session row, with its failure messages.
type Session struct {
	ID          string
	RecordedAt  time.Time
	PassedCount uint64
	FailedCount uint64
	Failures    []Failure
}

// Failure is one archived failing chain.
type Failure struct {
	Label   string
	Message string
}

// Open creates or opens a SQLite database at the given path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordSession archives one summarized session. The session and its failures
// are written in a single transaction.
func (s *Store) RecordSession(result report.SessionResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	recordedAt := time.Now().UTC().Format(time.RFC3339Nano)

	_, err = tx.Exec(
		`INSERT INTO sessions (id, recorded_at, passed_count, failed_count) VALUES (?, ?, ?, ?)`,
		id, recordedAt, result.PassedCount, result.FailedCount,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	for i, snap := range result.Failures {
		_, err = tx.Exec(
			`INSERT INTO failures (session_id, position, label, message) VALUES (?, ?, ?, ?)`,
			id, i, snap.Label, snap.Message(),
		)
		if err != nil {
			return fmt.Errorf("insert failure %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

// Sessions lists archived sessions, newest first, with their failures.
func (s *Store) Sessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, recorded_at, passed_count, failed_count
		 FROM sessions ORDER BY recorded_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var session Session
		var recordedAt string
		if err := rows.Scan(&session.ID, &recordedAt, &session.PassedCount, &session.FailedCount); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		session.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("parse recorded_at: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	for i := range sessions {
		failures, err := s.sessionFailures(ctx, sessions[i].ID)
		if err != nil {
			return nil, err
		}
		sessions[i].Failures = failures
	}
	return sessions, nil
}

func (s *Store) sessionFailures(ctx context.Context, sessionID string) ([]Failure, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label, message FROM failures WHERE session_id = ? ORDER BY position`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query failures: %w", err)
	}
	defer rows.Close()

	var failures []Failure
	for rows.Next() {
		var f Failure
		if err := rows.Scan(&f.Label, &f.Message); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		failures = append(failures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate failures: %w", err)
	}
	return failures, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist. Idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}
