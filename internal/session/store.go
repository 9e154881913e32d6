// Package session persists the active interview context (the interview
// id and the locked persona) so the stream view and the insights view
// agree on which run they describe across client restarts.
package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/skepticlabs/skeptic-tui/internal/persona"
)

// Context is the minimal state a client must retain to resume viewing an
// in-flight or completed session. Created exactly once per intake
// submission; immutable until the next interview overwrites it.
type Context struct {
	InterviewID string
	Persona     persona.Persona
	Problem     string
	Solution    string
	CreatedAt   time.Time
}

// Store holds at most one Context in a local SQLite database.
type Store struct {
	db *sql.DB
}

// DefaultDBPath returns the default database path under the user config dir.
func DefaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "skeptic", "session.sqlite")
}

const schema = `
	CREATE TABLE IF NOT EXISTS session (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		interviewId TEXT NOT NULL,
		persona TEXT NOT NULL,
		problem TEXT NOT NULL,
		solution TEXT NOT NULL,
		createdAt REAL NOT NULL
	);
`

// Open opens (creating if needed) the session database with WAL.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create config dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Write replaces the stored context in a single statement, so the
// interview id and persona are set together or not at all.
func (s *Store) Write(ctx Context) error {
	encoded, err := ctx.Persona.Encode()
	if err != nil {
		return err
	}
	if ctx.CreatedAt.IsZero() {
		ctx.CreatedAt = time.Now()
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO session (id, interviewId, persona, problem, solution, createdAt)
		VALUES (1, ?, ?, ?, ?, ?)
	`, ctx.InterviewID, encoded, ctx.Problem, ctx.Solution, unixFloat(ctx.CreatedAt))
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Read returns the stored context, or (nil, nil) when none exists. A row
// missing either the interview id or the persona is treated identically
// to no row at all; callers must redirect to intake in both cases.
func (s *Store) Read() (*Context, error) {
	row := s.db.QueryRow(`
		SELECT interviewId, persona, problem, solution, createdAt
		FROM session
		WHERE id = 1
	`)

	var ctx Context
	var rawPersona string
	var createdAt float64
	if err := row.Scan(&ctx.InterviewID, &rawPersona, &ctx.Problem, &ctx.Solution, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	if ctx.InterviewID == "" || rawPersona == "" {
		return nil, nil
	}

	p, err := persona.Decode(rawPersona)
	if err != nil {
		// A context we cannot decode is as unusable as a missing one.
		return nil, nil
	}

	ctx.Persona = p
	ctx.CreatedAt = timeFromUnix(createdAt)
	return &ctx, nil
}

// Clear removes the stored context. Safe to call when none exists.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func unixFloat(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}
