package transcript

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteMigrations = `
CREATE TABLE IF NOT EXISTS sessions (
	id               TEXT PRIMARY KEY,
	participant_name TEXT NOT NULL,
	stop_reason      TEXT NOT NULL DEFAULT '',
	final_feedback   TEXT,
	session_start    TIMESTAMP NOT NULL,
	updated_at       TIMESTAMP NOT NULL,
	finished         INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS turns (
	session_id            TEXT NOT NULL,
	turn_id               INTEGER NOT NULL,
	agent_visible_message TEXT NOT NULL,
	user_message          TEXT NOT NULL DEFAULT '',
	internal_notes        TEXT NOT NULL DEFAULT '',
	created_at            TIMESTAMP NOT NULL,
	PRIMARY KEY (session_id, turn_id)
);
`

// SQLiteSink persists session logs in a local SQLite database, one row per
// session plus one row per turn, upserted on every snapshot.
type SQLiteSink struct {
	db *sql.DB
}

// NewSQLiteSink opens (creating if necessary) the database at dsn and applies
// migrations.
func NewSQLiteSink(dsn string) (*SQLiteSink, error) {
	if dsn == "" {
		return nil, fmt.Errorf("transcript: sqlite DSN not set")
	}
	if dir := filepath.Dir(dsn); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if _, err := db.Exec(sqliteMigrations); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

// Record implements Sink.
func (s *SQLiteSink) Record(unit Unit) error { return s.store(unit, false) }

// Finish implements Sink.
func (s *SQLiteSink) Finish(unit Unit) error { return s.store(unit, true) }

func (s *SQLiteSink) store(unit Unit, finished bool) error {
	var feedback any
	if unit.FinalFeedback != nil {
		data, err := json.Marshal(unit.FinalFeedback)
		if err != nil {
			return fmt.Errorf("marshal final feedback: %w", err)
		}
		feedback = string(data)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO sessions (id, participant_name, stop_reason, final_feedback, session_start, updated_at, finished)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			stop_reason = excluded.stop_reason,
			final_feedback = excluded.final_feedback,
			updated_at = excluded.updated_at,
			finished = excluded.finished`,
		unit.SessionID, unit.ParticipantName, unit.StopReason, feedback, unit.SessionStart, unit.CapturedAt, finished)
	if err != nil {
		return fmt.Errorf("upsert session %s: %w", unit.SessionID, err)
	}

	for _, turn := range unit.Turns {
		_, err = tx.Exec(`INSERT INTO turns (session_id, turn_id, agent_visible_message, user_message, internal_notes, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(session_id, turn_id) DO UPDATE SET
				user_message = excluded.user_message,
				internal_notes = excluded.internal_notes`,
			unit.SessionID, turn.ID, turn.AgentVisibleMessage, turn.UserMessage, turn.InternalNotes, turn.Timestamp)
		if err != nil {
			return fmt.Errorf("upsert turn %d for session %s: %w", turn.ID, unit.SessionID, err)
		}
	}

	return tx.Commit()
}

// Close releases the underlying database handle.
func (s *SQLiteSink) Close() error { return s.db.Close() }
