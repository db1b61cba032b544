// Package journal persists the composition store's event stream to a
// SQLite file. It exists for inspection and session post-mortems; it is
// not a persistence layer for the composition itself, which lives only
// in memory.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	json "github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"github.com/montagehq/montage/internal/composition"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial schema
const currentSchemaVersion = 1

// Journal is a durable, append-only record of applied mutations. It
// implements composition.EventSink; refused operations never reach it.
type Journal struct {
	db  *sql.DB
	log *slog.Logger
}

// Option configures a Journal at construction.
type Option func(*Journal)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(j *Journal) { j.log = l }
}

// Open creates or opens a journal file at the given path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
//
// Idempotent; safe to call on an existing journal.
func Open(path string, opts ...Option) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect journal: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent ticks.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure journal: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply journal schema: %w", err)
	}

	j := &Journal{db: db, log: slog.Default()}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record implements composition.EventSink. A write failure is logged
// and swallowed: the journal is an observer and must never block or
// fail an edit.
func (j *Journal) Record(ev composition.Event) {
	var detail []byte
	if ev.Detail != nil {
		var err error
		detail, err = json.Marshal(ev.Detail)
		if err != nil {
			j.log.Error("journal detail marshal failed", "seq", ev.Seq, "error", err)
			return
		}
	}
	_, err := j.db.Exec(`
		INSERT INTO events (seq, op, entity_id, detail)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(seq) DO NOTHING
	`, ev.Seq, ev.Op, ev.EntityID, nullableText(detail))
	if err != nil {
		j.log.Error("journal write failed", "seq", ev.Seq, "op", ev.Op, "error", err)
	}
}

// Events returns every recorded event in sequence order.
func (j *Journal) Events(ctx context.Context) ([]composition.Event, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, op, entity_id, detail
		FROM events
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	defer rows.Close()

	var out []composition.Event
	for rows.Next() {
		var ev composition.Event
		var detail sql.NullString
		if err := rows.Scan(&ev.Seq, &ev.Op, &ev.EntityID, &detail); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		if detail.Valid && detail.String != "" {
			if err := json.Unmarshal([]byte(detail.String), &ev.Detail); err != nil {
				return nil, fmt.Errorf("decode journal detail (seq %d): %w", ev.Seq, err)
			}
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// EventsFor returns the recorded events touching one entity, in
// sequence order.
func (j *Journal) EventsFor(ctx context.Context, entityID string) ([]composition.Event, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, op, entity_id, detail
		FROM events
		WHERE entity_id = ?
		ORDER BY seq
	`, entityID)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	defer rows.Close()

	var out []composition.Event
	for rows.Next() {
		var ev composition.Event
		var detail sql.NullString
		if err := rows.Scan(&ev.Seq, &ev.Op, &ev.EntityID, &detail); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		if detail.Valid && detail.String != "" {
			if err := json.Unmarshal([]byte(detail.String), &ev.Detail); err != nil {
				return nil, fmt.Errorf("decode journal detail (seq %d): %w", ev.Seq, err)
			}
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func nullableText(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}
