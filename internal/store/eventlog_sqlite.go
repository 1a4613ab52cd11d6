package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kanban-cli/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteSlot keeps the snapshot in a key-value table of a local SQLite database.
// It also implements EventLog, appending board history to an events table in the same file.
type SQLiteSlot struct {
	db  *sql.DB
	key string
}

// OpenSQLiteSlot opens (and migrates) the database at path. key selects the slot row; empty
// means DefaultSlotKey.
func OpenSQLiteSlot(ctx context.Context, path, key string) (*SQLiteSlot, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite slot: missing path")
	}
	if strings.TrimSpace(key) == "" {
		key = DefaultSlotKey
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout helps avoid "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteSlot{db: db, key: key}, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS slots (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS events (
			event_id TEXT PRIMARY KEY,
			slot TEXT NOT NULL,
			ts_unixms INTEGER NOT NULL,
			type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			payload_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_slot ON events(slot, ts_unixms);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteSlot) Read(ctx context.Context) ([]byte, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT v FROM slots WHERE k = ?`, s.key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotEmpty
		}
		return nil, err
	}
	if strings.TrimSpace(v) == "" {
		return nil, ErrSlotEmpty
	}
	return []byte(v), nil
}

func (s *SQLiteSlot) Write(ctx context.Context, raw []byte) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO slots(k, v, updated_at_unixms) VALUES(?, ?, ?)`,
		s.key, string(raw), time.Now().UTC().UnixMilli())
	return err
}

func (s *SQLiteSlot) AppendEvent(ctx context.Context, ev model.Event) error {
	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO events(event_id, slot, ts_unixms, type, entity_id, payload_json) VALUES(?, ?, ?, ?, ?, ?)`,
		ev.ID, s.key, ev.TS.UTC().UnixMilli(), ev.Type, ev.EntityID, string(payload))
	return err
}

// TailEvents returns the last n events of this slot, oldest first.
func (s *SQLiteSlot) TailEvents(ctx context.Context, n int) ([]model.Event, error) {
	if n <= 0 {
		return []model.Event{}, nil
	}
	rows, err := s.db.QueryContext(ctx, `SELECT event_id, ts_unixms, type, entity_id, payload_json
		FROM events WHERE slot = ? ORDER BY rowid DESC LIMIT ?`, s.key, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Event{}
	for rows.Next() {
		var (
			ev      model.Event
			tsMs    int64
			payload string
		)
		if err := rows.Scan(&ev.ID, &tsMs, &ev.Type, &ev.EntityID, &payload); err != nil {
			return nil, err
		}
		ev.TS = time.UnixMilli(tsMs).UTC()
		ev.Payload = json.RawMessage(payload)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *SQLiteSlot) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
