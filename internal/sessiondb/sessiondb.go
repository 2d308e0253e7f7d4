package sessiondb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DB is a small local index of play sessions and their chat transcripts.
// It never stores world data; chunks live only in memory.
type DB struct {
	db *sql.DB

	mu        sync.Mutex
	sessionID string
	nextSeq   int64
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id          TEXT PRIMARY KEY,
	player_id   INTEGER NOT NULL,
	name        TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	ended_at    TEXT,
	kick_reason TEXT
);
CREATE TABLE IF NOT EXISTS chat (
	session_id  TEXT NOT NULL,
	seq         INTEGER NOT NULL,
	sender      TEXT NOT NULL,
	text        TEXT NOT NULL,
	received_at TEXT NOT NULL,
	PRIMARY KEY (session_id, seq)
);
`

func Open(path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{db: db}, nil
}

// StartSession opens a new session row and makes it current.
func (d *DB) StartSession(playerID int64, name string) (string, error) {
	id := uuid.NewString()
	_, err := d.db.Exec(
		`INSERT INTO sessions (id, player_id, name, started_at) VALUES (?, ?, ?, ?)`,
		id, playerID, name, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", err
	}
	d.mu.Lock()
	d.sessionID = id
	d.nextSeq = 0
	d.mu.Unlock()
	return id, nil
}

// RecordChat appends one broadcast to the current session's transcript.
// Safe to call before StartSession; it is then a no-op.
func (d *DB) RecordChat(sender, text string) {
	d.mu.Lock()
	id := d.sessionID
	seq := d.nextSeq
	d.nextSeq++
	d.mu.Unlock()
	if id == "" {
		return
	}
	_, _ = d.db.Exec(
		`INSERT INTO chat (session_id, seq, sender, text, received_at) VALUES (?, ?, ?, ?, ?)`,
		id, seq, sender, text, time.Now().UTC().Format(time.RFC3339),
	)
}

// EndSession stamps the current session closed, with the kick reason when
// the server terminated it.
func (d *DB) EndSession(kickReason string) error {
	d.mu.Lock()
	id := d.sessionID
	d.sessionID = ""
	d.mu.Unlock()
	if id == "" {
		return nil
	}
	var reason any
	if kickReason != "" {
		reason = kickReason
	}
	_, err := d.db.Exec(
		`UPDATE sessions SET ended_at = ?, kick_reason = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), reason, id,
	)
	return err
}

type ChatRow struct {
	Seq    int64
	Sender string
	Text   string
}

func (d *DB) ChatHistory(sessionID string) ([]ChatRow, error) {
	rows, err := d.db.Query(
		`SELECT seq, sender, text FROM chat WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ChatRow
	for rows.Next() {
		var r ChatRow
		if err := rows.Scan(&r.Seq, &r.Sender, &r.Text); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) Close() error { return d.db.Close() }
