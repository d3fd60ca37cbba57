// Package store persists the first successful install-referrer fetch in a
// local SQLite database. Platform referrer services allow only a limited
// number of reads, so the first read is saved and later runs serve it from
// disk. A file lock extends the in-process single-flight across processes:
// whoever holds the lock fetches and persists, everyone else reads the row.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"github.com/linktrace/linktrace/internal/referrer"
)

var (
	db         *sql.DB
	dbMu       sync.Mutex
	dbPath     string
	configured bool
)

// Configure sets the path for the referrer cache database.
func Configure(path string) {
	dbMu.Lock()
	defer dbMu.Unlock()
	dbPath = path
	configured = true
}

func initDB() error {
	dbMu.Lock()
	defer dbMu.Unlock()

	if db != nil {
		return nil
	}
	if !configured || dbPath == "" {
		return fmt.Errorf("referrer store not configured: call store.Configure() first")
	}

	var err error
	db, err = sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS referrer_payload (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		fetched_at INTEGER NOT NULL
	);
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Close closes the database connection.
func Close() {
	dbMu.Lock()
	defer dbMu.Unlock()
	if db != nil {
		db.Close()
		db = nil
	}
}

func getDB() (*sql.DB, error) {
	if db == nil {
		if err := initDB(); err != nil {
			return nil, err
		}
	}
	return db, nil
}

const payloadKey = "install_referrer"

// Save persists the payload with the given fetch time (unix seconds),
// replacing any previous row.
func Save(p *referrer.Payload, fetchedAt int64) error {
	d, err := getDB()
	if err != nil {
		return err
	}

	value, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode referrer payload: %w", err)
	}
	_, err = d.Exec(
		`INSERT INTO referrer_payload (key, value, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, fetched_at = excluded.fetched_at`,
		payloadKey, string(value), fetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save referrer payload: %w", err)
	}
	return nil
}

// Load returns the persisted payload, or ok=false when none has been saved.
func Load() (*referrer.Payload, bool, error) {
	d, err := getDB()
	if err != nil {
		return nil, false, err
	}

	var value string
	err = d.QueryRow(`SELECT value FROM referrer_payload WHERE key = ?`, payloadKey).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load referrer payload: %w", err)
	}

	var p referrer.Payload
	if err := json.Unmarshal([]byte(value), &p); err != nil {
		return nil, false, fmt.Errorf("failed to decode referrer payload: %w", err)
	}
	return &p, true, nil
}

// Persistent is a referrer.Client that serves the persisted payload when
// one exists and otherwise fetches through the wrapped client and persists
// the result. The fetch-and-save section runs under a file lock so that
// concurrent processes perform at most one service fetch between them.
type Persistent struct {
	Client referrer.Client
}

func (s *Persistent) Fetch(ctx context.Context) (*referrer.Payload, error) {
	if p, ok, err := Load(); err == nil && ok {
		return p, nil
	}

	lock := flock.New(lockPath())
	locked, err := lock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire referrer lock: %w", err)
	}
	if locked {
		defer lock.Unlock()
	}

	// Another process may have persisted while we waited for the lock.
	if p, ok, err := Load(); err == nil && ok {
		return p, nil
	}

	p, err := s.Client.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := Save(p, time.Now().Unix()); err != nil {
		return nil, err
	}
	return p, nil
}

func lockPath() string {
	dbMu.Lock()
	defer dbMu.Unlock()
	return filepath.Join(filepath.Dir(dbPath), "referrer.lock")
}
