package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gce/internal/identity"
	"gce/internal/logging"

	_ "github.com/mattn/go-sqlite3"
)

// openWarnThreshold flags a slow database open, usually a held lock.
const openWarnThreshold = 500 * time.Millisecond

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteStore keeps the session as one row of a key/value table.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	timer := logging.StartTimer(logging.CategoryStore, "NewSQLiteStore")
	defer timer.StopWithThreshold(openWarnThreshold)

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}
	if _, err := db.Exec(kvSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.Store("sqlite session store ready at %s", path)
	return &SQLiteStore{db: db, dbPath: path}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (identity.Identity, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", Key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return identity.Identity{}, false, nil
	}
	if err != nil {
		return identity.Identity{}, false, fmt.Errorf("failed to read session: %w", err)
	}
	id, ok := decodeOrAbsent("sqlite", data)
	return id, ok, nil
}

func (s *SQLiteStore) Save(ctx context.Context, id identity.Identity) error {
	data, err := Encode(id)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		Key, data,
	)
	if err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	logging.Session("sqlite: saved session id=%s role=%s", id.ID, id.Role)
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", Key); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	logging.Session("sqlite: cleared session")
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
