package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gce/internal/identity"
	"gce/internal/logging"
)

// FileStore keeps the session as a JSON file.
// Writes go to a temp file in the same directory and are renamed into place.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by the file at path.
// The file and its directory are created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file location.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(_ context.Context) (identity.Identity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.SessionDebug("file: no session at %s", s.path)
			return identity.Identity{}, false, nil
		}
		return identity.Identity{}, false, fmt.Errorf("failed to read session: %w", err)
	}

	id, ok := decodeOrAbsent("file", data)
	return id, ok, nil
}

func (s *FileStore) Save(_ context.Context, id identity.Identity) error {
	data, err := Encode(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace session: %w", err)
	}

	logging.Session("file: saved session id=%s role=%s", id.ID, id.Role)
	return nil
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	logging.Session("file: cleared session")
	return nil
}
