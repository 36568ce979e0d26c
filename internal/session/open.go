package session

import (
	"fmt"

	"gce/internal/config"
)

// Open builds the store selected by the session config section.
// The returned close func is never nil.
func Open(cfg *config.Config, workspace string) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Session.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.SessionPath(workspace)), noop, nil
	case config.BackendSQLite:
		s, err := NewSQLiteStore(cfg.SessionPath(workspace))
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case config.BackendMemory:
		return NewMemoryStore(), noop, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Session.Backend)
	}
}
