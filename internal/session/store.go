// Package session persists the signed-in identity across process restarts.
//
// A session is a single JSON record stored under one fixed key. Backends
// only differ in where that key lives: a JSON file, a SQLite table, or
// process memory. Every backend follows the same contract:
//
//   - Save replaces any prior value atomically.
//   - Load reports ok=false when nothing is stored OR the stored payload is
//     malformed. Corruption is logged and treated as absence.
//   - Clear is unconditional and idempotent.
//
// There is no expiry, no encryption and no schema version field.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gce/internal/identity"
	"gce/internal/logging"
)

// Key is the storage key the identity is held under.
const Key = "gce_user"

// ErrMalformed marks a stored payload that is not a valid identity.
var ErrMalformed = errors.New("malformed session payload")

// Store persists a single identity record.
type Store interface {
	// Load returns the stored identity. ok is false if no usable session exists.
	// err is non-nil only when the backend itself failed.
	Load(ctx context.Context) (id identity.Identity, ok bool, err error)
	// Save serializes the identity, replacing any previous value.
	Save(ctx context.Context, id identity.Identity) error
	// Clear removes the session. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// Encode serializes an identity in the persisted layout.
func Encode(id identity.Identity) ([]byte, error) {
	if err := id.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to persist invalid identity: %w", err)
	}
	return json.Marshal(id)
}

// Decode parses a persisted payload. Any failure wraps ErrMalformed.
func Decode(data []byte) (identity.Identity, error) {
	var id identity.Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return identity.Identity{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := id.Validate(); err != nil {
		return identity.Identity{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return id, nil
}

// decodeOrAbsent is the shared Load tail: a malformed payload becomes "no session".
func decodeOrAbsent(backend string, data []byte) (identity.Identity, bool) {
	id, err := Decode(data)
	if err != nil {
		logging.SessionWarn("%s: discarding stored session: %v", backend, err)
		return identity.Identity{}, false
	}
	logging.SessionDebug("%s: restored session for id=%s role=%s", backend, id.ID, id.Role)
	return id, true
}
