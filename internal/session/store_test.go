package session

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks Store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gce/internal/config"
	"gce/internal/identity"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleIdentities = []identity.Identity{
	{ID: "c-1", Name: "Asha Rao", Role: identity.RoleCitizen, Mobile: "9800000001", KYCStatus: identity.KYCPending},
	{ID: "c-2", Name: "Vikram", Role: identity.RoleCitizen},
	{ID: "c-3", Name: "Meera", Role: identity.RoleCitizen, KYCStatus: identity.KYCVerified},
	{ID: "o-1", Name: "R. Iyer", Role: identity.RoleOfficer, Department: "Sanitation"},
	{ID: "a-1", Name: "Root Admin", Role: identity.RoleAdmin},
}

type backend struct {
	name string
	open func(t *testing.T) (Store, func(data []byte))
}

func backends() []backend {
	return []backend{
		{"memory", func(t *testing.T) (Store, func([]byte)) {
			s := NewMemoryStore()
			return s, s.SetRaw
		}},
		{"file", func(t *testing.T) (Store, func([]byte)) {
			path := filepath.Join(t.TempDir(), "nested", "session.json")
			s := NewFileStore(path)
			return s, func(data []byte) {
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
				require.NoError(t, os.WriteFile(path, data, 0600))
			}
		}},
		{"sqlite", func(t *testing.T) (Store, func([]byte)) {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "session.db"))
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s, func(data []byte) {
				_, err := s.db.Exec("INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)", Key, data)
				require.NoError(t, err)
			}
		}},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store, _ := b.open(t)
			for _, want := range sampleIdentities {
				require.NoError(t, store.Save(ctx, want))
				got, ok, err := store.Load(ctx)
				require.NoError(t, err)
				require.True(t, ok)
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestStore_EmptyLoad(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store, _ := b.open(t)
			_, ok, err := store.Load(context.Background())
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store, _ := b.open(t)
			require.NoError(t, store.Clear(ctx), "clear on empty store")

			require.NoError(t, store.Save(ctx, sampleIdentities[0]))
			require.NoError(t, store.Clear(ctx))
			require.NoError(t, store.Clear(ctx))

			_, ok, err := store.Load(ctx)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store, _ := b.open(t)
			first := sampleIdentities[0]
			require.NoError(t, store.Save(ctx, first))
			require.NoError(t, store.Save(ctx, first.WithKYCStatus(identity.KYCVerified)))

			got, ok, err := store.Load(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, identity.KYCVerified, got.KYCStatus)
			assert.Equal(t, first.ID, got.ID)
		})
	}
}

func TestStore_MalformedIsAbsent(t *testing.T) {
	payloads := map[string]string{
		"not json":      "{{{",
		"wrong shape":   `[1,2,3]`,
		"unknown role":  `{"id":"x","name":"n","role":"GUEST"}`,
		"unknown kyc":   `{"id":"x","name":"n","role":"CITIZEN","kycStatus":"LATER"}`,
		"missing id":    `{"name":"n","role":"ADMIN"}`,
		"missing role":  `{"id":"x","name":"n"}`,
		"empty payload": ``,
	}
	for _, b := range backends() {
		for name, payload := range payloads {
			t.Run(b.name+"/"+name, func(t *testing.T) {
				store, setRaw := b.open(t)
				setRaw([]byte(payload))

				_, ok, err := store.Load(context.Background())
				require.NoError(t, err)
				assert.False(t, ok)
			})
		}
	}
}

func TestStore_SaveRejectsInvalidIdentity(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store, _ := b.open(t)
			err := store.Save(context.Background(), identity.Identity{ID: "x", Role: "ROOT"})
			assert.ErrorIs(t, err, identity.ErrInvalidRole)
		})
	}
}

func TestDecode_WrapsErrMalformed(t *testing.T) {
	_, err := Decode([]byte(`nope`))
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestEncode_PersistedLayout(t *testing.T) {
	data, err := Encode(identity.Identity{ID: "o-1", Name: "R", Role: identity.RoleOfficer, Department: "Roads"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"o-1","name":"R","role":"OFFICER","department":"Roads"}`, string(data))
}

func TestFileStore_ClearLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewFileStore(path)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleIdentities[4]))
	require.FileExists(t, path)

	require.NoError(t, s.Clear(ctx))
	assert.NoFileExists(t, path)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Empty(t, entries, "no temp files should be left behind")
}

func TestOpen(t *testing.T) {
	ws := t.TempDir()
	cfg := config.DefaultConfig()

	for _, backendName := range config.ValidBackends {
		cfg.Session.Backend = backendName
		store, closeFn, err := Open(cfg, ws)
		require.NoError(t, err, backendName)
		require.NotNil(t, store)
		assert.NoError(t, closeFn())
	}

	cfg.Session.Backend = "redis"
	_, closeFn, err := Open(cfg, ws)
	assert.ErrorIs(t, err, config.ErrUnknownBackend)
	assert.NotNil(t, closeFn)
}
