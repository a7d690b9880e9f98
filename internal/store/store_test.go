package store

import (
	"path/filepath"
	"testing"

	"github.com/mmcdole/cueset/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobStores(t *testing.T) {
	backends := map[string]func(t *testing.T) domain.BlobStore{
		"memory": func(t *testing.T) domain.BlobStore {
			return NewMemory()
		},
		"dir": func(t *testing.T) domain.BlobStore {
			s, err := OpenDir(t.TempDir())
			require.NoError(t, err)
			return s
		},
		"bolt": func(t *testing.T) domain.BlobStore {
			s, err := OpenBolt(filepath.Join(t.TempDir(), "cueset.db"))
			require.NoError(t, err)
			return s
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			_, ok := s.Load(domain.StoreCanonical)
			assert.False(t, ok, "missing store id should read as absent")

			require.NoError(t, s.Save(domain.StoreCanonical, []byte(`[]`)))
			data, ok := s.Load(domain.StoreCanonical)
			require.True(t, ok)
			assert.Equal(t, `[]`, string(data))

			// Store ids are independent.
			_, ok = s.Load(domain.StoreDraft)
			assert.False(t, ok)

			require.NoError(t, s.Save(domain.StoreCanonical, []byte(`[{"id":"p1"}]`)))
			data, ok = s.Load(domain.StoreCanonical)
			require.True(t, ok)
			assert.Equal(t, `[{"id":"p1"}]`, string(data))
		})
	}
}

func TestDirStoreFileLayout(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenDir(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save(domain.StoreDraft, []byte(`[]`)))
	assert.FileExists(t, filepath.Join(dir, "draft.json"))
}

func TestOpenSelectsBackend(t *testing.T) {
	s, err := Open("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	_, err = Open("bogus", "")
	assert.Error(t, err)
}
