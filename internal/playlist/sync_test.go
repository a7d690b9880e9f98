package playlist

import (
	"testing"

	"github.com/mmcdole/cueset/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftEntry(t *testing.T, env *testEnv, id string) *domain.Playlist {
	t.Helper()
	var out *domain.Playlist
	require.NoError(t, env.stores.View(domain.StoreDraft, func(ps []*domain.Playlist) error {
		if i := indexOf(ps, id); i >= 0 {
			out = ps[i]
		}
		return nil
	}))
	return out
}

func TestOverlaySeedsDraftOnce(t *testing.T) {
	env := newTestEnv(t)

	p, err := env.repo.Create("Session 1")
	require.NoError(t, err)

	assert.Nil(t, draftEntry(t, env, p.ID), "unmodified playlist has no draft entry")

	got, err := env.sync.Overlay(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	require.NotNil(t, draftEntry(t, env, p.ID))

	// A second overlay returns the existing draft entry, not a new clone.
	_, err = env.mut.InsertItem(p.ID, ItemInput{Name: "Intro", Path: "a.mp3"}, "", 0)
	require.NoError(t, err)

	again, err := env.sync.Overlay(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Total)

	_, err = env.sync.Overlay("missing")
	assert.ErrorIs(t, err, domain.ErrPlaylistNotFound)
}

func TestOverlayCloneDoesNotAliasCanonical(t *testing.T) {
	env := newTestEnv(t)

	p, err := env.repo.Create("Session 1")
	require.NoError(t, err)

	_, err = env.mut.InsertItem(p.ID, ItemInput{Name: "Intro", Path: "a.mp3"}, "", 0)
	require.NoError(t, err)

	canonical, err := env.repo.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, canonical.Total)
	assert.Empty(t, canonical.RootChildren)
}

func TestSavePromotesDraft(t *testing.T) {
	env := newTestEnv(t)

	p, err := env.repo.Create("Session 1")
	require.NoError(t, err)

	_, err = env.mut.InsertItem(p.ID, ItemInput{Name: "Intro", Path: "a.mp3"}, "", 0)
	require.NoError(t, err)

	saved, err := env.sync.Save(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, saved.Total)

	canonical, err := env.repo.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, canonical.Total)

	// The draft entry survives a save.
	assert.NotNil(t, draftEntry(t, env, p.ID))
}

func TestSaveRequiresBothEntries(t *testing.T) {
	env := newTestEnv(t)

	p, err := env.repo.Create("Session 1")
	require.NoError(t, err)

	// No draft entry yet.
	_, err = env.sync.Save(p.ID)
	assert.ErrorIs(t, err, domain.ErrPlaylistNotFound)

	_, err = env.sync.Save("missing")
	assert.ErrorIs(t, err, domain.ErrPlaylistNotFound)
}

func TestResetDiscardsUnsavedEdits(t *testing.T) {
	env := newTestEnv(t)

	p, err := env.repo.Create("Session 1")
	require.NoError(t, err)

	_, err = env.mut.InsertItem(p.ID, ItemInput{Name: "Intro", Path: "a.mp3"}, "", 0)
	require.NoError(t, err)
	_, err = env.sync.Save(p.ID)
	require.NoError(t, err)

	// A further unsaved edit...
	_, err = env.mut.InsertItem(p.ID, ItemInput{Name: "Outro", Path: "z.mp3"}, "", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, draftEntry(t, env, p.ID).Total)

	// ...is rolled back to the saved state.
	got, err := env.sync.Reset(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, 1, draftEntry(t, env, p.ID).Total)

	_, err = env.sync.Reset("missing")
	assert.ErrorIs(t, err, domain.ErrPlaylistNotFound)
}

func TestSaveThenResetIsNoOp(t *testing.T) {
	env := newTestEnv(t)

	p, err := env.repo.Create("Session 1")
	require.NoError(t, err)

	_, err = env.mut.InsertItem(p.ID, ItemInput{Name: "Intro", Path: "a.mp3"}, "", 0)
	require.NoError(t, err)

	saved, err := env.sync.Save(p.ID)
	require.NoError(t, err)

	reset, err := env.sync.Reset(p.ID)
	require.NoError(t, err)

	assert.Equal(t, saved, reset, "draft after reset must equal the saved content")
}
