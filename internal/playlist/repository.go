package playlist

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmcdole/cueset/internal/domain"
	"github.com/mmcdole/cueset/internal/tree"
)

// TreeReplace carries a full tree replacement for Rename. RootChildren and
// Total are always replaced together; a total without its matching tree is an
// inconsistent state the repository refuses to represent.
type TreeReplace struct {
	RootChildren domain.Nodes
	Total        int
}

// Repository owns playlist identity and lifecycle: CRUD over whole playlist
// documents in the canonical store.
type Repository struct {
	stores *Stores
	logger *slog.Logger
	newID  func() string
}

// NewRepository creates a new playlist repository.
func NewRepository(stores *Stores, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{stores: stores, logger: logger, newID: uuid.NewString}
}

// List returns every playlist in the canonical store.
func (r *Repository) List() ([]*domain.Playlist, error) {
	var out []*domain.Playlist
	err := r.stores.View(domain.StoreCanonical, func(ps []*domain.Playlist) error {
		out = ps
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.logger.Debug("listed playlists", "count", len(out))
	return out, nil
}

// Get returns the canonical playlist with the given id.
func (r *Repository) Get(id string) (*domain.Playlist, error) {
	var out *domain.Playlist
	err := r.stores.View(domain.StoreCanonical, func(ps []*domain.Playlist) error {
		i := indexOf(ps, id)
		if i < 0 {
			return fmt.Errorf("%w: %s", domain.ErrPlaylistNotFound, id)
		}
		out = ps[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetDraftOrCanonical returns the draft entry when one exists, falling back
// to the canonical entry otherwise.
func (r *Repository) GetDraftOrCanonical(id string) (*domain.Playlist, error) {
	var out *domain.Playlist
	err := r.stores.ViewBoth(func(canonical, draft []*domain.Playlist) error {
		if i := indexOf(draft, id); i >= 0 {
			out = draft[i]
			return nil
		}
		if i := indexOf(canonical, id); i >= 0 {
			out = canonical[i]
			return nil
		}
		return fmt.Errorf("%w: %s", domain.ErrPlaylistNotFound, id)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DraftIDs returns the set of playlist ids carrying a draft entry.
func (r *Repository) DraftIDs() (map[string]bool, error) {
	out := make(map[string]bool)
	err := r.stores.View(domain.StoreDraft, func(ps []*domain.Playlist) error {
		for _, p := range ps {
			out[p.ID] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create assigns a fresh id and appends an empty playlist to the canonical
// store.
func (r *Repository) Create(name string) (*domain.Playlist, error) {
	p := domain.NewPlaylist(r.newID(), name)
	err := r.stores.Update(domain.StoreCanonical, func(ps []*domain.Playlist) ([]*domain.Playlist, error) {
		return append(ps, p), nil
	})
	if err != nil {
		r.logger.Error("failed to create playlist", "error", err, "name", name)
		return nil, err
	}
	r.logger.Info("created playlist", "name", name, "id", p.ID)
	return p, nil
}

// Rename updates the playlist name, and when replace is non-nil swaps in a
// whole new tree together with its item total. Supplied trees are rejected if
// they carry a node id twice.
func (r *Repository) Rename(id, name string, replace *TreeReplace) (*domain.Playlist, error) {
	if replace != nil {
		if err := tree.ValidateUniqueIDs(replace.RootChildren); err != nil {
			return nil, err
		}
	}

	var out *domain.Playlist
	err := r.stores.Update(domain.StoreCanonical, func(ps []*domain.Playlist) ([]*domain.Playlist, error) {
		i := indexOf(ps, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", domain.ErrPlaylistNotFound, id)
		}
		ps[i].Name = name
		if replace != nil {
			ps[i].RootChildren = replace.RootChildren
			ps[i].Total = replace.Total
		}
		out = ps[i]
		return ps, nil
	})
	if err != nil {
		r.logger.Error("failed to rename playlist", "error", err, "playlistID", id)
		return nil, err
	}
	r.logger.Info("renamed playlist", "playlistID", id, "name", name, "treeReplaced", replace != nil)
	return out, nil
}

// Delete removes the playlist from the canonical store. Any draft entry for
// the same id is dropped with it, so a later create cannot resurrect a stale
// draft.
func (r *Repository) Delete(id string) error {
	err := r.stores.UpdateBoth(func(canonical, draft []*domain.Playlist) ([]*domain.Playlist, []*domain.Playlist, error) {
		i := indexOf(canonical, id)
		if i < 0 {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrPlaylistNotFound, id)
		}
		canonicalOut := append(canonical[:i], canonical[i+1:]...)
		if canonicalOut == nil {
			canonicalOut = []*domain.Playlist{}
		}

		draftOut := draft
		if j := indexOf(draft, id); j >= 0 {
			draftOut = append(draft[:j], draft[j+1:]...)
			if draftOut == nil {
				draftOut = []*domain.Playlist{}
			}
		}
		return canonicalOut, draftOut, nil
	})
	if err != nil {
		r.logger.Error("failed to delete playlist", "error", err, "playlistID", id)
		return err
	}
	r.logger.Info("deleted playlist", "playlistID", id)
	return nil
}
