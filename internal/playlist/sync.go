package playlist

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/cueset/internal/domain"
)

// Synchronizer implements the draft/canonical protocol. Per playlist id the
// draft store is a two-state machine: Unmodified (no draft entry, reads fall
// through to canonical) and Drafted (a draft entry exists and may diverge).
// Overlay performs the Unmodified -> Drafted transition; Save promotes a
// draft into canonical; Reset re-seeds the draft from canonical.
type Synchronizer struct {
	stores *Stores
	logger *slog.Logger
}

// NewSynchronizer creates a new synchronizer.
func NewSynchronizer(stores *Stores, logger *slog.Logger) *Synchronizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer{stores: stores, logger: logger}
}

// overlay resolves a playlist for mutation against already-loaded
// collections: the existing draft entry when present, otherwise a clone of
// the canonical entry appended to the draft. The returned collection always
// contains the returned playlist. Callers hold both store locks.
func overlay(canonical, draft []*domain.Playlist, id string) (*domain.Playlist, []*domain.Playlist, error) {
	if i := indexOf(draft, id); i >= 0 {
		return draft[i], draft, nil
	}
	j := indexOf(canonical, id)
	if j < 0 {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrPlaylistNotFound, id)
	}
	clone := canonical[j].Clone()
	return clone, append(draft, clone), nil
}

// Overlay returns the draft entry for the playlist, seeding it from
// canonical first when the playlist is still Unmodified.
func (s *Synchronizer) Overlay(id string) (*domain.Playlist, error) {
	var out *domain.Playlist
	err := s.stores.UpdateBoth(func(canonical, draft []*domain.Playlist) ([]*domain.Playlist, []*domain.Playlist, error) {
		p, draftOut, err := overlay(canonical, draft, id)
		if err != nil {
			return nil, nil, err
		}
		out = p
		if indexOf(draft, id) >= 0 {
			// Already Drafted, nothing to persist.
			return nil, nil, nil
		}
		return nil, draftOut, nil
	})
	if err != nil {
		s.logger.Error("failed to overlay playlist", "error", err, "playlistID", id)
		return nil, err
	}
	s.logger.Debug("resolved draft overlay", "playlistID", id)
	return out, nil
}

// Save copies the draft entry's full contents over the canonical entry. The
// draft entry is left in place, so the playlist stays Drafted.
func (s *Synchronizer) Save(id string) (*domain.Playlist, error) {
	var out *domain.Playlist
	err := s.stores.UpdateBoth(func(canonical, draft []*domain.Playlist) ([]*domain.Playlist, []*domain.Playlist, error) {
		di := indexOf(draft, id)
		ci := indexOf(canonical, id)
		if di < 0 || ci < 0 {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrPlaylistNotFound, id)
		}
		canonical[ci] = draft[di].Clone()
		out = canonical[ci]
		return canonical, nil, nil
	})
	if err != nil {
		s.logger.Error("failed to save playlist", "error", err, "playlistID", id)
		return nil, err
	}
	s.logger.Info("saved playlist to canonical", "playlistID", id)
	return out, nil
}

// Reset discards unsaved edits by re-seeding the draft entry from the
// canonical one.
func (s *Synchronizer) Reset(id string) (*domain.Playlist, error) {
	var out *domain.Playlist
	err := s.stores.UpdateBoth(func(canonical, draft []*domain.Playlist) ([]*domain.Playlist, []*domain.Playlist, error) {
		ci := indexOf(canonical, id)
		if ci < 0 {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrPlaylistNotFound, id)
		}
		clone := canonical[ci].Clone()
		if di := indexOf(draft, id); di >= 0 {
			draft[di] = clone
		} else {
			draft = append(draft, clone)
		}
		out = clone
		return nil, draft, nil
	})
	if err != nil {
		s.logger.Error("failed to reset playlist", "error", err, "playlistID", id)
		return nil, err
	}
	s.logger.Info("reset playlist draft from canonical", "playlistID", id)
	return out, nil
}
