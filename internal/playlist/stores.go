// Package playlist implements the dual-store persistence engine: whole-
// playlist CRUD over the canonical collection, tree mutations over the draft
// collection, and the draft/canonical promotion protocol between the two.
package playlist

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mmcdole/cueset/internal/domain"
)

// Stores mediates every load-mutate-store cycle against the two backing
// collections. Each store id has its own exclusive lock held for the whole
// cycle, so concurrent operations can never interleave a read-modify-write.
// When both stores are involved the canonical lock is always taken first.
type Stores struct {
	blob domain.BlobStore

	canonicalMu sync.Mutex
	draftMu     sync.Mutex
}

func NewStores(blob domain.BlobStore) *Stores {
	return &Stores{blob: blob}
}

func (s *Stores) mutexFor(storeID string) *sync.Mutex {
	if storeID == domain.StoreDraft {
		return &s.draftMu
	}
	return &s.canonicalMu
}

func (s *Stores) load(storeID string) ([]*domain.Playlist, error) {
	data, ok := s.blob.Load(storeID)
	if !ok || len(data) == 0 {
		return nil, nil
	}
	var ps []*domain.Playlist
	if err := json.Unmarshal(data, &ps); err != nil {
		return nil, fmt.Errorf("decode %s store: %w", storeID, err)
	}
	return ps, nil
}

func (s *Stores) save(storeID string, ps []*domain.Playlist) error {
	if ps == nil {
		ps = []*domain.Playlist{}
	}
	// Indented output keeps the persisted documents inspectable and diffable.
	data, err := json.MarshalIndent(ps, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s store: %w", storeID, err)
	}
	if err := s.blob.Save(storeID, data); err != nil {
		return fmt.Errorf("save %s store: %w", storeID, err)
	}
	return nil
}

// View runs fn over the decoded collection under the store lock.
func (s *Stores) View(storeID string, fn func(ps []*domain.Playlist) error) error {
	mu := s.mutexFor(storeID)
	mu.Lock()
	defer mu.Unlock()

	ps, err := s.load(storeID)
	if err != nil {
		return err
	}
	return fn(ps)
}

// ViewBoth runs fn over both decoded collections under both locks.
func (s *Stores) ViewBoth(fn func(canonical, draft []*domain.Playlist) error) error {
	s.canonicalMu.Lock()
	defer s.canonicalMu.Unlock()
	s.draftMu.Lock()
	defer s.draftMu.Unlock()

	canonical, err := s.load(domain.StoreCanonical)
	if err != nil {
		return err
	}
	draft, err := s.load(domain.StoreDraft)
	if err != nil {
		return err
	}
	return fn(canonical, draft)
}

// Update runs one full read-modify-write cycle: the collection returned by fn
// replaces the stored one.
func (s *Stores) Update(storeID string, fn func(ps []*domain.Playlist) ([]*domain.Playlist, error)) error {
	mu := s.mutexFor(storeID)
	mu.Lock()
	defer mu.Unlock()

	ps, err := s.load(storeID)
	if err != nil {
		return err
	}
	out, err := fn(ps)
	if err != nil {
		return err
	}
	return s.save(storeID, out)
}

// UpdateBoth runs one cycle spanning both stores. fn returns the collection
// to write for each store; a nil return leaves that store untouched. An empty
// collection must be returned as a non-nil empty slice.
func (s *Stores) UpdateBoth(fn func(canonical, draft []*domain.Playlist) ([]*domain.Playlist, []*domain.Playlist, error)) error {
	s.canonicalMu.Lock()
	defer s.canonicalMu.Unlock()
	s.draftMu.Lock()
	defer s.draftMu.Unlock()

	canonical, err := s.load(domain.StoreCanonical)
	if err != nil {
		return err
	}
	draft, err := s.load(domain.StoreDraft)
	if err != nil {
		return err
	}

	canonicalOut, draftOut, err := fn(canonical, draft)
	if err != nil {
		return err
	}
	if canonicalOut != nil {
		if err := s.save(domain.StoreCanonical, canonicalOut); err != nil {
			return err
		}
	}
	if draftOut != nil {
		if err := s.save(domain.StoreDraft, draftOut); err != nil {
			return err
		}
	}
	return nil
}

// indexOf returns the position of the playlist id, -1 when absent.
func indexOf(ps []*domain.Playlist, id string) int {
	for i, p := range ps {
		if p.ID == id {
			return i
		}
	}
	return -1
}
