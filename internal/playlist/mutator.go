package playlist

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/mmcdole/cueset/internal/domain"
	"github.com/mmcdole/cueset/internal/tree"
)

// ItemInput is the caller-supplied part of a new item. The id is assigned on
// insert and the surname starts empty.
type ItemInput struct {
	Name string
	Path string
}

// Mutator performs the structural tree edits. Every operation resolves the
// playlist through the draft overlay, applies its change, maintains Total,
// and persists the draft collection — all inside one locked cycle.
type Mutator struct {
	stores *Stores
	logger *slog.Logger
	newID  func() string
}

// NewMutator creates a new mutator.
func NewMutator(stores *Stores, logger *slog.Logger) *Mutator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mutator{stores: stores, logger: logger, newID: uuid.NewString}
}

func (m *Mutator) mutate(playlistID string, fn func(p *domain.Playlist) error) (*domain.Playlist, error) {
	var out *domain.Playlist
	err := m.stores.UpdateBoth(func(canonical, draft []*domain.Playlist) ([]*domain.Playlist, []*domain.Playlist, error) {
		p, draftOut, err := overlay(canonical, draft, playlistID)
		if err != nil {
			return nil, nil, err
		}
		if err := fn(p); err != nil {
			return nil, nil, err
		}
		out = p
		return nil, draftOut, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// InsertItem inserts a new item at the given index, into the folder with the
// given id, or into the playlist root when folderID is empty. The new item
// gets a fresh id and an empty surname.
func (m *Mutator) InsertItem(playlistID string, in ItemInput, folderID string, index int) (*domain.Playlist, error) {
	out, err := m.mutate(playlistID, func(p *domain.Playlist) error {
		if index < 0 {
			return fmt.Errorf("%w: %d", domain.ErrInvalidIndex, index)
		}

		var folder *domain.Folder
		if folderID != "" {
			folder = tree.FindContainerByID(p.RootChildren, folderID)
			if folder == nil {
				return fmt.Errorf("%w: %s", domain.ErrFolderNotFound, folderID)
			}
		}

		children := tree.ChildrenOf(p, folder)
		if index > len(children) {
			return fmt.Errorf("%w: %d exceeds %d children", domain.ErrInvalidIndex, index, len(children))
		}

		item := &domain.Item{ID: m.newID(), Name: in.Name, Surname: "", Path: in.Path}
		tree.SetChildrenOf(p, folder, slices.Insert(children, index, domain.Node(item)))
		p.Total++
		return nil
	})
	if err != nil {
		m.logger.Error("failed to insert item", "error", err, "playlistID", playlistID, "folderID", folderID)
		return nil, err
	}
	m.logger.Info("inserted item", "playlistID", playlistID, "folderID", folderID, "index", index)
	return out, nil
}

// AddItemAtPath appends a new item to the folder addressed by a slash path.
// A folder never holds two items with the same media reference.
func (m *Mutator) AddItemAtPath(playlistID string, in ItemInput, path string) (*domain.Playlist, error) {
	out, err := m.mutate(playlistID, func(p *domain.Playlist) error {
		folder, err := tree.ResolvePath(p.RootChildren, path)
		if err != nil {
			return err
		}

		children := tree.ChildrenOf(p, folder)
		for _, n := range children {
			if it, ok := n.(*domain.Item); ok && it.Path == in.Path {
				return fmt.Errorf("%w: %s", domain.ErrDuplicateAudio, in.Path)
			}
		}

		item := &domain.Item{ID: m.newID(), Name: in.Name, Surname: "", Path: in.Path}
		tree.SetChildrenOf(p, folder, append(children, item))
		p.Total++
		return nil
	})
	if err != nil {
		m.logger.Error("failed to add item", "error", err, "playlistID", playlistID, "path", path)
		return nil, err
	}
	m.logger.Info("added item", "playlistID", playlistID, "path", path)
	return out, nil
}

// UpdateItemSurname sets the surname override on an item found by id among
// the direct children of the folder addressed by path. Pass an empty surname
// to clear the override.
func (m *Mutator) UpdateItemSurname(playlistID, path, itemID, surname string) (*domain.Playlist, error) {
	out, err := m.mutate(playlistID, func(p *domain.Playlist) error {
		folder, err := tree.ResolvePath(p.RootChildren, path)
		if err != nil {
			return err
		}

		for _, n := range tree.ChildrenOf(p, folder) {
			if it, ok := n.(*domain.Item); ok && it.ID == itemID {
				it.Surname = surname
				return nil
			}
		}
		return fmt.Errorf("%w: %s in %q", domain.ErrItemNotFound, itemID, path)
	})
	if err != nil {
		m.logger.Error("failed to update item", "error", err, "playlistID", playlistID, "itemID", itemID)
		return nil, err
	}
	m.logger.Info("updated item surname", "playlistID", playlistID, "itemID", itemID)
	return out, nil
}

// DeleteItem removes the node with the given id from its parent folder, or
// from the playlist root when no folder owns it. A missing id is a hard
// error and leaves Total untouched. Removing a folder node drops Total by
// the number of items it contained, keeping the count invariant.
func (m *Mutator) DeleteItem(playlistID, itemID string) (*domain.Playlist, error) {
	out, err := m.mutate(playlistID, func(p *domain.Playlist) error {
		parent := tree.FindParentByID(p.RootChildren, itemID)
		children := tree.ChildrenOf(p, parent)

		idx := -1
		for i, n := range children {
			if n.NodeID() == itemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
		}

		removed := children[idx]
		tree.SetChildrenOf(p, parent, slices.Delete(children, idx, idx+1))

		switch v := removed.(type) {
		case *domain.Item:
			p.Total--
		case *domain.Folder:
			p.Total -= tree.CountItems(v.Children)
		}
		return nil
	})
	if err != nil {
		m.logger.Error("failed to delete item", "error", err, "playlistID", playlistID, "itemID", itemID)
		return nil, err
	}
	m.logger.Info("deleted item", "playlistID", playlistID, "itemID", itemID)
	return out, nil
}
