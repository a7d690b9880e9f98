package tree

import (
	"fmt"

	"github.com/mmcdole/cueset/internal/domain"
)

// FindContainerByID searches the forest depth-first for the first folder that
// either carries the id itself or holds an item with that id as a direct
// child. Each sibling level is scanned in full before descending, so a match
// at the current level always wins over a deeper one. Returns nil when the id
// resolves nowhere — which the caller may read as "the id addresses a root
// item with no owning folder".
func FindContainerByID(forest domain.Nodes, id string) *domain.Folder {
	for _, n := range forest {
		f, ok := n.(*domain.Folder)
		if !ok {
			continue
		}
		if f.ID == id {
			return f
		}
		for _, c := range f.Children {
			if it, ok := c.(*domain.Item); ok && it.ID == id {
				return f
			}
		}
	}
	for _, n := range forest {
		if f, ok := n.(*domain.Folder); ok {
			if found := FindContainerByID(f.Children, id); found != nil {
				return found
			}
		}
	}
	return nil
}

// FindParentByID returns the folder holding a direct child (folder or item)
// with the given id, scanning each sibling level in full before descending.
// Returns nil when no folder qualifies: the id is either a root-level node or
// absent from the tree entirely.
func FindParentByID(forest domain.Nodes, id string) *domain.Folder {
	for _, n := range forest {
		if f, ok := n.(*domain.Folder); ok {
			for _, c := range f.Children {
				if c.NodeID() == id {
					return f
				}
			}
		}
	}
	for _, n := range forest {
		if f, ok := n.(*domain.Folder); ok {
			if found := FindParentByID(f.Children, id); found != nil {
				return found
			}
		}
	}
	return nil
}

// CountItems counts the items reachable from the forest, the quantity the
// playlist Total field tracks.
func CountItems(forest domain.Nodes) int {
	total := 0
	for _, n := range forest {
		switch v := n.(type) {
		case *domain.Item:
			total++
		case *domain.Folder:
			total += CountItems(v.Children)
		}
	}
	return total
}

// ValidateUniqueIDs rejects a forest that carries the same node id twice.
// Duplicate ids would make id resolution ambiguous, so trees supplied from
// outside (the rename tree-replace path) are checked before being accepted.
func ValidateUniqueIDs(forest domain.Nodes) error {
	seen := make(map[string]struct{})
	return walkIDs(forest, seen)
}

func walkIDs(forest domain.Nodes, seen map[string]struct{}) error {
	for _, n := range forest {
		id := n.NodeID()
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
		if f, ok := n.(*domain.Folder); ok {
			if err := walkIDs(f.Children, seen); err != nil {
				return err
			}
		}
	}
	return nil
}
