// Package tree holds the pure navigation primitives for playlist trees:
// slash-path resolution and id-based searches over an ordered forest.
// Nothing here mutates a tree or touches storage.
package tree

import (
	"fmt"
	"strings"

	"github.com/mmcdole/cueset/internal/domain"
)

// ResolvePath resolves a slash-delimited path against the given root forest
// and returns the addressed folder. A path without a leading slash (including
// the empty path) addresses the root itself, reported as a nil folder.
//
// Matching is case-sensitive and exact; the first unmatched segment fails the
// whole resolution with ErrInvalidPath.
func ResolvePath(root domain.Nodes, path string) (*domain.Folder, error) {
	return descend(nil, root, path)
}

func descend(current *domain.Folder, children domain.Nodes, path string) (*domain.Folder, error) {
	if !strings.HasPrefix(path, "/") {
		return current, nil
	}

	rest := path[1:]
	segment := rest
	remainder := ""
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		segment = rest[:i]
		remainder = rest[i:]
	}

	for _, n := range children {
		if f, ok := n.(*domain.Folder); ok && f.Name == segment {
			return descend(f, f.Children, remainder)
		}
	}
	return nil, fmt.Errorf("%w: no folder %q", domain.ErrInvalidPath, segment)
}

// ChildrenOf returns the child list owned by folder, falling back to the
// playlist root forest when folder is nil (the root has no owning folder).
func ChildrenOf(p *domain.Playlist, folder *domain.Folder) domain.Nodes {
	if folder == nil {
		return p.RootChildren
	}
	return folder.Children
}

// SetChildrenOf writes a child list back to its owner, the counterpart of
// ChildrenOf for mutations that grow or shrink the slice.
func SetChildrenOf(p *domain.Playlist, folder *domain.Folder, children domain.Nodes) {
	if folder == nil {
		p.RootChildren = children
		return
	}
	folder.Children = children
}
