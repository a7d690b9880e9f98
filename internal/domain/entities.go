package domain

import (
	"encoding/json"
	"fmt"
)

// Playlist is one whole persisted document: a named tree of folders and
// audio items. Total is the maintained count of Item nodes reachable from
// RootChildren (folders are not counted).
type Playlist struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	RootChildren Nodes  `json:"rootChildren"`
	Total        int    `json:"total"`
}

// NewPlaylist returns an empty playlist with the given identity.
func NewPlaylist(id, name string) *Playlist {
	return &Playlist{ID: id, Name: name, RootChildren: Nodes{}, Total: 0}
}

// Clone returns a deep copy. Used to seed the draft store without aliasing
// the canonical tree.
func (p *Playlist) Clone() *Playlist {
	return &Playlist{
		ID:           p.ID,
		Name:         p.Name,
		RootChildren: p.RootChildren.Clone(),
		Total:        p.Total,
	}
}

// Node is either a *Folder or an *Item. The tree is a passive value type:
// traversal and mutation live in the tree and playlist packages, never here.
type Node interface {
	NodeID() string
	NodeName() string
	Clone() Node
}

// Folder groups child folders and items. Folder names only need to be unique
// among siblings for path resolution; ids are unique per playlist.
type Folder struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Children Nodes  `json:"children"`
}

func (f *Folder) NodeID() string   { return f.ID }
func (f *Folder) NodeName() string { return f.Name }

func (f *Folder) Clone() Node {
	return &Folder{ID: f.ID, Name: f.Name, Children: f.Children.Clone()}
}

// Item is a leaf referencing one external audio asset. Surname is an
// optional display override, empty by default.
type Item struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Path    string `json:"path"`
}

func (i *Item) NodeID() string   { return i.ID }
func (i *Item) NodeName() string { return i.Name }

func (i *Item) Clone() Node {
	c := *i
	return &c
}

// DisplayName returns the surname override when set, the name otherwise.
func (i *Item) DisplayName() string {
	if i.Surname != "" {
		return i.Surname
	}
	return i.Name
}

// Nodes is an ordered forest of folders and items.
type Nodes []Node

// Clone deep-copies the forest.
func (ns Nodes) Clone() Nodes {
	if ns == nil {
		return nil
	}
	out := make(Nodes, len(ns))
	for i, n := range ns {
		out[i] = n.Clone()
	}
	return out
}

// MarshalJSON emits an empty array for a nil forest so persisted documents
// always carry the children/rootChildren field.
func (ns Nodes) MarshalJSON() ([]byte, error) {
	if ns == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Node(ns))
}

// UnmarshalJSON decodes the tagged union. A node carrying a "children" key is
// a Folder, anything else an Item; persisted documents keep exactly the
// legacy field set, with no discriminator field.
func (ns *Nodes) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(Nodes, 0, len(raws))
	for _, raw := range raws {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(raw, &probe); err != nil {
			return fmt.Errorf("decode tree node: %w", err)
		}
		if _, isFolder := probe["children"]; isFolder {
			var f Folder
			if err := json.Unmarshal(raw, &f); err != nil {
				return fmt.Errorf("decode folder node: %w", err)
			}
			if f.Children == nil {
				f.Children = Nodes{}
			}
			out = append(out, &f)
		} else {
			var it Item
			if err := json.Unmarshal(raw, &it); err != nil {
				return fmt.Errorf("decode item node: %w", err)
			}
			out = append(out, &it)
		}
	}
	*ns = out
	return nil
}
