package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodesJSONRoundTrip(t *testing.T) {
	p := &Playlist{
		ID:   "p1",
		Name: "Session 1",
		RootChildren: Nodes{
			&Item{ID: "i1", Name: "Intro", Surname: "", Path: "a.mp3"},
			&Folder{
				ID:   "f1",
				Name: "Ambience",
				Children: Nodes{
					&Item{ID: "i2", Name: "Rain", Surname: "Heavy Rain", Path: "b.mp3"},
					&Folder{ID: "f2", Name: "Night", Children: Nodes{}},
				},
			},
		},
		Total: 2,
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var got Playlist
	require.NoError(t, json.Unmarshal(data, &got))

	require.Len(t, got.RootChildren, 2)

	item, ok := got.RootChildren[0].(*Item)
	require.True(t, ok, "first root child should decode as an item")
	assert.Equal(t, "i1", item.ID)
	assert.Equal(t, "a.mp3", item.Path)
	assert.Equal(t, "", item.Surname)

	folder, ok := got.RootChildren[1].(*Folder)
	require.True(t, ok, "second root child should decode as a folder")
	assert.Equal(t, "Ambience", folder.Name)
	require.Len(t, folder.Children, 2)

	nested, ok := folder.Children[0].(*Item)
	require.True(t, ok)
	assert.Equal(t, "Heavy Rain", nested.Surname)

	empty, ok := folder.Children[1].(*Folder)
	require.True(t, ok)
	assert.Empty(t, empty.Children)
}

func TestNodesJSONFieldNames(t *testing.T) {
	p := NewPlaylist("p1", "Session 1")
	p.RootChildren = Nodes{
		&Folder{ID: "f1", Name: "FX", Children: Nodes{}},
		&Item{ID: "i1", Name: "Intro", Path: "a.mp3"},
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "id")
	assert.Contains(t, raw, "name")
	assert.Contains(t, raw, "rootChildren")
	assert.Contains(t, raw, "total")

	var children []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["rootChildren"], &children))
	require.Len(t, children, 2)

	// Folders carry children, items carry surname and path; neither carries
	// a discriminator field.
	assert.Contains(t, children[0], "children")
	assert.NotContains(t, children[0], "type")
	assert.Contains(t, children[1], "surname")
	assert.Contains(t, children[1], "path")
	assert.NotContains(t, children[1], "children")
}

func TestEmptyForestMarshalsAsArray(t *testing.T) {
	// A zero-value playlist still round-trips rootChildren as [], never null.
	data, err := json.Marshal(&Playlist{ID: "p1", Name: "x"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rootChildren":[]`)
}

func TestPlaylistClone(t *testing.T) {
	p := NewPlaylist("p1", "Session 1")
	folder := &Folder{ID: "f1", Name: "FX", Children: Nodes{
		&Item{ID: "i1", Name: "Intro", Path: "a.mp3"},
	}}
	p.RootChildren = Nodes{folder}
	p.Total = 1

	c := p.Clone()
	require.Equal(t, p, c)

	// Mutating the clone must not leak into the original.
	cloned := c.RootChildren[0].(*Folder)
	cloned.Name = "renamed"
	cloned.Children[0].(*Item).Surname = "override"
	c.Total = 9

	assert.Equal(t, "FX", folder.Name)
	assert.Equal(t, "", folder.Children[0].(*Item).Surname)
	assert.Equal(t, 1, p.Total)
}
