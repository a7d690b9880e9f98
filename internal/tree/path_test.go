package tree

import (
	"testing"

	"github.com/mmcdole/cueset/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureForest() domain.Nodes {
	return domain.Nodes{
		&domain.Item{ID: "i-root", Name: "Intro", Path: "intro.mp3"},
		&domain.Folder{
			ID:   "f-ambience",
			Name: "Ambience",
			Children: domain.Nodes{
				&domain.Item{ID: "i-rain", Name: "Rain", Path: "rain.mp3"},
				&domain.Folder{
					ID:   "f-night",
					Name: "Night",
					Children: domain.Nodes{
						&domain.Item{ID: "i-owls", Name: "Owls", Path: "owls.mp3"},
					},
				},
			},
		},
		&domain.Folder{ID: "f-combat", Name: "Combat", Children: domain.Nodes{}},
	}
}

func TestResolvePath(t *testing.T) {
	forest := fixtureForest()

	tests := []struct {
		name     string
		path     string
		wantID   string // "" means the root container
		wantErr  error
	}{
		{name: "empty path is root", path: "", wantID: ""},
		{name: "top level folder", path: "/Ambience", wantID: "f-ambience"},
		{name: "nested folder", path: "/Ambience/Night", wantID: "f-night"},
		{name: "sibling folder", path: "/Combat", wantID: "f-combat"},
		{name: "missing segment", path: "/Ambience/Day", wantErr: domain.ErrInvalidPath},
		{name: "missing top segment", path: "/Weather", wantErr: domain.ErrInvalidPath},
		{name: "case sensitive", path: "/ambience", wantErr: domain.ErrInvalidPath},
		{name: "bare slash", path: "/", wantErr: domain.ErrInvalidPath},
		{name: "item name is not a folder", path: "/Intro", wantErr: domain.ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			folder, err := ResolvePath(forest, tt.path)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.wantID == "" {
				assert.Nil(t, folder)
			} else {
				require.NotNil(t, folder)
				assert.Equal(t, tt.wantID, folder.ID)
			}
		})
	}
}

func TestResolvePathIsIdempotent(t *testing.T) {
	forest := fixtureForest()

	first, err := ResolvePath(forest, "/Ambience/Night")
	require.NoError(t, err)
	second, err := ResolvePath(forest, "/Ambience/Night")
	require.NoError(t, err)

	// Same folder identity, not just equal content.
	assert.Same(t, first, second)
}

func TestChildrenOfRootFallback(t *testing.T) {
	p := domain.NewPlaylist("p1", "x")
	p.RootChildren = fixtureForest()

	assert.Equal(t, p.RootChildren, ChildrenOf(p, nil))

	folder := p.RootChildren[1].(*domain.Folder)
	assert.Equal(t, folder.Children, ChildrenOf(p, folder))

	replacement := domain.Nodes{}
	SetChildrenOf(p, nil, replacement)
	assert.Empty(t, p.RootChildren)

	SetChildrenOf(p, folder, replacement)
	assert.Empty(t, folder.Children)
}
