package tree

import (
	"testing"

	"github.com/mmcdole/cueset/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindContainerByID(t *testing.T) {
	forest := fixtureForest()

	t.Run("folder by own id", func(t *testing.T) {
		f := FindContainerByID(forest, "f-night")
		require.NotNil(t, f)
		assert.Equal(t, "f-night", f.ID)
	})

	t.Run("folder holding the item", func(t *testing.T) {
		f := FindContainerByID(forest, "i-rain")
		require.NotNil(t, f)
		assert.Equal(t, "f-ambience", f.ID)
	})

	t.Run("nested item resolves to its folder", func(t *testing.T) {
		f := FindContainerByID(forest, "i-owls")
		require.NotNil(t, f)
		assert.Equal(t, "f-night", f.ID)
	})

	t.Run("root item has no container", func(t *testing.T) {
		assert.Nil(t, FindContainerByID(forest, "i-root"))
	})

	t.Run("unknown id", func(t *testing.T) {
		assert.Nil(t, FindContainerByID(forest, "nope"))
	})

	t.Run("level scan beats descent", func(t *testing.T) {
		// "target" exists both deep inside the first folder and as a direct
		// child of a later sibling; the sibling-level match must win.
		forest := domain.Nodes{
			&domain.Folder{ID: "a", Name: "A", Children: domain.Nodes{
				&domain.Folder{ID: "a1", Name: "A1", Children: domain.Nodes{
					&domain.Item{ID: "target", Name: "deep", Path: "deep.mp3"},
				}},
			}},
			&domain.Folder{ID: "b", Name: "B", Children: domain.Nodes{
				&domain.Item{ID: "target", Name: "shallow", Path: "shallow.mp3"},
			}},
		}
		f := FindContainerByID(forest, "target")
		require.NotNil(t, f)
		assert.Equal(t, "b", f.ID)
	})
}

func TestFindParentByID(t *testing.T) {
	forest := fixtureForest()

	t.Run("item parent", func(t *testing.T) {
		f := FindParentByID(forest, "i-rain")
		require.NotNil(t, f)
		assert.Equal(t, "f-ambience", f.ID)
	})

	t.Run("folder parent", func(t *testing.T) {
		// Parents are found for any node variant, folders included.
		f := FindParentByID(forest, "f-night")
		require.NotNil(t, f)
		assert.Equal(t, "f-ambience", f.ID)
	})

	t.Run("deep item", func(t *testing.T) {
		f := FindParentByID(forest, "i-owls")
		require.NotNil(t, f)
		assert.Equal(t, "f-night", f.ID)
	})

	t.Run("root nodes have no parent", func(t *testing.T) {
		assert.Nil(t, FindParentByID(forest, "i-root"))
		assert.Nil(t, FindParentByID(forest, "f-ambience"))
	})

	t.Run("unknown id", func(t *testing.T) {
		assert.Nil(t, FindParentByID(forest, "nope"))
	})
}

func TestCountItems(t *testing.T) {
	assert.Equal(t, 3, CountItems(fixtureForest()))
	assert.Equal(t, 0, CountItems(nil))
	assert.Equal(t, 0, CountItems(domain.Nodes{
		&domain.Folder{ID: "f", Name: "empty", Children: domain.Nodes{}},
	}))
}

func TestValidateUniqueIDs(t *testing.T) {
	require.NoError(t, ValidateUniqueIDs(fixtureForest()))

	dup := domain.Nodes{
		&domain.Folder{ID: "x", Name: "A", Children: domain.Nodes{
			&domain.Item{ID: "x", Name: "clash", Path: "a.mp3"},
		}},
	}
	assert.ErrorIs(t, ValidateUniqueIDs(dup), domain.ErrDuplicateID)
}
