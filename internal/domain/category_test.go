package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCategoryTree(t *testing.T) {
	electronics := "cat-electronics"
	categories := []Category{
		{ID: "cat-electronics", Name: "Electronics"},
		{ID: "cat-laptops", Name: "Laptops", ParentID: &electronics},
		{ID: "cat-phones", Name: "Phones", ParentID: &electronics},
		{ID: "cat-books", Name: "Books"},
	}

	roots := BuildCategoryTree(categories)

	require.Len(t, roots, 2)
	assert.Equal(t, "Electronics", roots[0].Name)
	assert.Len(t, roots[0].Children, 2)
	assert.Equal(t, "Books", roots[1].Name)
	assert.Empty(t, roots[1].Children)
}

func TestBuildCategoryTree_OrphanBecomesRoot(t *testing.T) {
	missing := "cat-gone"
	roots := BuildCategoryTree([]Category{
		{ID: "cat-orphan", Name: "Orphan", ParentID: &missing},
	})

	require.Len(t, roots, 1)
	assert.Equal(t, "Orphan", roots[0].Name)
}

func TestBuildCategoryTree_Empty(t *testing.T) {
	roots := BuildCategoryTree(nil)

	assert.NotNil(t, roots)
	assert.Empty(t, roots)
}
