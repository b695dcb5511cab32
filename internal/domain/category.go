package domain

import (
	"time"
)

// Category represents a product category. Categories form a tree via
// ParentID; the tree is kept acyclic by an ancestor walk on write.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ParentID  *string   `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryNode is a category with its children, used for tree responses.
type CategoryNode struct {
	Category
	Children []*CategoryNode `json:"children"`
}

// BuildCategoryTree assembles a forest from a flat category list. Categories
// whose parent is missing from the input are treated as roots.
func BuildCategoryTree(categories []Category) []*CategoryNode {
	nodes := make(map[string]*CategoryNode, len(categories))
	for i := range categories {
		nodes[categories[i].ID] = &CategoryNode{Category: categories[i], Children: []*CategoryNode{}}
	}

	var roots []*CategoryNode
	for i := range categories {
		node := nodes[categories[i].ID]
		if categories[i].ParentID != nil {
			if parent, ok := nodes[*categories[i].ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	if roots == nil {
		roots = []*CategoryNode{}
	}
	return roots
}
