package category

import "time"

// Category is a node in the storefront navigation tree. Top-level
// categories have a nil ParentID.
type Category struct {
	ID          int64     `json:"id"`
	ParentID    *int64    `json:"parent_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Node is a category with its resolved children, used by the tree endpoint.
type Node struct {
	Category
	Children []*Node `json:"children"`
}

// Global field names for validation
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPosition    = "position"
)
