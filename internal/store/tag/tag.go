package tag

import "time"

// Tag is a merchandising label applied to products (material, fit, season).
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`

	// ProductCount is populated by listing queries only.
	ProductCount int `json:"product_count,omitempty"`
}
