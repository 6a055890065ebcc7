package category

import "context"

type Repository interface {
	ListAll(context context.Context) ([]*Category, error)
	FindByID(context context.Context, id int64) (*Category, error)
	FindBySlug(context context.Context, slug string) (*Category, error)
	Create(context context.Context, c *Category) error
	Update(context context.Context, c *Category) error
	Delete(context context.Context, id int64) error
	HasProducts(context context.Context, id int64) (bool, error)
}
