package tag

import "context"

type Repository interface {
	ListTags(context context.Context) ([]*Tag, error)
	GetTagBySlug(context context.Context, slug string) (*Tag, error)
	CreateTag(context context.Context, t *Tag) error
	RenameTag(context context.Context, t *Tag) error
	DeleteTag(context context.Context, id int64) error
}
