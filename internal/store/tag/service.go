package tag

import (
	"context"
	"log/slog"

	"github.com/veloura/veloura/internal/platform/validate"
	"github.com/veloura/veloura/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListTags(context context.Context) ([]*Tag, error) {
	return service.repo.ListTags(context)
}

func (service *Service) GetTagBySlug(context context.Context, tagSlug string) (*Tag, error) {
	return service.repo.GetTagBySlug(context, tagSlug)
}

func (service *Service) CreateTag(context context.Context, tag *Tag) error {
	validator := &validate.Validator{}
	validator.Required("name", tag.Name).MaxLen("name", tag.Name, 60)
	if err := validator.Err(); err != nil {
		return err
	}

	tag.Slug = slug.From(tag.Name)
	if err := service.repo.CreateTag(context, tag); err != nil {
		return err
	}

	service.logger.Info("tag_created", slog.String("slug", tag.Slug))
	return nil
}

func (service *Service) RenameTag(context context.Context, id int64, name string) (*Tag, error) {
	validator := &validate.Validator{}
	validator.Required("name", name).MaxLen("name", name, 60)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	tag := &Tag{ID: id, Name: name, Slug: slug.From(name)}
	if err := service.repo.RenameTag(context, tag); err != nil {
		return nil, err
	}

	service.logger.Info("tag_renamed", slog.Int64("tag_id", id), slog.String("slug", tag.Slug))
	return tag, nil
}

func (service *Service) DeleteTag(context context.Context, id int64) error {
	return service.repo.DeleteTag(context, id)
}
