package category

import (
	"context"
	"log/slog"

	"github.com/veloura/veloura/internal/platform/apperr"
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

// Tree returns the full navigation hierarchy assembled in memory.
// The category table is small, so a single fetch beats recursive queries.
func (service *Service) Tree(context context.Context) ([]*Node, error) {
	categories, err := service.repo.ListAll(context)
	if err != nil {
		return nil, err
	}

	nodes := make(map[int64]*Node, len(categories))
	for _, category := range categories {
		nodes[category.ID] = &Node{Category: *category, Children: []*Node{}}
	}

	var roots []*Node
	for _, category := range categories {
		node := nodes[category.ID]
		if category.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*category.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		} else {
			// Orphaned by a concurrent parent delete; surface at the root
			// rather than dropping the subtree.
			roots = append(roots, node)
		}
	}

	return roots, nil
}

func (service *Service) GetBySlug(context context.Context, categorySlug string) (*Category, error) {
	return service.repo.FindBySlug(context, categorySlug)
}

func (service *Service) Create(context context.Context, category *Category) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, category.Name).MaxLen(FieldName, category.Name, 120)
	validator.MaxLen(FieldDescription, category.Description, 2000)
	if err := validator.Err(); err != nil {
		return err
	}

	if category.ParentID != nil {
		if _, err := service.repo.FindByID(context, *category.ParentID); err != nil {
			return apperr.BadRequest("Parent category does not exist")
		}
	}

	category.Slug = slug.From(category.Name)
	if err := service.repo.Create(context, category); err != nil {
		return err
	}

	service.logger.Info("category_created", slog.String("slug", category.Slug))
	return nil
}

func (service *Service) Update(context context.Context, id int64, category *Category) error {
	category.ID = id

	validator := &validate.Validator{}
	validator.Required(FieldName, category.Name).MaxLen(FieldName, category.Name, 120)
	validator.MaxLen(FieldDescription, category.Description, 2000)
	if err := validator.Err(); err != nil {
		return err
	}

	// A category cannot become its own parent.
	if category.ParentID != nil && *category.ParentID == id {
		return apperr.BadRequest("Category cannot be its own parent")
	}

	category.Slug = slug.From(category.Name)
	if err := service.repo.Update(context, category); err != nil {
		return err
	}

	service.logger.Info("category_updated", slog.Int64("category_id", id))
	return nil
}

// Delete removes a category. Categories still referenced by products are
// protected to keep the storefront navigable.
func (service *Service) Delete(context context.Context, id int64) error {
	inUse, err := service.repo.HasProducts(context, id)
	if err != nil {
		return err
	}
	if inUse {
		return apperr.Conflict("Category still has products assigned")
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("category_deleted", slog.Int64("category_id", id))
	return nil
}
