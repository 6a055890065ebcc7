package category

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloura/veloura/internal/platform/apperr"
)

type fakeRepo struct {
	categories map[int64]*Category
	withItems  map[int64]bool
	nextID     int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		categories: make(map[int64]*Category),
		withItems:  make(map[int64]bool),
		nextID:     1,
	}
}

func (r *fakeRepo) ListAll(_ context.Context) ([]*Category, error) {
	var all []*Category
	for _, c := range r.categories {
		all = append(all, c)
	}
	return all, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, apperr.NotFound("category")
	}
	return c, nil
}

func (r *fakeRepo) FindBySlug(_ context.Context, slug string) (*Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, apperr.NotFound("category")
}

func (r *fakeRepo) Create(_ context.Context, c *Category) error {
	c.ID = r.nextID
	r.nextID++
	r.categories[c.ID] = c
	return nil
}

func (r *fakeRepo) Update(_ context.Context, c *Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return apperr.NotFound("category")
	}
	r.categories[c.ID] = c
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.categories[id]; !ok {
		return apperr.NotFound("category")
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeRepo) HasProducts(_ context.Context, id int64) (bool, error) {
	return r.withItems[id], nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, slog.New(slog.DiscardHandler)), repo
}

func TestTreeNestsChildren(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	root := &Category{Name: "Women"}
	require.NoError(t, service.Create(ctx, root))

	child := &Category{Name: "Dresses", ParentID: &root.ID}
	require.NoError(t, service.Create(ctx, child))

	tree, err := service.Tree(ctx)
	require.NoError(t, err)

	require.Len(t, tree, 1)
	assert.Equal(t, "women", tree[0].Slug)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "dresses", tree[0].Children[0].Slug)
}

func TestCreateRejectsMissingParent(t *testing.T) {
	service, _ := newTestService()

	missing := int64(42)
	err := service.Create(context.Background(), &Category{Name: "Orphan", ParentID: &missing})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
}

func TestUpdateRejectsSelfParent(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	c := &Category{Name: "Accessories"}
	require.NoError(t, service.Create(ctx, c))

	err := service.Update(ctx, c.ID, &Category{Name: "Accessories", ParentID: &c.ID})
	require.Error(t, err)
}

func TestDeleteProtectsCategoriesInUse(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	c := &Category{Name: "Shoes"}
	require.NoError(t, service.Create(ctx, c))
	repo.withItems[c.ID] = true

	err := service.Delete(ctx, c.ID)
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 409, appErr.HTTPStatus)
}
