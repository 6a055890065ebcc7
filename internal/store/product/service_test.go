// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package product

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloura/veloura/internal/platform/apperr"
	"github.com/veloura/veloura/pkg/pagination"
)

// # Test Doubles

type fakeRepo struct {
	products map[int64]*Product
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: make(map[int64]*Product), nextID: 1}
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, apperr.NotFound("product")
	}
	clone := *product
	return &clone, nil
}

func (r *fakeRepo) FindBySlug(_ context.Context, slug string) (*Product, error) {
	for _, product := range r.products {
		if product.Slug == slug {
			clone := *product
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("product_slug")
}

func (r *fakeRepo) List(_ context.Context, filter ListFilter, page pagination.Params) ([]*Product, int, error) {
	var matched []*Product
	for _, product := range r.products {
		if filter.PublishedOnly && !product.IsPublished {
			continue
		}
		matched = append(matched, product)
	}
	return matched, len(matched), nil
}

func (r *fakeRepo) FindByIDs(_ context.Context, ids []int64) ([]*Product, error) {
	var ordered []*Product
	for _, id := range ids {
		if product, ok := r.products[id]; ok && product.IsPublished {
			ordered = append(ordered, product)
		}
	}
	return ordered, nil
}

func (r *fakeRepo) Create(_ context.Context, product *Product) error {
	product.ID = r.nextID
	r.nextID++
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *fakeRepo) Update(_ context.Context, product *Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return apperr.NotFound("product")
	}
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return apperr.NotFound("product")
	}
	delete(r.products, id)
	return nil
}

func (r *fakeRepo) IncrementViewCount(_ context.Context, id int64, delta int64) error {
	if _, ok := r.products[id]; !ok {
		return apperr.NotFound("product")
	}
	return nil
}

func (r *fakeRepo) AdjustStock(_ context.Context, id int64, delta int) error {
	product, ok := r.products[id]
	if !ok {
		return apperr.NotFound("product")
	}
	if product.Stock+delta < 0 {
		return apperr.Conflict("Insufficient stock")
	}
	product.Stock += delta
	return nil
}

type fakeIndex struct {
	docs map[int64]SearchDocument
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: make(map[int64]SearchDocument)}
}

func (i *fakeIndex) Index(_ context.Context, doc SearchDocument) error {
	i.docs[doc.ID] = doc
	return nil
}

func (i *fakeIndex) Remove(_ context.Context, id int64) error {
	delete(i.docs, id)
	return nil
}

func (i *fakeIndex) Search(_ context.Context, query string, page pagination.Params) ([]SearchDocument, int, error) {
	var hits []SearchDocument
	for _, doc := range i.docs {
		hits = append(hits, doc)
	}
	return hits, len(hits), nil
}

func newTestService() (*Service, *fakeRepo, *fakeIndex) {
	repo := newFakeRepo()
	index := newFakeIndex()
	service := NewService(repo, index, slog.New(slog.DiscardHandler))
	return service, repo, index
}

// # Tests

func TestCreateDerivesSlugAndIndexesPublished(t *testing.T) {
	service, _, index := newTestService()

	created, err := service.Create(context.Background(), CreateInput{
		Name:        "Linen Wrap Dress",
		Description: "Breathable summer linen.",
		PriceCents:  12900,
		Currency:    "EUR",
		CategoryID:  1,
		Stock:       10,
		IsPublished: true,
		Tags:        []string{"linen", "summer"},
	})
	require.NoError(t, err)

	assert.Equal(t, "linen-wrap-dress", created.Slug)
	require.Contains(t, index.docs, created.ID)
	assert.Equal(t, "Linen Wrap Dress", index.docs[created.ID].Name)
}

func TestCreateDraftStaysOutOfIndex(t *testing.T) {
	service, _, index := newTestService()

	created, err := service.Create(context.Background(), CreateInput{
		Name:       "Unlisted Sample",
		PriceCents: 100,
		Currency:   "EUR",
	})
	require.NoError(t, err)

	assert.NotContains(t, index.docs, created.ID)
}

func TestCreateRejectsNonPositivePrice(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Create(context.Background(), CreateInput{
		Name:       "Free Stuff",
		PriceCents: 0,
		Currency:   "EUR",
	})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
}

func TestUpdateUnpublishRemovesFromIndex(t *testing.T) {
	service, _, index := newTestService()

	created, err := service.Create(context.Background(), CreateInput{
		Name:        "Silk Scarf",
		PriceCents:  4900,
		Currency:    "EUR",
		IsPublished: true,
	})
	require.NoError(t, err)
	require.Contains(t, index.docs, created.ID)

	unpublished := false
	_, err = service.Update(context.Background(), created.ID, UpdateInput{IsPublished: &unpublished})
	require.NoError(t, err)

	assert.NotContains(t, index.docs, created.ID)
}

func TestUpdateNameRegeneratesSlug(t *testing.T) {
	service, _, _ := newTestService()

	created, err := service.Create(context.Background(), CreateInput{
		Name:       "Old Name",
		PriceCents: 1000,
		Currency:   "EUR",
	})
	require.NoError(t, err)

	newName := "Café Été Tote"
	updated, err := service.Update(context.Background(), created.ID, UpdateInput{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "cafe-ete-tote", updated.Slug)
}

func TestUpdateMissingProduct(t *testing.T) {
	service, _, _ := newTestService()

	name := "Ghost"
	_, err := service.Update(context.Background(), 999, UpdateInput{Name: &name})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteRemovesFromIndex(t *testing.T) {
	service, repo, index := newTestService()

	created, err := service.Create(context.Background(), CreateInput{
		Name:        "Doomed Item",
		PriceCents:  500,
		Currency:    "EUR",
		IsPublished: true,
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))

	assert.NotContains(t, repo.products, created.ID)
	assert.NotContains(t, index.docs, created.ID)
}

func TestSearchReturnsPaginationMeta(t *testing.T) {
	service, _, _ := newTestService()

	for _, name := range []string{"Wool Coat", "Wool Hat"} {
		_, err := service.Create(context.Background(), CreateInput{
			Name:        name,
			PriceCents:  1000,
			Currency:    "EUR",
			IsPublished: true,
		})
		require.NoError(t, err)
	}

	docs, meta, err := service.Search(context.Background(), "wool", pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)

	assert.Len(t, docs, 2)
	assert.Equal(t, 2, meta.Total)
}
