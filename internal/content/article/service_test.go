// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package article

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloura/veloura/internal/platform/apperr"
	"github.com/veloura/veloura/pkg/pagination"
)

type fakeRepo struct {
	articles map[int64]*Article
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{articles: make(map[int64]*Article), nextID: 1}
}

func (r *fakeRepo) List(_ context.Context, publishedOnly bool, _ pagination.Params) ([]*Article, int, error) {
	var matched []*Article
	for _, a := range r.articles {
		if publishedOnly && !a.IsPublished {
			continue
		}
		matched = append(matched, a)
	}
	return matched, len(matched), nil
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, apperr.NotFound("article")
	}
	clone := *a
	return &clone, nil
}

func (r *fakeRepo) FindBySlug(_ context.Context, slug string) (*Article, error) {
	for _, a := range r.articles {
		if a.Slug == slug {
			clone := *a
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("article")
}

func (r *fakeRepo) Create(_ context.Context, a *Article) error {
	a.ID = r.nextID
	r.nextID++
	clone := *a
	r.articles[a.ID] = &clone
	return nil
}

func (r *fakeRepo) Update(_ context.Context, a *Article) error {
	if _, ok := r.articles[a.ID]; !ok {
		return apperr.NotFound("article")
	}
	clone := *a
	r.articles[a.ID] = &clone
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.articles[id]; !ok {
		return apperr.NotFound("article")
	}
	delete(r.articles, id)
	return nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, slog.New(slog.DiscardHandler)), repo
}

func TestCreatePublishedStampsPublicationTime(t *testing.T) {
	service, _ := newTestService()

	a := &Article{Title: "Autumn Lookbook", Body: "Layering season.", AuthorID: 7, IsPublished: true}
	require.NoError(t, service.Create(context.Background(), a))

	assert.Equal(t, "autumn-lookbook", a.Slug)
	require.NotNil(t, a.PublishedAt)
}

func TestUpdateKeepsOriginalPublicationTime(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	a := &Article{Title: "Care Guide", Body: "Wash cold.", AuthorID: 7, IsPublished: true}
	require.NoError(t, service.Create(ctx, a))
	firstPublished := *a.PublishedAt

	// Unpublish, then publish again.
	draft := &Article{Title: "Care Guide", Body: "Wash cold, line dry.", IsPublished: false}
	require.NoError(t, service.Update(ctx, a.ID, draft))

	republished := &Article{Title: "Care Guide", Body: "Wash cold, line dry.", IsPublished: true}
	require.NoError(t, service.Update(ctx, a.ID, republished))

	require.NotNil(t, republished.PublishedAt)
	assert.Equal(t, firstPublished, *republished.PublishedAt)
}

func TestGetBySlugHidesDraftsFromReaders(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	a := &Article{Title: "Unreleased Drop", Body: "Soon.", AuthorID: 7}
	require.NoError(t, service.Create(ctx, a))

	_, err := service.GetBySlug(ctx, "unreleased-drop", false)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	visible, err := service.GetBySlug(ctx, "unreleased-drop", true)
	require.NoError(t, err)
	assert.Equal(t, a.ID, visible.ID)
}

func TestCreateValidation(t *testing.T) {
	service, _ := newTestService()

	err := service.Create(context.Background(), &Article{Title: "", Body: ""})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
