package tag

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloura/veloura/internal/platform/apperr"
)

type fakeRepo struct {
	tags   map[int64]*Tag
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tags: make(map[int64]*Tag), nextID: 1}
}

func (r *fakeRepo) ListTags(_ context.Context) ([]*Tag, error) {
	var all []*Tag
	for _, t := range r.tags {
		all = append(all, t)
	}
	return all, nil
}

func (r *fakeRepo) GetTagBySlug(_ context.Context, slug string) (*Tag, error) {
	for _, t := range r.tags {
		if t.Slug == slug {
			clone := *t
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("tag")
}

func (r *fakeRepo) CreateTag(_ context.Context, t *Tag) error {
	t.ID = r.nextID
	r.nextID++
	clone := *t
	r.tags[t.ID] = &clone
	return nil
}

func (r *fakeRepo) RenameTag(_ context.Context, t *Tag) error {
	if _, ok := r.tags[t.ID]; !ok {
		return apperr.NotFound("tag")
	}
	clone := *t
	r.tags[t.ID] = &clone
	return nil
}

func (r *fakeRepo) DeleteTag(_ context.Context, id int64) error {
	if _, ok := r.tags[id]; !ok {
		return apperr.NotFound("tag")
	}
	delete(r.tags, id)
	return nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, slog.New(slog.DiscardHandler)), repo
}

func TestCreateTagDerivesSlug(t *testing.T) {
	service, _ := newTestService()

	tag := &Tag{Name: "Organic Cotton"}
	require.NoError(t, service.CreateTag(context.Background(), tag))

	assert.Equal(t, "organic-cotton", tag.Slug)
	assert.NotZero(t, tag.ID)

	found, err := service.GetTagBySlug(context.Background(), "organic-cotton")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, found.ID)
}

func TestCreateTagValidation(t *testing.T) {
	service, _ := newTestService()

	require.Error(t, service.CreateTag(context.Background(), &Tag{Name: ""}))

	long := make([]byte, 61)
	for i := range long {
		long[i] = 'a'
	}
	require.Error(t, service.CreateTag(context.Background(), &Tag{Name: string(long)}))
}

func TestRenameTagReslugs(t *testing.T) {
	service, _ := newTestService()

	tag := &Tag{Name: "Sumer"}
	require.NoError(t, service.CreateTag(context.Background(), tag))

	renamed, err := service.RenameTag(context.Background(), tag.ID, "Summer")
	require.NoError(t, err)

	assert.Equal(t, "Summer", renamed.Name)
	assert.Equal(t, "summer", renamed.Slug)

	_, err = service.GetTagBySlug(context.Background(), "sumer")
	assert.True(t, apperr.IsNotFound(err))
}

func TestRenameTagUnknownID(t *testing.T) {
	service, _ := newTestService()

	_, err := service.RenameTag(context.Background(), 404, "Anything")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteTagUnknownID(t *testing.T) {
	service, _ := newTestService()

	err := service.DeleteTag(context.Background(), 404)
	assert.True(t, apperr.IsNotFound(err))
}
