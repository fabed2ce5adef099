package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-admin/internal/domains/category/model"
)

type fakeRepo struct {
	categories map[int]*model.Category
	slugs      map[string]bool
	names      map[string]bool
	nextID     int
	deleted    []int
	refs       map[int]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		categories: map[int]*model.Category{},
		slugs:      map[string]bool{},
		names:      map[string]bool{},
		nextID:     1,
		refs:       map[int]int{},
	}
}

func (r *fakeRepo) List(context.Context, model.ListCategoriesRequest) ([]model.Category, error) {
	var out []model.Category
	for _, cat := range r.categories {
		out = append(out, *cat)
	}
	return out, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int) (*model.Category, error) {
	if cat, ok := r.categories[id]; ok {
		return cat, nil
	}
	return nil, model.ErrCategoryNotFound
}

func (r *fakeRepo) ExistsBySlug(_ context.Context, slug string) (bool, error) {
	return r.slugs[slug], nil
}

func (r *fakeRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	return r.names[name], nil
}

func (r *fakeRepo) Create(_ context.Context, cat *model.Category) error {
	cat.ID = r.nextID
	r.nextID++
	r.categories[cat.ID] = cat
	r.slugs[cat.Slug] = true
	r.names[cat.Name] = true
	return nil
}

func (r *fakeRepo) Update(_ context.Context, id int, patch map[string]interface{}) error {
	cat, ok := r.categories[id]
	if !ok {
		return model.ErrCategoryNotFound
	}
	if name, ok := patch["name"].(string); ok {
		cat.Name = name
	}
	if slug, ok := patch["slug"].(string); ok {
		cat.Slug = slug
	}
	return nil
}

func (r *fakeRepo) DeleteIfEmpty(_ context.Context, id int) error {
	if _, ok := r.categories[id]; !ok {
		return model.ErrCategoryNotFound
	}
	if r.refs[id] > 0 {
		return model.ErrCategoryHasProducts
	}
	delete(r.categories, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func TestCategoryCreate(t *testing.T) {
	t.Run("generates slug from name", func(t *testing.T) {
		svc := NewCategoryService(newFakeRepo())
		cat, err := svc.Create(context.Background(), model.CreateCategoryRequest{Name: "Freios e Suspensão"})
		require.NoError(t, err)
		assert.Equal(t, "freios-e-suspensao", cat.Slug)
		assert.True(t, cat.IsActive)
	})

	t.Run("rejects duplicate slug", func(t *testing.T) {
		repo := newFakeRepo()
		repo.slugs["motor"] = true
		svc := NewCategoryService(repo)

		_, err := svc.Create(context.Background(), model.CreateCategoryRequest{Name: "Motor"})
		assert.ErrorIs(t, err, model.ErrDuplicateSlug)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		repo := newFakeRepo()
		repo.names["Motor"] = true
		svc := NewCategoryService(repo)

		_, err := svc.Create(context.Background(), model.CreateCategoryRequest{Name: "Motor", Slug: "motor-novo"})
		assert.ErrorIs(t, err, model.ErrDuplicateName)
	})
}

func TestCategoryUpdate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewCategoryService(repo)
	cat, err := svc.Create(context.Background(), model.CreateCategoryRequest{Name: "Elétrica"})
	require.NoError(t, err)

	t.Run("rename regenerates slug", func(t *testing.T) {
		name := "Elétrica e Iluminação"
		updated, err := svc.Update(context.Background(), cat.ID, model.UpdateCategoryRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "eletrica-e-iluminacao", updated.Slug)
	})

	t.Run("explicit slug wins", func(t *testing.T) {
		name, slug := "Iluminação", "luzes"
		updated, err := svc.Update(context.Background(), cat.ID, model.UpdateCategoryRequest{Name: &name, Slug: &slug})
		require.NoError(t, err)
		assert.Equal(t, "luzes", updated.Slug)
	})
}

func TestCategoryDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := NewCategoryService(repo)
	cat, err := svc.Create(context.Background(), model.CreateCategoryRequest{Name: "Acessórios"})
	require.NoError(t, err)

	t.Run("guarded when products reference it", func(t *testing.T) {
		repo.refs[cat.ID] = 3
		assert.ErrorIs(t, svc.Delete(context.Background(), cat.ID), model.ErrCategoryHasProducts)
		assert.Empty(t, repo.deleted)
	})

	t.Run("deletes when empty", func(t *testing.T) {
		repo.refs[cat.ID] = 0
		require.NoError(t, svc.Delete(context.Background(), cat.ID))
		assert.Equal(t, []int{cat.ID}, repo.deleted)
	})
}
