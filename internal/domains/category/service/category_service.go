package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"storefront-admin/internal/domains/category/model"
	"storefront-admin/internal/domains/category/repository"
	"storefront-admin/internal/shared/utils"
)

// Service is the category domain's application surface.
type Service interface {
	List(ctx context.Context, req model.ListCategoriesRequest) ([]model.Category, error)
	Get(ctx context.Context, id int) (*model.Category, error)
	Create(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error)
	Update(ctx context.Context, id int, req model.UpdateCategoryRequest) (*model.Category, error)
	Delete(ctx context.Context, id int) error
}

type categoryService struct {
	repo repository.Repository
}

func NewCategoryService(repo repository.Repository) Service {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context, req model.ListCategoriesRequest) ([]model.Category, error) {
	req.Normalize()
	return s.repo.List(ctx, req)
}

func (s *categoryService) Get(ctx context.Context, id int) (*model.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error) {
	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Name)
	}

	if exists, err := s.repo.ExistsBySlug(ctx, slug); err != nil {
		return nil, err
	} else if exists {
		return nil, model.ErrDuplicateSlug
	}
	if exists, err := s.repo.ExistsByName(ctx, req.Name); err != nil {
		return nil, err
	} else if exists {
		return nil, model.ErrDuplicateName
	}

	cat := model.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    true,
		SortOrder:   req.SortOrder,
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, &cat); err != nil {
		return nil, err
	}

	log.Info().Str("slug", cat.Slug).Int("id", cat.ID).Msg("category created")
	return &cat, nil
}

func (s *categoryService) Update(ctx context.Context, id int, req model.UpdateCategoryRequest) (*model.Category, error) {
	patch := req.Patch()

	// Renaming without an explicit slug regenerates it from the new name.
	if req.Name != nil && req.Slug == nil {
		patch["slug"] = utils.GenerateSlug(*req.Name)
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) Delete(ctx context.Context, id int) error {
	return s.repo.DeleteIfEmpty(ctx, id)
}
