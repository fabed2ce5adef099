package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"storefront-admin/internal/domains/product/model"
	"storefront-admin/internal/domains/product/repository"
	"storefront-admin/internal/infrastructure/storage"
	"storefront-admin/internal/shared/utils"
	"storefront-admin/pkg/cache"
)

const (
	listCacheTTL    = 5 * time.Minute
	priceHistoryMax = 50
)

type productService struct {
	repo      repository.Repository
	cache     cache.Cache
	media     *storage.MediaStorage
	processor *storage.ImageProcessor
}

func NewProductService(repo repository.Repository, c cache.Cache, media *storage.MediaStorage, processor *storage.ImageProcessor) Service {
	return &productService{repo: repo, cache: c, media: media, processor: processor}
}

func (s *productService) List(ctx context.Context, req model.ListProductsRequest) (*model.ProductListResponse, error) {
	req.Normalize()

	key := req.ListCacheKey()
	var cached model.ProductListResponse
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	products, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := &model.ProductListResponse{
		Products: products,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	if err := s.cache.Set(ctx, key, resp, listCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache product list")
	}
	return resp, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *productService) Create(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
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
	if _, err := s.repo.GetBySKU(ctx, req.SKU); err == nil {
		return nil, model.ErrDuplicateSKU
	} else if err != model.ErrProductNotFound {
		return nil, err
	}

	p := req.ToProduct(slug)
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}

	s.invalidateLists(ctx)
	log.Info().Str("sku", p.SKU).Str("id", p.ID.String()).Msg("product created")
	return &p, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req model.UpdateProductRequest) (*model.Product, error) {
	patch := req.Patch()
	if len(patch) == 0 {
		return s.repo.GetByID(ctx, id)
	}

	if req.SKU != nil {
		if other, err := s.repo.GetBySKU(ctx, *req.SKU); err == nil && other.ID != id {
			return nil, model.ErrDuplicateSKU
		} else if err != nil && err != model.ErrProductNotFound {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	s.invalidateLists(ctx)
	return s.repo.GetByID(ctx, id)
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	refs, err := s.repo.CountOrderItemRefs(ctx, []uuid.UUID{id})
	if err != nil {
		return err
	}
	if refs > 0 {
		return model.ErrProductsInOrders
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.media.RemoveFolder(ctx, "products/"+id.String()); err != nil {
		log.Warn().Err(err).Str("id", id.String()).Msg("failed to remove product media")
	}
	s.invalidateLists(ctx)
	return nil
}

func (s *productService) PriceHistory(ctx context.Context, productID uuid.UUID) (*model.PriceHistoryResponse, error) {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	entries, err := s.repo.PriceHistory(ctx, productID, priceHistoryMax)
	if err != nil {
		return nil, err
	}
	return &model.PriceHistoryResponse{ProductID: productID, Entries: entries}, nil
}

// UploadImages validates, resizes and stores each file, then appends the
// large-variant URLs to the product.
func (s *productService) UploadImages(ctx context.Context, productID uuid.UUID, files []ImageUpload) ([]string, error) {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := s.processor.Validate(file.Data); err != nil {
			return nil, fmt.Errorf("%s: %w", file.Filename, err)
		}

		variants, err := s.processor.Variants(file.Data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file.Filename, err)
		}

		base := fmt.Sprintf("products/%s/%s", productID, uuid.NewString())
		var mainURL string
		for size, data := range variants {
			url, err := s.media.Upload(ctx, base+"-"+size+".jpg", data, "image/jpeg")
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file.Filename, err)
			}
			if size == "large" {
				mainURL = url
			}
		}
		urls = append(urls, mainURL)
	}

	if err := s.repo.AppendImages(ctx, productID, urls); err != nil {
		return nil, err
	}
	s.invalidateLists(ctx)
	return urls, nil
}

func (s *productService) ListVariants(ctx context.Context, productID uuid.UUID) ([]model.Variant, error) {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListVariants(ctx, productID)
}

func (s *productService) CreateVariant(ctx context.Context, productID uuid.UUID, req model.VariantRequest) (*model.Variant, error) {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	v := model.Variant{
		ProductID:     productID,
		Name:          req.Name,
		Value:         req.Value,
		SKUSuffix:     req.SKUSuffix,
		StockQuantity: req.StockQuantity,
		IsActive:      true,
	}
	if req.PriceModifier != nil {
		v.PriceModifier = decimal.NewFromFloat(*req.PriceModifier)
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}

	if err := s.repo.CreateVariant(ctx, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *productService) UpdateVariant(ctx context.Context, variantID uuid.UUID, req model.VariantRequest) error {
	patch := map[string]interface{}{
		"name":           req.Name,
		"value":          req.Value,
		"stock_quantity": req.StockQuantity,
	}
	if req.PriceModifier != nil {
		patch["price_modifier"] = decimal.NewFromFloat(*req.PriceModifier)
	}
	if req.SKUSuffix != nil {
		patch["sku_suffix"] = *req.SKUSuffix
	}
	if req.IsActive != nil {
		patch["is_active"] = *req.IsActive
	}
	return s.repo.UpdateVariant(ctx, variantID, patch)
}

func (s *productService) DeleteVariant(ctx context.Context, variantID uuid.UUID) error {
	return s.repo.DeleteVariant(ctx, variantID)
}

func (s *productService) ListRelated(ctx context.Context, productID uuid.UUID) ([]model.RelatedProduct, error) {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListRelated(ctx, productID)
}

func (s *productService) AddRelated(ctx context.Context, productID uuid.UUID, actor *uuid.UUID, req model.RelatedRequest) (*model.RelatedProduct, error) {
	relatedID, err := uuid.Parse(req.RelatedProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid related product id: %w", err)
	}
	if relatedID == productID {
		return nil, model.ErrSelfRelation
	}
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, relatedID); err != nil {
		return nil, err
	}

	rel := model.RelatedProduct{
		ProductID:        productID,
		RelatedProductID: relatedID,
		RelationType:     model.RelationType(req.RelationType),
		CreatedBy:        actor,
	}
	if err := s.repo.CreateRelation(ctx, &rel); err != nil {
		return nil, err
	}
	return &rel, nil
}

func (s *productService) RemoveRelated(ctx context.Context, productID, relatedID uuid.UUID) error {
	return s.repo.DeleteRelation(ctx, productID, relatedID)
}

func (s *productService) invalidateLists(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, model.ListCachePattern()); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate product list cache")
	}
}
