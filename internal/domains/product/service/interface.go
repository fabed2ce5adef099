package service

import (
	"context"

	"github.com/google/uuid"

	"storefront-admin/internal/domains/product/model"
)

// Service is the product domain's application surface.
type Service interface {
	List(ctx context.Context, req model.ListProductsRequest) (*model.ProductListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Create(ctx context.Context, req model.CreateProductRequest) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	PriceHistory(ctx context.Context, productID uuid.UUID) (*model.PriceHistoryResponse, error)
	UploadImages(ctx context.Context, productID uuid.UUID, files []ImageUpload) ([]string, error)

	// Variants
	ListVariants(ctx context.Context, productID uuid.UUID) ([]model.Variant, error)
	CreateVariant(ctx context.Context, productID uuid.UUID, req model.VariantRequest) (*model.Variant, error)
	UpdateVariant(ctx context.Context, variantID uuid.UUID, req model.VariantRequest) error
	DeleteVariant(ctx context.Context, variantID uuid.UUID) error

	// Related products
	ListRelated(ctx context.Context, productID uuid.UUID) ([]model.RelatedProduct, error)
	AddRelated(ctx context.Context, productID uuid.UUID, actor *uuid.UUID, req model.RelatedRequest) (*model.RelatedProduct, error)
	RemoveRelated(ctx context.Context, productID, relatedID uuid.UUID) error
}

// ImageUpload is one file received by the image endpoint.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// ImportService runs the CSV import pipeline: validate first, then execute
// with per-row reconciliation.
type ImportService interface {
	Validate(ctx context.Context, req model.ImportRequest) (*model.ImportPreview, []model.ValidationError, error)
	Execute(ctx context.Context, req model.ImportRequest) (*model.ImportResult, []model.ValidationError, error)
}

// ExportService renders the catalog as a downloadable CSV file.
type ExportService interface {
	Export(ctx context.Context, req model.ExportRequest) (*ExportFile, error)
}

// ExportFile is the rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// BulkService applies one action to a batch of products.
type BulkService interface {
	Apply(ctx context.Context, req model.BulkActionRequest) (*model.BulkActionResult, error)
}
