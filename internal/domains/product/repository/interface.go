package repository

import (
	"context"

	"github.com/google/uuid"

	"storefront-admin/internal/domains/product/model"
)

// Repository is the persistence surface for the product catalog.
type Repository interface {
	List(ctx context.Context, req model.ListProductsRequest) ([]model.Product, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetBySKU(ctx context.Context, sku string) (*model.Product, error)
	ListSKUs(ctx context.Context) (map[string]bool, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	AppendImages(ctx context.Context, id uuid.UUID, urls []string) error

	// Export
	ListForExport(ctx context.Context, req model.ExportRequest) ([]model.Product, error)

	// Bulk operations
	SetActiveByIDs(ctx context.Context, ids []uuid.UUID, active bool) (int, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int, error)
	CountOrderItemRefs(ctx context.Context, ids []uuid.UUID) (int, error)
	CountCartItemRefs(ctx context.Context, ids []uuid.UUID) (int, error)

	// Audit
	PriceHistory(ctx context.Context, productID uuid.UUID, limit int) ([]model.PriceHistoryEntry, error)

	// Variants
	ListVariants(ctx context.Context, productID uuid.UUID) ([]model.Variant, error)
	CreateVariant(ctx context.Context, v *model.Variant) error
	UpdateVariant(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
	DeleteVariant(ctx context.Context, id uuid.UUID) error

	// Related products
	ListRelated(ctx context.Context, productID uuid.UUID) ([]model.RelatedProduct, error)
	CreateRelation(ctx context.Context, rel *model.RelatedProduct) error
	DeleteRelation(ctx context.Context, productID, relatedID uuid.UUID) error
}
