package model

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the payload for single-product creation.
type CreateProductRequest struct {
	SKU             string            `json:"sku"`
	Name            string            `json:"name"`
	Slug            string            `json:"slug"`
	Description     *string           `json:"description"`
	Price           float64           `json:"price"`
	SalePrice       *float64          `json:"sale_price"`
	StockQuantity   int               `json:"stock_quantity"`
	CategoryID      int               `json:"category_id"`
	Images          []string          `json:"images"`
	Specifications  map[string]string `json:"specifications"`
	IsFeatured      bool              `json:"is_featured"`
	IsActive        *bool             `json:"is_active"`
	Reference       *string           `json:"reference"`
	MetaTitle       *string           `json:"meta_title"`
	MetaDescription *string           `json:"meta_description"`
	MetaKeywords    *string           `json:"meta_keywords"`
}

func (req CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.SKU, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Price, validation.Min(0.0)),
		validation.Field(&req.SalePrice, validation.Min(0.0)),
		validation.Field(&req.CategoryID, validation.Required, validation.Min(1)),
		validation.Field(&req.StockQuantity, validation.Min(0)),
	)
}

// ToProduct builds the entity, generating a slug when none was sent.
func (req CreateProductRequest) ToProduct(slug string) Product {
	p := Product{
		SKU:             req.SKU,
		Name:            req.Name,
		Slug:            slug,
		Description:     req.Description,
		Price:           decimal.NewFromFloat(req.Price),
		StockQuantity:   req.StockQuantity,
		CategoryID:      req.CategoryID,
		Images:          req.Images,
		Specifications:  req.Specifications,
		IsFeatured:      req.IsFeatured,
		IsActive:        true,
		Reference:       req.Reference,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    req.MetaKeywords,
	}
	if req.SalePrice != nil {
		sale := decimal.NewFromFloat(*req.SalePrice)
		p.SalePrice = &sale
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if p.Specifications == nil {
		p.Specifications = Specifications{}
	}
	return p
}

// UpdateProductRequest carries only the fields to change. Pointers tell
// an omitted field apart from an explicit zero value.
type UpdateProductRequest struct {
	SKU             *string            `json:"sku"`
	Name            *string            `json:"name"`
	Slug            *string            `json:"slug"`
	Description     *string            `json:"description"`
	Price           *float64           `json:"price"`
	SalePrice       *float64           `json:"sale_price"`
	StockQuantity   *int               `json:"stock_quantity"`
	CategoryID      *int               `json:"category_id"`
	Images          []string           `json:"images"`
	Specifications  *map[string]string `json:"specifications"`
	IsFeatured      *bool              `json:"is_featured"`
	IsActive        *bool              `json:"is_active"`
	Reference       *string            `json:"reference"`
	MetaTitle       *string            `json:"meta_title"`
	MetaDescription *string            `json:"meta_description"`
	MetaKeywords    *string            `json:"meta_keywords"`
}

func (req UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.SKU, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&req.Price, validation.Min(0.0)),
		validation.Field(&req.SalePrice, validation.Min(0.0)),
		validation.Field(&req.CategoryID, validation.Min(1)),
		validation.Field(&req.StockQuantity, validation.Min(0)),
	)
}

// Patch converts the request into the column patch used by the repository.
func (req UpdateProductRequest) Patch() map[string]interface{} {
	patch := map[string]interface{}{}
	if req.SKU != nil {
		patch["sku"] = *req.SKU
	}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Slug != nil {
		patch["slug"] = *req.Slug
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.Price != nil {
		patch["price"] = decimal.NewFromFloat(*req.Price)
	}
	if req.SalePrice != nil {
		patch["sale_price"] = decimal.NewFromFloat(*req.SalePrice)
	}
	if req.StockQuantity != nil {
		patch["stock_quantity"] = *req.StockQuantity
	}
	if req.CategoryID != nil {
		patch["category_id"] = *req.CategoryID
	}
	if req.Images != nil {
		patch["images"] = req.Images
	}
	if req.Specifications != nil {
		patch["specifications"] = Specifications(*req.Specifications)
	}
	if req.IsFeatured != nil {
		patch["is_featured"] = *req.IsFeatured
	}
	if req.IsActive != nil {
		patch["is_active"] = *req.IsActive
	}
	if req.Reference != nil {
		patch["reference"] = *req.Reference
	}
	if req.MetaTitle != nil {
		patch["meta_title"] = *req.MetaTitle
	}
	if req.MetaDescription != nil {
		patch["meta_description"] = *req.MetaDescription
	}
	if req.MetaKeywords != nil {
		patch["meta_keywords"] = *req.MetaKeywords
	}
	return patch
}

// ListProductsRequest - query parameters for the admin product list.
type ListProductsRequest struct {
	Search     string `form:"q"`
	CategoryID int    `form:"category_id"`
	IsActive   *bool  `form:"is_active"`
	Sort       string `form:"sort"` // newest, name_asc, name_desc, price_asc, price_desc
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// Normalize applies paging defaults and caps.
func (req *ListProductsRequest) Normalize() {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}
	validSorts := map[string]bool{
		"newest": true, "name_asc": true, "name_desc": true,
		"price_asc": true, "price_desc": true,
	}
	if !validSorts[req.Sort] {
		req.Sort = "newest"
	}
}

// ExportRequest - query parameters for the CSV export.
type ExportRequest struct {
	Format     string `form:"format"`
	CategoryID int    `form:"category_id"`
	IsActive   *bool  `form:"is_active"`
}

// ImportRequest is the body for both import validation and execution.
type ImportRequest struct {
	CSVData   string `json:"csvData"`
	Overwrite bool   `json:"overwrite"`
}

func (req ImportRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.CSVData, validation.Required),
	)
}

// Bulk action names.
const (
	BulkActionActivate   = "activate"
	BulkActionDeactivate = "deactivate"
	BulkActionDelete     = "delete"
)

// BulkActionRequest applies one action to a set of product IDs.
type BulkActionRequest struct {
	Action string   `json:"action"`
	IDs    []string `json:"ids"`
}

func (req BulkActionRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Action, validation.Required, validation.In(
			BulkActionActivate,
			BulkActionDeactivate,
			BulkActionDelete,
		)),
		validation.Field(&req.IDs, validation.Required, validation.Length(1, 500),
			validation.Each(validation.Required, is.UUID)),
	)
}

// UUIDs parses the validated ID strings.
func (req BulkActionRequest) UUIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// BulkActionResult reports how many rows an action touched.
type BulkActionResult struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
}

// VariantRequest creates or updates a product variant.
type VariantRequest struct {
	Name          string   `json:"name"`
	Value         string   `json:"value"`
	SKUSuffix     *string  `json:"sku_suffix"`
	PriceModifier *float64 `json:"price_modifier"`
	StockQuantity int      `json:"stock_quantity"`
	IsActive      *bool    `json:"is_active"`
}

func (req VariantRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Value, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.StockQuantity, validation.Min(0)),
	)
}

// RelatedRequest links another product to the current one.
type RelatedRequest struct {
	RelatedProductID string `json:"related_product_id"`
	RelationType     string `json:"relation_type"`
}

func (req RelatedRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.RelatedProductID, validation.Required, is.UUID),
		validation.Field(&req.RelationType, validation.Required, validation.In(
			string(RelationRelated),
			string(RelationAccessory),
			string(RelationSubstitute),
			string(RelationUpgrade),
		)),
	)
}

// ImportPreview is returned by import validation when the file is clean.
type ImportPreview struct {
	Products []ProductRecord `json:"products"`
	Count    int             `json:"count"`
}

// ProductListResponse wraps a page of products.
type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

// PriceHistoryResponse wraps the audit entries for one product.
type PriceHistoryResponse struct {
	ProductID uuid.UUID           `json:"product_id"`
	Entries   []PriceHistoryEntry `json:"entries"`
}

// productListCacheVersion busts stale keys when the shape changes.
const productListCachePrefix = "products:list:"

// ListCacheKey derives the cache key for a normalized list request.
func (req ListProductsRequest) ListCacheKey() string {
	active := "all"
	if req.IsActive != nil {
		if *req.IsActive {
			active = "1"
		} else {
			active = "0"
		}
	}
	return productListCachePrefix +
		req.Search + ":" +
		strconv.Itoa(req.CategoryID) + ":" + active + ":" +
		req.Sort + ":" + strconv.Itoa(req.Page) + ":" + strconv.Itoa(req.PageSize)
}

// ListCachePattern matches every cached product list page.
func ListCachePattern() string {
	return productListCachePrefix + "*"
}
