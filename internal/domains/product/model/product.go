package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Specifications is the open key/value attribute map of a product, stored as
// JSONB and serialized as JSON text in the CSV schema.
type Specifications map[string]string

func (s Specifications) Value() (driver.Value, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s)
}

func (s *Specifications) Scan(src interface{}) error {
	if src == nil {
		*s = Specifications{}
		return nil
	}
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, s)
	case string:
		return json.Unmarshal([]byte(data), s)
	default:
		return fmt.Errorf("cannot scan %T into Specifications", src)
	}
}

// Product is the canonical catalog entity. SKU is the business-unique key
// used for CSV reconciliation; ID is assigned by the store on creation.
type Product struct {
	ID   uuid.UUID `json:"id" db:"id"`
	SKU  string    `json:"sku" db:"sku"`
	Name string    `json:"name" db:"name"`
	Slug string    `json:"slug" db:"slug"`

	Description *string `json:"description" db:"description"`

	// Pricing. Any change to these two columns is audited: the products
	// UPDATE trigger appends a price_history row, so updates must always go
	// through the regular update path.
	Price     decimal.Decimal  `json:"price" db:"price"`
	SalePrice *decimal.Decimal `json:"sale_price" db:"sale_price"`

	StockQuantity int `json:"stock_quantity" db:"stock_quantity"`
	CategoryID    int `json:"category_id" db:"category_id"`

	Images         pq.StringArray `json:"images" db:"images"`
	Specifications Specifications `json:"specifications" db:"specifications"`

	IsFeatured bool `json:"is_featured" db:"is_featured"`
	IsActive   bool `json:"is_active" db:"is_active"`

	Reference       *string `json:"reference,omitempty" db:"reference"`
	MetaTitle       *string `json:"meta_title" db:"meta_title"`
	MetaDescription *string `json:"meta_description" db:"meta_description"`
	MetaKeywords    *string `json:"meta_keywords" db:"meta_keywords"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Joined data, populated only by queries that join categories.
	CategoryName string `json:"category_name,omitempty" db:"category_name"`
}

// PriceHistoryEntry is one append-only audit record written by the database
// trigger whenever price or sale_price changes. The import/export pipeline
// never writes these directly.
type PriceHistoryEntry struct {
	ID           uuid.UUID        `json:"id" db:"id"`
	ProductID    uuid.UUID        `json:"product_id" db:"product_id"`
	OldPrice     *decimal.Decimal `json:"old_price" db:"old_price"`
	NewPrice     *decimal.Decimal `json:"new_price" db:"new_price"`
	OldSalePrice *decimal.Decimal `json:"old_sale_price" db:"old_sale_price"`
	NewSalePrice *decimal.Decimal `json:"new_sale_price" db:"new_sale_price"`
	ChangedBy    *uuid.UUID       `json:"changed_by" db:"changed_by"`
	ChangedAt    time.Time        `json:"changed_at" db:"changed_at"`

	// Actor profile, joined when available.
	ChangedByName  *string `json:"changed_by_name,omitempty" db:"changed_by_name"`
	ChangedByEmail *string `json:"changed_by_email,omitempty" db:"changed_by_email"`
}

// Variant is a product variation (size, voltage, ...) with its own stock and
// price modifier.
type Variant struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	ProductID     uuid.UUID       `json:"product_id" db:"product_id"`
	Name          string          `json:"name" db:"name"`
	Value         string          `json:"value" db:"value"`
	PriceModifier decimal.Decimal `json:"price_modifier" db:"price_modifier"`
	StockQuantity int             `json:"stock_quantity" db:"stock_quantity"`
	SKUSuffix     *string         `json:"sku_suffix" db:"sku_suffix"`
	IsActive      bool            `json:"is_active" db:"is_active"`
	SortOrder     int             `json:"sort_order" db:"sort_order"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// RelationType classifies a related-product link.
type RelationType string

const (
	RelationRelated    RelationType = "related"
	RelationAccessory  RelationType = "accessory"
	RelationSubstitute RelationType = "substitute"
	RelationUpgrade    RelationType = "upgrade"
)

func (t RelationType) IsValid() bool {
	switch t {
	case RelationRelated, RelationAccessory, RelationSubstitute, RelationUpgrade:
		return true
	}
	return false
}

// RelatedProduct links a product to another one it should be merchandised
// with.
type RelatedProduct struct {
	ID               uuid.UUID    `json:"id" db:"id"`
	ProductID        uuid.UUID    `json:"product_id" db:"product_id"`
	RelatedProductID uuid.UUID    `json:"related_product_id" db:"related_product_id"`
	RelationType     RelationType `json:"relation_type" db:"relation_type"`
	SortOrder        int          `json:"sort_order" db:"sort_order"`
	CreatedAt        time.Time    `json:"created_at" db:"created_at"`
	CreatedBy        *uuid.UUID   `json:"created_by" db:"created_by"`

	// Joined summary of the related product.
	Related *Product `json:"related_product,omitempty"`
}
