package model

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"storefront-admin/internal/shared/csv"
)

// The CSV schema is a fixed set of 16 columns. Files are written with the
// Portuguese display labels below; on read each column also accepts its
// English internal key as a header alias, so re-importing an export or a
// hand-built file both work.
const (
	ColSKU             = "SKU"
	ColName            = "Nome"
	ColSlug            = "Slug"
	ColDescription     = "Descrição"
	ColPrice           = "Preço"
	ColSalePrice       = "Preço Promocional"
	ColStock           = "Estoque"
	ColCategoryID      = "ID Categoria"
	ColCategoryName    = "Nome da Categoria"
	ColSpecifications  = "Especificações (JSON)"
	ColIsFeatured      = "Destaque"
	ColIsActive        = "Ativo"
	ColMetaTitle       = "Título SEO"
	ColMetaDescription = "Descrição SEO"
	ColMetaKeywords    = "Palavras-chave SEO"
	ColImages          = "Imagens (URLs separadas por vírgula)"
)

// CSVHeaders is the column order used on export.
var CSVHeaders = []string{
	ColSKU, ColName, ColSlug, ColDescription, ColPrice, ColSalePrice,
	ColStock, ColCategoryID, ColCategoryName, ColSpecifications,
	ColIsFeatured, ColIsActive, ColMetaTitle, ColMetaDescription,
	ColMetaKeywords, ColImages,
}

// headerAliases maps each display label to its English fallback key.
var headerAliases = map[string]string{
	ColSKU:             "sku",
	ColName:            "name",
	ColSlug:            "slug",
	ColDescription:     "description",
	ColPrice:           "price",
	ColSalePrice:       "sale_price",
	ColStock:           "stock_quantity",
	ColCategoryID:      "category_id",
	ColCategoryName:    "category_name",
	ColSpecifications:  "specifications",
	ColIsFeatured:      "is_featured",
	ColIsActive:        "is_active",
	ColMetaTitle:       "meta_title",
	ColMetaDescription: "meta_description",
	ColMetaKeywords:    "meta_keywords",
	ColImages:          "images",
}

// cell reads a column from a row, falling back to the English header alias.
func cell(row csv.Row, column string) string {
	if v, ok := row[column]; ok && v != "" {
		return v
	}
	return row[headerAliases[column]]
}

// ProductRecord is the flat shape a CSV row maps to. It carries everything
// needed for a create, and is stripped down to a partial patch for updates.
type ProductRecord struct {
	SKU             string           `json:"sku"`
	Name            string           `json:"name"`
	Slug            string           `json:"slug"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price"`
	SalePrice       *decimal.Decimal `json:"sale_price,omitempty"`
	StockQuantity   int              `json:"stock_quantity"`
	CategoryID      int              `json:"category_id"`
	Images          []string         `json:"images"`
	Specifications  Specifications   `json:"specifications"`
	IsFeatured      bool             `json:"is_featured"`
	IsActive        bool             `json:"is_active"`
	MetaTitle       string           `json:"meta_title"`
	MetaDescription string           `json:"meta_description"`
	MetaKeywords    string           `json:"meta_keywords"`
}

// ProductToRow flattens a product into the CSV row shape. The category name
// column is a read-only convenience for spreadsheet users and is ignored on
// import.
func ProductToRow(p Product) csv.Row {
	specs, _ := json.Marshal(p.Specifications)
	if p.Specifications == nil {
		specs = []byte("{}")
	}

	salePrice := ""
	if p.SalePrice != nil {
		salePrice = p.SalePrice.String()
	}

	return csv.Row{
		ColSKU:             p.SKU,
		ColName:            p.Name,
		ColSlug:            p.Slug,
		ColDescription:     deref(p.Description),
		ColPrice:           p.Price.String(),
		ColSalePrice:       salePrice,
		ColStock:           strconv.Itoa(p.StockQuantity),
		ColCategoryID:      strconv.Itoa(p.CategoryID),
		ColCategoryName:    p.CategoryName,
		ColSpecifications:  string(specs),
		ColIsFeatured:      strconv.FormatBool(p.IsFeatured),
		ColIsActive:        strconv.FormatBool(p.IsActive),
		ColMetaTitle:       deref(p.MetaTitle),
		ColMetaDescription: deref(p.MetaDescription),
		ColMetaKeywords:    deref(p.MetaKeywords),
		ColImages:          strings.Join(p.Images, ", "),
	}
}

// RecordFromRow converts a CSV row into a ProductRecord. Conversion is
// deliberately lenient and never fails: unparsable numbers become zero,
// malformed specification JSON becomes an empty map, and image entries that
// are not http(s) URLs are dropped. Strict gatekeeping is the validator's
// job, which inspects the raw strings, not this output.
func RecordFromRow(row csv.Row) ProductRecord {
	record := ProductRecord{
		SKU:             cell(row, ColSKU),
		Name:            cell(row, ColName),
		Slug:            cell(row, ColSlug),
		Description:     cell(row, ColDescription),
		Price:           parseDecimal(cell(row, ColPrice)),
		StockQuantity:   parseInt(cell(row, ColStock)),
		CategoryID:      parseCategoryID(cell(row, ColCategoryID)),
		Images:          parseImages(cell(row, ColImages)),
		Specifications:  parseSpecifications(cell(row, ColSpecifications)),
		IsFeatured:      parseBool(cell(row, ColIsFeatured), false),
		IsActive:        parseBool(cell(row, ColIsActive), true),
		MetaTitle:       cell(row, ColMetaTitle),
		MetaDescription: cell(row, ColMetaDescription),
		MetaKeywords:    cell(row, ColMetaKeywords),
	}

	if raw := cell(row, ColSalePrice); strings.TrimSpace(raw) != "" {
		sale := parseDecimal(raw)
		record.SalePrice = &sale
	}

	return record
}

// Patch returns the record as a column patch for partial updates, with
// empty-string and nil fields stripped so an overwrite import only touches
// the columns the file actually filled.
func (r ProductRecord) Patch() map[string]interface{} {
	patch := map[string]interface{}{
		// Flags and numerics always carry a value after mapping.
		"price":          r.Price,
		"stock_quantity": r.StockQuantity,
		"category_id":    r.CategoryID,
		"is_featured":    r.IsFeatured,
		"is_active":      r.IsActive,
	}

	setIfNotEmpty := func(column, value string) {
		if value != "" {
			patch[column] = value
		}
	}
	setIfNotEmpty("sku", r.SKU)
	setIfNotEmpty("name", r.Name)
	setIfNotEmpty("slug", r.Slug)
	setIfNotEmpty("description", r.Description)
	setIfNotEmpty("meta_title", r.MetaTitle)
	setIfNotEmpty("meta_description", r.MetaDescription)
	setIfNotEmpty("meta_keywords", r.MetaKeywords)

	if r.SalePrice != nil {
		patch["sale_price"] = *r.SalePrice
	}
	if len(r.Images) > 0 {
		patch["images"] = r.Images
	}
	if len(r.Specifications) > 0 {
		patch["specifications"] = r.Specifications
	}

	return patch
}

func parseDecimal(value string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseInt(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		// Tolerate decimal notation in integer columns.
		if f, ferr := strconv.ParseFloat(strings.TrimSpace(value), 64); ferr == nil {
			return int(f)
		}
		return 0
	}
	return n
}

// parseCategoryID defaults to 1 on a blank cell. Validation rejects blank
// category cells before this default can ever be persisted.
func parseCategoryID(value string) int {
	if strings.TrimSpace(value) == "" {
		return 1
	}
	return parseInt(value)
}

func parseBool(value string, fallback bool) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return fallback
	}
	return v == "true" || v == "1" || v == "sim"
}

func parseSpecifications(value string) Specifications {
	if strings.TrimSpace(value) == "" {
		return Specifications{}
	}
	var specs Specifications
	if err := json.Unmarshal([]byte(value), &specs); err != nil {
		return Specifications{}
	}
	return specs
}

func parseImages(value string) []string {
	parts := strings.Split(value, ",")
	urls := make([]string, 0, len(parts))
	for _, part := range parts {
		url := strings.TrimSpace(part)
		if url != "" && strings.HasPrefix(url, "http") {
			urls = append(urls, url)
		}
	}
	return urls
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
