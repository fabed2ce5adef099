package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-admin/internal/shared/csv"
)

func row(overrides map[string]string) csv.Row {
	r := csv.Row{
		ColSKU:        "SKU-001",
		ColName:       "Filtro de Óleo",
		ColSlug:       "filtro-de-oleo",
		ColPrice:      "49.90",
		ColCategoryID: "3",
	}
	for k, v := range overrides {
		r[k] = v
	}
	return r
}

func TestRecordFromRow(t *testing.T) {
	t.Run("full row", func(t *testing.T) {
		r := RecordFromRow(row(map[string]string{
			ColDescription:    "Filtro original",
			ColSalePrice:      "39.90",
			ColStock:          "12",
			ColSpecifications: `{"marca":"Fram"}`,
			ColIsFeatured:     "Sim",
			ColIsActive:       "true",
			ColImages:         "https://cdn.example.com/a.jpg, https://cdn.example.com/b.jpg",
		}))

		assert.Equal(t, "SKU-001", r.SKU)
		assert.True(t, r.Price.Equal(decimal.RequireFromString("49.90")))
		require.NotNil(t, r.SalePrice)
		assert.True(t, r.SalePrice.Equal(decimal.RequireFromString("39.90")))
		assert.Equal(t, 12, r.StockQuantity)
		assert.Equal(t, 3, r.CategoryID)
		assert.Equal(t, Specifications{"marca": "Fram"}, r.Specifications)
		assert.True(t, r.IsFeatured)
		assert.True(t, r.IsActive)
		assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, r.Images)
	})

	t.Run("english header aliases", func(t *testing.T) {
		r := RecordFromRow(csv.Row{
			"sku": "SKU-002", "name": "Pastilha", "slug": "pastilha",
			"price": "10", "category_id": "2", "is_active": "false",
		})
		assert.Equal(t, "SKU-002", r.SKU)
		assert.Equal(t, "Pastilha", r.Name)
		assert.False(t, r.IsActive)
	})

	t.Run("boolean spellings", func(t *testing.T) {
		for _, v := range []string{"true", "TRUE", "1", "sim", "Sim"} {
			assert.True(t, RecordFromRow(row(map[string]string{ColIsFeatured: v})).IsFeatured, v)
		}
		for _, v := range []string{"false", "não", "0", "nope"} {
			assert.False(t, RecordFromRow(row(map[string]string{ColIsFeatured: v})).IsFeatured, v)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		r := RecordFromRow(csv.Row{ColSKU: "X"})
		assert.True(t, r.IsActive, "active defaults to true")
		assert.False(t, r.IsFeatured)
		assert.True(t, r.Price.IsZero())
		assert.Nil(t, r.SalePrice)
		assert.Equal(t, 1, r.CategoryID, "blank category falls back to the default category")
		assert.Equal(t, Specifications{}, r.Specifications)
		assert.Empty(t, r.Images)
	})

	t.Run("garbage numerics become zero", func(t *testing.T) {
		r := RecordFromRow(row(map[string]string{ColPrice: "abc", ColStock: "muitos"}))
		assert.True(t, r.Price.IsZero())
		assert.Equal(t, 0, r.StockQuantity)
	})

	t.Run("malformed specifications fall back to empty map", func(t *testing.T) {
		r := RecordFromRow(row(map[string]string{ColSpecifications: "{not json"}))
		assert.Equal(t, Specifications{}, r.Specifications)
	})

	t.Run("non-http images dropped silently", func(t *testing.T) {
		r := RecordFromRow(row(map[string]string{
			ColImages: "https://cdn.example.com/a.jpg, ftp://x/b.jpg, /relative.png, ",
		}))
		assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, r.Images)
	})
}

func TestProductToRowRoundTrip(t *testing.T) {
	desc := "Descrição, com vírgula"
	sale := decimal.RequireFromString("79.90")
	p := Product{
		SKU: "SKU-100", Name: "Amortecedor", Slug: "amortecedor",
		Description: &desc, Price: decimal.RequireFromString("99.90"),
		SalePrice: &sale, StockQuantity: 4, CategoryID: 7,
		Images:         []string{"https://cdn.example.com/a.jpg"},
		Specifications: Specifications{"lado": "dianteiro"},
		IsFeatured:     true, IsActive: true,
	}

	text := csv.Serialize([]csv.Row{ProductToRow(p)}, CSVHeaders)
	rows := csv.Parse(text)
	require.Len(t, rows, 1)

	r := RecordFromRow(rows[0])
	assert.Equal(t, p.SKU, r.SKU)
	assert.Equal(t, desc, r.Description)
	assert.True(t, r.Price.Equal(p.Price))
	require.NotNil(t, r.SalePrice)
	assert.True(t, r.SalePrice.Equal(sale))
	assert.Equal(t, p.Specifications, r.Specifications)
	assert.Equal(t, []string(p.Images), r.Images)
	assert.True(t, r.IsFeatured)
}

func TestValidateRows(t *testing.T) {
	existing := map[string]bool{"TAKEN": true}

	t.Run("valid batch", func(t *testing.T) {
		assert.Empty(t, ValidateRows([]csv.Row{row(nil)}, existing))
	})

	t.Run("collects all errors with header-relative row numbers", func(t *testing.T) {
		errs := ValidateRows([]csv.Row{
			row(map[string]string{ColSKU: "", ColName: "", ColPrice: "0"}),
			row(map[string]string{ColSKU: "TAKEN"}),
		}, existing)

		require.Len(t, errs, 4)
		assert.Equal(t, 2, errs[0].Row, "first data row is line 2")
		assert.Equal(t, "SKU é obrigatório", errs[0].Message)
		assert.Equal(t, "Nome é obrigatório", errs[1].Message)
		assert.Equal(t, "Preço deve ser maior que zero", errs[2].Message)
		assert.Equal(t, 3, errs[3].Row)
		assert.Equal(t, "SKU já existe", errs[3].Message)
	})

	t.Run("intra-file duplicate flags later occurrence only", func(t *testing.T) {
		errs := ValidateRows([]csv.Row{
			row(map[string]string{ColSKU: "DUP"}),
			row(map[string]string{ColSKU: "DUP"}),
		}, nil)

		require.Len(t, errs, 1)
		assert.Equal(t, 3, errs[0].Row)
		assert.Equal(t, "SKU duplicado no arquivo", errs[0].Message)
	})

	t.Run("overwrite passes empty existing set", func(t *testing.T) {
		errs := ValidateRows([]csv.Row{row(map[string]string{ColSKU: "TAKEN"})}, map[string]bool{})
		assert.Empty(t, errs)
	})

	t.Run("unparsable or non-positive price rejected", func(t *testing.T) {
		for _, v := range []string{"", "abc", "0", "-1"} {
			errs := ValidateRows([]csv.Row{row(map[string]string{ColPrice: v})}, nil)
			require.Len(t, errs, 1, "price %q", v)
			assert.Equal(t, ColPrice, errs[0].Field)
		}
	})

	t.Run("invalid category rejected", func(t *testing.T) {
		for _, v := range []string{"", "0", "-3", "xyz"} {
			errs := ValidateRows([]csv.Row{row(map[string]string{ColCategoryID: v})}, nil)
			require.Len(t, errs, 1, "category %q", v)
			assert.Equal(t, "ID da categoria deve ser válido", errs[0].Message)
		}
	})

	t.Run("errors carry the display label of the offending column", func(t *testing.T) {
		errs := ValidateRows([]csv.Row{
			row(map[string]string{ColSKU: "", ColName: "", ColSlug: "", ColPrice: "0", ColCategoryID: "0"}),
		}, nil)

		require.Len(t, errs, 5)
		fields := make([]string, len(errs))
		for i, e := range errs {
			fields[i] = e.Field
		}
		assert.Equal(t, []string{"SKU", "Nome", "Slug", "Preço", "ID Categoria"}, fields)
	})
}

func TestRecordPatch(t *testing.T) {
	r := RecordFromRow(row(map[string]string{ColDescription: ""}))
	patch := r.Patch()

	assert.Equal(t, "SKU-001", patch["sku"])
	assert.Contains(t, patch, "price")
	assert.Contains(t, patch, "is_active")
	assert.NotContains(t, patch, "description", "empty strings are stripped")
	assert.NotContains(t, patch, "sale_price")
	assert.NotContains(t, patch, "images")
	assert.NotContains(t, patch, "specifications")
}
