package service

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-admin/internal/domains/product/model"
	"storefront-admin/internal/shared/csv"
)

func TestExport(t *testing.T) {
	repo := newFakeRepo()
	repo.products["EXP-1"] = &model.Product{
		SKU: "EXP-1", Name: "Vela de Ignição", Slug: "vela-de-ignicao",
		Price: decimal.RequireFromString("12.50"), CategoryID: 2, IsActive: true,
	}
	svc := NewExportService(repo)

	t.Run("renders csv with display headers", func(t *testing.T) {
		file, err := svc.Export(context.Background(), model.ExportRequest{})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(file.Filename, "produtos-"))
		assert.True(t, strings.HasSuffix(file.Filename, ".csv"))
		assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

		rows := csv.Parse(string(file.Data))
		require.Len(t, rows, 1)
		assert.Equal(t, "EXP-1", rows[0]["SKU"])
		assert.Equal(t, "Vela de Ignição", rows[0]["Nome"])
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := svc.Export(context.Background(), model.ExportRequest{Format: "xlsx"})
		assert.ErrorIs(t, err, model.ErrUnsupportedFormat)
	})

	t.Run("empty catalog", func(t *testing.T) {
		empty := NewExportService(newFakeRepo())
		_, err := empty.Export(context.Background(), model.ExportRequest{})
		assert.ErrorIs(t, err, model.ErrNoProductsToExport)
	})
}
