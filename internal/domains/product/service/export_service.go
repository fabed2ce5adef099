package service

import (
	"context"
	"time"

	"storefront-admin/internal/domains/product/model"
	"storefront-admin/internal/domains/product/repository"
	"storefront-admin/internal/shared/csv"
)

type exportService struct {
	repo repository.Repository
}

func NewExportService(repo repository.Repository) ExportService {
	return &exportService{repo: repo}
}

// Export renders the matching products as a CSV download. Only the CSV
// format is supported; anything else is rejected up front.
func (s *exportService) Export(ctx context.Context, req model.ExportRequest) (*ExportFile, error) {
	if req.Format != "" && req.Format != "csv" {
		return nil, model.ErrUnsupportedFormat
	}

	products, err := s.repo.ListForExport(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, model.ErrNoProductsToExport
	}

	rows := make([]csv.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, model.ProductToRow(p))
	}

	return &ExportFile{
		Filename:    "produtos-" + time.Now().Format("2006-01-02") + ".csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        []byte(csv.Serialize(rows, model.CSVHeaders)),
	}, nil
}
