package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"storefront-admin/internal/domains/product/model"
	"storefront-admin/internal/domains/product/repository"
	"storefront-admin/internal/shared/csv"
	"storefront-admin/pkg/cache"
)

type importService struct {
	repo  repository.Repository
	cache cache.Cache
}

func NewImportService(repo repository.Repository, c cache.Cache) ImportService {
	return &importService{repo: repo, cache: c}
}

// Validate parses and checks the file without touching the store. On a clean
// file it returns the mapped records as a preview; otherwise the full error
// list, never just the first problem.
func (s *importService) Validate(ctx context.Context, req model.ImportRequest) (*model.ImportPreview, []model.ValidationError, error) {
	rows := csv.Parse(req.CSVData)
	if len(rows) == 0 {
		return nil, nil, model.ErrEmptyCSV
	}

	existing, err := s.existingSKUs(ctx, req.Overwrite)
	if err != nil {
		return nil, nil, err
	}

	if errs := model.ValidateRows(rows, existing); len(errs) > 0 {
		return nil, errs, nil
	}

	records := make([]model.ProductRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.RecordFromRow(row))
	}
	return &model.ImportPreview{Products: records, Count: len(records)}, nil, nil
}

// Execute re-validates and then reconciles the batch row by row. Each row is
// created or, when it exists and overwrite is set, updated through the
// regular update path so price changes stay audited. Row failures are
// collected, never aborting the rest of the batch.
func (s *importService) Execute(ctx context.Context, req model.ImportRequest) (*model.ImportResult, []model.ValidationError, error) {
	rows := csv.Parse(req.CSVData)
	if len(rows) == 0 {
		return nil, nil, model.ErrEmptyCSV
	}

	existing, err := s.existingSKUs(ctx, req.Overwrite)
	if err != nil {
		return nil, nil, err
	}
	if errs := model.ValidateRows(rows, existing); len(errs) > 0 {
		return nil, errs, nil
	}

	result := &model.ImportResult{Errors: []model.ImportRowError{}}
	for _, row := range rows {
		record := model.RecordFromRow(row)
		// Validation already rejects blank SKUs; skip defensively anyway.
		if record.SKU == "" {
			continue
		}
		s.reconcileRow(ctx, record, req.Overwrite, result)
	}

	if err := s.cache.DeletePattern(ctx, model.ListCachePattern()); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate product list cache")
	}

	log.Info().
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("failed", len(result.Errors)).
		Bool("overwrite", req.Overwrite).
		Msg("csv import finished")
	return result, nil, nil
}

// reconcileRow isolates one row's mutation, turning panics into row errors
// so a single bad record cannot take down the batch.
func (s *importService) reconcileRow(ctx context.Context, record model.ProductRecord, overwrite bool, result *model.ImportResult) {
	defer func() {
		if rec := recover(); rec != nil {
			sku := record.SKU
			if sku == "" {
				sku = "unknown"
			}
			result.Errors = append(result.Errors, model.ImportRowError{
				SKU:   sku,
				Error: fmt.Sprintf("erro inesperado: %v", rec),
			})
		}
	}()

	existing, err := s.repo.GetBySKU(ctx, record.SKU)
	switch {
	case err == nil && !overwrite:
		result.Errors = append(result.Errors, model.ImportRowError{
			SKU:   record.SKU,
			Error: "SKU já existe",
		})

	case err == nil:
		if uerr := s.repo.Update(ctx, existing.ID, record.Patch()); uerr != nil {
			result.Errors = append(result.Errors, model.ImportRowError{SKU: record.SKU, Error: uerr.Error()})
			return
		}
		result.Updated++

	case err == model.ErrProductNotFound:
		p := recordToProduct(record)
		if cerr := s.repo.Create(ctx, &p); cerr != nil {
			result.Errors = append(result.Errors, model.ImportRowError{SKU: record.SKU, Error: cerr.Error()})
			return
		}
		result.Created++

	default:
		result.Errors = append(result.Errors, model.ImportRowError{SKU: record.SKU, Error: err.Error()})
	}
}

func (s *importService) existingSKUs(ctx context.Context, overwrite bool) (map[string]bool, error) {
	// Overwrite turns SKU collisions into updates, so the duplicate check
	// runs against an empty set.
	if overwrite {
		return map[string]bool{}, nil
	}
	return s.repo.ListSKUs(ctx)
}

func recordToProduct(r model.ProductRecord) model.Product {
	return model.Product{
		SKU:             r.SKU,
		Name:            r.Name,
		Slug:            r.Slug,
		Description:     optional(r.Description),
		Price:           r.Price,
		SalePrice:       r.SalePrice,
		StockQuantity:   r.StockQuantity,
		CategoryID:      r.CategoryID,
		Images:          r.Images,
		Specifications:  r.Specifications,
		IsFeatured:      r.IsFeatured,
		IsActive:        r.IsActive,
		MetaTitle:       optional(r.MetaTitle),
		MetaDescription: optional(r.MetaDescription),
		MetaKeywords:    optional(r.MetaKeywords),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
