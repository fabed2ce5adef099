package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"storefront-admin/internal/shared/csv"
)

// ValidationError points at a single cell of the uploaded file. Row is
// 1-based and counts the header, so the first data row is row 2.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("linha %d, campo %s: %s", e.Row, e.Field, e.Message)
}

// ImportRowError records why one row failed during execution.
type ImportRowError struct {
	SKU   string `json:"sku"`
	Error string `json:"error"`
}

// ImportResult summarizes an executed import.
type ImportResult struct {
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Errors  []ImportRowError `json:"errors"`
}

// ValidateRows checks every row of the parsed file and returns all problems
// at once. existingSKUs holds the SKUs already in the catalog; pass an empty
// set when overwriting, since collisions then become updates instead of
// errors. Duplicates inside the file itself are always rejected, first
// occurrence wins.
func ValidateRows(rows []csv.Row, existingSKUs map[string]bool) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(rows))

	for i, row := range rows {
		line := i + 2

		sku := strings.TrimSpace(cell(row, ColSKU))
		switch {
		case sku == "":
			errs = append(errs, ValidationError{line, ColSKU, sku, "SKU é obrigatório"})
		case existingSKUs[sku]:
			errs = append(errs, ValidationError{line, ColSKU, sku, "SKU já existe"})
		case seen[sku]:
			errs = append(errs, ValidationError{line, ColSKU, sku, "SKU duplicado no arquivo"})
		default:
			seen[sku] = true
		}

		if strings.TrimSpace(cell(row, ColName)) == "" {
			errs = append(errs, ValidationError{line, ColName, "", "Nome é obrigatório"})
		}
		if strings.TrimSpace(cell(row, ColSlug)) == "" {
			errs = append(errs, ValidationError{line, ColSlug, "", "Slug é obrigatório"})
		}

		rawPrice := strings.TrimSpace(cell(row, ColPrice))
		if price, err := decimal.NewFromString(rawPrice); err != nil || !price.IsPositive() {
			errs = append(errs, ValidationError{line, ColPrice, rawPrice, "Preço deve ser maior que zero"})
		}

		rawCategory := strings.TrimSpace(cell(row, ColCategoryID))
		if id := parseInt(rawCategory); rawCategory == "" || id <= 0 {
			errs = append(errs, ValidationError{line, ColCategoryID, rawCategory, "ID da categoria deve ser válido"})
		}
	}

	return errs
}
