package model

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateSKU     = errors.New("product sku already exists")
	ErrDuplicateSlug    = errors.New("product slug already exists")
	ErrDuplicateName    = errors.New("product name already exists")
	ErrCategoryNotFound = errors.New("category not found")

	ErrEmptyCSV           = errors.New("csv is empty or invalid")
	ErrNoProductsToExport = errors.New("no products found to export")
	ErrUnsupportedFormat  = errors.New("unsupported export format")

	// Bulk delete guards. Either one rejects the whole batch before any
	// row is touched.
	ErrProductsInOrders = errors.New("some products cannot be deleted because they are used in orders")
	ErrProductsInCarts  = errors.New("some products cannot be deleted because they are in user carts")

	ErrVariantNotFound  = errors.New("variant not found")
	ErrRelationNotFound = errors.New("related product link not found")
	ErrSelfRelation     = errors.New("product cannot be related to itself")
	ErrDuplicateRelated = errors.New("related product link already exists")
)
