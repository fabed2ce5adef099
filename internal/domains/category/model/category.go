package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Category groups products. IDs are small serial integers, matching the
// category_id column on products and in the CSV schema.
type Category struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description *string   `json:"description" db:"description"`
	ImageURL    *string   `json:"image_url" db:"image_url"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Joined count, populated by list queries.
	ProductCount int `json:"product_count" db:"product_count"`
}

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrDuplicateSlug       = errors.New("category slug already exists")
	ErrDuplicateName       = errors.New("category name already exists")
	ErrCategoryHasProducts = errors.New("category still has products")
)

// CreateCategoryRequest is the payload for category creation. Slug is
// derived from the name when absent.
type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
	SortOrder   int     `json:"sort_order"`
}

func (req CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Slug, validation.Length(0, 255)),
		validation.Field(&req.SortOrder, validation.Min(0)),
	)
}

// UpdateCategoryRequest carries only the fields to change.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
	SortOrder   *int    `json:"sort_order"`
}

func (req UpdateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&req.Slug, validation.NilOrNotEmpty),
	)
}

// Patch converts the request into a column patch.
func (req UpdateCategoryRequest) Patch() map[string]interface{} {
	patch := map[string]interface{}{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Slug != nil {
		patch["slug"] = *req.Slug
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.ImageURL != nil {
		patch["image_url"] = *req.ImageURL
	}
	if req.IsActive != nil {
		patch["is_active"] = *req.IsActive
	}
	if req.SortOrder != nil {
		patch["sort_order"] = *req.SortOrder
	}
	return patch
}

// ListCategoriesRequest - query parameters for the category list.
type ListCategoriesRequest struct {
	Search   string `form:"q"`
	IsActive *bool  `form:"is_active"`
	Sort     string `form:"sort"` // name_asc, name_desc, sort_order, newest
}

func (req *ListCategoriesRequest) Normalize() {
	validSorts := map[string]bool{
		"name_asc": true, "name_desc": true, "sort_order": true, "newest": true,
	}
	if !validSorts[req.Sort] {
		req.Sort = "sort_order"
	}
}
