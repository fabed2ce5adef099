package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-admin/internal/domains/category/model"
	"storefront-admin/pkg/database"
)

// Repository is the persistence surface for categories.
type Repository interface {
	List(ctx context.Context, req model.ListCategoriesRequest) ([]model.Category, error)
	GetByID(ctx context.Context, id int) (*model.Category, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, cat *model.Category) error
	Update(ctx context.Context, id int, patch map[string]interface{}) error

	// DeleteIfEmpty removes the category only when no product references it,
	// holding both checks inside one transaction.
	DeleteIfEmpty(ctx context.Context, id int) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const categoryColumns = `
	c.id, c.name, c.slug, c.description, c.image_url,
	c.is_active, c.sort_order, c.created_at, c.updated_at`

func (r *postgresRepository) List(ctx context.Context, req model.ListCategoriesRequest) ([]model.Category, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if req.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(c.name ILIKE $%d OR c.description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+req.Search+"%")
		argIndex++
	}
	if req.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("c.is_active = $%d", argIndex))
		args = append(args, *req.IsActive)
		argIndex++
	}

	orderBy := map[string]string{
		"name_asc":   "c.name ASC",
		"name_desc":  "c.name DESC",
		"sort_order": "c.sort_order ASC, c.name ASC",
		"newest":     "c.created_at DESC",
	}[req.Sort]
	if orderBy == "" {
		orderBy = "c.sort_order ASC, c.name ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s, COUNT(p.id) AS product_count
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		WHERE %s
		GROUP BY c.id
		ORDER BY %s`,
		categoryColumns, strings.Join(conditions, " AND "), orderBy)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var cat model.Category
		err := rows.Scan(
			&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.ImageURL,
			&cat.IsActive, &cat.SortOrder, &cat.CreatedAt, &cat.UpdatedAt,
			&cat.ProductCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *postgresRepository) GetByID(ctx context.Context, id int) (*model.Category, error) {
	query := fmt.Sprintf(`
		SELECT %s, (SELECT COUNT(*) FROM products p WHERE p.category_id = c.id) AS product_count
		FROM categories c
		WHERE c.id = $1`, categoryColumns)

	var cat model.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.ImageURL,
		&cat.IsActive, &cat.SortOrder, &cat.CreatedAt, &cat.UpdatedAt,
		&cat.ProductCount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &cat, nil
}

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1)`, slug)
}

func (r *postgresRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)`, name)
}

func (r *postgresRepository) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Create(ctx context.Context, cat *model.Category) error {
	query := `
		INSERT INTO categories (name, slug, description, image_url, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		cat.Name, cat.Slug, cat.Description, cat.ImageURL, cat.IsActive, cat.SortOrder,
	).Scan(&cat.ID, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, id int, patch map[string]interface{}) error {
	if len(patch) == 0 {
		return nil
	}

	columns := make([]string, 0, len(patch))
	for col := range patch {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	setClauses := make([]string, 0, len(columns)+1)
	args := make([]interface{}, 0, len(columns)+1)
	for i, col := range columns {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, patch[col])
	}
	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE categories SET %s WHERE id = $%d`,
		strings.Join(setClauses, ", "), len(columns)+1)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteIfEmpty(ctx context.Context, id int) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var count int
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM products WHERE category_id = $1`, id).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to count category products: %w", err)
		}
		if count > 0 {
			return model.ErrCategoryHasProducts
		}

		tag, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrCategoryNotFound
		}
		return nil
	})
}
