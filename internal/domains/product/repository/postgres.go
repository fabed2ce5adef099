package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"storefront-admin/internal/domains/product/model"
)

const productColumns = `
	p.id, p.sku, p.name, p.slug, p.description,
	p.price, p.sale_price, p.stock_quantity, p.category_id,
	p.images, p.specifications, p.is_featured, p.is_active,
	p.reference, p.meta_title, p.meta_description, p.meta_keywords,
	p.created_at, p.updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// List returns one page of products with the matching total count.
func (r *postgresRepository) List(ctx context.Context, req model.ListProductsRequest) ([]model.Product, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if req.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(p.name ILIKE $%d OR p.sku ILIKE $%d OR p.slug ILIKE $%d)", argIndex, argIndex, argIndex))
		args = append(args, "%"+req.Search+"%")
		argIndex++
	}
	if req.CategoryID > 0 {
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", argIndex))
		args = append(args, req.CategoryID)
		argIndex++
	}
	if req.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("p.is_active = $%d", argIndex))
		args = append(args, *req.IsActive)
		argIndex++
	}
	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM products p WHERE " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	orderBy := map[string]string{
		"newest":     "p.created_at DESC",
		"name_asc":   "p.name ASC",
		"name_desc":  "p.name DESC",
		"price_asc":  "p.price ASC",
		"price_desc": "p.price DESC",
	}[req.Sort]
	if orderBy == "" {
		orderBy = "p.created_at DESC"
	}

	query := fmt.Sprintf(`
		SELECT %s, COALESCE(c.name, '') AS category_name
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		productColumns, where, orderBy, argIndex, argIndex+1)
	args = append(args, req.PageSize, (req.Page-1)*req.PageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows, true)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s, COALESCE(c.name, '') AS category_name
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1`, productColumns)
	return r.getOne(ctx, query, id)
}

func (r *postgresRepository) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s, COALESCE(c.name, '') AS category_name
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.sku = $1`, productColumns)
	return r.getOne(ctx, query, sku)
}

func (r *postgresRepository) getOne(ctx context.Context, query string, arg interface{}) (*model.Product, error) {
	var p model.Product
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Slug, &p.Description,
		&p.Price, &p.SalePrice, &p.StockQuantity, &p.CategoryID,
		pq.Array(&p.Images), &p.Specifications, &p.IsFeatured, &p.IsActive,
		&p.Reference, &p.MetaTitle, &p.MetaDescription, &p.MetaKeywords,
		&p.CreatedAt, &p.UpdatedAt, &p.CategoryName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

// ListSKUs loads every SKU into a set for batch duplicate checks.
func (r *postgresRepository) ListSKUs(ctx context.Context) (map[string]bool, error) {
	rows, err := r.pool.Query(ctx, `SELECT sku FROM products`)
	if err != nil {
		return nil, fmt.Errorf("failed to list skus: %w", err)
	}
	defer rows.Close()

	skus := make(map[string]bool)
	for rows.Next() {
		var sku string
		if err := rows.Scan(&sku); err != nil {
			return nil, fmt.Errorf("failed to scan sku: %w", err)
		}
		skus[sku] = true
	}
	return skus, rows.Err()
}

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1)`, slug)
}

func (r *postgresRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE name = $1)`, name)
}

func (r *postgresRepository) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (
			sku, name, slug, description, price, sale_price,
			stock_quantity, category_id, images, specifications,
			is_featured, is_active, reference,
			meta_title, meta_description, meta_keywords
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		p.SKU, p.Name, p.Slug, p.Description, p.Price, p.SalePrice,
		p.StockQuantity, p.CategoryID, p.Images, p.Specifications,
		p.IsFeatured, p.IsActive, p.Reference,
		p.MetaTitle, p.MetaDescription, p.MetaKeywords,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update applies a column patch through the regular UPDATE statement so the
// price_history trigger observes every price change.
func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
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
		value := patch[col]
		if urls, ok := value.([]string); ok {
			value = pq.StringArray(urls)
		}
		args = append(args, value)
	}
	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d`,
		strings.Join(setClauses, ", "), len(columns)+1)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

// AppendImages adds uploaded image URLs to the product's image array.
func (r *postgresRepository) AppendImages(ctx context.Context, id uuid.UUID, urls []string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET images = images || $1, updated_at = NOW() WHERE id = $2`,
		pq.StringArray(urls), id)
	if err != nil {
		return fmt.Errorf("failed to append images: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

// ListForExport returns every matching product, newest first, with the
// category name joined for the CSV's display column.
func (r *postgresRepository) ListForExport(ctx context.Context, req model.ExportRequest) ([]model.Product, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if req.CategoryID > 0 {
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", argIndex))
		args = append(args, req.CategoryID)
		argIndex++
	}
	if req.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("p.is_active = $%d", argIndex))
		args = append(args, *req.IsActive)
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT %s, COALESCE(c.name, '') AS category_name
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE %s
		ORDER BY p.created_at DESC`,
		productColumns, strings.Join(conditions, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products for export: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows, true)
}

// SetActiveByIDs flips is_active for the whole batch in one statement.
func (r *postgresRepository) SetActiveByIDs(ctx context.Context, ids []uuid.UUID, active bool) (int, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET is_active = $1, updated_at = NOW() WHERE id = ANY($2)`,
		active, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to update product status: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *postgresRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete products: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *postgresRepository) CountOrderItemRefs(ctx context.Context, ids []uuid.UUID) (int, error) {
	return r.countRefs(ctx, `SELECT COUNT(*) FROM order_items WHERE product_id = ANY($1)`, ids)
}

func (r *postgresRepository) CountCartItemRefs(ctx context.Context, ids []uuid.UUID) (int, error) {
	return r.countRefs(ctx, `SELECT COUNT(*) FROM cart_items WHERE product_id = ANY($1)`, ids)
}

func (r *postgresRepository) countRefs(ctx context.Context, query string, ids []uuid.UUID) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, query, ids).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count references: %w", err)
	}
	return count, nil
}

// PriceHistory returns the newest audit entries with the actor profile
// joined when one exists.
func (r *postgresRepository) PriceHistory(ctx context.Context, productID uuid.UUID, limit int) ([]model.PriceHistoryEntry, error) {
	query := `
		SELECT h.id, h.product_id, h.old_price, h.new_price,
		       h.old_sale_price, h.new_sale_price, h.changed_by, h.changed_at,
		       pr.name, pr.email
		FROM price_history h
		LEFT JOIN profiles pr ON h.changed_by = pr.id
		WHERE h.product_id = $1
		ORDER BY h.changed_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list price history: %w", err)
	}
	defer rows.Close()

	entries := []model.PriceHistoryEntry{}
	for rows.Next() {
		var e model.PriceHistoryEntry
		err := rows.Scan(
			&e.ID, &e.ProductID, &e.OldPrice, &e.NewPrice,
			&e.OldSalePrice, &e.NewSalePrice, &e.ChangedBy, &e.ChangedAt,
			&e.ChangedByName, &e.ChangedByEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price history: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanProducts(rows pgx.Rows, withCategory bool) ([]model.Product, error) {
	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		dest := []interface{}{
			&p.ID, &p.SKU, &p.Name, &p.Slug, &p.Description,
			&p.Price, &p.SalePrice, &p.StockQuantity, &p.CategoryID,
			pq.Array(&p.Images), &p.Specifications, &p.IsFeatured, &p.IsActive,
			&p.Reference, &p.MetaTitle, &p.MetaDescription, &p.MetaKeywords,
			&p.CreatedAt, &p.UpdatedAt,
		}
		if withCategory {
			dest = append(dest, &p.CategoryName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
