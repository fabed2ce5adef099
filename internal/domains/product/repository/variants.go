package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"storefront-admin/internal/domains/product/model"
)

func (r *postgresRepository) ListVariants(ctx context.Context, productID uuid.UUID) ([]model.Variant, error) {
	query := `
		SELECT id, product_id, name, value, price_modifier, stock_quantity,
		       sku_suffix, is_active, sort_order, created_at, updated_at
		FROM product_variants
		WHERE product_id = $1
		ORDER BY sort_order, name, value`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	defer rows.Close()

	variants := []model.Variant{}
	for rows.Next() {
		var v model.Variant
		err := rows.Scan(
			&v.ID, &v.ProductID, &v.Name, &v.Value, &v.PriceModifier,
			&v.StockQuantity, &v.SKUSuffix, &v.IsActive, &v.SortOrder,
			&v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

func (r *postgresRepository) CreateVariant(ctx context.Context, v *model.Variant) error {
	query := `
		INSERT INTO product_variants (
			product_id, name, value, price_modifier, stock_quantity,
			sku_suffix, is_active, sort_order
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		v.ProductID, v.Name, v.Value, v.PriceModifier, v.StockQuantity,
		v.SKUSuffix, v.IsActive, v.SortOrder,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create variant: %w", err)
	}
	return nil
}

func (r *postgresRepository) UpdateVariant(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
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

	query := fmt.Sprintf(`UPDATE product_variants SET %s WHERE id = $%d`,
		strings.Join(setClauses, ", "), len(columns)+1)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrVariantNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM product_variants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrVariantNotFound
	}
	return nil
}

func (r *postgresRepository) ListRelated(ctx context.Context, productID uuid.UUID) ([]model.RelatedProduct, error) {
	query := `
		SELECT rp.id, rp.product_id, rp.related_product_id, rp.relation_type,
		       rp.sort_order, rp.created_at, rp.created_by,
		       p.id, p.sku, p.name, p.slug, p.price, p.sale_price, p.is_active
		FROM related_products rp
		JOIN products p ON rp.related_product_id = p.id
		WHERE rp.product_id = $1
		ORDER BY rp.sort_order, rp.created_at`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list related products: %w", err)
	}
	defer rows.Close()

	relations := []model.RelatedProduct{}
	for rows.Next() {
		var rel model.RelatedProduct
		var p model.Product
		err := rows.Scan(
			&rel.ID, &rel.ProductID, &rel.RelatedProductID, &rel.RelationType,
			&rel.SortOrder, &rel.CreatedAt, &rel.CreatedBy,
			&p.ID, &p.SKU, &p.Name, &p.Slug, &p.Price, &p.SalePrice, &p.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan related product: %w", err)
		}
		rel.Related = &p
		relations = append(relations, rel)
	}
	return relations, rows.Err()
}

func (r *postgresRepository) CreateRelation(ctx context.Context, rel *model.RelatedProduct) error {
	query := `
		INSERT INTO related_products (
			product_id, related_product_id, relation_type, sort_order, created_by
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		rel.ProductID, rel.RelatedProductID, rel.RelationType, rel.SortOrder, rel.CreatedBy,
	).Scan(&rel.ID, &rel.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicateRelated
		}
		return fmt.Errorf("failed to create relation: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteRelation(ctx context.Context, productID, relatedID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM related_products WHERE product_id = $1 AND related_product_id = $2`,
		productID, relatedID)
	if err != nil {
		return fmt.Errorf("failed to delete relation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRelationNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
