package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/catalog"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/catalog/dto"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/model"
)

type PGRepository struct {
	db *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) catalog.Repository {
	return &PGRepository{db: db}
}

func (r *PGRepository) FindByID(ctx context.Context, merchantID, id string) (*model.Product, error) {
	var p model.Product
	query := `SELECT * FROM products WHERE id = $1 AND merchant_id = $2`
	err := r.db.GetContext(ctx, &p, query, id, merchantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	conditions := []string{"merchant_id = :merchant_id"}
	args := map[string]interface{}{
		"merchant_id": filters.MerchantID,
		"limit":       filters.PageSize,
		"offset":      (filters.Page - 1) * filters.PageSize,
	}

	if filters.SearchQuery != "" {
		conditions = append(conditions, "(title ILIKE :search OR sku ILIKE :search OR barcode ILIKE :search)")
		args["search"] = "%" + filters.SearchQuery + "%"
	}
	if filters.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *filters.IsActive
	}

	where := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM products WHERE %s`, where)
	rows, err := r.db.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if rows.Next() {
		if err := rows.Scan(&total); err != nil {
			rows.Close()
			return nil, 0, err
		}
	}
	rows.Close()

	listQuery := fmt.Sprintf(`SELECT * FROM products WHERE %s ORDER BY title ASC LIMIT :limit OFFSET :offset`, where)
	stmt, err := r.db.PrepareNamedContext(ctx, listQuery)
	if err != nil {
		return nil, 0, err
	}
	defer stmt.Close()

	products := []model.Product{}
	if err := stmt.SelectContext(ctx, &products, args); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *PGRepository) Upsert(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (
			id, merchant_id, sku, barcode, title, description,
			price, cost_per_item, image_url, is_active, created_at, updated_at
		) VALUES (
			:id, :merchant_id, :sku, :barcode, :title, :description,
			:price, :cost_per_item, :image_url, :is_active, :created_at, :updated_at
		)
		ON CONFLICT (id) DO UPDATE SET
			sku = EXCLUDED.sku,
			barcode = EXCLUDED.barcode,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			cost_per_item = EXCLUDED.cost_per_item,
			image_url = EXCLUDED.image_url,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, merchantID, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1 AND merchant_id = $2`, id, merchantID)
	return err
}
