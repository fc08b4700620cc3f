package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/location/dto"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, merchantID, id string) (*model.Location, error) {
	var loc model.Location
	query := `SELECT * FROM locations WHERE merchant_id = $1 AND id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &loc, query, merchantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &loc, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.LocationFilters) ([]model.Location, int, error) {
	locations := []model.Location{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.MerchantID != "" {
		conditions = append(conditions, "merchant_id = :merchant_id")
		args["merchant_id"] = f.MerchantID
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM locations" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM locations" + whereClause + " ORDER BY is_default DESC, name ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &locations, args)
	return locations, count, err
}

func (r *PGRepository) Upsert(ctx context.Context, loc *model.Location) error {
	query := `
        INSERT INTO locations (
            id, merchant_id, name, address1, address2, city, province,
            country, zip, is_default, is_active, created_at, updated_at
        )
        VALUES (
            :id, :merchant_id, :name, :address1, :address2, :city, :province,
            :country, :zip, :is_default, :is_active, :created_at, :updated_at
        )
        ON CONFLICT (id)
        DO UPDATE SET
            name = EXCLUDED.name,
            address1 = EXCLUDED.address1,
            address2 = EXCLUDED.address2,
            city = EXCLUDED.city,
            province = EXCLUDED.province,
            country = EXCLUDED.country,
            zip = EXCLUDED.zip,
            is_default = EXCLUDED.is_default,
            is_active = EXCLUDED.is_active,
            updated_at = EXCLUDED.updated_at
    `
	_, err := r.DB.NamedExecContext(ctx, query, loc)
	return err
}

func (r *PGRepository) ActiveLocationIDs(ctx context.Context, merchantID string) (map[string]bool, error) {
	var ids []string
	query := `SELECT id FROM locations WHERE merchant_id = $1 AND is_active = TRUE`
	if err := r.DB.SelectContext(ctx, &ids, query, merchantID); err != nil {
		return nil, err
	}

	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
