package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/inventory"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/inventory/dto"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetItem(ctx context.Context, merchantID, itemID string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	query := `SELECT * FROM inventory_items WHERE merchant_id = $1 AND id = $2`
	err := r.DB.GetContext(ctx, &item, query, merchantID, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadLocations(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) GetItemByProduct(ctx context.Context, merchantID, productID string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	query := `SELECT * FROM inventory_items WHERE merchant_id = $1 AND product_id = $2`
	err := r.DB.GetContext(ctx, &item, query, merchantID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadLocations(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) loadLocations(ctx context.Context, item *model.InventoryItem) error {
	query := `SELECT * FROM stock_by_location WHERE item_id = $1 ORDER BY location_id`
	return r.DB.SelectContext(ctx, &item.Locations, query, item.ID)
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ItemFilters) ([]model.InventoryItem, int, error) {
	items := []model.InventoryItem{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.MerchantID != "" {
		conditions = append(conditions, "merchant_id = :merchant_id")
		args["merchant_id"] = f.MerchantID
	}
	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = string(f.Status)
	}
	if f.LocationID != "" {
		conditions = append(conditions, `EXISTS (
            SELECT 1 FROM stock_by_location sbl
            WHERE sbl.item_id = inventory_items.id AND sbl.location_id = :location_id
        )`)
		args["location_id"] = f.LocationID
	}
	if f.Search != "" {
		conditions = append(conditions, "(sku ILIKE :search OR product_title ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM inventory_items" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM inventory_items" + whereClause + " ORDER BY updated_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func (r *PGRepository) CreateItem(ctx context.Context, item *model.InventoryItem) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO inventory_items (
            id, merchant_id, product_id, product_title, sku, barcode,
            price, cost_per_item, total_quantity, reserved, available,
            reorder_point, reorder_quantity, status, last_stock_update,
            version, created_at, updated_at
        )
        VALUES (
            :id, :merchant_id, :product_id, :product_title, :sku, :barcode,
            :price, :cost_per_item, :total_quantity, :reserved, :available,
            :reorder_point, :reorder_quantity, :status, :last_stock_update,
            :version, :created_at, :updated_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("failed to insert inventory item: %w", err)
	}

	for i := range item.Locations {
		if err := upsertLocationRow(ctx, tx, &item.Locations[i]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PGRepository) CommitAdjustment(ctx context.Context, item *model.InventoryItem, movements ...*model.StockMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The version in the struct is the one the caller read; the guard
	// makes a concurrent writer visible as zero rows updated.
	updateQuery := `
        UPDATE inventory_items SET
            total_quantity = :total_quantity,
            reserved = :reserved,
            available = :available,
            status = :status,
            last_stock_update = :last_stock_update,
            updated_at = :updated_at,
            version = version + 1
        WHERE id = :id AND merchant_id = :merchant_id AND version = :version
    `
	res, err := tx.NamedExecContext(ctx, updateQuery, item)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return inventory.ErrVersionConflict
	}

	for i := range item.Locations {
		if err := upsertLocationRow(ctx, tx, &item.Locations[i]); err != nil {
			return err
		}
	}

	for _, m := range movements {
		if err := insertMovement(ctx, tx, m); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	item.Version++
	return nil
}

func upsertLocationRow(ctx context.Context, tx *sqlx.Tx, row *model.StockByLocation) error {
	query := `
        INSERT INTO stock_by_location (item_id, location_id, quantity, reserved, available)
        VALUES (:item_id, :location_id, :quantity, :reserved, :available)
        ON CONFLICT (item_id, location_id)
        DO UPDATE SET
            quantity = EXCLUDED.quantity,
            reserved = EXCLUDED.reserved,
            available = EXCLUDED.available
    `
	if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to upsert stock_by_location: %w", err)
	}
	return nil
}

func insertMovement(ctx context.Context, tx *sqlx.Tx, m *model.StockMovement) error {
	query := `
        INSERT INTO stock_movements (
            id, merchant_id, item_id, product_id, movement_type,
            quantity, previous_quantity, new_quantity,
            from_location_id, to_location_id, reason, reference,
            order_id, user_id, user_name, created_at
        )
        VALUES (
            :id, :merchant_id, :item_id, :product_id, :movement_type,
            :quantity, :previous_quantity, :new_quantity,
            :from_location_id, :to_location_id, :reason, :reference,
            :order_id, :user_id, :user_name, :created_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to append stock movement: %w", err)
	}
	return nil
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	movements := []model.StockMovement{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.MerchantID != "" {
		conditions = append(conditions, "merchant_id = :merchant_id")
		args["merchant_id"] = f.MerchantID
	}
	if f.ItemID != "" {
		conditions = append(conditions, "item_id = :item_id")
		args["item_id"] = f.ItemID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = string(f.MovementType)
	}
	if f.LocationID != "" {
		conditions = append(conditions, "(from_location_id = :location_id OR to_location_id = :location_id)")
		args["location_id"] = f.LocationID
	}
	if f.StartDate != nil {
		conditions = append(conditions, "created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "created_at <= :end_date")
		args["end_date"] = *f.EndDate
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM stock_movements" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM stock_movements" + whereClause + " ORDER BY created_at DESC, id DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &movements, args)
	return movements, count, err
}

func (r *PGRepository) AppendAlert(ctx context.Context, alert *model.InventoryAlert) error {
	query := `
        INSERT INTO inventory_alerts (
            id, merchant_id, item_id, alert_type, current_quantity,
            threshold, message, is_read, created_at
        )
        VALUES (
            :id, :merchant_id, :item_id, :alert_type, :current_quantity,
            :threshold, :message, :is_read, :created_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, alert)
	return err
}

func (r *PGRepository) ListAlerts(ctx context.Context, f *dto.AlertFilters) ([]model.InventoryAlert, int, error) {
	alerts := []model.InventoryAlert{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.MerchantID != "" {
		conditions = append(conditions, "merchant_id = :merchant_id")
		args["merchant_id"] = f.MerchantID
	}
	if f.ItemID != "" {
		conditions = append(conditions, "item_id = :item_id")
		args["item_id"] = f.ItemID
	}
	if f.UnreadOnly {
		conditions = append(conditions, "is_read = FALSE")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM inventory_alerts" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM inventory_alerts" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &alerts, args)
	return alerts, count, err
}

func (r *PGRepository) MarkAlertRead(ctx context.Context, merchantID, alertID string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE inventory_alerts SET is_read = TRUE WHERE merchant_id = $1 AND id = $2`,
		merchantID, alertID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return inventory.ErrAlertNotFound
	}
	return nil
}
