// Package stock holds the pure stock rules: status classification, the
// adjustment engine, and alert derivation. Nothing in this package performs
// I/O; callers persist the snapshots and ledger rows it returns.
package stock

import (
	"time"

	"github.com/google/uuid"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/inventory/dto"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/model"
)

// LocationResolver reports whether a location id is known reference data.
// Locations are immutable for the duration of one adjustment.
type LocationResolver func(locationID string) bool

// Classify derives stock status from total quantity and reorder point, in
// strict precedence: out of stock, then low stock, then in stock.
func Classify(totalQuantity, reorderPoint int) model.StockStatus {
	switch {
	case totalQuantity == 0:
		return model.StatusOutOfStock
	case totalQuantity <= reorderPoint:
		return model.StatusLowStock
	default:
		return model.StatusInStock
	}
}

// Adjustment is the result of one adjustment: the updated item snapshot and
// the ledger row explaining it. The input item is never mutated.
type Adjustment struct {
	Item     *model.InventoryItem
	Movement *model.StockMovement

	// Anomalous is set when reserved exceeded the new total and available
	// was clamped to zero. Reservation integrity is owned by order
	// management, so this is reported, not fatal.
	Anomalous bool
}

// Adjust validates the intent against the current aggregate, computes the
// new quantity, and returns the updated snapshot plus the movement row.
// Zero-delta adjustments are legal and still produce a movement.
func Adjust(item *model.InventoryItem, in *dto.AdjustStockInput, locations LocationResolver, now time.Time) (*Adjustment, error) {
	if err := validate(item, in, locations); err != nil {
		return nil, err
	}

	newTotal := 0
	switch in.Mode {
	case dto.ModeSet:
		newTotal = in.Quantity
	case dto.ModeAdd:
		newTotal = item.TotalQuantity + in.Quantity
	case dto.ModeRemove:
		if in.Quantity > item.TotalQuantity && !in.AllowOverRemoval {
			return nil, &InsufficientStockError{Requested: in.Quantity, OnHand: item.TotalQuantity}
		}
		newTotal = item.TotalQuantity - in.Quantity
		if newTotal < 0 {
			newTotal = 0
		}
	}

	delta := newTotal - item.TotalQuantity

	next := item.Clone()
	applyLocationDelta(next, in.LocationID, delta)
	next.TotalQuantity = newTotal
	next.Status = Classify(newTotal, next.ReorderPoint)

	anomalous := false
	next.Available = newTotal - next.Reserved
	if next.Available < 0 {
		next.Available = 0
		anomalous = true
	}

	next.LastStockUpdate = now
	next.UpdatedAt = now

	movementType := in.MovementType
	if movementType == "" {
		movementType = model.MovementAdjusted
	}

	locationID := in.LocationID
	movement := &model.StockMovement{
		ID:               uuid.New().String(),
		MerchantID:       item.MerchantID,
		ItemID:           item.ID,
		ProductID:        item.ProductID,
		MovementType:     movementType,
		Quantity:         delta,
		PreviousQuantity: item.TotalQuantity,
		NewQuantity:      newTotal,
		ToLocationID:     &locationID,
		Reason:           in.Reason,
		Reference:        optional(in.Reference),
		OrderID:          optional(in.OrderID),
		UserID:           optional(in.UserID),
		UserName:         optional(in.UserName),
		CreatedAt:        now,
	}

	return &Adjustment{Item: next, Movement: movement, Anomalous: anomalous}, nil
}

// Transfer moves stock between two locations of the same item. The item
// total is unchanged; the ledger gets a paired out/in row so replaying the
// ledger still reproduces the total exactly.
type Transfer struct {
	Item      *model.InventoryItem
	Movements []*model.StockMovement
}

func TransferStock(item *model.InventoryItem, in *dto.TransferStockInput, locations LocationResolver, now time.Time) (*Transfer, error) {
	if item == nil {
		return nil, &InvalidInputError{Field: "item", Detail: "item is required"}
	}
	if in.Quantity <= 0 {
		return nil, &InvalidInputError{Field: "quantity", Detail: "must be a positive integer"}
	}
	if in.FromLocationID == in.ToLocationID {
		return nil, &InvalidInputError{Field: "to_location_id", Detail: "source and destination are the same"}
	}
	if locations == nil || !locations(in.FromLocationID) {
		return nil, &InvalidInputError{Field: "from_location_id", Detail: "unknown location"}
	}
	if !locations(in.ToLocationID) {
		return nil, &InvalidInputError{Field: "to_location_id", Detail: "unknown location"}
	}

	source := item.LocationStock(in.FromLocationID)
	if source == nil || source.Quantity < in.Quantity {
		onHand := 0
		if source != nil {
			onHand = source.Quantity
		}
		return nil, &InsufficientStockError{Requested: in.Quantity, OnHand: onHand}
	}

	next := item.Clone()
	applyLocationDelta(next, in.FromLocationID, -in.Quantity)
	applyLocationDelta(next, in.ToLocationID, in.Quantity)
	next.LastStockUpdate = now
	next.UpdatedAt = now

	reference := in.Reference
	if reference == "" {
		reference = uuid.New().String()
	}
	from, to := in.FromLocationID, in.ToLocationID

	out := &model.StockMovement{
		ID:               uuid.New().String(),
		MerchantID:       item.MerchantID,
		ItemID:           item.ID,
		ProductID:        item.ProductID,
		MovementType:     model.MovementTransferred,
		Quantity:         -in.Quantity,
		PreviousQuantity: item.TotalQuantity,
		NewQuantity:      item.TotalQuantity - in.Quantity,
		FromLocationID:   &from,
		ToLocationID:     &to,
		Reason:           model.ReasonTransfer,
		Reference:        &reference,
		UserID:           optional(in.UserID),
		UserName:         optional(in.UserName),
		CreatedAt:        now,
	}
	ret := &model.StockMovement{
		ID:               uuid.New().String(),
		MerchantID:       item.MerchantID,
		ItemID:           item.ID,
		ProductID:        item.ProductID,
		MovementType:     model.MovementTransferred,
		Quantity:         in.Quantity,
		PreviousQuantity: item.TotalQuantity - in.Quantity,
		NewQuantity:      item.TotalQuantity,
		FromLocationID:   &from,
		ToLocationID:     &to,
		Reason:           model.ReasonTransfer,
		Reference:        &reference,
		UserID:           optional(in.UserID),
		UserName:         optional(in.UserName),
		CreatedAt:        now,
	}

	return &Transfer{Item: next, Movements: []*model.StockMovement{out, ret}}, nil
}

func validate(item *model.InventoryItem, in *dto.AdjustStockInput, locations LocationResolver) error {
	if item == nil {
		return &InvalidInputError{Field: "item", Detail: "item is required"}
	}
	if !in.Mode.Valid() {
		return &InvalidInputError{Field: "mode", Detail: "must be one of set, add, remove"}
	}
	if in.Quantity < 0 {
		return &InvalidInputError{Field: "quantity", Detail: "must be a non-negative integer"}
	}
	if in.LocationID == "" {
		return &InvalidInputError{Field: "location_id", Detail: "location is required"}
	}
	if locations == nil || !locations(in.LocationID) {
		return &InvalidInputError{Field: "location_id", Detail: "unknown location"}
	}
	if !in.Reason.Valid() {
		return &InvalidInputError{Field: "reason", Detail: "unrecognized reason code"}
	}
	if in.MovementType != "" && !in.MovementType.Valid() {
		return &InvalidInputError{Field: "movement_type", Detail: "unrecognized movement type"}
	}
	return nil
}

// applyLocationDelta applies the signed delta to the target location row.
// If the row would go negative the remainder is drained from the other rows,
// keeping sum(locations) equal to the item total.
func applyLocationDelta(item *model.InventoryItem, locationID string, delta int) {
	row := item.LocationStock(locationID)
	if row == nil {
		item.Locations = append(item.Locations, model.StockByLocation{
			ItemID:     item.ID,
			LocationID: locationID,
		})
		row = &item.Locations[len(item.Locations)-1]
	}

	row.Quantity += delta
	if row.Quantity < 0 {
		residual := -row.Quantity
		row.Quantity = 0
		for i := range item.Locations {
			if residual == 0 {
				break
			}
			other := &item.Locations[i]
			if other.LocationID == locationID {
				continue
			}
			take := other.Quantity
			if take > residual {
				take = residual
			}
			other.Quantity -= take
			residual -= take
		}
	}

	for i := range item.Locations {
		loc := &item.Locations[i]
		loc.Available = loc.Quantity - loc.Reserved
		if loc.Available < 0 {
			loc.Available = 0
		}
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
