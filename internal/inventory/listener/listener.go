package listener

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/inventory"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/inventory/dto"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/model"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/pkg/broker"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/pkg/logger"
)

// InventoryListener applies order lifecycle events to stock: a created
// order sells units, a cancelled order returns them.
type InventoryListener struct {
	consumer *broker.KafkaConsumer
	uc       inventory.UseCase
	logger   logger.ZapLogger
}

func NewInventoryListener(consumer *broker.KafkaConsumer, uc inventory.UseCase, logger logger.ZapLogger) *InventoryListener {
	return &InventoryListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

func (l *InventoryListener) Start(ctx context.Context) {
	l.logger.Info("starting inventory order-events listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping inventory order-events listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type OrderEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID         string             `json:"id"`
	MerchantID string             `json:"merchant_id"`
	LocationID string             `json:"location_id"`
	Items      []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (l *InventoryListener) processMessage(ctx context.Context, value []byte) {
	var event OrderEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal order event", zap.Error(err))
		return
	}

	switch event.EventType {
	case "OrderCreated":
		l.applyOrder(ctx, &event, dto.ModeRemove, model.MovementSold, model.ReasonOrderSale)
	case "OrderCancelled":
		l.applyOrder(ctx, &event, dto.ModeAdd, model.MovementReturned, model.ReasonOrderReturn)
	}
}

func (l *InventoryListener) applyOrder(ctx context.Context, event *OrderEvent, mode dto.AdjustMode, movementType model.MovementType, reason model.AdjustmentReason) {
	l.logger.Info("processing order event",
		zap.String("event_type", event.EventType),
		zap.String("order_id", event.Payload.ID),
	)

	for _, item := range event.Payload.Items {
		input := &dto.AdjustStockInput{
			MerchantID:   event.Payload.MerchantID,
			ProductID:    item.ProductID,
			Mode:         mode,
			Quantity:     item.Quantity,
			LocationID:   event.Payload.LocationID,
			Reason:       reason,
			MovementType: movementType,
			OrderID:      event.Payload.ID,
			Reference:    event.EventID,
			UserID:       "system",
		}

		_, _, err := l.uc.AdjustStock(ctx, input)
		if err != nil {
			// Unknown products are skipped rather than retried: the
			// catalog sync owns that gap.
			if errors.Is(err, inventory.ErrItemNotFound) {
				l.logger.Warn("order references product with no inventory item",
					zap.String("order_id", event.Payload.ID),
					zap.String("product_id", item.ProductID),
				)
				continue
			}
			l.logger.Error("failed to apply order event to inventory",
				zap.String("order_id", event.Payload.ID),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
		}
	}
}
