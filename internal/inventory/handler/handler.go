package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/auth"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/inventory"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/inventory/dto"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/inventory/stock"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/model"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/pkg/logger"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/inventory/items", h.ListItems)
	rg.POST("/inventory/items", h.StockProduct)
	rg.GET("/inventory/items/:id", h.GetItem)
	rg.POST("/inventory/items/:id/adjust", h.AdjustStock)
	rg.POST("/inventory/items/:id/transfer", h.TransferStock)
	rg.GET("/inventory/items/:id/movements", h.ListItemMovements)
	rg.GET("/inventory/movements", h.ListMovements)
	rg.GET("/inventory/alerts", h.ListAlerts)
	rg.POST("/inventory/alerts/:id/read", h.MarkAlertRead)
}

func (h *InventoryHandler) GetItem(c *gin.Context) {
	merchantID := auth.GetMerchantID(c)

	item, err := h.uc.GetItem(c.Request.Context(), merchantID, c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) ListItems(c *gin.Context) {
	merchantID := auth.GetMerchantID(c)
	page, pageSize := pagination(c)

	filters := &dto.ItemFilters{
		MerchantID: merchantID,
		ProductID:  c.Query("product_id"),
		LocationID: c.Query("location_id"),
		Status:     model.StockStatus(c.Query("status")),
		Search:     c.Query("search"),
		Page:       page,
		PageSize:   pageSize,
	}
	if filters.Status != "" && !filters.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status filter"})
		return
	}

	items, total, err := h.uc.ListItems(c.Request.Context(), filters)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

type stockProductRequest struct {
	ProductID       string   `json:"product_id" binding:"required"`
	ReorderPoint    int      `json:"reorder_point"`
	ReorderQuantity int      `json:"reorder_quantity"`
	LocationIDs     []string `json:"location_ids"`
}

func (h *InventoryHandler) StockProduct(c *gin.Context) {
	merchantID := auth.GetMerchantID(c)

	var req stockProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.uc.StockProduct(c.Request.Context(), &dto.StockProductInput{
		MerchantID:      merchantID,
		ProductID:       req.ProductID,
		ReorderPoint:    req.ReorderPoint,
		ReorderQuantity: req.ReorderQuantity,
		LocationIDs:     req.LocationIDs,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

type adjustRequest struct {
	Mode             string `json:"mode" binding:"required"`
	Quantity         int    `json:"quantity"`
	LocationID       string `json:"location_id" binding:"required"`
	Reason           string `json:"reason" binding:"required"`
	Reference        string `json:"reference"`
	OrderID          string `json:"order_id"`
	AllowOverRemoval bool   `json:"allow_over_removal"`
}

func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	merchantID := auth.GetMerchantID(c)
	actor := auth.GetActor(c)

	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := &dto.AdjustStockInput{
		MerchantID:       merchantID,
		ItemID:           c.Param("id"),
		Mode:             dto.AdjustMode(req.Mode),
		Quantity:         req.Quantity,
		LocationID:       req.LocationID,
		Reason:           model.AdjustmentReason(req.Reason),
		Reference:        req.Reference,
		OrderID:          req.OrderID,
		AllowOverRemoval: req.AllowOverRemoval,
		UserID:           actor.UserID,
		UserName:         actor.UserName,
	}

	item, movement, err := h.uc.AdjustStock(c.Request.Context(), input)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item, "movement": movement})
}

type transferRequest struct {
	Quantity       int    `json:"quantity" binding:"required"`
	FromLocationID string `json:"from_location_id" binding:"required"`
	ToLocationID   string `json:"to_location_id" binding:"required"`
	Reference      string `json:"reference"`
}

func (h *InventoryHandler) TransferStock(c *gin.Context) {
	merchantID := auth.GetMerchantID(c)
	actor := auth.GetActor(c)

	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.uc.TransferStock(c.Request.Context(), &dto.TransferStockInput{
		MerchantID:     merchantID,
		ItemID:         c.Param("id"),
		Quantity:       req.Quantity,
		FromLocationID: req.FromLocationID,
		ToLocationID:   req.ToLocationID,
		Reference:      req.Reference,
		UserID:         actor.UserID,
		UserName:       actor.UserName,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (h *InventoryHandler) ListItemMovements(c *gin.Context) {
	merchantID := auth.GetMerchantID(c)
	page, pageSize := pagination(c)

	movements, total, err := h.uc.ListMovements(c.Request.Context(), &dto.MovementFilters{
		MerchantID: merchantID,
		ItemID:     c.Param("id"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"movements": movements, "total": total})
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	merchantID := auth.GetMerchantID(c)
	page, pageSize := pagination(c)

	filters := &dto.MovementFilters{
		MerchantID:   merchantID,
		ItemID:       c.Query("item_id"),
		LocationID:   c.Query("location_id"),
		MovementType: model.MovementType(c.Query("type")),
		Page:         page,
		PageSize:     pageSize,
	}
	if filters.MovementType != "" && !filters.MovementType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown movement type"})
		return
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339"})
			return
		}
		filters.StartDate = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339"})
			return
		}
		filters.EndDate = &t
	}

	movements, total, err := h.uc.ListMovements(c.Request.Context(), filters)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"movements": movements, "total": total})
}

func (h *InventoryHandler) ListAlerts(c *gin.Context) {
	merchantID := auth.GetMerchantID(c)
	page, pageSize := pagination(c)

	alerts, total, err := h.uc.ListAlerts(c.Request.Context(), &dto.AlertFilters{
		MerchantID: merchantID,
		ItemID:     c.Query("item_id"),
		UnreadOnly: c.Query("unread") == "true",
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "total": total})
}

func (h *InventoryHandler) MarkAlertRead(c *gin.Context) {
	merchantID := auth.GetMerchantID(c)

	if err := h.uc.MarkAlertRead(c.Request.Context(), merchantID, c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *InventoryHandler) renderError(c *gin.Context, err error) {
	var invalid *stock.InvalidInputError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Detail, "field": invalid.Field})
		return
	}

	switch {
	case errors.Is(err, stock.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, stock.ErrInsufficientStock):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrItemNotFound), errors.Is(err, inventory.ErrAlertNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrLockNotAcquired):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.logger.Error("inventory handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	return page, pageSize
}
