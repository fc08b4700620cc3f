package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/auth"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/catalog"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/catalog/dto"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/pkg/logger"
)

type CatalogHandler struct {
	uc     catalog.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog/products", h.ListProducts)
	rg.GET("/catalog/products/:id", h.GetProduct)
	rg.PUT("/catalog/products/:id", h.SyncProduct)
	rg.DELETE("/catalog/products/:id", h.DeleteProduct)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	merchantID := auth.GetMerchantID(c)

	if err := h.uc.DeleteProduct(c.Request.Context(), merchantID, c.Param("id")); err != nil {
		h.logger.Error("catalog handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	merchantID := auth.GetMerchantID(c)

	p, err := h.uc.GetProduct(c.Request.Context(), merchantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("catalog handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	merchantID := auth.GetMerchantID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}

	filters := &dto.ProductFilters{
		MerchantID:  merchantID,
		SearchQuery: c.Query("search"),
		Page:        page,
		PageSize:    pageSize,
	}
	if active := c.Query("active"); active != "" {
		v := active == "true"
		filters.IsActive = &v
	}

	products, total, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("catalog handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "total": total})
}

type syncProductRequest struct {
	SKU         string   `json:"sku" binding:"required"`
	Barcode     string   `json:"barcode"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	CostPerItem *float64 `json:"cost_per_item"`
	ImageURL    string   `json:"image_url"`
	IsActive    bool     `json:"is_active"`
}

func (h *CatalogHandler) SyncProduct(c *gin.Context) {
	merchantID := auth.GetMerchantID(c)

	var req syncProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.uc.SyncProduct(c.Request.Context(), &dto.SyncProductInput{
		ID:          c.Param("id"),
		MerchantID:  merchantID,
		SKU:         req.SKU,
		Barcode:     req.Barcode,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		CostPerItem: req.CostPerItem,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.logger.Error("catalog handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, p)
}
