package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/auth"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/location"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/location/dto"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/pkg/logger"
)

type LocationHandler struct {
	uc     location.UseCase
	logger logger.ZapLogger
}

func NewLocationHandler(uc location.UseCase, log logger.ZapLogger) *LocationHandler {
	return &LocationHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *LocationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/locations", h.ListLocations)
	rg.GET("/locations/:id", h.GetLocation)
	rg.PUT("/locations/:id", h.UpsertLocation)
}

func (h *LocationHandler) GetLocation(c *gin.Context) {
	merchantID := auth.GetMerchantID(c)

	loc, err := h.uc.GetLocation(c.Request.Context(), merchantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, location.ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("location handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, loc)
}

func (h *LocationHandler) ListLocations(c *gin.Context) {
	merchantID := auth.GetMerchantID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	filters := &dto.LocationFilters{
		MerchantID: merchantID,
		Page:       page,
		PageSize:   pageSize,
	}
	if active := c.Query("active"); active != "" {
		v := active == "true"
		filters.IsActive = &v
	}

	locations, total, err := h.uc.ListLocations(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("location handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"locations": locations, "total": total})
}

type upsertLocationRequest struct {
	Name      string `json:"name" binding:"required"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Country   string `json:"country"`
	Zip       string `json:"zip"`
	IsDefault bool   `json:"is_default"`
	IsActive  bool   `json:"is_active"`
}

func (h *LocationHandler) UpsertLocation(c *gin.Context) {
	merchantID := auth.GetMerchantID(c)

	var req upsertLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc, err := h.uc.UpsertLocation(c.Request.Context(), &dto.UpsertLocationInput{
		ID:         c.Param("id"),
		MerchantID: merchantID,
		Name:       req.Name,
		Address1:   req.Address1,
		Address2:   req.Address2,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		Zip:        req.Zip,
		IsDefault:  req.IsDefault,
		IsActive:   req.IsActive,
	})
	if err != nil {
		h.logger.Error("location handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, loc)
}
