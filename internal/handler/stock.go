package handler

import (
	"net/http"
	"strconv"

	"github.com/Collegeyse/medicinai/internal/apierror"
	"github.com/Collegeyse/medicinai/internal/service"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	svc               service.StockHealthService
	defaultExpiryDays int
}

func NewStockHandler(svc service.StockHealthService, defaultExpiryDays int) *StockHandler {
	return &StockHandler{svc: svc, defaultExpiryDays: defaultExpiryDays}
}

// Expiring lists batches with stock that expire within the window, soonest
// first. The window defaults to the configured value (30 days).
func (h *StockHandler) Expiring(c *gin.Context) {
	days := h.defaultExpiryDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, apierror.New("days must be a positive integer"))
			return
		}
		days = parsed
	}
	resp, err := h.svc.ExpiringWithin(c.Request.Context(), days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LowStock lists batches at or below their minimum stock threshold.
func (h *StockHandler) LowStock(c *gin.Context) {
	resp, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RestockSuggestions derives per-medicine reorder advice ranked by urgency.
func (h *StockHandler) RestockSuggestions(c *gin.Context) {
	resp, err := h.svc.RestockSuggestions(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
