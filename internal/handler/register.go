package handler

import (
	"net/http"
	"time"

	"github.com/Collegeyse/medicinai/internal/apierror"
	"github.com/Collegeyse/medicinai/internal/dto"
	"github.com/Collegeyse/medicinai/internal/service"

	"github.com/gin-gonic/gin"
)

type RegisterHandler struct{ svc service.RegisterService }

func NewRegisterHandler(svc service.RegisterService) *RegisterHandler {
	return &RegisterHandler{svc: svc}
}

func (h *RegisterHandler) bindFilter(c *gin.Context) (*dto.RegisterFilter, bool) {
	var filter dto.RegisterFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return nil, false
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("month (1-12) and year are required"))
		return nil, false
	}
	return &filter, true
}

// ListMonth returns the Schedule H1 register for one month, one row per
// dispense event.
func (h *RegisterHandler) ListMonth(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListMonth(c.Request.Context(), time.Month(filter.Month), filter.Year)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportPDF queues an async render of the monthly register for inspection.
func (h *RegisterHandler) ExportPDF(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	if err := h.svc.ExportPDF(c.Request.Context(), time.Month(filter.Month), filter.Year); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}
