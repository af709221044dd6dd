package handler

import (
	"net/http"

	"github.com/Collegeyse/medicinai/internal/apierror"
	"github.com/Collegeyse/medicinai/internal/dto"
	"github.com/Collegeyse/medicinai/internal/service"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct{ svc service.AuditService }

func NewAuditHandler(svc service.AuditService) *AuditHandler { return &AuditHandler{svc: svc} }

// List returns the audit log, newest first, filtered by action, entity type
// and user. Admin-only route.
func (h *AuditHandler) List(c *gin.Context) {
	var filter dto.AuditFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
