package handler

import (
	"net/http"

	"github.com/Collegeyse/medicinai/internal/apierror"
	"github.com/Collegeyse/medicinai/internal/dto"
	"github.com/Collegeyse/medicinai/internal/middleware"
	"github.com/Collegeyse/medicinai/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BatchesHandler struct{ svc service.BatchService }

func NewBatchesHandler(svc service.BatchService) *BatchesHandler {
	return &BatchesHandler{svc: svc}
}

// Create registers received stock under a medicine. Every receipt is a new
// batch row, even when the supplier reuses a batch number.
func (h *BatchesHandler) Create(c *gin.Context) {
	medicineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid medicine ID"))
		return
	}
	var req dto.CreateBatchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.AddBatch(c.Request.Context(), userID, medicineID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListByMedicine returns all batches of a medicine, drained ones included.
func (h *BatchesHandler) ListByMedicine(c *gin.Context) {
	medicineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid medicine ID"))
		return
	}
	resp, err := h.svc.ListByMedicine(c.Request.Context(), medicineID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
