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

type SalesHandler struct {
	sales      service.SaleService
	allocation service.AllocationService
}

func NewSalesHandler(sales service.SaleService, allocation service.AllocationService) *SalesHandler {
	return &SalesHandler{sales: sales, allocation: allocation}
}

// Allocate proposes a FEFO batch split for the requested quantity. Purely
// advisory: no stock is reserved until checkout commits.
func (h *SalesHandler) Allocate(c *gin.Context) {
	var req dto.AllocateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	medicineID, err := uuid.Parse(req.MedicineID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid medicine ID"))
		return
	}

	allocations, err := h.allocation.SelectBatchesForSale(c.Request.Context(), medicineID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := dto.AllocateResponse{
		MedicineID: req.MedicineID,
		Requested:  req.Quantity,
		Lines:      make([]dto.AllocationLine, len(allocations)),
	}
	for i, a := range allocations {
		resp.Lines[i] = dto.AllocationLine{
			BatchID:      a.Batch.ID.String(),
			BatchNumber:  a.Batch.BatchNumber,
			ExpiryDate:   a.Batch.ExpiryDate.Format("2006-01-02"),
			Quantity:     a.Quantity,
			SellingPrice: a.Batch.SellingPrice,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Checkout commits the cart: one ACID transaction covering the sale record,
// conditional stock decrements, Schedule H1 register entries and the audit
// row. A concurrent oversell surfaces as 409, never as negative stock.
func (h *SalesHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	pharmacistID, _ := uuid.Parse(claims.UserID)

	resp, err := h.sales.Checkout(c.Request.Context(), pharmacistID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SalesHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.sales.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List returns a paginated sale history filtered by date range and
// pharmacist.
func (h *SalesHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.sales.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
