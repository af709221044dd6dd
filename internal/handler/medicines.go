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

type MedicinesHandler struct{ svc service.MedicineService }

func NewMedicinesHandler(svc service.MedicineService) *MedicinesHandler {
	return &MedicinesHandler{svc: svc}
}

func (h *MedicinesHandler) Create(c *gin.Context) {
	var req dto.CreateMedicineRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MedicinesHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List returns a paginated catalog, filterable by name, schedule and
// manufacturer.
func (h *MedicinesHandler) List(c *gin.Context) {
	var filter dto.MedicineFilter
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

func (h *MedicinesHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateMedicineRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete removes a medicine and its batch history. Refused with 409 while
// any batch still holds stock.
func (h *MedicinesHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
