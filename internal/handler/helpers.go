package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/Collegeyse/medicinai/internal/apierror"
	"github.com/Collegeyse/medicinai/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondServiceError maps typed service errors to HTTP statuses. Unmatched
// errors become a 400 so internals never leak as 500 noise.
func respondServiceError(c *gin.Context, err error) {
	var insufficient *service.InsufficientStockError
	var activeStock *service.HasActiveStockError
	var invalid *service.ValidationError
	var persistence *service.PersistenceError

	switch {
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, apierror.New(insufficient.Error()))
	case errors.As(err, &activeStock):
		c.JSON(http.StatusConflict, apierror.New(activeStock.Error()))
	case errors.As(err, &invalid):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(map[string]string{invalid.Field: invalid.Reason}))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Not found"))
	case errors.As(err, &persistence):
		c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
