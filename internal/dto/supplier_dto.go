package dto

type CreateSupplierRequest struct {
	Name    string  `json:"name"    validate:"required,min=2"`
	GSTIN   *string `json:"gstin"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Address *string `json:"address"`
}

// UpdateSupplierRequest uses pointers so absent fields are left untouched.
type UpdateSupplierRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=2"`
	GSTIN   *string `json:"gstin"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Address *string `json:"address"`
}

type SupplierResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	GSTIN   *string `json:"gstin,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
	Active  bool    `json:"active"`
}
