package dto

import "github.com/shopspring/decimal"

// MedicineFilter is bound from the query string of GET /v1/medicines.
type MedicineFilter struct {
	Name         string `form:"name"`
	Schedule     string `form:"schedule"` // GENERAL | H | H1 | X
	Manufacturer string `form:"manufacturer"`
	Page         int    `form:"page,default=1"   validate:"min=1"`
	Limit        int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CreateMedicineRequest struct {
	Name         string          `json:"name"          validate:"required,min=2"`
	GenericName  string          `json:"generic_name"`
	BrandName    string          `json:"brand_name"`
	Dosage       string          `json:"dosage"`
	MedicineType string          `json:"medicine_type"`
	Manufacturer string          `json:"manufacturer"`
	ScheduleType string          `json:"schedule_type" validate:"required,oneof=GENERAL H H1 X"`
	HSN          string          `json:"hsn"`
	GSTPercent   decimal.Decimal `json:"gst_percent"   validate:"min=0"`
}

// UpdateMedicineRequest uses pointers so absent fields are left untouched.
type UpdateMedicineRequest struct {
	Name         *string          `json:"name"          validate:"omitempty,min=2"`
	GenericName  *string          `json:"generic_name"`
	BrandName    *string          `json:"brand_name"`
	Dosage       *string          `json:"dosage"`
	MedicineType *string          `json:"medicine_type"`
	Manufacturer *string          `json:"manufacturer"`
	ScheduleType *string          `json:"schedule_type" validate:"omitempty,oneof=GENERAL H H1 X"`
	HSN          *string          `json:"hsn"`
	GSTPercent   *decimal.Decimal `json:"gst_percent"`
}

type MedicineResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	GenericName  string          `json:"generic_name"`
	BrandName    string          `json:"brand_name"`
	Dosage       string          `json:"dosage"`
	MedicineType string          `json:"medicine_type"`
	Manufacturer string          `json:"manufacturer"`
	ScheduleType string          `json:"schedule_type"`
	HSN          string          `json:"hsn"`
	GSTPercent   decimal.Decimal `json:"gst_percent"`
	TotalStock   int             `json:"total_stock"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type MedicineListResponse struct {
	Data  []MedicineResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
