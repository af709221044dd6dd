package dto

// RegisterFilter selects a month of the Schedule H1 register.
type RegisterFilter struct {
	Month int `form:"month" validate:"required,min=1,max=12"`
	Year  int `form:"year"  validate:"required,min=2000,max=2100"`
}

type DispenseEntryResponse struct {
	ID                  string `json:"id"`
	SaleID              string `json:"sale_id"`
	MedicineID          string `json:"medicine_id"`
	MedicineName        string `json:"medicine_name"`
	BatchNumber         string `json:"batch_number"`
	CustomerName        string `json:"customer_name"`
	DoctorName          string `json:"doctor_name"`
	PrescriptionNumber  string `json:"prescription_number"`
	QuantityDispensed   int    `json:"quantity_dispensed"`
	DispensedDate       string `json:"dispensed_date"`
	PharmacistSignature string `json:"pharmacist_signature"`
}

type RegisterResponse struct {
	Month   int                     `json:"month"`
	Year    int                     `json:"year"`
	Entries []DispenseEntryResponse `json:"entries"`
}

// AuditFilter is bound from the query string of GET /v1/audit.
type AuditFilter struct {
	Action     string `form:"action"` // CREATE | UPDATE | DELETE | SALE | PURCHASE
	EntityType string `form:"entity_type"`
	UserID     string `form:"user_id"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type AuditEntryResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	Action     string  `json:"action"`
	EntityType string  `json:"entity_type"`
	EntityID   string  `json:"entity_id"`
	Before     *string `json:"before,omitempty"`
	After      *string `json:"after,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

type AuditListResponse struct {
	Data  []AuditEntryResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
