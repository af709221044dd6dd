package dto

import "github.com/shopspring/decimal"

// ─── Allocation (add-to-cart) ────────────────────────────────────────────────

// AllocateRequest asks the FEFO engine for an advisory allocation proposal.
// Nothing is reserved or mutated — the cart locks batches client-side and
// checkout revalidates them.
type AllocateRequest struct {
	MedicineID string `json:"medicine_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity"    validate:"required,min=1"`
}

type AllocationLine struct {
	BatchID      string          `json:"batch_id"`
	BatchNumber  string          `json:"batch_number"`
	ExpiryDate   string          `json:"expiry_date"`
	Quantity     int             `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

type AllocateResponse struct {
	MedicineID string           `json:"medicine_id"`
	Requested  int              `json:"requested"`
	Lines      []AllocationLine `json:"lines"`
}

// ─── Checkout ────────────────────────────────────────────────────────────────

// CartLine is one medicine+batch pairing accumulated by prior allocate
// calls. Batches are locked into the cart at selection time, not re-resolved
// at checkout.
type CartLine struct {
	MedicineID string `json:"medicine_id" validate:"required,uuid"`
	BatchID    string `json:"batch_id"    validate:"required,uuid"`
	Quantity   int    `json:"quantity"    validate:"required,min=1"`
}

type CustomerInfo struct {
	Name               string `json:"name"`
	Phone              string `json:"phone"`
	DoctorName         string `json:"doctor_name"`
	PrescriptionNumber string `json:"prescription_number"`
}

type CheckoutRequest struct {
	Lines           []CartLine      `json:"lines"            validate:"required,min=1,dive"`
	Customer        CustomerInfo    `json:"customer"`
	PaymentMethod   string          `json:"payment_method"   validate:"required,oneof=cash card upi credit"`
	DiscountPercent decimal.Decimal `json:"discount_percent" validate:"min=0,max=100"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type SaleItemResponse struct {
	MedicineID   string          `json:"medicine_id"`
	MedicineName string          `json:"medicine_name"`
	BatchID      string          `json:"batch_id"`
	BatchNumber  string          `json:"batch_number"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	GSTAmount    decimal.Decimal `json:"gst_amount"`
}

type SaleResponse struct {
	ID             string             `json:"id"`
	InvoiceNumber  string             `json:"invoice_number"`
	CustomerName   string             `json:"customer_name,omitempty"`
	Items          []SaleItemResponse `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	GSTAmount      decimal.Decimal    `json:"gst_amount"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	PaymentMethod  string             `json:"payment_method"`
	SaleDate       string             `json:"sale_date"`
	PharmacistID   string             `json:"pharmacist_id"`
}

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	From         string `form:"from"` // YYYY-MM-DD inclusive
	To           string `form:"to"`   // YYYY-MM-DD exclusive
	PharmacistID string `form:"pharmacist_id"`
	Page         int    `form:"page,default=1"   validate:"min=1"`
	Limit        int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
