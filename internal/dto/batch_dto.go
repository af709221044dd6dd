package dto

import "github.com/shopspring/decimal"

// CreateBatchRequest registers newly received stock. Restocks never merge
// into an existing batch row — every receipt is a new batch.
type CreateBatchRequest struct {
	BatchNumber   string          `json:"batch_number"   validate:"required"`
	ExpiryDate    string          `json:"expiry_date"    validate:"required,datetime=2006-01-02"`
	MRP           decimal.Decimal `json:"mrp"            validate:"required"`
	SellingPrice  decimal.Decimal `json:"selling_price"  validate:"required"`
	PurchasePrice decimal.Decimal `json:"purchase_price" validate:"required"`
	Quantity      int             `json:"quantity"       validate:"required,min=1"`
	MinStock      int             `json:"min_stock"      validate:"min=0"`
	MaxStock      int             `json:"max_stock"      validate:"min=0"`
	SupplierID    *string         `json:"supplier_id"    validate:"omitempty,uuid"`
	ReceivedDate  string          `json:"received_date"  validate:"omitempty,datetime=2006-01-02"`
}

type BatchResponse struct {
	ID            string          `json:"id"`
	MedicineID    string          `json:"medicine_id"`
	BatchNumber   string          `json:"batch_number"`
	ExpiryDate    string          `json:"expiry_date"`
	MRP           decimal.Decimal `json:"mrp"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	CurrentStock  int             `json:"current_stock"`
	MinStock      int             `json:"min_stock"`
	MaxStock      int             `json:"max_stock"`
	SupplierID    *string         `json:"supplier_id,omitempty"`
	ReceivedDate  string          `json:"received_date"`
}
