package dto

// ExpiringBatch is one row of the near-expiry report.
type ExpiringBatch struct {
	BatchID      string `json:"batch_id"`
	MedicineID   string `json:"medicine_id"`
	MedicineName string `json:"medicine_name"`
	BatchNumber  string `json:"batch_number"`
	ExpiryDate   string `json:"expiry_date"`
	DaysLeft     int    `json:"days_left"`
	CurrentStock int    `json:"current_stock"`
}

// LowStockBatch is one row of the low-stock report.
type LowStockBatch struct {
	BatchID      string `json:"batch_id"`
	MedicineID   string `json:"medicine_id"`
	MedicineName string `json:"medicine_name"`
	BatchNumber  string `json:"batch_number"`
	CurrentStock int    `json:"current_stock"`
	MinStock     int    `json:"min_stock"`
}

// RestockSuggestion is a medicine-level derivation over batch stock.
// Priority: "critical" | "low" | "normal".
type RestockSuggestion struct {
	MedicineID        string `json:"medicine_id"`
	MedicineName      string `json:"medicine_name"`
	CurrentStock      int    `json:"current_stock"`
	MinStock          int    `json:"min_stock"`
	MaxStock          int    `json:"max_stock"`
	SuggestedQuantity int    `json:"suggested_quantity"`
	Priority          string `json:"priority"`
}
