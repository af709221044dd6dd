package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Collegeyse/medicinai/internal/dto"
	"github.com/Collegeyse/medicinai/internal/model"
	"github.com/Collegeyse/medicinai/internal/repository"

	"github.com/google/uuid"
)

type BatchService interface {
	// AddBatch records received stock. Always a pure insert: a reused batch
	// number still gets its own row because rows are keyed by generated id.
	AddBatch(ctx context.Context, userID, medicineID uuid.UUID, req dto.CreateBatchRequest) (*dto.BatchResponse, error)
	ListByMedicine(ctx context.Context, medicineID uuid.UUID) ([]dto.BatchResponse, error)
}

type batchService struct {
	repo      repository.BatchRepository
	medicines repository.MedicineRepository
	audit     repository.AuditRepository
	now       func() time.Time
}

func NewBatchService(repo repository.BatchRepository, medicines repository.MedicineRepository, audit repository.AuditRepository) BatchService {
	return &batchService{repo: repo, medicines: medicines, audit: audit, now: time.Now}
}

func (s *batchService) AddBatch(ctx context.Context, userID, medicineID uuid.UUID, req dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if req.Quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	if req.BatchNumber == "" {
		return nil, &ValidationError{Field: "batch_number", Reason: "required"}
	}
	expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return nil, &ValidationError{Field: "expiry_date", Reason: "expected YYYY-MM-DD"}
	}
	if req.SellingPrice.IsNegative() || req.PurchasePrice.IsNegative() || req.MRP.IsNegative() {
		return nil, &ValidationError{Field: "price", Reason: "must not be negative"}
	}

	if _, err := s.medicines.FindByID(ctx, medicineID); err != nil {
		return nil, &ValidationError{Field: "medicine_id", Reason: "medicine not found"}
	}

	received := s.now()
	if req.ReceivedDate != "" {
		if received, err = time.Parse("2006-01-02", req.ReceivedDate); err != nil {
			return nil, &ValidationError{Field: "received_date", Reason: "expected YYYY-MM-DD"}
		}
	}

	b := &model.Batch{
		MedicineID:    medicineID,
		BatchNumber:   req.BatchNumber,
		ExpiryDate:    expiry,
		MRP:           req.MRP,
		SellingPrice:  req.SellingPrice,
		PurchasePrice: req.PurchasePrice,
		CurrentStock:  req.Quantity,
		MinStock:      req.MinStock,
		MaxStock:      req.MaxStock,
		ReceivedDate:  received,
	}
	if req.SupplierID != nil {
		sid, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, &ValidationError{Field: "supplier_id", Reason: "not a valid uuid"}
		}
		b.SupplierID = &sid
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, &PersistenceError{Op: "create batch", Err: err}
	}

	if raw, err := json.Marshal(b); err == nil {
		snap := string(raw)
		_ = s.audit.Create(ctx, &model.AuditEntry{
			UserID:     userID,
			Action:     model.AuditPurchase,
			EntityType: "batch",
			EntityID:   b.ID,
			After:      &snap,
		})
	}

	return batchToResponse(b), nil
}

func (s *batchService) ListByMedicine(ctx context.Context, medicineID uuid.UUID) ([]dto.BatchResponse, error) {
	batches, err := s.repo.FindByMedicineID(ctx, medicineID)
	if err != nil {
		return nil, &PersistenceError{Op: "list batches", Err: err}
	}
	result := make([]dto.BatchResponse, 0, len(batches))
	for i := range batches {
		result = append(result, *batchToResponse(&batches[i]))
	}
	return result, nil
}

func batchToResponse(b *model.Batch) *dto.BatchResponse {
	resp := &dto.BatchResponse{
		ID:            b.ID.String(),
		MedicineID:    b.MedicineID.String(),
		BatchNumber:   b.BatchNumber,
		ExpiryDate:    b.ExpiryDate.Format("2006-01-02"),
		MRP:           b.MRP,
		SellingPrice:  b.SellingPrice,
		PurchasePrice: b.PurchasePrice,
		CurrentStock:  b.CurrentStock,
		MinStock:      b.MinStock,
		MaxStock:      b.MaxStock,
		ReceivedDate:  b.ReceivedDate.Format("2006-01-02"),
	}
	if b.SupplierID != nil {
		sid := b.SupplierID.String()
		resp.SupplierID = &sid
	}
	return resp
}
