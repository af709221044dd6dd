package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Collegeyse/medicinai/internal/dto"
	"github.com/Collegeyse/medicinai/internal/model"
	"github.com/Collegeyse/medicinai/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicineService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateMedicineRequest) (*dto.MedicineResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error)
	List(ctx context.Context, filter dto.MedicineFilter) (*dto.MedicineListResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateMedicineRequest) (*dto.MedicineResponse, error)
	// Delete removes the medicine and its batches; refused with
	// HasActiveStockError while any batch still holds stock.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type medicineService struct {
	repo    repository.MedicineRepository
	batches repository.BatchRepository
	audit   repository.AuditRepository
}

func NewMedicineService(repo repository.MedicineRepository, batches repository.BatchRepository, audit repository.AuditRepository) MedicineService {
	return &medicineService{repo: repo, batches: batches, audit: audit}
}

func (s *medicineService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	if req.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if req.GSTPercent.IsNegative() {
		return nil, &ValidationError{Field: "gst_percent", Reason: "must not be negative"}
	}

	m := &model.Medicine{
		Name:         req.Name,
		GenericName:  req.GenericName,
		BrandName:    req.BrandName,
		Dosage:       req.Dosage,
		MedicineType: req.MedicineType,
		Manufacturer: req.Manufacturer,
		ScheduleType: model.ScheduleType(req.ScheduleType),
		HSN:          req.HSN,
		GSTPercent:   req.GSTPercent,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, &PersistenceError{Op: "create medicine", Err: err}
	}

	s.logAudit(ctx, userID, model.AuditCreate, m.ID, nil, m)
	return medicineToResponse(m, 0), nil
}

func (s *medicineService) GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	stock := s.totalStock(ctx, id)
	return medicineToResponse(m, stock), nil
}

func (s *medicineService) List(ctx context.Context, filter dto.MedicineFilter) (*dto.MedicineListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	medicines, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, &PersistenceError{Op: "list medicines", Err: err}
	}
	items := make([]dto.MedicineResponse, 0, len(medicines))
	for i := range medicines {
		items = append(items, *medicineToResponse(&medicines[i], s.totalStock(ctx, medicines[i].ID)))
	}
	return &dto.MedicineListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *medicineService) Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	before := *m

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.GenericName != nil {
		m.GenericName = *req.GenericName
	}
	if req.BrandName != nil {
		m.BrandName = *req.BrandName
	}
	if req.Dosage != nil {
		m.Dosage = *req.Dosage
	}
	if req.MedicineType != nil {
		m.MedicineType = *req.MedicineType
	}
	if req.Manufacturer != nil {
		m.Manufacturer = *req.Manufacturer
	}
	// Changing the schedule only affects future dispenses: past register
	// entries and sale items keep their snapshots.
	if req.ScheduleType != nil {
		m.ScheduleType = model.ScheduleType(*req.ScheduleType)
	}
	if req.HSN != nil {
		m.HSN = *req.HSN
	}
	if req.GSTPercent != nil {
		if req.GSTPercent.IsNegative() {
			return nil, &ValidationError{Field: "gst_percent", Reason: "must not be negative"}
		}
		m.GSTPercent = *req.GSTPercent
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, &PersistenceError{Op: "update medicine", Err: err}
	}

	s.logAudit(ctx, userID, model.AuditUpdate, m.ID, &before, m)
	return medicineToResponse(m, s.totalStock(ctx, id)), nil
}

func (s *medicineService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}

	n, err := s.batches.CountWithStock(ctx, id)
	if err != nil {
		return &PersistenceError{Op: "delete medicine: count stock", Err: err}
	}
	if n > 0 {
		return &HasActiveStockError{MedicineID: id, Batches: int(n)}
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.batches.DeleteByMedicineIDTx(tx, id); err != nil {
			return &PersistenceError{Op: "delete medicine: batches", Err: err}
		}
		if err := s.repo.DeleteTx(tx, id); err != nil {
			return &PersistenceError{Op: "delete medicine", Err: err}
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	s.logAudit(ctx, userID, model.AuditDelete, id, m, nil)
	return nil
}

func (s *medicineService) totalStock(ctx context.Context, id uuid.UUID) int {
	batches, err := s.batches.FindByMedicineID(ctx, id)
	if err != nil {
		return 0
	}
	now := time.Now()
	total := 0
	for _, b := range batches {
		if !b.IsExpired(now) {
			total += b.CurrentStock
		}
	}
	return total
}

// logAudit appends the mutation to the audit log. Failures are logged by the
// repository caller but never fail the business operation.
func (s *medicineService) logAudit(ctx context.Context, userID uuid.UUID, action string, entityID uuid.UUID, before, after interface{}) {
	entry := &model.AuditEntry{
		UserID:     userID,
		Action:     action,
		EntityType: "medicine",
		EntityID:   entityID,
	}
	if before != nil {
		if raw, err := json.Marshal(before); err == nil {
			snap := string(raw)
			entry.Before = &snap
		}
	}
	if after != nil {
		if raw, err := json.Marshal(after); err == nil {
			snap := string(raw)
			entry.After = &snap
		}
	}
	_ = s.audit.Create(ctx, entry)
}

func medicineToResponse(m *model.Medicine, totalStock int) *dto.MedicineResponse {
	return &dto.MedicineResponse{
		ID:           m.ID.String(),
		Name:         m.Name,
		GenericName:  m.GenericName,
		BrandName:    m.BrandName,
		Dosage:       m.Dosage,
		MedicineType: m.MedicineType,
		Manufacturer: m.Manufacturer,
		ScheduleType: string(m.ScheduleType),
		HSN:          m.HSN,
		GSTPercent:   m.GSTPercent,
		TotalStock:   totalStock,
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    m.UpdatedAt.Format(time.RFC3339),
	}
}
