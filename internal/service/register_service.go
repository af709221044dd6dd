package service

import (
	"context"
	"time"

	"github.com/Collegeyse/medicinai/internal/dto"
	"github.com/Collegeyse/medicinai/internal/model"
	"github.com/Collegeyse/medicinai/internal/repository"
	"github.com/Collegeyse/medicinai/internal/worker"
)

// RegisterService reads the Schedule H1 dispense register and schedules the
// monthly PDF export. Entries are written only by the sale processor.
type RegisterService interface {
	ListMonth(ctx context.Context, month time.Month, year int) (*dto.RegisterResponse, error)
	ExportPDF(ctx context.Context, month time.Month, year int) error
}

type registerService struct {
	repo       repository.DispenseRepository
	dispatcher *worker.Dispatcher
}

func NewRegisterService(repo repository.DispenseRepository, dispatcher *worker.Dispatcher) RegisterService {
	return &registerService{repo: repo, dispatcher: dispatcher}
}

func (s *registerService) ListMonth(ctx context.Context, month time.Month, year int) (*dto.RegisterResponse, error) {
	if month < time.January || month > time.December {
		return nil, &ValidationError{Field: "month", Reason: "must be 1-12"}
	}
	entries, err := s.repo.ListByMonth(ctx, month, year)
	if err != nil {
		return nil, &PersistenceError{Op: "register: list month", Err: err}
	}
	resp := &dto.RegisterResponse{
		Month:   int(month),
		Year:    year,
		Entries: make([]dto.DispenseEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, entryToResponse(e))
	}
	return resp, nil
}

func (s *registerService) ExportPDF(ctx context.Context, month time.Month, year int) error {
	if month < time.January || month > time.December {
		return &ValidationError{Field: "month", Reason: "must be 1-12"}
	}
	if s.dispatcher == nil {
		return &PersistenceError{Op: "register: export", Err: worker.ErrDispatcherUnavailable}
	}
	return s.dispatcher.EnqueueDocument(ctx, worker.DocumentJob{
		Kind:  worker.DocumentRegister,
		Month: int(month),
		Year:  year,
	})
}

func entryToResponse(e model.DispenseEntry) dto.DispenseEntryResponse {
	return dto.DispenseEntryResponse{
		ID:                  e.ID.String(),
		SaleID:              e.SaleID.String(),
		MedicineID:          e.MedicineID.String(),
		MedicineName:        e.MedicineName,
		BatchNumber:         e.BatchNumber,
		CustomerName:        e.CustomerName,
		DoctorName:          e.DoctorName,
		PrescriptionNumber:  e.PrescriptionNumber,
		QuantityDispensed:   e.QuantityDispensed,
		DispensedDate:       e.DispensedDate.Format("2006-01-02"),
		PharmacistSignature: e.PharmacistSignature,
	}
}
