package service

import (
	"context"
	"time"

	"github.com/Collegeyse/medicinai/internal/model"
	"github.com/Collegeyse/medicinai/internal/repository"

	"github.com/google/uuid"
)

// BatchAllocation pairs a batch with the quantity to dispense from it.
type BatchAllocation struct {
	Batch    model.Batch
	Quantity int
}

// AllocationService selects which batches supply a requested quantity.
// Selection is First-Expired-First-Out: pharmacy stock must leave the shelf
// in expiry order, so the earliest-expiring sellable batch is always drained
// first. The engine is purely advisory — it never mutates stock; the sale
// processor applies the proposal atomically at checkout.
type AllocationService interface {
	SelectBatchesForSale(ctx context.Context, medicineID uuid.UUID, quantity int) ([]BatchAllocation, error)
}

type allocationService struct {
	batches repository.BatchRepository
	now     func() time.Time
}

func NewAllocationService(batches repository.BatchRepository) AllocationService {
	return &allocationService{batches: batches, now: time.Now}
}

func (s *allocationService) SelectBatchesForSale(ctx context.Context, medicineID uuid.UUID, quantity int) ([]BatchAllocation, error) {
	if quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}

	// Candidates arrive ordered by expiry_date ASC, id ASC: expired and
	// empty batches are already excluded by the query.
	candidates, err := s.batches.FindSellable(ctx, medicineID, s.now())
	if err != nil {
		return nil, &PersistenceError{Op: "allocation: load sellable batches", Err: err}
	}

	remaining := quantity
	allocations := make([]BatchAllocation, 0, len(candidates))
	for _, b := range candidates {
		if remaining == 0 {
			break
		}
		take := b.CurrentStock
		if take > remaining {
			take = remaining
		}
		allocations = append(allocations, BatchAllocation{Batch: b, Quantity: take})
		remaining -= take
	}

	if remaining > 0 {
		return nil, &InsufficientStockError{
			MedicineID: medicineID,
			Requested:  quantity,
			Shortfall:  remaining,
		}
	}
	return allocations, nil
}
