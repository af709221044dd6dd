package service

import (
	"context"
	"sort"
	"time"

	"github.com/Collegeyse/medicinai/internal/dto"
	"github.com/Collegeyse/medicinai/internal/model"
	"github.com/Collegeyse/medicinai/internal/repository"

	"github.com/google/uuid"
)

// StockHealthService classifies batch state for dashboards and alerts.
// Read-only: every call recomputes from current store state.
type StockHealthService interface {
	ExpiringWithin(ctx context.Context, days int) ([]dto.ExpiringBatch, error)
	LowStock(ctx context.Context) ([]dto.LowStockBatch, error)
	RestockSuggestions(ctx context.Context) ([]dto.RestockSuggestion, error)
}

type stockHealthService struct {
	batches repository.BatchRepository
	now     func() time.Time
}

func NewStockHealthService(batches repository.BatchRepository) StockHealthService {
	return &stockHealthService{batches: batches, now: time.Now}
}

func (s *stockHealthService) ExpiringWithin(ctx context.Context, days int) ([]dto.ExpiringBatch, error) {
	if days <= 0 {
		return nil, &ValidationError{Field: "days", Reason: "must be greater than zero"}
	}
	now := s.now()
	cutoff := now.AddDate(0, 0, days)

	batches, err := s.batches.FindExpiringBefore(ctx, cutoff)
	if err != nil {
		return nil, &PersistenceError{Op: "stock health: expiring batches", Err: err}
	}

	result := make([]dto.ExpiringBatch, 0, len(batches))
	for _, b := range batches {
		result = append(result, dto.ExpiringBatch{
			BatchID:      b.ID.String(),
			MedicineID:   b.MedicineID.String(),
			MedicineName: medicineName(&b),
			BatchNumber:  b.BatchNumber,
			ExpiryDate:   b.ExpiryDate.Format("2006-01-02"),
			DaysLeft:     b.DaysUntilExpiry(now),
			CurrentStock: b.CurrentStock,
		})
	}
	return result, nil
}

func (s *stockHealthService) LowStock(ctx context.Context) ([]dto.LowStockBatch, error) {
	batches, err := s.batches.FindLowStock(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "stock health: low stock batches", Err: err}
	}

	result := make([]dto.LowStockBatch, 0, len(batches))
	for _, b := range batches {
		result = append(result, dto.LowStockBatch{
			BatchID:      b.ID.String(),
			MedicineID:   b.MedicineID.String(),
			MedicineName: medicineName(&b),
			BatchNumber:  b.BatchNumber,
			CurrentStock: b.CurrentStock,
			MinStock:     b.MinStock,
		})
	}
	return result, nil
}

// RestockSuggestions is the medicine-level derivation over batch stock.
// Active (non-expired) batch quantities are summed per medicine; thresholds
// come from the most recently received batch, which carries the current
// purchasing policy. Priority rules:
//
//	stock == 0            → critical, suggest max(minStock*2, 50)
//	stock <= minStock     → low,      suggest maxStock - stock
//	stock <= 2*minStock   → normal,   suggest max(maxStock - stock, minStock)
//
// Medicines needing nothing are omitted.
func (s *stockHealthService) RestockSuggestions(ctx context.Context) ([]dto.RestockSuggestion, error) {
	batches, err := s.batches.ListAll(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "stock health: list batches", Err: err}
	}

	now := s.now()
	type medState struct {
		name     string
		stock    int
		minStock int
		maxStock int
		received time.Time
	}
	perMedicine := make(map[uuid.UUID]*medState)
	for _, b := range batches {
		st, ok := perMedicine[b.MedicineID]
		if !ok {
			st = &medState{name: medicineName(&b)}
			perMedicine[b.MedicineID] = st
		}
		if !b.IsExpired(now) {
			st.stock += b.CurrentStock
		}
		if !b.ReceivedDate.Before(st.received) {
			st.received = b.ReceivedDate
			st.minStock = b.MinStock
			st.maxStock = b.MaxStock
		}
	}

	suggestions := make([]dto.RestockSuggestion, 0)
	for id, st := range perMedicine {
		var priority string
		var qty int
		switch {
		case st.stock == 0:
			priority = "critical"
			qty = st.minStock * 2
			if qty < 50 {
				qty = 50
			}
		case st.stock <= st.minStock:
			priority = "low"
			qty = st.maxStock - st.stock
		case st.stock <= 2*st.minStock:
			priority = "normal"
			qty = st.maxStock - st.stock
			if qty < st.minStock {
				qty = st.minStock
			}
		default:
			continue
		}
		if qty <= 0 {
			continue
		}
		suggestions = append(suggestions, dto.RestockSuggestion{
			MedicineID:        id.String(),
			MedicineName:      st.name,
			CurrentStock:      st.stock,
			MinStock:          st.minStock,
			MaxStock:          st.maxStock,
			SuggestedQuantity: qty,
			Priority:          priority,
		})
	}

	// critical first, then by how far below threshold
	rank := map[string]int{"critical": 0, "low": 1, "normal": 2}
	sort.Slice(suggestions, func(i, j int) bool {
		if rank[suggestions[i].Priority] != rank[suggestions[j].Priority] {
			return rank[suggestions[i].Priority] < rank[suggestions[j].Priority]
		}
		return suggestions[i].CurrentStock < suggestions[j].CurrentStock
	})
	return suggestions, nil
}

func medicineName(b *model.Batch) string {
	if b.Medicine != nil {
		return b.Medicine.Name
	}
	return ""
}
