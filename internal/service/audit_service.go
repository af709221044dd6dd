package service

import (
	"context"
	"time"

	"github.com/Collegeyse/medicinai/internal/dto"
	"github.com/Collegeyse/medicinai/internal/repository"
)

// AuditService reads the append-only audit log for the admin screen.
type AuditService interface {
	List(ctx context.Context, filter dto.AuditFilter) (*dto.AuditListResponse, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) List(ctx context.Context, filter dto.AuditFilter) (*dto.AuditListResponse, error) {
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, &PersistenceError{Op: "list audit log", Err: err}
	}

	resp := &dto.AuditListResponse{
		Data:  make([]dto.AuditEntryResponse, len(entries)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i, e := range entries {
		resp.Data[i] = dto.AuditEntryResponse{
			ID:         e.ID.String(),
			UserID:     e.UserID.String(),
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID.String(),
			Before:     e.Before,
			After:      e.After,
			CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}
