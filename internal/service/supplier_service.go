package service

import (
	"context"
	"errors"

	"github.com/Collegeyse/medicinai/internal/dto"
	"github.com/Collegeyse/medicinai/internal/model"
	"github.com/Collegeyse/medicinai/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierService interface {
	Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error)
	List(ctx context.Context) ([]dto.SupplierResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func (s *supplierService) Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier := &model.Supplier{
		Name:    req.Name,
		GSTIN:   req.GSTIN,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Active:  true,
	}
	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, &PersistenceError{Op: "create supplier", Err: err}
	}
	resp := supplierToResponse(supplier)
	return &resp, nil
}

func (s *supplierService) GetByID(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Op: "find supplier", Err: err}
	}
	resp := supplierToResponse(supplier)
	return &resp, nil
}

func (s *supplierService) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	suppliers, err := s.repo.List(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list suppliers", Err: err}
	}
	resp := make([]dto.SupplierResponse, len(suppliers))
	for i := range suppliers {
		resp[i] = supplierToResponse(&suppliers[i])
	}
	return resp, nil
}

func (s *supplierService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Op: "find supplier", Err: err}
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.GSTIN != nil {
		supplier.GSTIN = req.GSTIN
	}
	if req.Phone != nil {
		supplier.Phone = req.Phone
	}
	if req.Email != nil {
		supplier.Email = req.Email
	}
	if req.Address != nil {
		supplier.Address = req.Address
	}

	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, &PersistenceError{Op: "update supplier", Err: err}
	}
	resp := supplierToResponse(supplier)
	return &resp, nil
}

func (s *supplierService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return &PersistenceError{Op: "deactivate supplier", Err: err}
	}
	return nil
}

func supplierToResponse(s *model.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:      s.ID.String(),
		Name:    s.Name,
		GSTIN:   s.GSTIN,
		Phone:   s.Phone,
		Email:   s.Email,
		Address: s.Address,
		Active:  s.Active,
	}
}
