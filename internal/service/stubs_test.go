package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Collegeyse/medicinai/internal/dto"
	"github.com/Collegeyse/medicinai/internal/model"
	"github.com/Collegeyse/medicinai/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository stubs. Query-shaped methods reproduce the SQL
// semantics (filters and ordering) so service behavior is exercised against
// the same contract the real store provides.

// ── Batch repository ─────────────────────────────────────────────────────────

type stubBatchRepo struct {
	batches map[uuid.UUID]*model.Batch
}

func newStubBatchRepo() *stubBatchRepo {
	return &stubBatchRepo{batches: make(map[uuid.UUID]*model.Batch)}
}

func (r *stubBatchRepo) add(b *model.Batch) *model.Batch {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.batches[b.ID] = b
	return b
}

func (r *stubBatchRepo) Create(_ context.Context, b *model.Batch) error {
	r.add(b)
	return nil
}

func (r *stubBatchRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Batch, error) {
	b, ok := r.batches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *stubBatchRepo) FindByMedicineID(_ context.Context, medicineID uuid.UUID) ([]model.Batch, error) {
	var out []model.Batch
	for _, b := range r.batches {
		if b.MedicineID == medicineID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubBatchRepo) FindSellable(_ context.Context, medicineID uuid.UUID, now time.Time) ([]model.Batch, error) {
	var out []model.Batch
	for _, b := range r.batches {
		if b.MedicineID == medicineID && b.CurrentStock > 0 && b.ExpiryDate.After(now) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ExpiryDate.Equal(out[j].ExpiryDate) {
			return out[i].ExpiryDate.Before(out[j].ExpiryDate)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *stubBatchRepo) FindExpiringBefore(_ context.Context, cutoff time.Time) ([]model.Batch, error) {
	var out []model.Batch
	for _, b := range r.batches {
		if b.CurrentStock > 0 && b.ExpiryDate.Before(cutoff) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiryDate.Before(out[j].ExpiryDate) })
	return out, nil
}

func (r *stubBatchRepo) FindLowStock(_ context.Context) ([]model.Batch, error) {
	var out []model.Batch
	for _, b := range r.batches {
		if b.CurrentStock <= b.MinStock {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrentStock < out[j].CurrentStock })
	return out, nil
}

func (r *stubBatchRepo) ListAll(_ context.Context) ([]model.Batch, error) {
	var out []model.Batch
	for _, b := range r.batches {
		out = append(out, *b)
	}
	return out, nil
}

func (r *stubBatchRepo) CountWithStock(_ context.Context, medicineID uuid.UUID) (int64, error) {
	var n int64
	for _, b := range r.batches {
		if b.MedicineID == medicineID && b.CurrentStock > 0 {
			n++
		}
	}
	return n, nil
}

func (r *stubBatchRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) error {
	b, ok := r.batches[id]
	if !ok || b.CurrentStock < qty {
		return repository.ErrStockConflict
	}
	b.CurrentStock -= qty
	return nil
}

func (r *stubBatchRepo) DeleteByMedicineIDTx(_ *gorm.DB, medicineID uuid.UUID) error {
	for id, b := range r.batches {
		if b.MedicineID == medicineID {
			delete(r.batches, id)
		}
	}
	return nil
}

func (r *stubBatchRepo) DB() *gorm.DB { return nil }

var _ repository.BatchRepository = (*stubBatchRepo)(nil)

// ── Medicine repository ──────────────────────────────────────────────────────

type stubMedicineRepo struct {
	medicines map[uuid.UUID]*model.Medicine
}

func newStubMedicineRepo() *stubMedicineRepo {
	return &stubMedicineRepo{medicines: make(map[uuid.UUID]*model.Medicine)}
}

func (r *stubMedicineRepo) add(m *model.Medicine) *model.Medicine {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.medicines[m.ID] = m
	return m
}

func (r *stubMedicineRepo) Create(_ context.Context, m *model.Medicine) error {
	r.add(m)
	return nil
}

func (r *stubMedicineRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Medicine, error) {
	m, ok := r.medicines[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubMedicineRepo) List(_ context.Context, filter dto.MedicineFilter) ([]model.Medicine, int64, error) {
	var out []model.Medicine
	for _, m := range r.medicines {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (r *stubMedicineRepo) Update(_ context.Context, m *model.Medicine) error {
	r.medicines[m.ID] = m
	return nil
}

func (r *stubMedicineRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.medicines)), nil
}

func (r *stubMedicineRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.medicines, id)
	return nil
}

func (r *stubMedicineRepo) DB() *gorm.DB { return nil }

var _ repository.MedicineRepository = (*stubMedicineRepo)(nil)

// ── Sale repository ──────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales      map[uuid.UUID]*model.Sale
	invoiceSeq int64
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) FindByInvoiceNumber(_ context.Context, invoiceNumber string) (*model.Sale, error) {
	for _, s := range r.sales {
		if s.InvoiceNumber == invoiceNumber {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSaleRepo) List(_ context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var out []model.Sale
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) NextInvoiceSeq(_ context.Context, _ *gorm.DB) (int64, error) {
	r.invoiceSeq++
	return r.invoiceSeq, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── Dispense register repository ─────────────────────────────────────────────

type stubDispenseRepo struct {
	entries []model.DispenseEntry
}

func (r *stubDispenseRepo) CreateTx(_ *gorm.DB, e *model.DispenseEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *stubDispenseRepo) ListByMonth(_ context.Context, month time.Month, year int) ([]model.DispenseEntry, error) {
	var out []model.DispenseEntry
	for _, e := range r.entries {
		if e.DispensedDate.Month() == month && e.DispensedDate.Year() == year {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubDispenseRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.entries)), nil
}

var _ repository.DispenseRepository = (*stubDispenseRepo)(nil)

// ── Audit repository ─────────────────────────────────────────────────────────

type stubAuditRepo struct {
	entries []model.AuditEntry
}

func (r *stubAuditRepo) Create(_ context.Context, e *model.AuditEntry) error {
	r.entries = append(r.entries, *e)
	return nil
}

func (r *stubAuditRepo) CreateTx(_ *gorm.DB, e *model.AuditEntry) error {
	r.entries = append(r.entries, *e)
	return nil
}

func (r *stubAuditRepo) List(_ context.Context, _ dto.AuditFilter) ([]model.AuditEntry, int64, error) {
	return r.entries, int64(len(r.entries)), nil
}

var _ repository.AuditRepository = (*stubAuditRepo)(nil)

// ── User repository ──────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) add(u *model.User) *model.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return u
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	r.add(u)
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Active = false
	}
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)
