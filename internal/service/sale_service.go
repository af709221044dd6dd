package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Collegeyse/medicinai/internal/dto"
	"github.com/Collegeyse/medicinai/internal/model"
	"github.com/Collegeyse/medicinai/internal/repository"
	"github.com/Collegeyse/medicinai/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	Checkout(ctx context.Context, pharmacistID uuid.UUID, req dto.CheckoutRequest) (*dto.SaleResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	repo       repository.SaleRepository
	batches    repository.BatchRepository
	medicines  repository.MedicineRepository
	register   repository.DispenseRepository
	audit      repository.AuditRepository
	users      repository.UserRepository
	dispatcher *worker.Dispatcher
	now        func() time.Time
}

func NewSaleService(
	repo repository.SaleRepository,
	batches repository.BatchRepository,
	medicines repository.MedicineRepository,
	register repository.DispenseRepository,
	audit repository.AuditRepository,
	users repository.UserRepository,
	dispatcher *worker.Dispatcher,
) SaleService {
	return &saleService{
		repo:       repo,
		batches:    batches,
		medicines:  medicines,
		register:   register,
		audit:      audit,
		users:      users,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// resolvedLine is a cart line after pre-flight resolution: the live batch
// and medicine rows plus the prices frozen for the invoice.
type resolvedLine struct {
	medicine     *model.Medicine
	batch        *model.Batch
	quantity     int
	lineSubtotal decimal.Decimal
	discountCut  decimal.Decimal
	gstAmount    decimal.Decimal
}

// ── Checkout ─────────────────────────────────────────────────────────────────
// Full ACID checkout:
//  1. Resolve and validate every cart line (pre-flight, outside the tx).
//  2. Price: line subtotals, uniform discount apportioned pro-rata, per-line
//     GST on the discounted amount, grand total.
//  3. BEGIN TX: next invoice number, create sale + items, conditional atomic
//     stock decrement per line, H1 register entries, SALE audit entry.
//  4. COMMIT, then fire-and-forget invoice PDF and low-stock alert jobs.
//
// The stock decrement is `current_stock = current_stock - q WHERE id = ? AND
// current_stock >= q`; a concurrent sale that drained the batch between
// pre-flight and commit turns up as zero rows affected and aborts the whole
// transaction, so no partial sale is ever visible.

func (s *saleService) Checkout(ctx context.Context, pharmacistID uuid.UUID, req dto.CheckoutRequest) (*dto.SaleResponse, error) {
	if len(req.Lines) == 0 {
		return nil, &ValidationError{Field: "lines", Reason: "cart is empty"}
	}
	if req.DiscountPercent.IsNegative() || req.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, &ValidationError{Field: "discount_percent", Reason: "must be between 0 and 100"}
	}

	pharmacist, err := s.users.FindByID(ctx, pharmacistID)
	if err != nil {
		return nil, &ValidationError{Field: "pharmacist_id", Reason: "unknown pharmacist"}
	}

	now := s.now()

	// 1. Pre-flight resolution. The cart locked batches at selection time;
	// here each line is checked against current state before anything is
	// written.
	resolved := make([]*resolvedLine, 0, len(req.Lines))
	subtotal := decimal.Zero
	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			return nil, &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
		}
		medicineID, err := uuid.Parse(line.MedicineID)
		if err != nil {
			return nil, &ValidationError{Field: "medicine_id", Reason: "not a valid uuid"}
		}
		batchID, err := uuid.Parse(line.BatchID)
		if err != nil {
			return nil, &ValidationError{Field: "batch_id", Reason: "not a valid uuid"}
		}

		medicine, err := s.medicines.FindByID(ctx, medicineID)
		if err != nil {
			return nil, &ValidationError{Field: "medicine_id", Reason: fmt.Sprintf("medicine %s not found", line.MedicineID)}
		}
		batch, err := s.batches.FindByID(ctx, batchID)
		if err != nil {
			return nil, &ValidationError{Field: "batch_id", Reason: fmt.Sprintf("batch %s not found", line.BatchID)}
		}
		if batch.MedicineID != medicine.ID {
			return nil, &ValidationError{Field: "batch_id", Reason: "batch does not belong to the medicine"}
		}
		if batch.IsExpired(now) {
			return nil, &ValidationError{Field: "batch_id", Reason: fmt.Sprintf("batch %s is expired", batch.BatchNumber)}
		}
		if batch.CurrentStock < line.Quantity {
			return nil, &InsufficientStockError{
				MedicineID: medicine.ID,
				Requested:  line.Quantity,
				Shortfall:  line.Quantity - batch.CurrentStock,
			}
		}

		lineSubtotal := batch.SellingPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineSubtotal)
		resolved = append(resolved, &resolvedLine{
			medicine:     medicine,
			batch:        batch,
			quantity:     line.Quantity,
			lineSubtotal: lineSubtotal,
		})
	}

	// 2. Pricing. The discount applies uniformly to the whole subtotal and
	// is apportioned back onto each line so GST is computed on what the
	// customer actually pays per line.
	discountAmount := subtotal.Mul(req.DiscountPercent).Div(decimal.NewFromInt(100)).Round(2)
	gstTotal := decimal.Zero
	for _, r := range resolved {
		cut := decimal.Zero
		if subtotal.IsPositive() {
			cut = discountAmount.Mul(r.lineSubtotal).Div(subtotal).Round(2)
		}
		r.discountCut = cut
		r.gstAmount = r.lineSubtotal.Sub(cut).
			Mul(r.medicine.GSTPercent).Div(decimal.NewFromInt(100)).Round(2)
		gstTotal = gstTotal.Add(r.gstAmount)
	}
	totalAmount := subtotal.Sub(discountAmount).Add(gstTotal)

	// 3. The transactional core.
	var sale model.Sale
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		seq, err := s.repo.NextInvoiceSeq(ctx, tx)
		if err != nil {
			return &PersistenceError{Op: "checkout: next invoice number", Err: err}
		}
		invoiceNumber := fmt.Sprintf("INV-%s-%05d", now.Format("20060102"), seq)

		sale = model.Sale{
			InvoiceNumber:  invoiceNumber,
			Subtotal:       subtotal,
			DiscountAmount: discountAmount,
			GSTAmount:      gstTotal,
			TotalAmount:    totalAmount,
			PaymentMethod:  req.PaymentMethod,
			SaleDate:       now,
			PharmacistID:   pharmacistID,
		}
		if req.Customer.Name != "" {
			sale.CustomerName = &req.Customer.Name
		}
		if req.Customer.Phone != "" {
			sale.CustomerPhone = &req.Customer.Phone
		}
		if req.Customer.DoctorName != "" {
			sale.DoctorName = &req.Customer.DoctorName
		}
		if req.Customer.PrescriptionNumber != "" {
			sale.PrescriptionNumber = &req.Customer.PrescriptionNumber
		}

		for _, r := range resolved {
			sale.Items = append(sale.Items, model.SaleItem{
				MedicineID:   r.medicine.ID,
				MedicineName: r.medicine.Name, // snapshot, survives later edits
				BatchID:      r.batch.ID,
				BatchNumber:  r.batch.BatchNumber,
				Quantity:     r.quantity,
				UnitPrice:    r.batch.SellingPrice,
				TotalPrice:   r.lineSubtotal,
				GSTAmount:    r.gstAmount,
			})
		}

		if err := s.repo.Create(ctx, tx, &sale); err != nil {
			return &PersistenceError{Op: "checkout: create sale", Err: err}
		}

		for _, r := range resolved {
			if err := s.batches.DecrementStockTx(tx, r.batch.ID, r.quantity); err != nil {
				if errors.Is(err, repository.ErrStockConflict) {
					return &InsufficientStockError{
						MedicineID: r.medicine.ID,
						Requested:  r.quantity,
						Shortfall:  r.quantity,
					}
				}
				return &PersistenceError{Op: fmt.Sprintf("checkout: decrement stock of %s", r.medicine.Name), Err: err}
			}
		}

		// Schedule H1 register: one entry per H1 line, sentinel values for
		// anything the customer did not provide.
		for _, r := range resolved {
			if !r.medicine.RequiresRegister() {
				continue
			}
			entry := &model.DispenseEntry{
				SaleID:              sale.ID,
				MedicineID:          r.medicine.ID,
				MedicineName:        r.medicine.Name,
				BatchNumber:         r.batch.BatchNumber,
				CustomerName:        orSentinel(req.Customer.Name, model.WalkInCustomer),
				DoctorName:          orSentinel(req.Customer.DoctorName, model.DoctorNotSpecified),
				PrescriptionNumber:  orSentinel(req.Customer.PrescriptionNumber, model.PrescriptionNotGiven),
				QuantityDispensed:   r.quantity,
				DispensedDate:       now,
				PharmacistSignature: pharmacist.Name,
			}
			if err := s.register.CreateTx(tx, entry); err != nil {
				return &PersistenceError{Op: "checkout: register entry", Err: err}
			}
		}

		after, _ := json.Marshal(map[string]interface{}{
			"invoice_number": sale.InvoiceNumber,
			"total_amount":   sale.TotalAmount,
			"items":          len(sale.Items),
		})
		snapshot := string(after)
		return s.audit.CreateTx(tx, &model.AuditEntry{
			UserID:     pharmacistID,
			Action:     model.AuditSale,
			EntityType: "sale",
			EntityID:   sale.ID,
			After:      &snapshot,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	// 4. Async document + alert jobs (best-effort, fire & forget).
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueDocument(ctx, worker.DocumentJob{
			Kind:   worker.DocumentInvoice,
			SaleID: sale.ID.String(),
		})
		medicineIDs := make([]string, 0, len(resolved))
		for _, r := range resolved {
			medicineIDs = append(medicineIDs, r.medicine.ID.String())
		}
		_ = s.dispatcher.EnqueueAlert(ctx, worker.AlertJob{MedicineIDs: medicineIDs})
	}

	return saleToResponse(&sale), nil
}

func orSentinel(v, sentinel string) string {
	if v == "" {
		return sentinel
	}
	return v
}

func (s *saleService) GetByID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return saleToResponse(sale), nil
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, &PersistenceError{Op: "list sales", Err: err}
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, dto.SaleItemResponse{
			MedicineID:   item.MedicineID.String(),
			MedicineName: item.MedicineName,
			BatchID:      item.BatchID.String(),
			BatchNumber:  item.BatchNumber,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			TotalPrice:   item.TotalPrice,
			GSTAmount:    item.GSTAmount,
		})
	}
	resp := &dto.SaleResponse{
		ID:             s.ID.String(),
		InvoiceNumber:  s.InvoiceNumber,
		Items:          items,
		Subtotal:       s.Subtotal,
		DiscountAmount: s.DiscountAmount,
		GSTAmount:      s.GSTAmount,
		TotalAmount:    s.TotalAmount,
		PaymentMethod:  s.PaymentMethod,
		SaleDate:       s.SaleDate.Format(time.RFC3339),
		PharmacistID:   s.PharmacistID.String(),
	}
	if s.CustomerName != nil {
		resp.CustomerName = *s.CustomerName
	}
	return resp
}
