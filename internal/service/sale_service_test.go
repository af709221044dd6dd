package service

import (
	"context"
	"testing"
	"time"

	"github.com/Collegeyse/medicinai/internal/dto"
	"github.com/Collegeyse/medicinai/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleFixture struct {
	svc       *saleService
	sales     *stubSaleRepo
	batches   *stubBatchRepo
	medicines *stubMedicineRepo
	register  *stubDispenseRepo
	audit     *stubAuditRepo
	users     *stubUserRepo

	pharmacist *model.User
}

func newSaleFixture() *saleFixture {
	f := &saleFixture{
		sales:     newStubSaleRepo(),
		batches:   newStubBatchRepo(),
		medicines: newStubMedicineRepo(),
		register:  &stubDispenseRepo{},
		audit:     &stubAuditRepo{},
		users:     newStubUserRepo(),
	}
	f.pharmacist = f.users.add(&model.User{
		Username: "asha",
		Name:     "Asha Verma",
		Role:     "pharmacist",
		Active:   true,
	})
	svc := NewSaleService(f.sales, f.batches, f.medicines, f.register, f.audit, f.users, nil).(*saleService)
	svc.now = func() time.Time { return fixedNow }
	f.svc = svc
	return f
}

func (f *saleFixture) addMedicine(name string, schedule model.ScheduleType, gstPct int64) *model.Medicine {
	return f.medicines.add(&model.Medicine{
		Name:         name,
		ScheduleType: schedule,
		GSTPercent:   decimal.NewFromInt(gstPct),
	})
}

func (f *saleFixture) addBatch(m *model.Medicine, number string, stock int, price string) *model.Batch {
	return f.batches.add(&model.Batch{
		MedicineID:   m.ID,
		BatchNumber:  number,
		ExpiryDate:   fixedNow.AddDate(1, 0, 0),
		SellingPrice: decimal.RequireFromString(price),
		CurrentStock: stock,
		MinStock:     10,
		MaxStock:     100,
		ReceivedDate: fixedNow.AddDate(0, -1, 0),
	})
}

func line(m *model.Medicine, b *model.Batch, qty int) dto.CartLine {
	return dto.CartLine{
		MedicineID: m.ID.String(),
		BatchID:    b.ID.String(),
		Quantity:   qty,
	}
}

func TestCheckout_ConservationOfStock(t *testing.T) {
	f := newSaleFixture()
	paracetamol := f.addMedicine("Paracetamol 500mg", model.ScheduleGeneral, 12)
	b1 := f.addBatch(paracetamol, "P-001", 20, "10.00")
	b2 := f.addBatch(paracetamol, "P-002", 15, "10.50")

	before := b1.CurrentStock + b2.CurrentStock

	_, err := f.svc.Checkout(context.Background(), f.pharmacist.ID, dto.CheckoutRequest{
		Lines:         []dto.CartLine{line(paracetamol, b1, 7), line(paracetamol, b2, 4)},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	after := b1.CurrentStock + b2.CurrentStock
	assert.Equal(t, 11, before-after, "stock removed must equal quantity sold")
	assert.Equal(t, 13, b1.CurrentStock)
	assert.Equal(t, 11, b2.CurrentStock)
}

func TestCheckout_PricingWithDiscountAndGST(t *testing.T) {
	f := newSaleFixture()
	med := f.addMedicine("Azithromycin 250mg", model.ScheduleH, 12)
	batch := f.addBatch(med, "AZ-01", 50, "25.00")

	resp, err := f.svc.Checkout(context.Background(), f.pharmacist.ID, dto.CheckoutRequest{
		Lines:           []dto.CartLine{line(med, batch, 4)},
		PaymentMethod:   "upi",
		DiscountPercent: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	// 4 × 25.00 = 100.00; 10% discount = 10.00; GST 12% on 90.00 = 10.80
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("100.00")), "subtotal %s", resp.Subtotal)
	assert.True(t, resp.DiscountAmount.Equal(decimal.RequireFromString("10.00")), "discount %s", resp.DiscountAmount)
	assert.True(t, resp.GSTAmount.Equal(decimal.RequireFromString("10.80")), "gst %s", resp.GSTAmount)
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("100.80")), "total %s", resp.TotalAmount)
}

func TestCheckout_PricingIdempotentFromPersistedItems(t *testing.T) {
	f := newSaleFixture()
	medA := f.addMedicine("Cough Syrup", model.ScheduleGeneral, 5)
	medB := f.addMedicine("Ibuprofen 400mg", model.ScheduleGeneral, 12)
	bA := f.addBatch(medA, "CS-1", 30, "85.50")
	bB := f.addBatch(medB, "IB-1", 30, "12.75")

	resp, err := f.svc.Checkout(context.Background(), f.pharmacist.ID, dto.CheckoutRequest{
		Lines:           []dto.CartLine{line(medA, bA, 2), line(medB, bB, 6)},
		PaymentMethod:   "card",
		DiscountPercent: decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	saleID := uuid.MustParse(resp.ID)
	persisted, err := f.sales.FindByID(context.Background(), saleID)
	require.NoError(t, err)

	// Recompute from the stored items: quantity × unitPrice summed, minus
	// the stored discount, plus the per-line GST.
	recomputedSubtotal := decimal.Zero
	recomputedGST := decimal.Zero
	for _, item := range persisted.Items {
		recomputedSubtotal = recomputedSubtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		recomputedGST = recomputedGST.Add(item.GSTAmount)
	}
	recomputedTotal := recomputedSubtotal.Sub(persisted.DiscountAmount).Add(recomputedGST)

	assert.True(t, recomputedSubtotal.Equal(persisted.Subtotal))
	assert.True(t, recomputedGST.Equal(persisted.GSTAmount))
	assert.True(t, recomputedTotal.Equal(persisted.TotalAmount))
}

func TestCheckout_H1LinesProduceRegisterEntries(t *testing.T) {
	f := newSaleFixture()
	tramadol := f.addMedicine("Tramadol 50mg", model.ScheduleH1, 12)
	paracetamol := f.addMedicine("Paracetamol 500mg", model.ScheduleGeneral, 12)
	bT := f.addBatch(tramadol, "TR-9", 40, "30.00")
	bP := f.addBatch(paracetamol, "P-01", 40, "10.00")

	_, err := f.svc.Checkout(context.Background(), f.pharmacist.ID, dto.CheckoutRequest{
		Lines: []dto.CartLine{line(tramadol, bT, 10), line(paracetamol, bP, 5)},
		Customer: dto.CustomerInfo{
			Name:               "Ravi Kumar",
			DoctorName:         "Dr. Mehta",
			PrescriptionNumber: "RX-4921",
		},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	// Exactly one entry, only for the H1 line.
	require.Len(t, f.register.entries, 1)
	entry := f.register.entries[0]
	assert.Equal(t, tramadol.ID, entry.MedicineID)
	assert.Equal(t, "Tramadol 50mg", entry.MedicineName)
	assert.Equal(t, "TR-9", entry.BatchNumber)
	assert.Equal(t, 10, entry.QuantityDispensed)
	assert.Equal(t, "Ravi Kumar", entry.CustomerName)
	assert.Equal(t, "Dr. Mehta", entry.DoctorName)
	assert.Equal(t, "RX-4921", entry.PrescriptionNumber)
	assert.Equal(t, "Asha Verma", entry.PharmacistSignature)
}

func TestCheckout_H1SentinelsForMissingCustomerDetails(t *testing.T) {
	f := newSaleFixture()
	tramadol := f.addMedicine("Tramadol 50mg", model.ScheduleH1, 12)
	batch := f.addBatch(tramadol, "TR-10", 40, "30.00")

	// The sale never fails on missing details — the register records the gap.
	_, err := f.svc.Checkout(context.Background(), f.pharmacist.ID, dto.CheckoutRequest{
		Lines:         []dto.CartLine{line(tramadol, batch, 2)},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	require.Len(t, f.register.entries, 1)
	entry := f.register.entries[0]
	assert.Equal(t, model.WalkInCustomer, entry.CustomerName)
	assert.Equal(t, model.DoctorNotSpecified, entry.DoctorName)
	assert.Equal(t, model.PrescriptionNotGiven, entry.PrescriptionNumber)
}

func TestCheckout_NoH1LinesNoRegisterEntries(t *testing.T) {
	f := newSaleFixture()
	med := f.addMedicine("Vitamin C", model.ScheduleGeneral, 5)
	batch := f.addBatch(med, "VC-2", 40, "8.00")

	_, err := f.svc.Checkout(context.Background(), f.pharmacist.ID, dto.CheckoutRequest{
		Lines:         []dto.CartLine{line(med, batch, 3)},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	assert.Empty(t, f.register.entries)
}

func TestCheckout_SnapshotSurvivesMedicineRename(t *testing.T) {
	f := newSaleFixture()
	med := f.addMedicine("Amoxicillin 250mg", model.ScheduleGeneral, 12)
	batch := f.addBatch(med, "AMX-3", 40, "18.00")

	resp, err := f.svc.Checkout(context.Background(), f.pharmacist.ID, dto.CheckoutRequest{
		Lines:         []dto.CartLine{line(med, batch, 2)},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	med.Name = "Amoxicillin 500mg (renamed)"

	persisted, err := f.sales.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	require.Len(t, persisted.Items, 1)
	assert.Equal(t, "Amoxicillin 250mg", persisted.Items[0].MedicineName,
		"sale items keep the point-in-time name")
}

func TestCheckout_InsufficientBatchStock(t *testing.T) {
	f := newSaleFixture()
	med := f.addMedicine("Insulin", model.ScheduleH, 5)
	batch := f.addBatch(med, "IN-7", 3, "450.00")

	_, err := f.svc.Checkout(context.Background(), f.pharmacist.ID, dto.CheckoutRequest{
		Lines:         []dto.CartLine{line(med, batch, 5)},
		PaymentMethod: "cash",
	})
	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, insufficient.Shortfall)

	// Nothing was written.
	assert.Equal(t, 3, batch.CurrentStock)
	assert.Empty(t, f.sales.sales)
	assert.Empty(t, f.register.entries)
}

func TestCheckout_RejectsExpiredBatch(t *testing.T) {
	f := newSaleFixture()
	med := f.addMedicine("Eye Drops", model.ScheduleGeneral, 12)
	batch := f.addBatch(med, "ED-4", 10, "60.00")
	batch.ExpiryDate = fixedNow.AddDate(0, -1, 0)

	_, err := f.svc.Checkout(context.Background(), f.pharmacist.ID, dto.CheckoutRequest{
		Lines:         []dto.CartLine{line(med, batch, 1)},
		PaymentMethod: "cash",
	})
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 10, batch.CurrentStock)
}

func TestCheckout_RejectsEmptyCartAndBadDiscount(t *testing.T) {
	f := newSaleFixture()

	_, err := f.svc.Checkout(context.Background(), f.pharmacist.ID, dto.CheckoutRequest{
		PaymentMethod: "cash",
	})
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "lines", invalid.Field)

	med := f.addMedicine("Zinc", model.ScheduleGeneral, 5)
	batch := f.addBatch(med, "ZN-1", 10, "5.00")
	_, err = f.svc.Checkout(context.Background(), f.pharmacist.ID, dto.CheckoutRequest{
		Lines:           []dto.CartLine{line(med, batch, 1)},
		PaymentMethod:   "cash",
		DiscountPercent: decimal.NewFromInt(150),
	})
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "discount_percent", invalid.Field)
}

func TestCheckout_InvoiceNumberFormatAndAudit(t *testing.T) {
	f := newSaleFixture()
	med := f.addMedicine("Calpol", model.ScheduleGeneral, 12)
	batch := f.addBatch(med, "CP-11", 20, "15.00")

	resp, err := f.svc.Checkout(context.Background(), f.pharmacist.ID, dto.CheckoutRequest{
		Lines:         []dto.CartLine{line(med, batch, 1)},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-20240615-00001", resp.InvoiceNumber)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, model.AuditSale, f.audit.entries[0].Action)
	assert.Equal(t, "sale", f.audit.entries[0].EntityType)
}
