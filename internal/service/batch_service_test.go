package service

import (
	"context"
	"testing"

	"github.com/Collegeyse/medicinai/internal/dto"
	"github.com/Collegeyse/medicinai/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type batchFixture struct {
	svc       BatchService
	batches   *stubBatchRepo
	medicines *stubMedicineRepo
	audit     *stubAuditRepo
	med       *model.Medicine
	userID    uuid.UUID
}

func newBatchFixture() *batchFixture {
	f := &batchFixture{
		batches:   newStubBatchRepo(),
		medicines: newStubMedicineRepo(),
		audit:     &stubAuditRepo{},
		userID:    uuid.New(),
	}
	f.med = f.medicines.add(&model.Medicine{Name: "Cetirizine 10mg"})
	f.svc = NewBatchService(f.batches, f.medicines, f.audit)
	return f
}

func validBatchRequest(number string) dto.CreateBatchRequest {
	return dto.CreateBatchRequest{
		BatchNumber:   number,
		ExpiryDate:    "2027-03-31",
		MRP:           decimal.RequireFromString("12.00"),
		SellingPrice:  decimal.RequireFromString("10.00"),
		PurchasePrice: decimal.RequireFromString("7.50"),
		Quantity:      100,
		MinStock:      10,
		MaxStock:      200,
	}
}

func TestAddBatch_ReusedNumberCreatesNewRow(t *testing.T) {
	f := newBatchFixture()

	first, err := f.svc.AddBatch(context.Background(), f.userID, f.med.ID, validBatchRequest("CZ-77"))
	require.NoError(t, err)
	second, err := f.svc.AddBatch(context.Background(), f.userID, f.med.ID, validBatchRequest("CZ-77"))
	require.NoError(t, err)

	// Restocks never merge: same number, distinct rows.
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, f.batches.batches, 2)
}

func TestAddBatch_RecordsPurchaseAudit(t *testing.T) {
	f := newBatchFixture()

	resp, err := f.svc.AddBatch(context.Background(), f.userID, f.med.ID, validBatchRequest("CZ-1"))
	require.NoError(t, err)
	assert.Equal(t, 100, resp.CurrentStock)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, model.AuditPurchase, f.audit.entries[0].Action)
	assert.Equal(t, "batch", f.audit.entries[0].EntityType)
}

func TestAddBatch_Validation(t *testing.T) {
	f := newBatchFixture()

	cases := []struct {
		name   string
		mutate func(*dto.CreateBatchRequest)
		field  string
	}{
		{"zero quantity", func(r *dto.CreateBatchRequest) { r.Quantity = 0 }, "quantity"},
		{"missing batch number", func(r *dto.CreateBatchRequest) { r.BatchNumber = "" }, "batch_number"},
		{"malformed expiry", func(r *dto.CreateBatchRequest) { r.ExpiryDate = "31/03/2027" }, "expiry_date"},
		{"negative price", func(r *dto.CreateBatchRequest) { r.SellingPrice = decimal.RequireFromString("-1") }, "price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validBatchRequest("CZ-2")
			tc.mutate(&req)
			_, err := f.svc.AddBatch(context.Background(), f.userID, f.med.ID, req)
			var invalid *ValidationError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tc.field, invalid.Field)
		})
	}
}

func TestAddBatch_UnknownMedicine(t *testing.T) {
	f := newBatchFixture()
	_, err := f.svc.AddBatch(context.Background(), f.userID, uuid.New(), validBatchRequest("CZ-3"))
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "medicine_id", invalid.Field)
}
