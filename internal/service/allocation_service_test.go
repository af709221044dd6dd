package service

import (
	"context"
	"testing"
	"time"

	"github.com/Collegeyse/medicinai/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newAllocationFixture() (*allocationService, *stubBatchRepo) {
	repo := newStubBatchRepo()
	svc := NewAllocationService(repo).(*allocationService)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func batchOn(medicineID uuid.UUID, stock int, expiry time.Time) *model.Batch {
	return &model.Batch{
		MedicineID:   medicineID,
		BatchNumber:  "BN-" + expiry.Format("20060102"),
		ExpiryDate:   expiry,
		CurrentStock: stock,
	}
}

func TestSelectBatchesForSale_FEFOSplit(t *testing.T) {
	svc, repo := newAllocationFixture()
	medicineID := uuid.New()

	// A: 5 units expiring first, B: 10 units expiring later. Requesting 8
	// must drain A completely and take 3 from B.
	a := repo.add(batchOn(medicineID, 5, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	b := repo.add(batchOn(medicineID, 10, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))

	allocations, err := svc.SelectBatchesForSale(context.Background(), medicineID, 8)
	require.NoError(t, err)
	require.Len(t, allocations, 2)

	assert.Equal(t, a.ID, allocations[0].Batch.ID)
	assert.Equal(t, 5, allocations[0].Quantity)
	assert.Equal(t, b.ID, allocations[1].Batch.ID)
	assert.Equal(t, 3, allocations[1].Quantity)
}

func TestSelectBatchesForSale_AscendingExpiryAndExactSum(t *testing.T) {
	svc, repo := newAllocationFixture()
	medicineID := uuid.New()

	repo.add(batchOn(medicineID, 4, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)))
	repo.add(batchOn(medicineID, 4, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)))
	repo.add(batchOn(medicineID, 4, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))

	allocations, err := svc.SelectBatchesForSale(context.Background(), medicineID, 10)
	require.NoError(t, err)

	total := 0
	for i, a := range allocations {
		total += a.Quantity
		if i > 0 {
			assert.False(t, a.Batch.ExpiryDate.Before(allocations[i-1].Batch.ExpiryDate),
				"allocations must walk expiry dates in ascending order")
		}
	}
	assert.Equal(t, 10, total)
}

func TestSelectBatchesForSale_ExpiredNeverSelected(t *testing.T) {
	svc, repo := newAllocationFixture()
	medicineID := uuid.New()

	// Expired batch has the earliest expiry and ample stock — still skipped.
	repo.add(batchOn(medicineID, 100, fixedNow.AddDate(0, -1, 0)))
	fresh := repo.add(batchOn(medicineID, 10, fixedNow.AddDate(1, 0, 0)))

	allocations, err := svc.SelectBatchesForSale(context.Background(), medicineID, 5)
	require.NoError(t, err)
	require.Len(t, allocations, 1)
	assert.Equal(t, fresh.ID, allocations[0].Batch.ID)
}

func TestSelectBatchesForSale_InsufficientStock(t *testing.T) {
	svc, repo := newAllocationFixture()
	medicineID := uuid.New()

	repo.add(batchOn(medicineID, 5, fixedNow.AddDate(0, 6, 0)))
	repo.add(batchOn(medicineID, 2, fixedNow.AddDate(1, 0, 0)))

	_, err := svc.SelectBatchesForSale(context.Background(), medicineID, 12)
	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, medicineID, insufficient.MedicineID)
	assert.Equal(t, 12, insufficient.Requested)
	assert.Equal(t, 5, insufficient.Shortfall)

	// Advisory only: nothing was consumed.
	for _, b := range repo.batches {
		assert.Contains(t, []int{5, 2}, b.CurrentStock)
	}
}

func TestSelectBatchesForSale_NoEligibleCandidates(t *testing.T) {
	svc, repo := newAllocationFixture()
	medicineID := uuid.New()

	// C: stock but expired. D: future expiry but drained. Neither qualifies,
	// so the shortfall equals the full request.
	repo.add(batchOn(medicineID, 3, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
	repo.add(batchOn(medicineID, 0, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))

	_, err := svc.SelectBatchesForSale(context.Background(), medicineID, 4)
	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 4, insufficient.Shortfall)
}

func TestSelectBatchesForSale_TieBreakDeterministic(t *testing.T) {
	svc, repo := newAllocationFixture()
	medicineID := uuid.New()
	expiry := fixedNow.AddDate(0, 3, 0)

	first := batchOn(medicineID, 5, expiry)
	first.ID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	second := batchOn(medicineID, 5, expiry)
	second.ID = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	repo.add(second)
	repo.add(first)

	allocations, err := svc.SelectBatchesForSale(context.Background(), medicineID, 7)
	require.NoError(t, err)
	require.Len(t, allocations, 2)
	assert.Equal(t, first.ID, allocations[0].Batch.ID)
	assert.Equal(t, 5, allocations[0].Quantity)
	assert.Equal(t, second.ID, allocations[1].Batch.ID)
	assert.Equal(t, 2, allocations[1].Quantity)
}

func TestSelectBatchesForSale_RejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newAllocationFixture()

	_, err := svc.SelectBatchesForSale(context.Background(), uuid.New(), 0)
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "quantity", invalid.Field)
}
