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

type medicineFixture struct {
	svc       MedicineService
	medicines *stubMedicineRepo
	batches   *stubBatchRepo
	audit     *stubAuditRepo
	userID    uuid.UUID
}

func newMedicineFixture() *medicineFixture {
	f := &medicineFixture{
		medicines: newStubMedicineRepo(),
		batches:   newStubBatchRepo(),
		audit:     &stubAuditRepo{},
		userID:    uuid.New(),
	}
	f.svc = NewMedicineService(f.medicines, f.batches, f.audit)
	return f
}

func TestMedicineDelete_RefusedWhileStockRemains(t *testing.T) {
	f := newMedicineFixture()
	med := f.medicines.add(&model.Medicine{Name: "Metformin 500mg"})
	f.batches.add(&model.Batch{
		MedicineID:   med.ID,
		BatchNumber:  "MT-1",
		ExpiryDate:   time.Now().AddDate(1, 0, 0),
		CurrentStock: 4,
	})

	err := f.svc.Delete(context.Background(), f.userID, med.ID)
	var activeStock *HasActiveStockError
	require.ErrorAs(t, err, &activeStock)
	assert.Equal(t, med.ID, activeStock.MedicineID)
	assert.Equal(t, 1, activeStock.Batches)

	// No partial deletion: medicine and batch both still present.
	_, findErr := f.medicines.FindByID(context.Background(), med.ID)
	assert.NoError(t, findErr)
	assert.Len(t, f.batches.batches, 1)
}

func TestMedicineDelete_RemovesMedicineAndDrainedBatches(t *testing.T) {
	f := newMedicineFixture()
	med := f.medicines.add(&model.Medicine{Name: "Metformin 500mg"})
	f.batches.add(&model.Batch{
		MedicineID:   med.ID,
		BatchNumber:  "MT-1",
		ExpiryDate:   time.Now().AddDate(1, 0, 0),
		CurrentStock: 0,
	})

	err := f.svc.Delete(context.Background(), f.userID, med.ID)
	require.NoError(t, err)

	_, findErr := f.medicines.FindByID(context.Background(), med.ID)
	assert.Error(t, findErr)
	assert.Empty(t, f.batches.batches)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, model.AuditDelete, f.audit.entries[0].Action)
	require.NotNil(t, f.audit.entries[0].Before)
	assert.Contains(t, *f.audit.entries[0].Before, "Metformin 500mg")
}

func TestMedicineDelete_UnknownID(t *testing.T) {
	f := newMedicineFixture()
	err := f.svc.Delete(context.Background(), f.userID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMedicineCreate_ValidationAndAudit(t *testing.T) {
	f := newMedicineFixture()

	_, err := f.svc.Create(context.Background(), f.userID, dto.CreateMedicineRequest{})
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "name", invalid.Field)

	resp, err := f.svc.Create(context.Background(), f.userID, dto.CreateMedicineRequest{
		Name:         "Dolo 650",
		ScheduleType: "GENERAL",
		GSTPercent:   decimal.NewFromInt(12),
	})
	require.NoError(t, err)
	assert.Equal(t, "Dolo 650", resp.Name)
	assert.Equal(t, 0, resp.TotalStock)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, model.AuditCreate, f.audit.entries[0].Action)
}

func TestMedicineUpdate_ScheduleChangeOnlyAffectsFutureDispenses(t *testing.T) {
	f := newMedicineFixture()
	med := f.medicines.add(&model.Medicine{
		Name:         "Alprax 0.5",
		ScheduleType: model.ScheduleH,
	})

	newSchedule := "H1"
	resp, err := f.svc.Update(context.Background(), f.userID, med.ID, dto.UpdateMedicineRequest{
		ScheduleType: &newSchedule,
	})
	require.NoError(t, err)
	assert.Equal(t, "H1", resp.ScheduleType)

	require.Len(t, f.audit.entries, 1)
	entry := f.audit.entries[0]
	assert.Equal(t, model.AuditUpdate, entry.Action)
	require.NotNil(t, entry.Before)
	require.NotNil(t, entry.After)
	assert.NotEqual(t, *entry.Before, *entry.After)
}

func TestMedicineTotalStock_ExcludesExpiredBatches(t *testing.T) {
	f := newMedicineFixture()
	med := f.medicines.add(&model.Medicine{Name: "ORS Sachet"})
	f.batches.add(&model.Batch{
		MedicineID:   med.ID,
		ExpiryDate:   time.Now().AddDate(1, 0, 0),
		CurrentStock: 12,
	})
	f.batches.add(&model.Batch{
		MedicineID:   med.ID,
		ExpiryDate:   time.Now().AddDate(0, -1, 0),
		CurrentStock: 99,
	})

	resp, err := f.svc.GetByID(context.Background(), med.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, resp.TotalStock)
}
