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

func TestRegisterListMonth_FiltersByMonth(t *testing.T) {
	repo := &stubDispenseRepo{}
	repo.entries = []model.DispenseEntry{
		{
			ID:            uuid.New(),
			MedicineName:  "Tramadol 50mg",
			DispensedDate: time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:            uuid.New(),
			MedicineName:  "Alprax 0.5",
			DispensedDate: time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
		},
	}
	svc := NewRegisterService(repo, nil)

	resp, err := svc.ListMonth(context.Background(), time.June, 2024)
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Month)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "Tramadol 50mg", resp.Entries[0].MedicineName)
}

func TestRegisterListMonth_RejectsBadMonth(t *testing.T) {
	svc := NewRegisterService(&stubDispenseRepo{}, nil)
	_, err := svc.ListMonth(context.Background(), time.Month(13), 2024)
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
}

func TestRegisterExportPDF_NoDispatcher(t *testing.T) {
	svc := NewRegisterService(&stubDispenseRepo{}, nil)
	err := svc.ExportPDF(context.Background(), time.June, 2024)
	require.Error(t, err)
}
