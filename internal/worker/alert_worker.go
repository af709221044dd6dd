package worker

// alert_worker.go
// Re-evaluates stock health after a sale. Low-stock findings are pushed to
// the explicit restock hand-off queue and, when configured, mailed to the
// pharmacy owner.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Collegeyse/medicinai/internal/infra"
	"github.com/Collegeyse/medicinai/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RestockSignal is the message pushed onto RestockQueueKey for each batch
// that dropped to or below its minimum after a sale.
type RestockSignal struct {
	MedicineID   string `json:"medicine_id"`
	MedicineName string `json:"medicine_name"`
	BatchNumber  string `json:"batch_number"`
	CurrentStock int    `json:"current_stock"`
	MinStock     int    `json:"min_stock"`
}

type AlertWorker struct {
	batches    repository.BatchRepository
	rdb        *redis.Client
	mailer     *infra.Mailer
	alertEmail string
}

func NewAlertWorker(batches repository.BatchRepository, rdb *redis.Client, mailer *infra.Mailer, alertEmail string) *AlertWorker {
	return &AlertWorker{batches: batches, rdb: rdb, mailer: mailer, alertEmail: alertEmail}
}

func (w *AlertWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var job AlertJob
	if err := json.Unmarshal(raw, &job); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return err
	}
	touched := make(map[string]bool, len(job.MedicineIDs))
	for _, id := range job.MedicineIDs {
		touched[id] = true
	}

	low, err := w.batches.FindLowStock(ctx)
	if err != nil {
		return fmt.Errorf("alert_worker: low stock query: %w", err)
	}

	var lines []string
	for _, b := range low {
		if len(touched) > 0 && !touched[b.MedicineID.String()] {
			continue
		}
		name := b.BatchNumber
		if b.Medicine != nil {
			name = b.Medicine.Name
		}
		signal := RestockSignal{
			MedicineID:   b.MedicineID.String(),
			MedicineName: name,
			BatchNumber:  b.BatchNumber,
			CurrentStock: b.CurrentStock,
			MinStock:     b.MinStock,
		}
		data, err := json.Marshal(signal)
		if err != nil {
			continue
		}
		if err := w.rdb.LPush(ctx, RestockQueueKey, data).Err(); err != nil {
			return fmt.Errorf("alert_worker: push restock signal: %w", err)
		}
		lines = append(lines, fmt.Sprintf("%s (batch %s): %d left, minimum %d",
			name, b.BatchNumber, b.CurrentStock, b.MinStock))
	}

	if len(lines) == 0 {
		return nil
	}
	log.Warn().Int("batches", len(lines)).Msg("alert_worker: low stock detected")

	if w.mailer != nil && w.alertEmail != "" {
		body := "The following batches are at or below their minimum stock:\n\n" + strings.Join(lines, "\n")
		if err := w.mailer.Send(w.alertEmail, "Low stock alert", body, ""); err != nil {
			// Mail failure must not dead-letter the job — the restock queue
			// already carries the signal.
			log.Error().Err(err).Msg("alert_worker: failed to send alert mail")
		}
	}
	return nil
}
