package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueDocuments = "jobs:documents"
	QueueAlerts    = "jobs:alerts"

	// RestockQueueKey is the explicit hand-off queue between the alert
	// worker and the restocking workflow — suggestions travel here, not
	// through any ambient shared storage.
	RestockQueueKey = "restock:suggestions"
)

// ErrDispatcherUnavailable is returned when async work is requested but no
// queue backend was configured.
var ErrDispatcherUnavailable = errors.New("worker: dispatcher unavailable")

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Document kinds handled by the document worker.
const (
	DocumentInvoice  = "invoice"
	DocumentRegister = "h1_register"
)

// DocumentJob asks the document worker to render a PDF: either the invoice
// of a sale or the Schedule H1 register for a month.
type DocumentJob struct {
	Kind   string `json:"kind"`
	SaleID string `json:"sale_id,omitempty"`
	Month  int    `json:"month,omitempty"`
	Year   int    `json:"year,omitempty"`
}

// AlertJob asks the alert worker to re-evaluate stock health for the
// medicines touched by a sale.
type AlertJob struct {
	MedicineIDs []string `json:"medicine_ids"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueDocument pushes a PDF rendering job.
func (d *Dispatcher) EnqueueDocument(ctx context.Context, job DocumentJob) error {
	return d.enqueue(ctx, QueueDocuments, job.Kind, job)
}

// EnqueueAlert pushes a stock health evaluation job.
func (d *Dispatcher) EnqueueAlert(ctx context.Context, job AlertJob) error {
	return d.enqueue(ctx, QueueAlerts, "stock_alert", job)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	if d == nil || d.rdb == nil {
		return ErrDispatcherUnavailable
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// WorkerHandlers groups the concrete processors consumed by the pool.
type WorkerHandlers struct {
	Documents *DocumentWorker
	Alerts    *AlertWorker
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	queues := []string{QueueDocuments, QueueAlerts}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	var procErr error
	switch queue {
	case QueueDocuments:
		procErr = handlers.Documents.Process(ctx, job.Payload)
	case QueueAlerts:
		procErr = handlers.Alerts.Process(ctx, job.Payload)
	default:
		log.Warn().Str("queue", queue).Msg("job from unknown queue dropped")
		return
	}

	if procErr != nil {
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, procErr.Error(), 1)
	}
}
