package worker

// document_worker.go
// Renders PDFs from QueueDocuments jobs: per-sale invoices and the monthly
// Schedule H1 register. The worker only reads already-committed records —
// document generation never mutates core state.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Collegeyse/medicinai/internal/infra"
	"github.com/Collegeyse/medicinai/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type DocumentWorker struct {
	sales       repository.SaleRepository
	register    repository.DispenseRepository
	storagePath string
}

func NewDocumentWorker(sales repository.SaleRepository, register repository.DispenseRepository, storagePath string) *DocumentWorker {
	return &DocumentWorker{sales: sales, register: register, storagePath: storagePath}
}

func (w *DocumentWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var job DocumentJob
	if err := json.Unmarshal(raw, &job); err != nil {
		log.Error().Err(err).Msg("document_worker: invalid payload")
		return err
	}

	switch job.Kind {
	case DocumentInvoice:
		return w.renderInvoice(ctx, job.SaleID)
	case DocumentRegister:
		return w.renderRegister(ctx, job.Month, job.Year)
	default:
		return fmt.Errorf("document_worker: unknown kind %q", job.Kind)
	}
}

func (w *DocumentWorker) renderInvoice(ctx context.Context, saleID string) error {
	id, err := uuid.Parse(saleID)
	if err != nil {
		return fmt.Errorf("document_worker: invalid sale_id %q", saleID)
	}
	sale, err := w.sales.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("document_worker: sale %s: %w", saleID, err)
	}
	path, err := infra.GenerateInvoicePDF(sale, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().Str("invoice", sale.InvoiceNumber).Str("path", path).Msg("document_worker: invoice rendered")
	return nil
}

func (w *DocumentWorker) renderRegister(ctx context.Context, month, year int) error {
	entries, err := w.register.ListByMonth(ctx, time.Month(month), year)
	if err != nil {
		return fmt.Errorf("document_worker: register %d-%02d: %w", year, month, err)
	}
	path, err := infra.GenerateRegisterPDF(entries, time.Month(month), year, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().Int("entries", len(entries)).Str("path", path).Msg("document_worker: H1 register rendered")
	return nil
}
