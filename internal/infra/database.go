package infra

import (
	"fmt"

	"github.com/Collegeyse/medicinai/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for all tables, then applies the idempotent SQL patches GORM cannot
// express (the invoice sequence, check constraint, partial index).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Supplier{},
		&model.Medicine{},
		&model.Batch{},
		&model.Sale{},
		&model.SaleItem{},
		&model.DispenseEntry{},
		&model.AuditEntry{},
	)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate does not cover.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Invoice numbers combine a date prefix with this sequence.
		`CREATE SEQUENCE IF NOT EXISTS sales_invoice_seq`,
		// Stock may never go negative; the conditional decrement already
		// guarantees it, the constraint is the backstop.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_batches_stock_nonnegative') THEN
		    ALTER TABLE batches ADD CONSTRAINT chk_batches_stock_nonnegative CHECK (current_stock >= 0);
		  END IF;
		END $$`,
		// Partial index for the allocation candidate query.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_batches_sellable') THEN
		    CREATE INDEX idx_batches_sellable
		        ON batches (medicine_id, expiry_date)
		        WHERE current_stock > 0;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
