package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Typed domain errors. Handlers and callers inspect these with errors.As —
// the error kind is never reduced to its string form.

// InsufficientStockError is returned when a requested quantity exceeds the
// combined sellable stock of all eligible batches. No mutation precedes it.
type InsufficientStockError struct {
	MedicineID uuid.UUID
	Requested  int
	Shortfall  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for medicine %s: requested %d, short by %d",
		e.MedicineID, e.Requested, e.Shortfall)
}

// HasActiveStockError blocks medicine deletion while any of its batches
// still hold stock.
type HasActiveStockError struct {
	MedicineID uuid.UUID
	Batches    int
}

func (e *HasActiveStockError) Error() string {
	return fmt.Sprintf("medicine %s still has %d batch(es) with stock on hand", e.MedicineID, e.Batches)
}

// ValidationError reports malformed input before any mutation occurs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError wraps a failed record-store read or write. Fatal for the
// current operation; retries belong to the store layer, not here.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }

// ErrNotFound is returned by lookups for ids that do not exist.
var ErrNotFound = errors.New("record not found")
