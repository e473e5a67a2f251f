package domain

import (
	"fmt"

	"flyrecord/internal/validation"
)

// ValidationError rejects a create or update whose field or relational
// validation failed. Fields maps field names to human-readable messages.
// The store never partially applies a mutation that produced one.
type ValidationError struct {
	Entity EntityType
	Fields validation.Errors
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Entity, e.Fields.Summary())
}

// NotFoundError reports that no record with the given id exists for the
// entity type.
type NotFoundError struct {
	Entity EntityType
	ID     int
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// IntegrityError blocks deletion of a client or airline while flights
// still reference it. FlightCount carries the number of referencing
// flights for caller-facing messages.
type IntegrityError struct {
	Entity      EntityType
	ID          int
	FlightCount int
}

func (e IntegrityError) Error() string {
	return fmt.Sprintf("cannot delete %s %d: referenced by %d flight records", e.Entity, e.ID, e.FlightCount)
}

// PersistenceError reports a failed snapshot write. The in-memory
// mutation that triggered the write is already committed when this error
// surfaces; callers are expected to warn the user rather than retry
// blindly.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e PersistenceError) Unwrap() error { return e.Err }
