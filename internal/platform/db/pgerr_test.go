package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/techmed/techmed/internal/platform/apperr"
)

func TestMapError_Nil(t *testing.T) {
	if MapError(nil) != nil {
		t.Error("expected nil for nil error")
	}
}

func TestMapError_NoRows(t *testing.T) {
	err := MapError(pgx.ErrNoRows)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMapError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "patient_email_key"}
	err := MapError(fmt.Errorf("insert: %w", pgErr))
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestMapError_ForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "patient_medication_medicine_id_fkey"}
	err := MapError(pgErr)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMapError_Timeout(t *testing.T) {
	err := MapError(context.DeadlineExceeded)
	if !errors.Is(err, apperr.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestMapError_Unknown(t *testing.T) {
	err := MapError(errors.New("connection refused"))
	if !errors.Is(err, apperr.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "appointment_doctor_slot_key"}
	wrapped := fmt.Errorf("insert appointment: %w", pgErr)

	if !IsUniqueViolation(wrapped, "appointment_doctor_slot_key") {
		t.Error("expected match on constraint name")
	}
	if IsUniqueViolation(wrapped, "patient_email_key") {
		t.Error("expected no match on different constraint")
	}
	if IsUniqueViolation(errors.New("plain"), "appointment_doctor_slot_key") {
		t.Error("expected no match on non-pg error")
	}
}
