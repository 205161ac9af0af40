package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is owner-scoped: every read and write that names an appointment
// also names the owning patient, and the two are matched in the same
// statement.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id, patientID uuid.UUID) (*Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	Update(ctx context.Context, a *Appointment) error
	// Cancel removes the appointment unless it is confirmed. Runs in a
	// transaction so the status check and the delete see the same row.
	Cancel(ctx context.Context, id, patientID uuid.UUID) error
	// DoctorAvailable reports whether the slot is free. excludeID skips the
	// appointment being rescheduled. Advisory only; the unique index decides.
	DoctorAvailable(ctx context.Context, doctorID uuid.UUID, date time.Time, timeSlot string, excludeID uuid.UUID) (bool, error)
}
