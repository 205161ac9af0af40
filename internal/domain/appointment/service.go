package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/techmed/techmed/internal/platform/apperr"
	"github.com/techmed/techmed/internal/platform/db"
)

const doctorSlotConstraint = "appointment_doctor_slot_key"

var errSlotTaken = apperr.WithMessage(apperr.ErrConflict, "doctor is not available at the selected date and time")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create books a slot for the owner. The availability pre-check gives the
// friendly error; the unique index closes the race when two patients grab
// the same slot between check and insert.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, a *Appointment) (*Appointment, error) {
	a.PatientID = ownerID
	a.Status = StatusPending

	free, err := s.repo.DoctorAvailable(ctx, a.DoctorID, a.Date, a.TimeSlot, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, errSlotTaken
	}

	if err := s.repo.Create(ctx, a); err != nil {
		if db.IsUniqueViolation(err, doctorSlotConstraint) {
			return nil, errSlotTaken
		}
		return nil, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id, ownerID)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.ListByPatient(ctx, ownerID, limit, offset)
}

// Update reschedules an owned appointment. The owner id comes from the
// session, never the payload, so a foreign id in the body cannot move the
// row to another patient.
func (s *Service) Update(ctx context.Context, ownerID uuid.UUID, a *Appointment) (*Appointment, error) {
	a.PatientID = ownerID

	free, err := s.repo.DoctorAvailable(ctx, a.DoctorID, a.Date, a.TimeSlot, a.ID)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, errSlotTaken
	}

	if err := s.repo.Update(ctx, a); err != nil {
		if db.IsUniqueViolation(err, doctorSlotConstraint) {
			return nil, errSlotTaken
		}
		return nil, err
	}
	return s.repo.GetByID(ctx, a.ID, ownerID)
}

// Cancel removes a pending appointment. Confirmed ones need the clinic.
func (s *Service) Cancel(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.Cancel(ctx, id, ownerID)
}
