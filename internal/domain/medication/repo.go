package medication

import (
	"context"

	"github.com/google/uuid"
)

// Repository is owner-scoped; see the appointment repository for the pattern.
type Repository interface {
	Create(ctx context.Context, m *Medication) error
	GetByID(ctx context.Context, id, patientID uuid.UUID) (*Medication, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Medication, int, error)
	Update(ctx context.Context, m *Medication) error
	Delete(ctx context.Context, id, patientID uuid.UUID) error
}
