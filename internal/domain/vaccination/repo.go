package vaccination

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, v *Vaccination) error
	GetByID(ctx context.Context, id, patientID uuid.UUID) (*Vaccination, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Vaccination, int, error)
	Update(ctx context.Context, v *Vaccination) error
	Delete(ctx context.Context, id, patientID uuid.UUID) error
}
