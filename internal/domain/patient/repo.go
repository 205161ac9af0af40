package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByEmail(ctx context.Context, email string) (*Patient, error)
	// FindConflicts returns the names of unique fields (email, phoneNumber,
	// nationalId) already taken by another account.
	FindConflicts(ctx context.Context, email, phone, nationalID string) ([]string, error)
	UpdateProfile(ctx context.Context, p *Patient) error
	UpdatePassword(ctx context.Context, id uuid.UUID, newHash string) error
}
