package vaccination

import (
	"context"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, v *Vaccination) (*Vaccination, error) {
	v.PatientID = ownerID
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Vaccination, error) {
	return s.repo.GetByID(ctx, id, ownerID)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Vaccination, int, error) {
	return s.repo.ListByPatient(ctx, ownerID, limit, offset)
}

func (s *Service) Update(ctx context.Context, ownerID uuid.UUID, v *Vaccination) (*Vaccination, error) {
	v.PatientID = ownerID
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, v.ID, ownerID)
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.Delete(ctx, id, ownerID)
}
