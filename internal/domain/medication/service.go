package medication

import (
	"context"

	"github.com/google/uuid"

	"github.com/techmed/techmed/internal/platform/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, m *Medication) (*Medication, error) {
	m.PatientID = ownerID
	if m.EndDate != nil && m.EndDate.Before(m.StartDate) {
		return nil, apperr.Validation(map[string]string{"endDate": "endDate must not be before startDate"})
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Medication, error) {
	return s.repo.GetByID(ctx, id, ownerID)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Medication, int, error) {
	return s.repo.ListByPatient(ctx, ownerID, limit, offset)
}

func (s *Service) Update(ctx context.Context, ownerID uuid.UUID, m *Medication) (*Medication, error) {
	m.PatientID = ownerID
	if m.EndDate != nil && m.EndDate.Before(m.StartDate) {
		return nil, apperr.Validation(map[string]string{"endDate": "endDate must not be before startDate"})
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, m.ID, ownerID)
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.Delete(ctx, id, ownerID)
}
