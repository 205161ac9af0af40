package vaccination

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/techmed/techmed/internal/platform/apperr"
)

type mockRepo struct {
	data map[uuid.UUID]*Vaccination
}

func newMockRepo() *mockRepo {
	return &mockRepo{data: map[uuid.UUID]*Vaccination{}}
}

func (m *mockRepo) Create(_ context.Context, v *Vaccination) error {
	v.ID = uuid.New()
	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt
	m.data[v.ID] = v
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id, patientID uuid.UUID) (*Vaccination, error) {
	if v, ok := m.data[id]; ok && v.PatientID == patientID {
		cp := *v
		return &cp, nil
	}
	return nil, fmt.Errorf("vaccination %s: %w", id, apperr.ErrNotFound)
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Vaccination, int, error) {
	var out []*Vaccination
	for _, v := range m.data {
		if v.PatientID == patientID {
			out = append(out, v)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) Update(_ context.Context, v *Vaccination) error {
	cur, ok := m.data[v.ID]
	if !ok || cur.PatientID != v.PatientID {
		return fmt.Errorf("vaccination %s: %w", v.ID, apperr.ErrNotFound)
	}
	m.data[v.ID] = v
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id, patientID uuid.UUID) error {
	if v, ok := m.data[id]; !ok || v.PatientID != patientID {
		return fmt.Errorf("vaccination %s: %w", id, apperr.ErrNotFound)
	}
	delete(m.data, id)
	return nil
}

func newVacc() *Vaccination {
	date, _ := time.Parse("2006-01-02", "2026-07-01")
	return &Vaccination{VaccineName: "Influenza", VaccineDate: date}
}

func TestCreate_SetsOwner(t *testing.T) {
	svc := NewService(newMockRepo())
	owner := uuid.New()

	in := newVacc()
	in.PatientID = uuid.New()
	v, err := svc.Create(context.Background(), owner, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.PatientID != owner {
		t.Error("owner must come from the session, not the payload")
	}
}

func TestGet_Foreign(t *testing.T) {
	svc := NewService(newMockRepo())
	v, _ := svc.Create(context.Background(), uuid.New(), newVacc())

	_, err := svc.Get(context.Background(), uuid.New(), v.ID)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("foreign read must 404, got %v", err)
	}
}

func TestUpdate_RoundTrip(t *testing.T) {
	svc := NewService(newMockRepo())
	owner := uuid.New()
	v, _ := svc.Create(context.Background(), owner, newVacc())

	upd := newVacc()
	upd.ID = v.ID
	upd.VaccineName = "Hepatitis B"
	got, err := svc.Update(context.Background(), owner, upd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.VaccineName != "Hepatitis B" {
		t.Errorf("name = %q", got.VaccineName)
	}
}

func TestDelete_Foreign(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	v, _ := svc.Create(context.Background(), uuid.New(), newVacc())

	if err := svc.Delete(context.Background(), uuid.New(), v.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("foreign delete must 404, got %v", err)
	}
	if _, ok := repo.data[v.ID]; !ok {
		t.Error("row must survive a foreign delete")
	}
}
