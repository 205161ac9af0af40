package appointment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/techmed/techmed/internal/platform/apperr"
)

type mockRepo struct {
	data map[uuid.UUID]*Appointment
	fail error
	// forceAvailable makes the advisory check lie, simulating the window
	// between pre-check and insert.
	forceAvailable bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{data: map[uuid.UUID]*Appointment{}}
}

func (m *mockRepo) slotTaken(doctorID uuid.UUID, date time.Time, slot string, exclude uuid.UUID) bool {
	for _, a := range m.data {
		if a.DoctorID == doctorID && a.Date.Equal(date) && a.TimeSlot == slot && a.ID != exclude {
			return true
		}
	}
	return false
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	if m.fail != nil {
		return m.fail
	}
	if m.slotTaken(a.DoctorID, a.Date, a.TimeSlot, uuid.Nil) {
		return fmt.Errorf("insert appointment: %w",
			&pgconn.PgError{Code: "23505", ConstraintName: "appointment_doctor_slot_key"})
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	m.data[a.ID] = a
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id, patientID uuid.UUID) (*Appointment, error) {
	if a, ok := m.data[id]; ok && a.PatientID == patientID {
		cp := *a
		return &cp, nil
	}
	return nil, fmt.Errorf("appointment %s: %w", id, apperr.ErrNotFound)
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var out []*Appointment
	for _, a := range m.data {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) Update(_ context.Context, a *Appointment) error {
	cur, ok := m.data[a.ID]
	if !ok || cur.PatientID != a.PatientID {
		return fmt.Errorf("appointment %s: %w", a.ID, apperr.ErrNotFound)
	}
	if m.slotTaken(a.DoctorID, a.Date, a.TimeSlot, a.ID) {
		return fmt.Errorf("insert appointment: %w",
			&pgconn.PgError{Code: "23505", ConstraintName: "appointment_doctor_slot_key"})
	}
	a.Status = cur.Status
	m.data[a.ID] = a
	return nil
}

func (m *mockRepo) Cancel(_ context.Context, id, patientID uuid.UUID) error {
	a, ok := m.data[id]
	if !ok || a.PatientID != patientID {
		return fmt.Errorf("appointment %s: %w", id, apperr.ErrNotFound)
	}
	if a.Status == StatusConfirmed {
		return apperr.WithMessage(apperr.ErrInvalidState, "confirmed appointments cannot be cancelled")
	}
	delete(m.data, id)
	return nil
}

func (m *mockRepo) DoctorAvailable(_ context.Context, doctorID uuid.UUID, date time.Time, slot string, excludeID uuid.UUID) (bool, error) {
	if m.fail != nil {
		return false, m.fail
	}
	if m.forceAvailable {
		return true, nil
	}
	return !m.slotTaken(doctorID, date, slot, excludeID), nil
}

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func newAppt(doctorID uuid.UUID) *Appointment {
	return &Appointment{
		DoctorID:   doctorID,
		HospitalID: uuid.New(),
		Date:       day("2026-09-15"),
		TimeSlot:   "10:00",
	}
}

func TestCreate_SetsOwnerAndPending(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	owner := uuid.New()

	a, err := svc.Create(context.Background(), owner, newAppt(uuid.New()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.PatientID != owner {
		t.Error("owner must come from the session")
	}
	if a.Status != StatusPending {
		t.Errorf("status = %q, want pending", a.Status)
	}
}

func TestCreate_IgnoresPayloadOwner(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	owner := uuid.New()

	in := newAppt(uuid.New())
	in.PatientID = uuid.New()
	a, err := svc.Create(context.Background(), owner, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.PatientID != owner {
		t.Error("client-supplied patient id must be overwritten")
	}
}

func TestCreate_DoctorBusy(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	doctor := uuid.New()

	if _, err := svc.Create(context.Background(), uuid.New(), newAppt(doctor)); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	_, err := svc.Create(context.Background(), uuid.New(), newAppt(doctor))
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestCreate_ConstraintBackstop(t *testing.T) {
	repo := newMockRepo()
	repo.forceAvailable = true
	svc := NewService(repo)
	doctor := uuid.New()

	if _, err := svc.Create(context.Background(), uuid.New(), newAppt(doctor)); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// Pre-check passes but the insert loses the race to the unique index.
	_, err := svc.Create(context.Background(), uuid.New(), newAppt(doctor))
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("expected ErrConflict from constraint, got %v", err)
	}
	if err != nil && err.Error() != errSlotTaken.Error() {
		t.Errorf("constraint failure must read like the pre-check failure, got %q", err)
	}
}

func TestUpdate_KeepsOwnSlot(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	owner := uuid.New()
	doctor := uuid.New()

	a, err := svc.Create(context.Background(), owner, newAppt(doctor))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Rescheduling onto its own slot must not conflict with itself.
	upd := newAppt(doctor)
	upd.ID = a.ID
	if _, err := svc.Update(context.Background(), owner, upd); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestUpdate_NotOwned(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	owner := uuid.New()

	a, err := svc.Create(context.Background(), owner, newAppt(uuid.New()))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	upd := newAppt(uuid.New())
	upd.ID = a.ID
	_, err = svc.Update(context.Background(), uuid.New(), upd)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("foreign owner must see not-found, got %v", err)
	}
}

func TestCancel_Pending(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	owner := uuid.New()

	a, _ := svc.Create(context.Background(), owner, newAppt(uuid.New()))
	if err := svc.Cancel(context.Background(), owner, a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.data[a.ID]; ok {
		t.Error("cancelled appointment must be gone")
	}
}

func TestCancel_Confirmed(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	owner := uuid.New()

	a, _ := svc.Create(context.Background(), owner, newAppt(uuid.New()))
	repo.data[a.ID].Status = StatusConfirmed

	err := svc.Cancel(context.Background(), owner, a.ID)
	if !errors.Is(err, apperr.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
	if _, ok := repo.data[a.ID]; !ok {
		t.Error("confirmed appointment must survive a cancel attempt")
	}
}

func TestCancel_NotOwned(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	a, _ := svc.Create(context.Background(), uuid.New(), newAppt(uuid.New()))
	err := svc.Cancel(context.Background(), uuid.New(), a.ID)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("foreign owner must see not-found, got %v", err)
	}
}
