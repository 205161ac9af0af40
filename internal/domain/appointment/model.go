package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment maps to the appointment table. A (doctor, date, time) slot is
// unique across all patients; the database index is the source of truth for
// availability.
type Appointment struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PatientID  uuid.UUID `db:"patient_id" json:"patientId"`
	DoctorID   uuid.UUID `db:"doctor_id" json:"doctorId"`
	HospitalID uuid.UUID `db:"hospital_id" json:"hospitalId"`
	Date       time.Time `db:"date" json:"date"`
	TimeSlot   string    `db:"time_slot" json:"time"`
	Status     string    `db:"status" json:"status"`
	Notes      *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
)
