package vaccination

import (
	"time"

	"github.com/google/uuid"
)

// Vaccination is a patient-recorded immunization entry.
type Vaccination struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patientId"`
	VaccineName string    `db:"vaccine_name" json:"vaccineName"`
	VaccineDate time.Time `db:"vaccine_date" json:"vaccineDate"`
	Notes       *string   `db:"notes" json:"vaccineNotes,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
