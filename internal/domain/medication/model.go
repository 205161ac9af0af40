package medication

import (
	"time"

	"github.com/google/uuid"
)

// Medication is a patient-tracked course of a medicine from the directory.
type Medication struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	PatientID  uuid.UUID  `db:"patient_id" json:"patientId"`
	MedicineID uuid.UUID  `db:"medicine_id" json:"medicineId"`
	Dosage     string     `db:"dosage" json:"dosage"`
	StartDate  time.Time  `db:"start_date" json:"startDate"`
	EndDate    *time.Time `db:"end_date" json:"endDate,omitempty"`
	Notes      *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updatedAt"`
}
