package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. It is the account record gating access
// to every per-patient resource. PasswordHash never serializes and must be
// stripped before the record leaves the credential store boundary.
type Patient struct {
	ID                    uuid.UUID  `db:"id" json:"id"`
	Name                  string     `db:"name" json:"name"`
	Email                 string     `db:"email" json:"email"`
	PasswordHash          string     `db:"password_hash" json:"-"`
	PhoneNumber           string     `db:"phone_number" json:"phoneNumber"`
	NationalID            string     `db:"national_id" json:"nationalId"`
	Gender                *string    `db:"gender" json:"gender,omitempty"`
	BirthDate             *time.Time `db:"birth_date" json:"birthDate,omitempty"`
	MaritalStatus         *string    `db:"marital_status" json:"maritalStatus,omitempty"`
	Allergies             *string    `db:"allergies" json:"allergies,omitempty"`
	EmergencyContactName  *string    `db:"emergency_contact_name" json:"emergencyContactName,omitempty"`
	EmergencyContactPhone *string    `db:"emergency_contact_phone" json:"emergencyContactPhone,omitempty"`
	CreatedAt             time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updatedAt"`
}

// Sanitized returns a copy safe to hand to application logic and responses:
// identical to the receiver with the password hash cleared.
func (p *Patient) Sanitized() *Patient {
	cp := *p
	cp.PasswordHash = ""
	return &cp
}

var validGenders = map[string]bool{
	"Male": true, "Female": true,
}

var validMaritalStatuses = map[string]bool{
	"Single": true, "Married": true, "Divorced": true, "Widowed": true,
}
