package patient

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/techmed/techmed/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const patientCols = `id, name, email, password_hash, phone_number, national_id,
	gender, birth_date, marital_status, allergies,
	emergency_contact_name, emergency_contact_phone, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.PhoneNumber, &p.NationalID,
		&p.Gender, &p.BirthDate, &p.MaritalStatus, &p.Allergies,
		&p.EmergencyContactName, &p.EmergencyContactPhone, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, db.MapError(err)
	}
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient (id, name, email, password_hash, phone_number, national_id,
			gender, birth_date, marital_status, allergies,
			emergency_contact_name, emergency_contact_phone)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Email, p.PasswordHash, p.PhoneNumber, p.NationalID,
		p.Gender, p.BirthDate, p.MaritalStatus, p.Allergies,
		p.EmergencyContactName, p.EmergencyContactPhone).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	return db.MapError(err)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE email = $1`, email))
}

func (r *repoPG) FindConflicts(ctx context.Context, email, phone, nationalID string) ([]string, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT email = $1, phone_number = $2, national_id = $3
		FROM patient
		WHERE email = $1 OR phone_number = $2 OR national_id = $3`,
		email, phone, nationalID)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()

	seen := map[string]bool{}
	for rows.Next() {
		var emailTaken, phoneTaken, nidTaken bool
		if err := rows.Scan(&emailTaken, &phoneTaken, &nidTaken); err != nil {
			return nil, db.MapError(err)
		}
		if emailTaken {
			seen["email"] = true
		}
		if phoneTaken {
			seen["phoneNumber"] = true
		}
		if nidTaken {
			seen["nationalId"] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, db.MapError(err)
	}

	var fields []string
	for _, f := range []string{"email", "phoneNumber", "nationalId"} {
		if seen[f] {
			fields = append(fields, f)
		}
	}
	return fields, nil
}

func (r *repoPG) UpdateProfile(ctx context.Context, p *Patient) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET name=$2, phone_number=$3, gender=$4, birth_date=$5,
			marital_status=$6, allergies=$7,
			emergency_contact_name=$8, emergency_contact_phone=$9, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.PhoneNumber, p.Gender, p.BirthDate,
		p.MaritalStatus, p.Allergies,
		p.EmergencyContactName, p.EmergencyContactPhone)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.MapError(pgx.ErrNoRows)
	}
	return nil
}

func (r *repoPG) UpdatePassword(ctx context.Context, id uuid.UUID, newHash string) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		id, newHash)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.MapError(pgx.ErrNoRows)
	}
	return nil
}
