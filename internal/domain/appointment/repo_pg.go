package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/techmed/techmed/internal/platform/apperr"
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

const apptCols = `id, patient_id, doctor_id, hospital_id, date, time_slot, status, notes,
	created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.HospitalID, &a.Date, &a.TimeSlot,
		&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, db.MapError(err)
	}
	return &a, nil
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointment (id, patient_id, doctor_id, hospital_id, date, time_slot, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at`,
		a.ID, a.PatientID, a.DoctorID, a.HospitalID, a.Date, a.TimeSlot, a.Status, a.Notes).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	return db.MapError(err)
}

func (r *repoPG) GetByID(ctx context.Context, id, patientID uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointment WHERE id = $1 AND patient_id = $2`, id, patientID))
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM appointment WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, db.MapError(err)
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+apptCols+` FROM appointment WHERE patient_id = $1
		 ORDER BY date DESC, time_slot DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, db.MapError(err)
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, db.MapError(err)
	}
	return items, total, nil
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment SET doctor_id=$3, hospital_id=$4, date=$5, time_slot=$6, notes=$7,
			updated_at=NOW()
		WHERE id = $1 AND patient_id = $2`,
		a.ID, a.PatientID, a.DoctorID, a.HospitalID, a.Date, a.TimeSlot, a.Notes)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.MapError(pgx.ErrNoRows)
	}
	return nil
}

func (r *repoPG) Cancel(ctx context.Context, id, patientID uuid.UUID) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		var status string
		err := r.conn(ctx).QueryRow(ctx, `
			SELECT status FROM appointment
			WHERE id = $1 AND patient_id = $2 FOR UPDATE`, id, patientID).Scan(&status)
		if err != nil {
			return db.MapError(err)
		}
		if status == StatusConfirmed {
			return apperr.WithMessage(apperr.ErrInvalidState, "confirmed appointments cannot be cancelled")
		}
		_, err = r.conn(ctx).Exec(ctx,
			`DELETE FROM appointment WHERE id = $1 AND patient_id = $2`, id, patientID)
		return db.MapError(err)
	})
}

func (r *repoPG) DoctorAvailable(ctx context.Context, doctorID uuid.UUID, date time.Time, timeSlot string, excludeID uuid.UUID) (bool, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM appointment
		WHERE doctor_id = $1 AND date = $2 AND time_slot = $3 AND id <> $4`,
		doctorID, date, timeSlot, excludeID).Scan(&count)
	if err != nil {
		return false, db.MapError(err)
	}
	return count == 0, nil
}
