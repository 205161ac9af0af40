package vaccination

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

const vaccCols = `id, patient_id, vaccine_name, vaccine_date, notes, created_at, updated_at`

func scanVaccination(row pgx.Row) (*Vaccination, error) {
	var v Vaccination
	err := row.Scan(&v.ID, &v.PatientID, &v.VaccineName, &v.VaccineDate, &v.Notes,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, db.MapError(err)
	}
	return &v, nil
}

func (r *repoPG) Create(ctx context.Context, v *Vaccination) error {
	v.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient_vaccination (id, patient_id, vaccine_name, vaccine_date, notes)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at, updated_at`,
		v.ID, v.PatientID, v.VaccineName, v.VaccineDate, v.Notes).
		Scan(&v.CreatedAt, &v.UpdatedAt)
	return db.MapError(err)
}

func (r *repoPG) GetByID(ctx context.Context, id, patientID uuid.UUID) (*Vaccination, error) {
	return scanVaccination(r.conn(ctx).QueryRow(ctx,
		`SELECT `+vaccCols+` FROM patient_vaccination WHERE id = $1 AND patient_id = $2`, id, patientID))
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Vaccination, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM patient_vaccination WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, db.MapError(err)
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+vaccCols+` FROM patient_vaccination WHERE patient_id = $1
		 ORDER BY vaccine_date DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, db.MapError(err)
	}
	defer rows.Close()

	var items []*Vaccination
	for rows.Next() {
		v, err := scanVaccination(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, db.MapError(err)
	}
	return items, total, nil
}

func (r *repoPG) Update(ctx context.Context, v *Vaccination) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient_vaccination SET vaccine_name=$3, vaccine_date=$4, notes=$5, updated_at=NOW()
		WHERE id = $1 AND patient_id = $2`,
		v.ID, v.PatientID, v.VaccineName, v.VaccineDate, v.Notes)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.MapError(pgx.ErrNoRows)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id, patientID uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM patient_vaccination WHERE id = $1 AND patient_id = $2`, id, patientID)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.MapError(pgx.ErrNoRows)
	}
	return nil
}
