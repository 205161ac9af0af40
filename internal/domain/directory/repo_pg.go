package directory

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

func (r *repoPG) ListDoctors(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM doctors`).Scan(&total); err != nil {
		return nil, 0, db.MapError(err)
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, name, specialty, hospital_id, created_at
		FROM doctors ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, db.MapError(err)
	}
	defer rows.Close()

	var items []*Doctor
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Specialty, &d.HospitalID, &d.CreatedAt); err != nil {
			return nil, 0, db.MapError(err)
		}
		items = append(items, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, db.MapError(err)
	}
	return items, total, nil
}

func (r *repoPG) ListHospitals(ctx context.Context, limit, offset int) ([]*Hospital, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM hospitals`).Scan(&total); err != nil {
		return nil, 0, db.MapError(err)
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, name, address, phone, created_at
		FROM hospitals ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, db.MapError(err)
	}
	defer rows.Close()

	var items []*Hospital
	for rows.Next() {
		var h Hospital
		if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.Phone, &h.CreatedAt); err != nil {
			return nil, 0, db.MapError(err)
		}
		items = append(items, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, db.MapError(err)
	}
	return items, total, nil
}

func (r *repoPG) ListMedicines(ctx context.Context, limit, offset int) ([]*Medicine, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM medicines`).Scan(&total); err != nil {
		return nil, 0, db.MapError(err)
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, name, description, price, created_at
		FROM medicines ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, db.MapError(err)
	}
	defer rows.Close()

	var items []*Medicine
	for rows.Next() {
		var m Medicine
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.CreatedAt); err != nil {
			return nil, 0, db.MapError(err)
		}
		items = append(items, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, db.MapError(err)
	}
	return items, total, nil
}

func (r *repoPG) GetMedicines(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Medicine, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, name, description, price, created_at
		FROM medicines WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]*Medicine, len(ids))
	for rows.Next() {
		var m Medicine
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.CreatedAt); err != nil {
			return nil, db.MapError(err)
		}
		out[m.ID] = &m
	}
	if err := rows.Err(); err != nil {
		return nil, db.MapError(err)
	}
	return out, nil
}
