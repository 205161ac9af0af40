package order

import (
	"context"

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

const orderCols = `id, patient_id, order_number, status, total, address, created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.PatientID, &o.OrderNumber, &o.Status, &o.Total, &o.Address,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, db.MapError(err)
	}
	return &o, nil
}

func (r *repoPG) Create(ctx context.Context, o *Order) error {
	o.ID = uuid.New()
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		err := r.conn(ctx).QueryRow(ctx, `
			INSERT INTO orders (id, patient_id, order_number, status, total, address)
			VALUES ($1,$2,$3,$4,$5,$6)
			RETURNING created_at, updated_at`,
			o.ID, o.PatientID, o.OrderNumber, o.Status, o.Total, o.Address).
			Scan(&o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return db.MapError(err)
		}

		for _, item := range o.Items {
			item.ID = uuid.New()
			item.OrderID = o.ID
			_, err := r.conn(ctx).Exec(ctx, `
				INSERT INTO order_items (id, order_id, medicine_id, quantity, unit_price)
				VALUES ($1,$2,$3,$4,$5)`,
				item.ID, item.OrderID, item.MedicineID, item.Quantity, item.UnitPrice)
			if err != nil {
				return db.MapError(err)
			}
		}
		return nil
	})
}

func (r *repoPG) loadItems(ctx context.Context, orders map[uuid.UUID]*Order) error {
	ids := make([]uuid.UUID, 0, len(orders))
	for id := range orders {
		ids = append(ids, id)
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, order_id, medicine_id, quantity, unit_price
		FROM order_items WHERE order_id = ANY($1)`, ids)
	if err != nil {
		return db.MapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MedicineID, &it.Quantity, &it.UnitPrice); err != nil {
			return db.MapError(err)
		}
		if o, ok := orders[it.OrderID]; ok {
			o.Items = append(o.Items, &it)
		}
	}
	return db.MapError(rows.Err())
}

func (r *repoPG) GetByID(ctx context.Context, id, patientID uuid.UUID) (*Order, error) {
	o, err := scanOrder(r.conn(ctx).QueryRow(ctx,
		`SELECT `+orderCols+` FROM orders WHERE id = $1 AND patient_id = $2`, id, patientID))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, map[uuid.UUID]*Order{o.ID: o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Order, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, db.MapError(err)
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+orderCols+` FROM orders WHERE patient_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, db.MapError(err)
	}
	defer rows.Close()

	byID := map[uuid.UUID]*Order{}
	var items []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, o)
		byID[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, 0, db.MapError(err)
	}
	if len(byID) > 0 {
		if err := r.loadItems(ctx, byID); err != nil {
			return nil, 0, err
		}
	}
	return items, total, nil
}

func (r *repoPG) Cancel(ctx context.Context, id, patientID uuid.UUID) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		var status string
		err := r.conn(ctx).QueryRow(ctx, `
			SELECT status FROM orders
			WHERE id = $1 AND patient_id = $2 FOR UPDATE`, id, patientID).Scan(&status)
		if err != nil {
			return db.MapError(err)
		}
		if status != StatusPending {
			return apperr.WithMessage(apperr.ErrInvalidState, "only pending orders can be cancelled")
		}
		_, err = r.conn(ctx).Exec(ctx, `
			UPDATE orders SET status = $3, updated_at = NOW()
			WHERE id = $1 AND patient_id = $2`, id, patientID, StatusCancelled)
		return db.MapError(err)
	})
}
