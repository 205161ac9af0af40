package order

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create inserts the order and its items in one transaction. The
	// one-in-flight index rejects the insert when the patient already has an
	// active order.
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id, patientID uuid.UUID) (*Order, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Order, int, error)
	// Cancel flips a pending order to cancelled. Any other status is an
	// invalid transition. Runs in a transaction with the row locked.
	Cancel(ctx context.Context, id, patientID uuid.UUID) error
}
