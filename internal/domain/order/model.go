package order

import (
	"time"

	"github.com/google/uuid"
)

// Order is a medicine purchase. A patient may have at most one order in
// flight; delivered and cancelled orders do not count. The partial unique
// index on the orders table enforces this.
type Order struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	PatientID   uuid.UUID    `db:"patient_id" json:"patientId"`
	OrderNumber string       `db:"order_number" json:"orderNumber"`
	Status      string       `db:"status" json:"status"`
	Total       float64      `db:"total" json:"total"`
	Address     string       `db:"address" json:"address"`
	Items       []*OrderItem `json:"items"`
	CreatedAt   time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updatedAt"`
}

type OrderItem struct {
	ID         uuid.UUID `db:"id" json:"id"`
	OrderID    uuid.UUID `db:"order_id" json:"-"`
	MedicineID uuid.UUID `db:"medicine_id" json:"medicineId"`
	Quantity   int       `db:"quantity" json:"quantity"`
	UnitPrice  float64   `db:"unit_price" json:"unitPrice"`
}

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)
