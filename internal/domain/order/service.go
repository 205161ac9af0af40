package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/techmed/techmed/internal/domain/directory"
	"github.com/techmed/techmed/internal/platform/apperr"
	"github.com/techmed/techmed/internal/platform/db"
)

const oneInFlightConstraint = "orders_one_in_flight_idx"

var errOrderInFlight = apperr.WithMessage(apperr.ErrConflict, "you already have an active order")

// ItemInput is one requested line before pricing.
type ItemInput struct {
	MedicineID uuid.UUID
	Quantity   int
}

type Service struct {
	repo      Repository
	medicines directory.Repository
}

func NewService(repo Repository, medicines directory.Repository) *Service {
	return &Service{repo: repo, medicines: medicines}
}

// Create prices the requested items against the medicine directory, builds
// the order with a server-generated number, and inserts it. Unit prices are
// snapshotted at order time so later catalog changes leave the order alone.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, address string, inputs []ItemInput) (*Order, error) {
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.MedicineID)
	}
	meds, err := s.medicines.GetMedicines(ctx, ids)
	if err != nil {
		return nil, err
	}

	o := &Order{
		PatientID:   ownerID,
		OrderNumber: newOrderNumber(),
		Status:      StatusPending,
		Address:     address,
	}
	for i, in := range inputs {
		med, ok := meds[in.MedicineID]
		if !ok {
			return nil, apperr.Validation(map[string]string{
				fmt.Sprintf("items[%d].medicineId", i): "Unknown medicine",
			})
		}
		o.Items = append(o.Items, &OrderItem{
			MedicineID: in.MedicineID,
			Quantity:   in.Quantity,
			UnitPrice:  med.Price,
		})
		o.Total += med.Price * float64(in.Quantity)
	}

	if err := s.repo.Create(ctx, o); err != nil {
		if db.IsUniqueViolation(err, oneInFlightConstraint) {
			return nil, errOrderInFlight
		}
		return nil, err
	}
	return o, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Order, error) {
	return s.repo.GetByID(ctx, id, ownerID)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Order, int, error) {
	return s.repo.ListByPatient(ctx, ownerID, limit, offset)
}

func (s *Service) Cancel(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.Cancel(ctx, id, ownerID)
}

func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}
