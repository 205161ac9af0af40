package directory

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	ListDoctors(ctx context.Context, limit, offset int) ([]*Doctor, int, error)
	ListHospitals(ctx context.Context, limit, offset int) ([]*Hospital, int, error)
	ListMedicines(ctx context.Context, limit, offset int) ([]*Medicine, int, error)
	// GetMedicines loads the named medicines, keyed by id. Missing ids are
	// simply absent from the result.
	GetMedicines(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Medicine, error)
}
