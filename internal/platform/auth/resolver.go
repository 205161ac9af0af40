package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/techmed/techmed/internal/domain/patient"
	"github.com/techmed/techmed/internal/platform/apperr"
)

// Resolver turns a bearer credential into the live account it belongs to.
type Resolver struct {
	codec    *Codec
	accounts patient.Repository
}

func NewResolver(codec *Codec, accounts patient.Repository) *Resolver {
	return &Resolver{codec: codec, accounts: accounts}
}

// Resolve verifies the Authorization header value and loads the account the
// token names. A token whose account has been deleted is as invalid as a
// tampered one. The returned account never carries the password hash.
func (r *Resolver) Resolve(ctx context.Context, authorization string) (*patient.Patient, error) {
	token := strings.TrimSpace(authorization)
	if token == "" {
		return nil, fmt.Errorf("%w: no credentials", apperr.ErrUnauthenticated)
	}
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}

	id, _, err := r.codec.Verify(token)
	if err != nil {
		return nil, err
	}

	p, err := r.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: account gone", apperr.ErrUnauthenticated)
		}
		return nil, err
	}
	return p.Sanitized(), nil
}
