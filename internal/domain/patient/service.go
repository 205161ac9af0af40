package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/techmed/techmed/internal/platform/apperr"
)

// PasswordHasher abstracts the credential hashing scheme. FakeCheck burns a
// comparable amount of work when no account matches, so login latency does
// not reveal whether an email is registered.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(hash, password string) bool
	FakeCheck(password string)
}

// TokenIssuer mints a signed session token for an account.
type TokenIssuer interface {
	Issue(p *Patient) (token string, expiresAt time.Time, err error)
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewService(repo Repository, hasher PasswordHasher, tokens TokenIssuer) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

var conflictMessages = map[string]string{
	"email":       "Email already registered",
	"phoneNumber": "Phone number already registered",
	"nationalId":  "National ID already registered",
}

// Register creates an account from the given record and plaintext password.
// Taken unique fields come back as a per-field conflict error; the unique
// constraints close the race a concurrent registration could win between the
// pre-check and the insert.
func (s *Service) Register(ctx context.Context, p *Patient, password string) (*Patient, error) {
	if p.Gender != nil && !validGenders[*p.Gender] {
		return nil, apperr.Validation(map[string]string{"gender": "gender is invalid"})
	}
	if p.MaritalStatus != nil && !validMaritalStatuses[*p.MaritalStatus] {
		return nil, apperr.Validation(map[string]string{"maritalStatus": "maritalStatus is invalid"})
	}

	taken, err := s.repo.FindConflicts(ctx, p.Email, p.PhoneNumber, p.NationalID)
	if err != nil {
		return nil, err
	}
	if len(taken) > 0 {
		fields := make(map[string]string, len(taken))
		for _, f := range taken {
			fields[f] = conflictMessages[f]
		}
		return nil, apperr.Conflict(fields)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	p.PasswordHash = hash

	if err := s.repo.Create(ctx, p); err != nil {
		if fields := constraintFields(err); len(fields) > 0 {
			return nil, apperr.Conflict(fields)
		}
		return nil, err
	}
	return p.Sanitized(), nil
}

// constraintFields maps a unique-violation error to the per-field messages of
// the registration response. Returns nil for anything else.
func constraintFields(err error) map[string]string {
	msg := err.Error()
	for constraint, field := range map[string]string{
		"patient_email_key":        "email",
		"patient_phone_number_key": "phoneNumber",
		"patient_national_id_key":  "nationalId",
	} {
		if strings.Contains(msg, constraint) {
			return map[string]string{field: conflictMessages[field]}
		}
	}
	return nil
}

// Login verifies the credentials and mints a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*Patient, string, time.Time, error) {
	p, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, "", time.Time{}, err
		}
		s.hasher.FakeCheck(password)
		return nil, "", time.Time{}, apperr.ErrUnauthenticated
	}

	if !s.hasher.Check(p.PasswordHash, password) {
		return nil, "", time.Time{}, apperr.ErrUnauthenticated
	}

	token, expiresAt, err := s.tokens.Issue(p)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("issue token: %w", err)
	}
	return p.Sanitized(), token, expiresAt, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.Sanitized(), nil
}

// UpdateProfile overwrites the mutable profile fields of the account. Email,
// national ID, and password are not editable through this path.
func (s *Service) UpdateProfile(ctx context.Context, p *Patient) (*Patient, error) {
	if p.Gender != nil && !validGenders[*p.Gender] {
		return nil, apperr.Validation(map[string]string{"gender": "gender is invalid"})
	}
	if p.MaritalStatus != nil && !validMaritalStatuses[*p.MaritalStatus] {
		return nil, apperr.Validation(map[string]string{"maritalStatus": "maritalStatus is invalid"})
	}
	if err := s.repo.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}
	return s.Get(ctx, p.ID)
}

// ChangePassword verifies the current password before storing the new hash.
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.hasher.Check(p.PasswordHash, current) {
		return apperr.Validation(map[string]string{"currentPassword": "Current password is incorrect"})
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, id, hash)
}
