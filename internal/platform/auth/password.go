package auth

import (
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// dummyHash is a bcrypt hash of an unguessable throwaway value. FakeCheck
// compares against it so a login for an unknown email costs the same as one
// for a known email with a wrong password.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Hasher implements patient.PasswordHasher with bcrypt.
type Hasher struct{}

func NewHasher() Hasher { return Hasher{} }

func (Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (Hasher) Check(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (Hasher) FakeCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
