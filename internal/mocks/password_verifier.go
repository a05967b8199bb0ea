package mocks

import (
	"errors"

	"github.com/emberhq/portfolio-api/internal/service/auth"
)

// MockPasswordVerifier implements auth.PasswordVerifier for testing.
// By default a hash matches when it equals "hashed:" + password, so tests
// can seed users without paying for bcrypt.
type MockPasswordVerifier struct {
	CompareFn func(hashedPassword, password string) error
}

// HashForPassword returns the mock hash a seeded user needs so the given
// plaintext password verifies.
func HashForPassword(password string) string {
	return "hashed:" + password
}

// Ensure MockPasswordVerifier implements auth.PasswordVerifier
var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements the PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}

	if hashedPassword != HashForPassword(password) {
		return errors.New("password mismatch")
	}
	return nil
}
