package password

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned when the candidate does not match the stored value.
var ErrMismatch = errors.New("password: mismatch")

// Verifier compares a submitted password against a stored credential.
type Verifier interface {
	Verify(stored, candidate string) error
}

// Hasher additionally produces storable credentials.
type Hasher interface {
	Verifier
	Hash(password string) (string, error)
}

// BcryptHasher verifies bcrypt hashes and hashes new passwords. Stored
// values that do not look like bcrypt hashes are treated as legacy plaintext
// rows and compared in constant time, matching the observed backend data.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt-backed hasher.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash converts a plain password into a bcrypt hash.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password: empty password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify checks the candidate against a bcrypt hash or a legacy plaintext
// value.
func (h *BcryptHasher) Verify(stored, candidate string) error {
	if stored == "" {
		return ErrMismatch
	}
	if isBcryptHash(stored) {
		if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)); err != nil {
			return ErrMismatch
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) != 1 {
		return ErrMismatch
	}
	return nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
