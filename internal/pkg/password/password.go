// Package password hashes and verifies user passwords. Plaintext passwords
// are never stored; every hash carries its own random salt.
package password

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"

	argon2idPrefix = "$argon2id$"
)

var ErrUnknownAlgorithm = errors.New("unknown password algorithm")

type Hasher struct {
	algorithm  string
	bcryptCost int
}

func NewHasher(algorithm string, bcryptCost int) (*Hasher, error) {
	switch algorithm {
	case "", AlgorithmBcrypt:
		algorithm = AlgorithmBcrypt
	case AlgorithmArgon2id:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algorithm)
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Hasher{algorithm: algorithm, bcryptCost: bcryptCost}, nil
}

func (h *Hasher) Hash(password string) (string, error) {
	if h.algorithm == AlgorithmArgon2id {
		hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
		if err != nil {
			return "", fmt.Errorf("hash password failed: %w", err)
		}
		return hash, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password failed: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. The algorithm is taken from
// the hash itself, so hashes written under a previous setting keep working.
// A malformed hash is a mismatch.
func (h *Hasher) Verify(password, hash string) bool {
	if strings.HasPrefix(hash, argon2idPrefix) {
		match, err := argon2id.ComparePasswordAndHash(password, hash)
		return err == nil && match
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
