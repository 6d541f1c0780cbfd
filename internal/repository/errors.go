package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrDuplicate reports a unique constraint violation.
var ErrDuplicate = errors.New("duplicate key")

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// drivers without error translation
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}
