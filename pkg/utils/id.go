package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a 32 character hex identifier.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
