package common

import (
	"fmt"

	"github.com/google/uuid"
)

// UUID is kept as its canonical string form so it maps directly onto
// varchar/uuid columns for every supported driver.
type UUID string

func NewUUID() UUID {
	return UUID(uuid.NewString())
}

func ParseUUID(value string) (UUID, error) {
	parsed, err := uuid.Parse(value)
	if err != nil {
		return "", fmt.Errorf("parse uuid %q: %w", value, err)
	}
	return UUID(parsed.String()), nil
}

func (u UUID) String() string {
	return string(u)
}

func (u UUID) IsZero() bool {
	return u == ""
}
