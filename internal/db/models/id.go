package models

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// IDLength is the length of the hex encoded row ids.
const IDLength = 32

// NewID returns a random 32 character hex id.
func NewID() string {
	id := uuid.New()

	return hex.EncodeToString(id[:])
}
