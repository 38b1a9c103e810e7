package session

import (
	"strings"

	"github.com/google/uuid"
)

// NewToken mints an opaque session token: a random UUID with the dashes
// stripped, leaving 32 lowercase hex characters and no embedded structure.
func NewToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
