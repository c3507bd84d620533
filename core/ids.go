package core

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"dnabot/utils"
)

// NewID generates a prefixed ULID used to correlate the log lines of one
// inbound message or command, e.g. core.NewID("req") returns "req_01G0EZ1XTM37C5X11SQTDNCTM1".
func NewID(prefix string) string {
	utils.AssertInvariant(strings.TrimSpace(prefix) != "", "prefix cannot be empty")

	entropy := ulid.Monotonic(rand.Reader, 0)
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)

	return strings.ToLower(strings.TrimSpace(prefix)) + "_" + id.String()
}

// IsValidID checks that id has the prefix_ULID shape produced by NewID
func IsValidID(id string) bool {
	prefix, ulidPart, found := strings.Cut(id, "_")
	if !found || prefix == "" || strings.Contains(ulidPart, "_") {
		return false
	}
	for _, r := range prefix {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	if len(ulidPart) != ulid.EncodedSize || strings.ToUpper(ulidPart) != ulidPart {
		return false
	}
	_, err := ulid.ParseStrict(ulidPart)
	return err == nil
}
