package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey maps a user ID to a fixed-width, filesystem- and
// S3-key-safe directory name. Guest IDs arrive straight from a header,
// so the raw value never reaches a path.
func HashUserKey(userID string) string {
	digest := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(digest[:])
}
