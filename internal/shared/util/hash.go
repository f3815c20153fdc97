package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey returns a stable one-way key for a user ID, safe to log.
func HashUserKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
