package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex digests s; used for persisting refresh tokens without
// storing the token itself.
func SHA256Hex(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}
