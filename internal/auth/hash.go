package auth

import (
	"crypto/sha256"
	"encoding/base64"
)

// HashToken is the ledger key for a refresh token.
func HashToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(h[:])
}
