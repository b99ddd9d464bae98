package appointment

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
)

const tokenBytes = 32

// NewConfirmationToken returns a fresh bearer token for the public
// confirmation endpoint. Possession of the token is the only credential the
// client side has, so it must be unguessable.
func NewConfirmationToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// TokenEqual compares tokens in constant time regardless of where they
// diverge, so response timing leaks nothing about stored tokens.
func TokenEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
