package services

import (
	"crypto/rand"
	"encoding/hex"
)

// generateSecureToken returns 32 bytes of crypto-grade randomness as hex.
// Used for both email verification tokens and refresh tokens.
func generateSecureToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
