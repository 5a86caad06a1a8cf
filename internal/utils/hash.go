package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// resetTokenSize is the number of random bytes in a password reset token.
const resetTokenSize = 32

// HashToken returns the hex-encoded SHA-256 digest of a reset token.
// Only the digest is stored, the plain token travels in the e-mail.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// GenerateResetToken returns a random hex token and its digest.
func GenerateResetToken() (plain string, hashed string, err error) {
	buf := make([]byte, resetTokenSize)
	if _, err = rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("error generating reset token: %w", err)
	}

	plain = hex.EncodeToString(buf)
	return plain, HashToken(plain), nil
}
