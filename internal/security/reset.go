package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// resetTokenBytes is the entropy of a password-reset token. Tokens are short
// lived (one hour) and single use, so 16 bytes is plenty.
const resetTokenBytes = 16

// GenerateResetToken returns a random opaque hex string for the password
// reset flow.
func GenerateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
