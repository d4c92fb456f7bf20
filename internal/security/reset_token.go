package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// resetTokenBytes is the entropy of a reset token before hex encoding.
const resetTokenBytes = 32

// GenerateResetToken produces a password reset token in its two forms: the
// plaintext that is mailed to the user inside a reset URL, and the SHA-256
// digest that is persisted on the account. The plaintext is never stored;
// possession is proven later by re-deriving the digest from a candidate
// token and comparing it against the stored one.
func GenerateResetToken() (plaintext, hash string, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}

	plaintext = hex.EncodeToString(buf)
	return plaintext, HashResetToken(plaintext), nil
}

// HashResetToken derives the storable digest of a reset token.
func HashResetToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
