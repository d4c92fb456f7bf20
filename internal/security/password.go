package security

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the fixed work factor for stored passwords.
const bcryptCost = 12

// HashPassword derives a bcrypt digest from a plaintext password. It must be
// called whenever the stored plaintext changes and never otherwise.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// bcrypt digest.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
