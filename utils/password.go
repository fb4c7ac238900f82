package utils

import "golang.org/x/crypto/bcrypt"

// MaxPasswordBytes is the bcrypt input limit. bcrypt silently truncates
// anything past 72 bytes, so callers must reject longer passwords before
// hashing instead of accepting a weaker credential than the user typed.
const MaxPasswordBytes = 72

// HashPassword derives a salted bcrypt hash. The salt and cost are embedded
// in the output string.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored hash. A malformed
// stored hash is treated as a mismatch, never an error.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
