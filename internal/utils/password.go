package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes the admin secret before it is stored or configured;
// plaintext secrets never persist anywhere.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword returns nil on match. bcrypt's comparison is constant-time.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
