package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a bcrypt hash for storage. Cost stays at the library
// default; raising it means rehashing stored credentials, not a code change.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a login attempt against the stored bcrypt hash.
// A missing hash is an error, never a match.
func VerifyPassword(hash, password string) error {
	if hash == "" {
		return errors.New("no password hash on record")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
