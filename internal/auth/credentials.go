package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const RoleAdmin = "admin"

var ErrPasswordTooShort = errors.New("password must be at least 8 characters")

const (
	bcryptCost        = 12
	minPasswordLength = 8
)

// Credentials holds the statically configured admin identity. When
// PasswordHash is set it takes precedence over the plaintext Password.
type Credentials struct {
	Email        string
	Password     string
	PasswordHash string
}

// Match reports whether the supplied email/password pair is the admin.
// The email comparison is case-insensitive; the password comparison is
// constant time for the plaintext variant.
func (c Credentials) Match(email, password string) bool {
	if c.Email == "" || !strings.EqualFold(email, c.Email) {
		return false
	}
	if c.PasswordHash != "" {
		return CheckPassword(password, c.PasswordHash)
	}
	if c.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares a password with its hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
