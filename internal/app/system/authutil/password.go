// Package authutil holds the password primitives used by admin login and
// the admin seed.
package authutil

import (
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Password rules
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt ignores bytes past 72
	BcryptCost        = 12
)

// Password validation errors
var (
	ErrPasswordTooShort = errors.New("Password must be at least 8 characters.")
	ErrPasswordTooLong  = errors.New("Password must be at most 72 bytes.")
	ErrPasswordCommon   = errors.New("This password is too common. Please choose a different one.")
)

var commonPasswords = map[string]bool{
	"12345678":   true,
	"123456789":  true,
	"password":   true,
	"password1":  true,
	"qwerty123":  true,
	"iloveyou":   true,
	"sunshine":   true,
	"football":   true,
	"welcome1":   true,
	"admin123":   true,
	"adminadmin": true,
	"changeme":   true,
}

// ValidatePassword checks a seed password against the rules above.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	if commonPasswords[strings.ToLower(password)] {
		return ErrPasswordCommon
	}
	return nil
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plain-text password with a bcrypt hash.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

var (
	dummyHash     []byte
	dummyHashOnce sync.Once
)

// CheckDummy burns the same bcrypt work as CheckPassword against a throwaway
// hash. Login calls it for unknown emails so both failure paths take equally
// long. It always returns false.
func CheckDummy(password string) bool {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("stratatour-dummy-password"), BcryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
	return false
}
