package authutil

import (
	"strings"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid", "mySecurePassword", nil},
		{"valid with spaces", "my secret password", nil},
		{"valid max", strings.Repeat("a", 72), nil},

		{"too short", "abc1234", ErrPasswordTooShort},
		{"empty", "", ErrPasswordTooShort},
		{"too long", strings.Repeat("a", 73), ErrPasswordTooLong},

		{"common password", "password", ErrPasswordCommon},
		{"common uppercase", "PASSWORD1", ErrPasswordCommon},
		{"common changeme", "changeme", ErrPasswordCommon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if err != tt.wantErr {
				t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestHashPassword(t *testing.T) {
	password := "mySecurePassword123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "" || hash == password {
		t.Fatalf("HashPassword() returned %q", hash)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("HashPassword() hash does not appear to be bcrypt: %s", hash)
	}

	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() second call error = %v", err)
	}
	if hash == hash2 {
		t.Error("HashPassword() should produce different hashes for same password (due to salt)")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !CheckPassword("correct horse", hash) {
		t.Error("CheckPassword() = false for correct password")
	}
	if CheckPassword("wrong horse", hash) {
		t.Error("CheckPassword() = true for wrong password")
	}
	if CheckPassword("correct horse", "not-a-hash") {
		t.Error("CheckPassword() = true for malformed hash")
	}
}

func TestCheckDummy(t *testing.T) {
	if CheckDummy("anything") {
		t.Error("CheckDummy() = true, want false")
	}
	if CheckDummy("stratatour-dummy-password") {
		t.Error("CheckDummy() = true for dummy secret, want false")
	}
}
