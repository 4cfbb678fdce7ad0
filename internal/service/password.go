package service

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptPrefixes are the self-describing markers of a bcrypt-family hash.
// A stored credential without one of these prefixes is treated as a legacy
// plaintext row.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// VerifyPassword reports whether supplied matches the stored credential.
//
// The check order reproduces the legacy system exactly and short-circuits on
// the first match:
//  1. Exact byte equality. This keeps legacy plaintext rows working and is
//     a known migration artifact: such rows authenticate without any
//     cryptographic check until ChangePassword rewrites them as hashes.
//  2. If stored carries a bcrypt prefix, bcrypt verification.
//
// Malformed stored values are "no match", never an error.
func VerifyPassword(supplied, stored string) bool {
	if stored == "" {
		return false
	}

	if subtle.ConstantTimeCompare([]byte(supplied), []byte(stored)) == 1 {
		return true
	}

	if !isBcryptHash(stored) {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// HashPassword derives a fresh bcrypt hash for password. cost of zero
// selects bcrypt.DefaultCost. This is the only way new credentials are
// produced: plaintext is never written back to the store.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

func isBcryptHash(stored string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(stored, prefix) {
			return true
		}
	}
	return false
}
