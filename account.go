package tally

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Account is one credential record: a username, the hex digest of its
// password, and the balance in cents. Usernames are assigned at
// registration and never change; balances only move through transfers.
type Account struct {
	Name         string
	PasswordHash string
	Balance      int64
}

// HashPassword returns the hex-encoded SHA-256 digest of a password.
// The digest is deterministic so it can be compared against the stored
// value without keeping the plaintext anywhere.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword hashes the candidate password and compares it against
// the stored digest in constant time.
func (a Account) VerifyPassword(password string) bool {
	digest := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(a.PasswordHash)) == 1
}
