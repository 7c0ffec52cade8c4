package utils

import (
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters for the keyed password hash.
const (
	passwordHashTime    = 2
	passwordHashMemory  = 19 * 1024
	passwordHashThreads = 1
	passwordHashKeyLen  = 32
)

// PasswordHasher produces deterministic keyed password hashes. The server
// secret acts as the salt, so the same password always maps to the same hash
// and credentials can be matched with a single store lookup on (email, hash).
type PasswordHasher struct {
	secret []byte
}

// NewPasswordHasher creates a hasher keyed with the given secret.
func NewPasswordHasher(secret string) *PasswordHasher {
	return &PasswordHasher{secret: []byte(secret)}
}

// HashPassword hashes a plaintext password with argon2id keyed by the server secret.
func (h *PasswordHasher) HashPassword(password string) string {
	key := argon2.IDKey([]byte(password), h.secret, passwordHashTime, passwordHashMemory, passwordHashThreads, passwordHashKeyLen)
	return hex.EncodeToString(key)
}

// CheckPasswordHash compares a plaintext password with a stored hash in constant time.
func (h *PasswordHasher) CheckPasswordHash(password, hash string) bool {
	return subtle.ConstantTimeCompare([]byte(h.HashPassword(password)), []byte(hash)) == 1
}
