package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the SHA-256 hex digest of the plaintext management
// password. Stored hashes are compared digest-to-digest, so the scheme must
// stay stable across deployments.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func CheckPasswordHash(password, hash string) bool {
	digest := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(hash)) == 1
}
