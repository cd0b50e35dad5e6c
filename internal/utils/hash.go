package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashBytes computes the hex-encoded SHA-256 digest of the exact file
// bytes. Two uploads are the same document iff their digests are equal,
// regardless of filename or declared metadata.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
