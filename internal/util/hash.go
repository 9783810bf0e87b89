package util

import (
	"crypto/sha256"
	"fmt"
)

// HashIP returns the hex sha256 digest of a client IP. The raw address is
// never stored; the digest is fixed-length and non-reversible.
func HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return fmt.Sprintf("%x", sum)
}
