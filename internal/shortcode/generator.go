package shortcode

import (
	"crypto/sha256"
	"encoding/base64"
)

// Length is the number of characters in a generated short code.
const Length = 6

// retrySalts is the fixed sequence of salts tried when a generated code
// collides with an existing mapping. Bounded so a pathological run of
// collisions fails explicitly instead of spinning.
var retrySalts = []string{"", "1", "2", "3", "4"}

// Generate derives a short code from a long URL and a salt. It hashes
// longURL+salt with SHA-256 and keeps the first Length characters of the
// URL-safe base64 encoding, so the same inputs always produce the same code.
func Generate(longURL, salt string) string {
	sum := sha256.Sum256([]byte(longURL + salt))
	encoded := base64.URLEncoding.EncodeToString(sum[:])
	return encoded[:Length]
}

// Salts returns the salt sequence used for collision retries, in order.
func Salts() []string {
	return retrySalts
}
