package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// MinHashSaltLength is the minimum accepted length of LOG_HASH_SALT.
const MinHashSaltLength = 32

const defaultHashSalt = "freelance-ledger-local-device-salt"

var hashSalt = defaultHashSalt

// ErrHashSaltTooShort is returned for a salt shorter than MinHashSaltLength.
var ErrHashSaltTooShort = fmt.Errorf("hash salt must be at least %d characters", MinHashSaltLength)

// InitHashSalt sets the salt used for hashing identifiers. An empty salt
// selects the built-in one.
func InitHashSalt(salt string) error {
	if salt == "" {
		hashSalt = defaultHashSalt
		return nil
	}
	if len(salt) < MinHashSaltLength {
		return ErrHashSaltTooShort
	}
	hashSalt = salt
	return nil
}

// InitHashSaltForTesting sets the salt directly.
func InitHashSaltForTesting(salt string) {
	hashSalt = salt
}

// HashID creates a privacy-preserving hash of an entity ID.
func HashID(id string) string {
	hash := sha256.Sum256([]byte(id + ":" + hashSalt))
	return hex.EncodeToString(hash[:])[:8]
}

// SanitizeText redacts user-provided text such as client names or notes,
// keeping only a short prefix and the length.
func SanitizeText(text string) string {
	if text == "" {
		return "<empty>"
	}

	if len(text) <= 10 {
		return fmt.Sprintf("<%d chars>", len(text))
	}

	return fmt.Sprintf("%s...<%d chars>", text[:3], len(text))
}

// SanitizeEmail keeps only the domain of an email address.
func SanitizeEmail(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return SanitizeText(email)
	}
	return "***" + email[at:]
}
