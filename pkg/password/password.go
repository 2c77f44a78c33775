// Package password hashes and verifies user credentials.
//
// The primary format is the unsalted SHA-256 digest of the UTF-8 password,
// rendered as 64 hex characters. Existing stored hashes use it, so Verify
// must keep accepting it. HashWithSalt offers a salted PBKDF2 digest with
// the same 64 hex character shape for new deployments.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// HashLength is the length of every hex digest produced by this package.
	HashLength = sha256.Size * 2
	// SaltLength is the length of generated salts.
	SaltLength = 32
	// Iterations is the PBKDF2 work factor of the salted format.
	Iterations = 100_000

	minStrongLength = 8
	saltAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// ErrEmptyPassword is returned when hashing an empty password.
var ErrEmptyPassword = errors.New("password must not be empty")

// Hash returns the lowercase hex SHA-256 digest of plaintext.
func Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:]), nil
}

// Verify reports whether plaintext matches storedHash.
// Malformed or empty input yields false.
func Verify(plaintext, storedHash string) bool {
	if plaintext == "" || !IsValidHash(storedHash) {
		return false
	}
	sum := sha256.Sum256([]byte(plaintext))
	return equalHex(hex.EncodeToString(sum[:]), storedHash)
}

// IsValidHash reports whether h is exactly 64 hex characters, either case.
func IsValidHash(h string) bool {
	if len(h) != HashLength {
		return false
	}
	for i := 0; i < len(h); i++ {
		c := h[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// GenerateSalt returns SaltLength random alphanumeric characters.
func GenerateSalt() (string, error) {
	size := big.NewInt(int64(len(saltAlphabet)))
	var b strings.Builder
	b.Grow(SaltLength)
	for range SaltLength {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		b.WriteByte(saltAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// HashWithSalt derives a PBKDF2-HMAC-SHA256 digest of plaintext.
// A fresh salt is generated when salt is empty.
func HashWithSalt(plaintext, salt string) (string, string, error) {
	if plaintext == "" {
		return "", "", ErrEmptyPassword
	}
	if salt == "" {
		var err error
		if salt, err = GenerateSalt(); err != nil {
			return "", "", err
		}
	}
	return salt, derive(plaintext, salt), nil
}

// VerifyWithSalt reports whether plaintext and salt produce hash.
func VerifyWithSalt(plaintext, salt, hash string) bool {
	if plaintext == "" || salt == "" || !IsValidHash(hash) {
		return false
	}
	return equalHex(derive(plaintext, salt), hash)
}

// IsStrong reports whether plaintext has at least 8 characters including
// an upper case letter, a lower case letter and a digit.
func IsStrong(plaintext string) bool {
	if len([]rune(plaintext)) < minStrongLength {
		return false
	}
	var upper, lower, digit bool
	for _, r := range plaintext {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

func derive(plaintext, salt string) string {
	key := pbkdf2.Key([]byte(plaintext), []byte(salt), Iterations, sha256.Size, sha256.New)
	return hex.EncodeToString(key)
}

func equalHex(computed, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(computed), []byte(strings.ToLower(stored))) == 1
}
