package utils

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor used for stored passwords.
const PasswordCost = bcrypt.DefaultCost

// dummyHash is compared against when no stored hash exists, so a failed
// lookup costs about as much as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("account-service-placeholder"), PasswordCost)

// bcryptMaxLen is the longest input, in bytes, bcrypt will hash.
const bcryptMaxLen = 72

// bcryptInput returns password unchanged when bcrypt can take it, and a
// base64 SHA-256 digest of it otherwise. Every byte of a long password
// still counts.
func bcryptInput(password string) []byte {
	if len(password) <= bcryptMaxLen {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(bcryptInput(password), PasswordCost)
	return string(bytes), err
}

// CheckPassword checks if a password matches a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(password))
	return err == nil
}

// BurnPasswordCheck runs a comparison whose result is discarded.
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, bcryptInput(password))
}

// DigitsOnly strips every non-digit rune from s.
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// ValidatePhone reports whether phone holds a Brazilian number with area
// code: 10 digits for landlines, 11 for mobiles.
func ValidatePhone(phone string) bool {
	n := len(DigitsOnly(phone))
	return n == 10 || n == 11
}

// ValidateZip reports whether zip holds an 8 digit CEP.
func ValidateZip(zip string) bool {
	return len(DigitsOnly(zip)) == 8
}
