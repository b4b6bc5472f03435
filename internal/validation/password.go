package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLength = 12
	// bcrypt ignores everything past 72 bytes.
	MaxPasswordBytes = 72
)

var weakPasswordFragments = []string{
	"password", "123456", "qwerty", "letmein", "iloveyou",
	"dreamtask", "goal", "admin", "welcome",
}

var (
	errPasswordShort = errors.New("Password must be at least 12 characters")
	errPasswordLong  = errors.New("Password must be at most 72 bytes")
	errPasswordWeak  = errors.New("Password is too easy to guess")
)

// ValidatePassword checks a new account password. Length counts characters,
// the upper bound counts bytes.
func ValidatePassword(password string) error {
	switch {
	case utf8.RuneCountInString(password) < MinPasswordLength:
		return errPasswordShort
	case len(password) > MaxPasswordBytes:
		return errPasswordLong
	}

	lower := strings.ToLower(password)
	for _, fragment := range weakPasswordFragments {
		if strings.Contains(lower, fragment) {
			return errPasswordWeak
		}
	}

	return nil
}
