package validation

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

const MaxNameLength = 100

// ValidateName checks a display name as shown on goals and in emails.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("Name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return errors.New("Name must be at most 100 characters")
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return errors.New("Name contains invalid characters")
	}
	return nil
}
