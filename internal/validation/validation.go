// Package validation contains input validators shared by the API handlers.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	minPasswordLen = 12
	maxPasswordLen = 128
	minUsernameLen = 3
	maxUsernameLen = 30
	maxEmailLen    = 254
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*[a-zA-Z0-9]$`)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidatePassword enforces length and character-class requirements.
func ValidatePassword(password string) error {
	runes := []rune(password)
	if len(runes) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	if len(runes) > maxPasswordLen {
		return fmt.Errorf("password must be at most %d characters", maxPasswordLen)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return fmt.Errorf("password must contain an uppercase letter, a lowercase letter, a digit, and a special character")
	}
	return nil
}

// ValidateUsername enforces username format. Usernames are matched
// case-insensitively elsewhere, so mixed case is accepted here.
func ValidateUsername(username string) error {
	if len(username) < minUsernameLen {
		return fmt.Errorf("username must be at least %d characters", minUsernameLen)
	}
	if len(username) > maxUsernameLen {
		return fmt.Errorf("username must be at most %d characters", maxUsernameLen)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may only contain letters, numbers, hyphens, and underscores, and must start and end with a letter or number")
	}
	return nil
}

// ValidateEmail does a format sanity check; deliverability is not verified.
func ValidateEmail(email string) error {
	if len(email) > maxEmailLen {
		return fmt.Errorf("email must be at most %d characters", maxEmailLen)
	}
	if !emailRegex.MatchString(email) || strings.HasSuffix(email, ".") {
		return fmt.Errorf("invalid email format")
	}
	local := email[:strings.IndexByte(email, '@')]
	if len(local) > 64 {
		return fmt.Errorf("invalid email format")
	}
	return nil
}
