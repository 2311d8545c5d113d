package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 .\-]{5,19}$`)
)

func ValidateEmailFormat(email string) bool {
	return emailRegex.MatchString(strings.ToLower(strings.TrimSpace(email)))
}

// ValidatePhoneFormat accepts digits with optional leading "+" and spaces, dots or dashes.
func ValidatePhoneFormat(phone string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(phone))
}
