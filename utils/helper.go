package utils

import (
	"strings"
)

// StringPtr returns a pointer to the string value
func StringPtr(s string) *string {
	return &s
}

// UintPtr returns a pointer to the uint value
func UintPtr(v uint) *uint {
	return &v
}

// OptionalString turns blank input into nil.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// ContainsID reports whether id is one of ids.
func ContainsID(ids []uint, id uint) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
