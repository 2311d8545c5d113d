package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout is how event dates are typed and displayed.
const DateTimeLayout = "2006-01-02 15:04"

// DateLocation is the application's timezone.
var DateLocation = time.UTC

// InitializeDateLocation sets up the application's timezone.
func InitializeDateLocation(timezone string) error {
	if timezone == "" {
		timezone = "UTC"
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("unknown timezone %q: %w", timezone, err)
	}
	DateLocation = loc
	return nil
}

// ParseDateTime reads a "YYYY-MM-DD HH:MM" value in the application timezone.
func ParseDateTime(value string) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, strings.TrimSpace(value), DateLocation)
}

func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(DateLocation).Format(DateTimeLayout)
}

// FormatDate prints the calendar day of t in the application timezone.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(DateLocation).Format("2006-01-02")
}
