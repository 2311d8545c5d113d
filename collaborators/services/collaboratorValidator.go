package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"epic-events-crm/db/models"
	"epic-events-crm/utils"
)

var (
	uppercase   = regexp.MustCompile(`[A-Z]`)
	lowercase   = regexp.MustCompile(`[a-z]`)
	digit       = regexp.MustCompile(`[0-9]`)
	specialChar = regexp.MustCompile(`[!@#\$%\^&\*\(\)_\+\-=\[\]\{\};':"\\|,.<>\/?]+`)
	employeeNo  = regexp.MustCompile(`^[A-Za-z0-9\-]{1,20}$`)
)

// ValidateCollaborator returns the first problem found in the registration input, or "".
func ValidateCollaborator(input RegisterCollaboratorInput) string {
	if strings.TrimSpace(input.Username) == "" {
		return "Username is required"
	}
	if utf8.RuneCountInString(input.Username) > 150 {
		return "Username must be at most 150 characters long"
	}
	if strings.TrimSpace(input.FirstName) == "" {
		return "First name is required"
	}
	if strings.TrimSpace(input.LastName) == "" {
		return "Last name is required"
	}
	if input.Email == "" {
		return "Email is required"
	}
	if !ValidateEmailFormat(input.Email) {
		return "Invalid email format"
	}
	if msg := ValidateEmployeeNumber(input.EmployeeNumber); msg != "" {
		return msg
	}
	if _, ok := models.ParseRole(input.Role); !ok {
		return "Invalid role, choose between management, sales and support"
	}
	return ValidatePassword(input.Password)
}

func ValidatePassword(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters long"
	}
	if !uppercase.MatchString(password) {
		return "Password must contain at least one uppercase letter"
	}
	if !lowercase.MatchString(password) {
		return "Password must contain at least one lowercase letter"
	}
	if !digit.MatchString(password) {
		return "Password must contain at least one digit"
	}
	if !specialChar.MatchString(password) {
		return "Password must contain at least one special character"
	}
	return ""
}

func ValidateEmailFormat(email string) bool {
	return utils.ValidateEmailFormat(email)
}

func ValidateEmployeeNumber(number string) string {
	if number == "" {
		return "Employee number is required"
	}
	if !employeeNo.MatchString(number) {
		return "Employee number may only contain letters, digits and dashes"
	}
	return ""
}
