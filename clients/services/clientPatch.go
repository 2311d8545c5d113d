package services

import (
	"strings"
	"unicode/utf8"

	"epic-events-crm/db/models"
	"epic-events-crm/utils"
)

// ClientPatch lists the fields to change; nil leaves a field untouched.
type ClientPatch struct {
	FullName    *string
	Email       *string
	Phone       *string
	CompanyName *string
}

func (p ClientPatch) IsEmpty() bool {
	return p.FullName == nil && p.Email == nil && p.Phone == nil && p.CompanyName == nil
}

func (p ClientPatch) Apply(c *models.Client) {
	if p.FullName != nil {
		c.FullName = strings.TrimSpace(*p.FullName)
	}
	if p.Email != nil {
		c.Email = strings.TrimSpace(*p.Email)
	}
	if p.Phone != nil {
		c.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.CompanyName != nil {
		c.CompanyName = strings.TrimSpace(*p.CompanyName)
	}
}

// ValidateClient returns the first problem found on c, or "".
func ValidateClient(c *models.Client) string {
	if c.FullName == "" {
		return "Full name is required"
	}
	if utf8.RuneCountInString(c.FullName) > 100 {
		return "Full name must be at most 100 characters long"
	}
	if c.Email == "" {
		return "Email is required"
	}
	if !utils.ValidateEmailFormat(c.Email) {
		return "Invalid email format"
	}
	if c.Phone != "" && !utils.ValidatePhoneFormat(c.Phone) {
		return "Invalid phone number"
	}
	if utf8.RuneCountInString(c.CompanyName) > 100 {
		return "Company name must be at most 100 characters long"
	}
	return ""
}
