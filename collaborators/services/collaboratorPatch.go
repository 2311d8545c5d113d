package services

import (
	"strings"

	"epic-events-crm/db/models"
)

// CollaboratorPatch lists the fields to change; nil leaves a field untouched.
type CollaboratorPatch struct {
	Username       *string
	FirstName      *string
	LastName       *string
	Email          *string
	EmployeeNumber *string
	Password       *string
	Role           *models.Role
}

func (p CollaboratorPatch) IsEmpty() bool {
	return p.Username == nil && p.FirstName == nil && p.LastName == nil &&
		p.Email == nil && p.EmployeeNumber == nil && p.Password == nil && p.Role == nil
}

// Validate checks the values the patch carries, not the row they will land on.
func (p CollaboratorPatch) Validate() string {
	if p.Username != nil && strings.TrimSpace(*p.Username) == "" {
		return "Username cannot be blank"
	}
	if p.FirstName != nil && strings.TrimSpace(*p.FirstName) == "" {
		return "First name cannot be blank"
	}
	if p.LastName != nil && strings.TrimSpace(*p.LastName) == "" {
		return "Last name cannot be blank"
	}
	if p.Email != nil && !ValidateEmailFormat(*p.Email) {
		return "Invalid email format"
	}
	if p.EmployeeNumber != nil {
		if msg := ValidateEmployeeNumber(*p.EmployeeNumber); msg != "" {
			return msg
		}
	}
	if p.Role != nil {
		if _, ok := models.ParseRole(string(*p.Role)); !ok {
			return "Invalid role, choose between management, sales and support"
		}
	}
	if p.Password != nil {
		return ValidatePassword(*p.Password)
	}
	return ""
}

// Apply copies every set field except Password, which is stored hashed by the service.
func (p CollaboratorPatch) Apply(c *models.Collaborator) {
	if p.Username != nil {
		c.Username = strings.TrimSpace(*p.Username)
	}
	if p.FirstName != nil {
		c.FirstName = strings.TrimSpace(*p.FirstName)
	}
	if p.LastName != nil {
		c.LastName = strings.TrimSpace(*p.LastName)
	}
	if p.Email != nil {
		c.Email = strings.TrimSpace(*p.Email)
	}
	if p.EmployeeNumber != nil {
		c.EmployeeNumber = strings.TrimSpace(*p.EmployeeNumber)
	}
	if p.Role != nil {
		if role, ok := models.ParseRole(string(*p.Role)); ok {
			c.Role = role
		}
	}
}
