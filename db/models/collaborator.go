package models

import (
	"strings"
	"time"
)

type Role string

const (
	ManagementRole Role = "management"
	SalesRole      Role = "sales"
	SupportRole    Role = "support"
)

// Roles lists every role a collaborator can hold.
var Roles = []Role{ManagementRole, SalesRole, SupportRole}

// ParseRole maps a role name typed by an operator onto a Role.
func ParseRole(name string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(name))) {
	case ManagementRole:
		return ManagementRole, true
	case SalesRole:
		return SalesRole, true
	case SupportRole:
		return SupportRole, true
	}
	return "", false
}

// GroupName is the permission group that mirrors the role.
func (r Role) GroupName() string {
	return string(r) + "_team"
}

// Collaborator is an employee who logs into the CRM. Group membership always
// mirrors Role.
type Collaborator struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Username       string `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	FirstName      string `gorm:"type:varchar(150);not null" json:"first_name"`
	LastName       string `gorm:"type:varchar(150);not null" json:"last_name"`
	Email          string `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	EmployeeNumber string `gorm:"type:varchar(20);uniqueIndex;not null" json:"employee_number"`
	Password       string `gorm:"not null" json:"-"` // bcrypt hash

	Role        Role `gorm:"type:varchar(10);not null;index" json:"role"`
	IsSuperuser bool `gorm:"default:false" json:"is_superuser"`
	IsActive    bool `gorm:"default:true" json:"is_active"`

	Groups []Group `gorm:"many2many:collaborator_groups;constraint:OnDelete:CASCADE" json:"groups,omitempty"`

	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// FullName falls back to the username when no names are recorded.
func (c *Collaborator) FullName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return c.Username
	}
	return name
}

// GroupNames returns the names of the loaded groups.
func (c *Collaborator) GroupNames() []string {
	names := make([]string, 0, len(c.Groups))
	for _, g := range c.Groups {
		names = append(names, g.Name)
	}
	return names
}
