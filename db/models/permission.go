package models

import "time"

// Permission is a capability code such as "view_client".
type Permission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Codename  string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"codename"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Permission) TableName() string { return "auth_permissions" }

// Group bundles permissions; every collaborator belongs to the group of its role.
type Group struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:varchar(150);uniqueIndex;not null" json:"name"`
	Permissions []Permission `gorm:"many2many:auth_group_permissions;constraint:OnDelete:CASCADE" json:"permissions,omitempty"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

// "groups" is reserved in MySQL 8.
func (Group) TableName() string { return "auth_groups" }
