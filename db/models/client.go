package models

import "time"

// Client is a customer owned by a sales collaborator.
type Client struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	FullName    string `gorm:"type:varchar(100);not null" json:"full_name"`
	Email       string `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	Phone       string `gorm:"type:varchar(20)" json:"phone"`
	CompanyName string `gorm:"type:varchar(100)" json:"company_name"`

	// Nulled when the sales collaborator is deleted.
	SalesContactID *uint         `gorm:"index" json:"sales_contact_id"`
	SalesContact   *Collaborator `gorm:"foreignKey:SalesContactID;constraint:OnDelete:SET NULL" json:"sales_contact,omitempty"`

	Contracts []Contract `gorm:"foreignKey:ClientID" json:"contracts,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// SalesContactName is what the views print in the sales contact column.
func (c *Client) SalesContactName() string {
	if c.SalesContact == nil {
		return "No Contact Assigned"
	}
	return c.SalesContact.FullName()
}
