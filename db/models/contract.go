package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContractStatus string

const (
	ContractSigned    ContractStatus = "signed"
	ContractNotSigned ContractStatus = "not_signed"
)

// ParseContractStatus accepts "signed" / "not_signed" and the human spelling "not signed".
func ParseContractStatus(s string) (ContractStatus, bool) {
	switch s {
	case string(ContractSigned):
		return ContractSigned, true
	case string(ContractNotSigned), "not signed":
		return ContractNotSigned, true
	}
	return "", false
}

// Display returns the label shown in tables.
func (s ContractStatus) Display() string {
	switch s {
	case ContractSigned:
		return "Signed"
	case ContractNotSigned:
		return "Not Signed"
	}
	return string(s)
}

// Contract belongs to exactly one client. AmountRemaining is expected to stay at
// or below TotalAmount but the database does not enforce it.
type Contract struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	ClientID uint    `gorm:"not null;index" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"client,omitempty"`

	SalesContactID *uint         `gorm:"index" json:"sales_contact_id"`
	SalesContact   *Collaborator `gorm:"foreignKey:SalesContactID;constraint:OnDelete:SET NULL" json:"sales_contact,omitempty"`

	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	AmountRemaining decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount_remaining"`
	Status          ContractStatus  `gorm:"type:varchar(25);not null;default:'not_signed';index" json:"status"`

	Events []Event `gorm:"foreignKey:ContractID" json:"events,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Contract) IsSigned() bool {
	return c.Status == ContractSigned
}

func (c *Contract) ClientName() string {
	if c.Client == nil {
		return "No Client Assigned"
	}
	return c.Client.FullName
}

func (c *Contract) SalesContactName() string {
	if c.SalesContact == nil {
		return "No Contact Assigned"
	}
	return c.SalesContact.FullName()
}
