package models

import "time"

// Event is organised for a signed contract and handled on site by a support
// collaborator.
type Event struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ContractID uint      `gorm:"not null;index" json:"contract_id"`
	Contract   *Contract `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"contract,omitempty"`

	ClientName    string  `gorm:"type:varchar(100);not null" json:"client_name"`
	ClientContact *string `gorm:"type:text" json:"client_contact"`

	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`

	// Nulled when the support collaborator is deleted.
	SupportContactID *uint         `gorm:"index" json:"support_contact_id"`
	SupportContact   *Collaborator `gorm:"foreignKey:SupportContactID;constraint:OnDelete:SET NULL" json:"support_contact,omitempty"`

	Location  string  `gorm:"type:varchar(300);not null" json:"location"`
	Attendees int     `gorm:"not null" json:"attendees"`
	Notes     *string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *Event) SupportContactName() string {
	if e.SupportContact == nil {
		return "No Contact Assigned"
	}
	return e.SupportContact.FullName()
}

func (e *Event) NotesOrDefault() string {
	if e.Notes == nil || *e.Notes == "" {
		return "No Notes"
	}
	return *e.Notes
}

func (e *Event) ClientContactOrDefault() string {
	if e.ClientContact == nil || *e.ClientContact == "" {
		return "-"
	}
	return *e.ClientContact
}
