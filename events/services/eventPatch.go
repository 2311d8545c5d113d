package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"epic-events-crm/db/models"
	"epic-events-crm/utils"
)

// EventPatch lists the fields to change; nil leaves a field untouched.
// A pointer to "" clears ClientContact or Notes.
type EventPatch struct {
	ClientContact *string
	StartDate     *time.Time
	EndDate       *time.Time
	Location      *string
	Attendees     *int
	Notes         *string
}

func (p EventPatch) IsEmpty() bool {
	return p.ClientContact == nil && p.StartDate == nil && p.EndDate == nil &&
		p.Location == nil && p.Attendees == nil && p.Notes == nil
}

func (p EventPatch) Apply(e *models.Event) {
	if p.ClientContact != nil {
		e.ClientContact = utils.OptionalString(*p.ClientContact)
	}
	if p.StartDate != nil {
		e.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		e.EndDate = *p.EndDate
	}
	if p.Location != nil {
		e.Location = strings.TrimSpace(*p.Location)
	}
	if p.Attendees != nil {
		e.Attendees = *p.Attendees
	}
	if p.Notes != nil {
		e.Notes = utils.OptionalString(*p.Notes)
	}
}

// ValidateEvent returns the first problem found on e, or "".
func ValidateEvent(e *models.Event) string {
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		return "Start and end dates are required"
	}
	if !e.StartDate.Before(e.EndDate) {
		return "The event must start before it ends"
	}
	if e.Location == "" {
		return "Location is required"
	}
	if utf8.RuneCountInString(e.Location) > 300 {
		return "Location must be at most 300 characters long"
	}
	if e.Attendees <= 0 {
		return "The number of attendees must be greater than zero"
	}
	return ""
}
