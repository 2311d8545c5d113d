package controllers

import (
	"strconv"

	"epic-events-crm/contracts/repositories"
	"epic-events-crm/db/models"
	eventservices "epic-events-crm/events/services"
	"epic-events-crm/views"
)

func (s *Session) listEvents() error {
	return s.showEventSet("Events", nil)
}

func (s *Session) showEventSet(title string, supportContactRequired *bool) error {
	events, err := s.services.Events.ListAll(supportContactRequired)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		s.view.RenderMessage("No events available.", views.Info)
		return nil
	}
	s.showEvents(title, events)
	return nil
}

var eventFilters = []struct {
	label    string
	required *bool
}{
	{"All events", nil},
	{"Events without a support contact", boolPtr(false)},
	{"Events with a support contact", boolPtr(true)},
}

func boolPtr(b bool) *bool { return &b }

func (s *Session) filterEvents() error {
	rows := make([][]string, len(eventFilters))
	choices := make([]uint, len(eventFilters))
	for i, f := range eventFilters {
		rows[i] = []string{strconv.Itoa(i + 1), f.label}
		choices[i] = uint(i + 1)
	}
	s.view.RenderTable("Filter events", []string{"#", "Filter"}, rows)
	filter := eventFilters[s.view.PromptIntInSet("Filter", choices)-1]

	return s.showEventSet(filter.label, filter.required)
}

func (s *Session) assignSupportContact() error {
	events, err := s.services.Events.ListAll(nil)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		s.view.RenderMessage("No events available.", views.Info)
		return nil
	}

	supports, err := s.services.Collaborators.ListByRole(models.SupportRole)
	if err != nil {
		return err
	}
	if len(supports) == 0 {
		s.view.RenderMessage("There are no support collaborators available.", views.Info)
		return nil
	}

	eventIDs := s.showEvents("Events", events)
	eventID := s.view.PromptIntInSet("Event id", eventIDs)

	supportIDs := s.showCollaborators("Support team", supports)
	supportID := s.view.PromptIntInSet("Support collaborator id", supportIDs)

	updated, err := s.services.Events.AssignSupportContact(eventID, supportID)
	if err != nil {
		return err
	}
	s.showEvents("Event", []models.Event{*updated})
	s.view.RenderMessage("Support contact assigned successfully.", views.Success)
	return nil
}

// createEvent organises an event for one of the actor's signed contracts.
func (s *Session) createEvent() error {
	contracts, err := s.services.Contracts.ListFilteredForCollaborator(s.actor.ID, repositories.FilterSigned)
	if err != nil {
		return err
	}
	if len(contracts) == 0 {
		s.view.RenderMessage("You have no signed contracts.", views.Info)
		return nil
	}
	ids := s.showContracts("Signed contracts", contracts)
	contractID := s.view.PromptIntInSet("Contract id", ids)

	for {
		input := eventservices.CreateEventInput{
			ContractID:    contractID,
			ClientContact: s.view.PromptText("Client contact (optional)", views.Optional(views.PlainText, 255)),
			StartDate:     s.requiredDateTime("Start"),
			EndDate:       s.requiredDateTime("End"),
			Location:      s.requiredText("Location", views.PlainText, 300),
			Attendees:     s.requiredInt("Attendees"),
			Notes:         s.view.PromptText("Notes (optional)", views.Optional(views.PlainText, 1000)),
		}

		created, err := s.services.Events.Create(input)
		if err == nil {
			s.showEvents("Event", []models.Event{*created})
			s.view.RenderMessage("Event created successfully.", views.Success)
			return nil
		}

		again, err := s.retry(err)
		if err != nil || !again {
			return err
		}
	}
}

func (s *Session) listAssignedEvents() error {
	events, err := s.services.Events.ListForSupportContact(s.actor.ID)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		s.view.RenderMessage("No events assigned to you.", views.Info)
		return nil
	}
	s.showEvents("Your events", events)
	return nil
}

func (s *Session) modifyAssignedEvent() error {
	events, err := s.services.Events.ListForSupportContact(s.actor.ID)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		s.view.RenderMessage("No events assigned to you.", views.Info)
		return nil
	}

	ids := s.showEvents("Your events", events)
	selected := s.view.PromptIntInSet("Event id", ids)

	patch := eventservices.EventPatch{
		ClientContact: s.optionalText("Client contact", views.PlainText, 255),
		StartDate:     s.optionalDateTime("Start"),
		EndDate:       s.optionalDateTime("End"),
		Location:      s.optionalText("Location", views.PlainText, 300),
		Attendees:     s.optionalInt("Attendees"),
		Notes:         s.optionalText("Notes", views.PlainText, 1000),
	}
	if patch.IsEmpty() {
		s.view.RenderMessage(noChangesMessage, views.Info)
		return nil
	}

	updated, err := s.services.Events.Modify(selected, patch)
	if err != nil {
		return err
	}
	s.showEvents("Event", []models.Event{*updated})
	s.view.RenderMessage("Event updated successfully.", views.Success)
	return nil
}
