package controllers

import (
	"fmt"

	clientservices "epic-events-crm/clients/services"
	"epic-events-crm/db/models"
	"epic-events-crm/views"
)

func (s *Session) listClients() error {
	clients, err := s.services.Clients.ListAll()
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		s.view.RenderMessage("No clients available.", views.Info)
		return nil
	}
	s.showClients("Clients", clients)
	return nil
}

func (s *Session) searchClients() error {
	term := s.requiredText("Search", views.PlainText, 100)
	clients, err := s.services.Clients.Search(term)
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		s.view.RenderMessage(fmt.Sprintf("No clients match %q.", term), views.Info)
		return nil
	}
	s.showClients("Search results", clients)
	return nil
}

// createClient registers a client owned by the acting collaborator.
func (s *Session) createClient() error {
	for {
		input := clientservices.CreateClientInput{
			FullName:       s.requiredText("Full name", views.PlainText, 100),
			Email:          s.requiredText("Email", views.EmailText, 254),
			Phone:          s.view.PromptText("Phone (optional)", views.Optional(views.PhoneText, 20)),
			CompanyName:    s.view.PromptText("Company name (optional)", views.Optional(views.PlainText, 100)),
			SalesContactID: s.actor.ID,
		}

		created, err := s.services.Clients.Create(input)
		if err == nil {
			s.showClients("Client", []models.Client{*created})
			s.view.RenderMessage(fmt.Sprintf("Client %s created successfully.", created.FullName), views.Success)
			return nil
		}

		again, err := s.retry(err)
		if err != nil || !again {
			return err
		}
	}
}

func (s *Session) modifyOwnClient() error {
	clients, err := s.services.Clients.ListForSalesContact(s.actor.ID)
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		s.view.RenderMessage("No clients assigned to you.", views.Info)
		return nil
	}

	ids := s.showClients("Your clients", clients)
	selected := s.view.PromptIntInSet("Client id", ids)

	patch := clientservices.ClientPatch{
		FullName:    s.optionalText("Full name", views.PlainText, 100),
		Email:       s.optionalText("Email", views.EmailText, 254),
		Phone:       s.optionalText("Phone", views.PhoneText, 20),
		CompanyName: s.optionalText("Company name", views.PlainText, 100),
	}
	if patch.IsEmpty() {
		s.view.RenderMessage(noChangesMessage, views.Info)
		return nil
	}

	updated, err := s.services.Clients.Modify(selected, patch)
	if err != nil {
		return err
	}
	s.showClients("Client", []models.Client{*updated})
	s.view.RenderMessage("Client updated successfully.", views.Success)
	return nil
}
