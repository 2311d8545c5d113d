package controllers

import (
	"fmt"

	collaboratorservices "epic-events-crm/collaborators/services"
	"epic-events-crm/db/models"
	"epic-events-crm/views"
)

func (s *Session) createCollaborator() error {
	for {
		s.view.RenderMessage("Registering new collaborator...", views.Info)
		input := collaboratorservices.RegisterCollaboratorInput{
			FirstName:      s.requiredText("First name", views.PlainText, 150),
			LastName:       s.requiredText("Last name", views.PlainText, 150),
			Username:       s.requiredText("Username", views.PlainText, 150),
			Password:       s.view.PromptPassword("Password"),
			Email:          s.requiredText("Email", views.EmailText, 254),
			Role:           s.requiredText("Role [management/sales/support]", views.PlainText, 10),
			EmployeeNumber: s.requiredText("Employee number", views.PlainText, 20),
		}

		created, err := s.services.Collaborators.Register(input)
		if err == nil {
			s.showCollaborators("Collaborator", []models.Collaborator{*created})
			s.view.RenderMessage("User registered successfully!", views.Success)
			return nil
		}

		again, err := s.retry(err)
		if err != nil || !again {
			return err
		}
	}
}

// pickCollaborator lists every collaborator except superusers and returns the
// one selected, or nil when there is none.
func (s *Session) pickCollaborator() (*models.Collaborator, error) {
	collaborators, err := s.services.Collaborators.ListNonSuperuser()
	if err != nil {
		return nil, err
	}
	if len(collaborators) == 0 {
		s.view.RenderMessage("There are no collaborators available to display.", views.Info)
		return nil, nil
	}

	ids := s.showCollaborators("Collaborators", collaborators)
	selected := s.view.PromptIntInSet("Collaborator id", ids)
	for i := range collaborators {
		if collaborators[i].ID == selected {
			return &collaborators[i], nil
		}
	}
	return nil, nil
}

func (s *Session) modifyCollaborator() error {
	collaborator, err := s.pickCollaborator()
	if err != nil || collaborator == nil {
		return err
	}

	patch := collaboratorservices.CollaboratorPatch{
		FirstName:      s.optionalText("First name", views.PlainText, 150),
		LastName:       s.optionalText("Last name", views.PlainText, 150),
		Username:       s.optionalText("Username", views.PlainText, 150),
		Email:          s.optionalText("Email", views.EmailText, 254),
		EmployeeNumber: s.optionalText("Employee number", views.PlainText, 20),
		Role:           s.optionalRole("Role"),
	}
	if s.view.Confirm("Do you want to change the password?") {
		password := s.view.PromptPassword("New password")
		patch.Password = &password
	}
	if patch.IsEmpty() {
		s.view.RenderMessage(noChangesMessage, views.Info)
		return nil
	}

	updated, err := s.services.Collaborators.Modify(collaborator.ID, patch)
	if err != nil {
		return err
	}
	s.showCollaborators("Collaborator", []models.Collaborator{*updated})
	s.view.RenderMessage("The collaborator has been modified successfully.", views.Success)
	return nil
}

func (s *Session) deleteCollaborator() error {
	collaborator, err := s.pickCollaborator()
	if err != nil || collaborator == nil {
		return err
	}
	if collaborator.ID == s.actor.ID {
		s.view.RenderMessage("You cannot delete your own account.", views.Warning)
		return nil
	}

	question := fmt.Sprintf("Delete %s (%s)? Their clients and events will have no contact.", collaborator.FullName(), collaborator.Username)
	if !s.view.Confirm(question) {
		s.view.RenderMessage("The collaborator was not deleted.", views.Info)
		return nil
	}

	if err := s.services.Collaborators.Delete(collaborator.ID); err != nil {
		return err
	}
	s.view.RenderMessage("The collaborator has been deleted successfully.", views.Success)
	return nil
}
