// Package controllers runs the interactive CRM session: login, the menu of the
// collaborator's role and the workflows behind every menu option.
package controllers

import (
	"epic-events-crm/auth"
	clientservices "epic-events-crm/clients/services"
	collaboratorservices "epic-events-crm/collaborators/services"
	"epic-events-crm/contracts/repositories"
	contractservices "epic-events-crm/contracts/services"
	"epic-events-crm/db/models"
	eventservices "epic-events-crm/events/services"
	"epic-events-crm/views"
)

// Presenter renders output and collects the operator's answers.
// views.Terminal is the production implementation.
type Presenter interface {
	RenderTable(title string, columns []string, rows [][]string)
	RenderMessage(message string, severity views.Severity)
	PromptText(label string, constraints views.TextConstraints) string
	PromptPassword(label string) string
	PromptInt(label string) int
	PromptIntInSet(label string, validIDs []uint) uint
	Confirm(question string) bool
}

type PermissionChecker interface {
	HasPermission(actor *models.Collaborator, perm auth.Permission) (bool, error)
}

type CollaboratorService interface {
	Register(input collaboratorservices.RegisterCollaboratorInput) (*models.Collaborator, error)
	Modify(id uint, patch collaboratorservices.CollaboratorPatch) (*models.Collaborator, error)
	Delete(id uint) error
	Authenticate(username, password string) (*models.Collaborator, error)
	ListNonSuperuser() ([]models.Collaborator, error)
	ListByRole(role models.Role) ([]models.Collaborator, error)
}

type ClientService interface {
	Create(input clientservices.CreateClientInput) (*models.Client, error)
	Modify(id uint, patch clientservices.ClientPatch) (*models.Client, error)
	ListAll() ([]models.Client, error)
	ListForSalesContact(collaboratorID uint) ([]models.Client, error)
	Search(term string) ([]models.Client, error)
}

type ContractService interface {
	Create(input contractservices.CreateContractInput) (*models.Contract, error)
	Modify(id uint, patch contractservices.ContractPatch) (*models.Contract, error)
	ListAll() ([]models.Contract, error)
	ListFilteredForCollaborator(collaboratorID uint, filter repositories.ContractFilter) ([]models.Contract, error)
}

type EventService interface {
	Create(input eventservices.CreateEventInput) (*models.Event, error)
	Modify(id uint, patch eventservices.EventPatch) (*models.Event, error)
	AssignSupportContact(eventID, collaboratorID uint) (*models.Event, error)
	ListAll(supportContactRequired *bool) ([]models.Event, error)
	ListForSupportContact(collaboratorID uint) ([]models.Event, error)
}

// Services groups the record services a session works with.
type Services struct {
	Collaborators CollaboratorService
	Clients       ClientService
	Contracts     ContractService
	Events        EventService
}
