package services

import (
	"errors"
	"strings"
	"time"

	"epic-events-crm/config"
	"epic-events-crm/crmerrors"
	"epic-events-crm/db/models"
	"epic-events-crm/events/repositories"
	"epic-events-crm/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateEventInput struct {
	ContractID    uint
	ClientContact string
	StartDate     time.Time
	EndDate       time.Time
	Location      string
	Attendees     int
	Notes         string
}

type EventService struct {
	db   *gorm.DB
	repo repositories.EventRepository
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{
		db:   db,
		repo: repositories.NewEventRepository(db),
	}
}

// Create organises an event for a signed contract. The client name is copied
// from the contract's client.
func (s *EventService) Create(input CreateEventInput) (*models.Event, error) {
	var created *models.Event
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var contract models.Contract
		if err := tx.Preload("Client").First(&contract, input.ContractID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return crmerrors.NotFound("No contract found with id %d.", input.ContractID)
			}
			return crmerrors.FromStorage(err, "Failed to load the contract")
		}
		if !contract.IsSigned() {
			return crmerrors.Validation("An event can only be created for a signed contract.")
		}

		event := &models.Event{
			ContractID:    contract.ID,
			ClientName:    contract.ClientName(),
			ClientContact: utils.OptionalString(input.ClientContact),
			StartDate:     input.StartDate,
			EndDate:       input.EndDate,
			Location:      strings.TrimSpace(input.Location),
			Attendees:     input.Attendees,
			Notes:         utils.OptionalString(input.Notes),
		}
		if msg := ValidateEvent(event); msg != "" {
			return crmerrors.Validation("%s", msg)
		}

		txRepo := repositories.NewEventRepository(tx)
		if _, err := txRepo.CreateEvent(event); err != nil {
			return crmerrors.FromStorage(err, "Failed to create the event")
		}

		var err error
		if created, err = txRepo.GetEventByID(event.ID); err != nil {
			return crmerrors.FromStorage(err, "Failed to load the event")
		}
		return nil
	})
	if err != nil {
		return nil, crmerrors.FromStorage(err, "Failed to create the event")
	}

	config.Logger.Info("Event created",
		zap.Uint("event_id", created.ID),
		zap.Uint("contract_id", created.ContractID))
	return created, nil
}

func (s *EventService) Modify(id uint, patch EventPatch) (*models.Event, error) {
	if patch.IsEmpty() {
		return nil, crmerrors.Validation("No modifications were made.")
	}

	var updated *models.Event
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := repositories.NewEventRepository(tx)

		event, err := txRepo.GetEventByID(id)
		if err != nil {
			return notFoundOr(err, id)
		}

		patch.Apply(event)
		if msg := ValidateEvent(event); msg != "" {
			return crmerrors.Validation("%s", msg)
		}

		if updated, err = txRepo.UpdateEvent(event); err != nil {
			return crmerrors.FromStorage(err, "Failed to update the event")
		}
		return nil
	})
	if err != nil {
		return nil, crmerrors.FromStorage(err, "Failed to update the event")
	}

	config.Logger.Info("Event updated", zap.Uint("event_id", id))
	return updated, nil
}

// AssignSupportContact hands the event over to a support collaborator.
func (s *EventService) AssignSupportContact(eventID, collaboratorID uint) (*models.Event, error) {
	var updated *models.Event
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var collaborator models.Collaborator
		if err := tx.First(&collaborator, collaboratorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return crmerrors.NotFound("No collaborator found with id %d.", collaboratorID)
			}
			return crmerrors.FromStorage(err, "Failed to load the collaborator")
		}
		if collaborator.Role != models.SupportRole {
			return crmerrors.Validation("%s is not a member of the support team.", collaborator.FullName())
		}

		txRepo := repositories.NewEventRepository(tx)
		event, err := txRepo.GetEventByID(eventID)
		if err != nil {
			return notFoundOr(err, eventID)
		}

		event.SupportContactID = &collaborator.ID
		event.SupportContact = &collaborator
		if updated, err = txRepo.UpdateEvent(event); err != nil {
			return crmerrors.FromStorage(err, "Failed to assign the support contact")
		}
		return nil
	})
	if err != nil {
		return nil, crmerrors.FromStorage(err, "Failed to assign the support contact")
	}

	config.Logger.Info("Event support contact assigned",
		zap.Uint("event_id", eventID),
		zap.Uint("support_contact_id", collaboratorID))
	return updated, nil
}

// ListAll lists events; see EventRepository.GetEvents for supportContactRequired.
func (s *EventService) ListAll(supportContactRequired *bool) ([]models.Event, error) {
	events, err := s.repo.GetEvents(supportContactRequired)
	if err != nil {
		return nil, crmerrors.FromStorage(err, "Failed to load events")
	}
	return events, nil
}

func (s *EventService) ListForSupportContact(collaboratorID uint) ([]models.Event, error) {
	events, err := s.repo.GetEventsBySupportContact(collaboratorID)
	if err != nil {
		return nil, crmerrors.FromStorage(err, "Failed to load events")
	}
	return events, nil
}

func (s *EventService) GetByID(id uint) (*models.Event, error) {
	event, err := s.repo.GetEventByID(id)
	if err != nil {
		return nil, notFoundOr(err, id)
	}
	return event, nil
}

func notFoundOr(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return crmerrors.NotFound("No event found with id %d.", id)
	}
	return crmerrors.FromStorage(err, "Failed to load the event")
}
