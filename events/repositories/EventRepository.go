package repositories

import (
	"fmt"

	"epic-events-crm/db/models"

	"gorm.io/gorm"
)

type EventRepository interface {
	CreateEvent(event *models.Event) (*models.Event, error)
	GetEventByID(id uint) (*models.Event, error)
	UpdateEvent(event *models.Event) (*models.Event, error)
	GetEvents(supportContactRequired *bool) ([]models.Event, error)
	GetEventsBySupportContact(collaboratorID uint) ([]models.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) preloaded() *gorm.DB {
	return r.db.Preload("Contract").Preload("SupportContact")
}

func (r *eventRepository) CreateEvent(event *models.Event) (*models.Event, error) {
	if err := r.db.Omit("Contract", "SupportContact").Create(event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event in database: %w", err)
	}
	return event, nil
}

func (r *eventRepository) GetEventByID(id uint) (*models.Event, error) {
	var event models.Event
	if err := r.preloaded().First(&event, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get event %d: %w", id, err)
	}
	return &event, nil
}

func (r *eventRepository) UpdateEvent(event *models.Event) (*models.Event, error) {
	if err := r.db.Omit("Contract", "SupportContact").Save(event).Error; err != nil {
		return nil, fmt.Errorf("failed to update event %d: %w", event.ID, err)
	}
	return event, nil
}

// GetEvents lists events; a non-nil supportContactRequired keeps only the
// events with (true) or without (false) a support contact.
func (r *eventRepository) GetEvents(supportContactRequired *bool) ([]models.Event, error) {
	query := r.preloaded()
	if supportContactRequired != nil {
		if *supportContactRequired {
			query = query.Where("support_contact_id IS NOT NULL")
		} else {
			query = query.Where("support_contact_id IS NULL")
		}
	}

	var events []models.Event
	if err := query.Order("start_date, id").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	return events, nil
}

func (r *eventRepository) GetEventsBySupportContact(collaboratorID uint) ([]models.Event, error) {
	var events []models.Event
	err := r.preloaded().
		Where("support_contact_id = ?", collaboratorID).
		Order("start_date, id").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get events of collaborator %d: %w", collaboratorID, err)
	}
	return events, nil
}
