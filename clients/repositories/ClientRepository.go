package repositories

import (
	"fmt"
	"strings"

	"epic-events-crm/db/models"

	"gorm.io/gorm"
)

type ClientRepository interface {
	CreateClient(client *models.Client) (*models.Client, error)
	GetClientByID(id uint) (*models.Client, error)
	GetClientsByIDs(ids []uint) ([]models.Client, error)
	IsEmailTaken(email string, excludeID uint) (bool, error)
	UpdateClient(client *models.Client) (*models.Client, error)
	DeleteClient(id uint) error
	GetAllClients() ([]models.Client, error)
	GetClientsBySalesContact(collaboratorID uint) ([]models.Client, error)
	SearchClients(term string, limit int) ([]models.Client, error)
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) CreateClient(client *models.Client) (*models.Client, error) {
	if err := r.db.Create(client).Error; err != nil {
		return nil, fmt.Errorf("failed to create client in database: %w", err)
	}
	return client, nil
}

func (r *clientRepository) GetClientByID(id uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.Preload("SalesContact").First(&client, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get client %d: %w", id, err)
	}
	return &client, nil
}

func (r *clientRepository) GetClientsByIDs(ids []uint) ([]models.Client, error) {
	var clients []models.Client
	if len(ids) == 0 {
		return clients, nil
	}
	if err := r.db.Preload("SalesContact").Where("id IN ?", ids).Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to get clients by ids: %w", err)
	}
	return clients, nil
}

func (r *clientRepository) IsEmailTaken(email string, excludeID uint) (bool, error) {
	query := r.db.Model(&models.Client{}).Where("LOWER(email) = ?", strings.ToLower(email))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check client email: %w", err)
	}
	return count > 0, nil
}

func (r *clientRepository) UpdateClient(client *models.Client) (*models.Client, error) {
	if err := r.db.Omit("SalesContact", "Contracts").Save(client).Error; err != nil {
		return nil, fmt.Errorf("failed to update client %d: %w", client.ID, err)
	}
	return client, nil
}

func (r *clientRepository) DeleteClient(id uint) error {
	if err := r.db.Delete(&models.Client{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete client %d: %w", id, err)
	}
	return nil
}

func (r *clientRepository) GetAllClients() ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.Preload("SalesContact").Order("id").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to get clients: %w", err)
	}
	return clients, nil
}

func (r *clientRepository) GetClientsBySalesContact(collaboratorID uint) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.Preload("SalesContact").
		Where("sales_contact_id = ?", collaboratorID).
		Order("id").
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get clients of collaborator %d: %w", collaboratorID, err)
	}
	return clients, nil
}

// SearchClients is the SQL fallback used when no search index is configured.
func (r *clientRepository) SearchClients(term string, limit int) ([]models.Client, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"

	var clients []models.Client
	err := r.db.Preload("SalesContact").
		Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(company_name) LIKE ?", pattern, pattern, pattern).
		Order("id").
		Limit(limit).
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search clients: %w", err)
	}
	return clients, nil
}
