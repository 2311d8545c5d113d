package repositories

import (
	"fmt"
	"time"

	"epic-events-crm/db/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CollaboratorRepository interface {
	CreateCollaborator(collaborator *models.Collaborator) (*models.Collaborator, error)
	GetCollaboratorByID(id uint) (*models.Collaborator, error)
	GetCollaboratorByUsername(username string) (*models.Collaborator, error)
	IsValueTaken(field UniqueField, value string, excludeID uint) (bool, error)
	UpdateCollaborator(collaborator *models.Collaborator) (*models.Collaborator, error)
	DeleteCollaborator(collaborator *models.Collaborator) error
	GetAllNonSuperuserCollaborators() ([]models.Collaborator, error)
	GetCollaboratorsByRole(role models.Role) ([]models.Collaborator, error)
	UpdateLastLogin(id uint) error
}

// UniqueField is a collaborator column carrying a unique constraint.
type UniqueField string

const (
	UsernameField       UniqueField = "username"
	EmailField          UniqueField = "email"
	EmployeeNumberField UniqueField = "employee_number"
)

// Implementations
type collaboratorRepository struct {
	db *gorm.DB
}

func NewCollaboratorRepository(db *gorm.DB) CollaboratorRepository {
	return &collaboratorRepository{db: db}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func (r *collaboratorRepository) CreateCollaborator(collaborator *models.Collaborator) (*models.Collaborator, error) {
	if err := r.db.Create(collaborator).Error; err != nil {
		return nil, fmt.Errorf("failed to create collaborator in database: %w", err)
	}
	return collaborator, nil
}

func (r *collaboratorRepository) GetCollaboratorByID(id uint) (*models.Collaborator, error) {
	var collaborator models.Collaborator
	if err := r.db.Preload("Groups").First(&collaborator, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get collaborator %d: %w", id, err)
	}
	return &collaborator, nil
}

func (r *collaboratorRepository) GetCollaboratorByUsername(username string) (*models.Collaborator, error) {
	var collaborator models.Collaborator
	if err := r.db.Preload("Groups").First(&collaborator, "username = ?", username).Error; err != nil {
		return nil, fmt.Errorf("failed to get collaborator %q: %w", username, err)
	}
	return &collaborator, nil
}

// IsValueTaken reports whether another collaborator (id != excludeID) already uses value.
func (r *collaboratorRepository) IsValueTaken(field UniqueField, value string, excludeID uint) (bool, error) {
	switch field {
	case UsernameField, EmailField, EmployeeNumberField:
	default:
		return false, fmt.Errorf("unsupported unique field %q", field)
	}

	query := r.db.Model(&models.Collaborator{}).Where(string(field)+" = ?", value)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check %s uniqueness: %w", field, err)
	}
	return count > 0, nil
}

func (r *collaboratorRepository) UpdateCollaborator(collaborator *models.Collaborator) (*models.Collaborator, error) {
	// Omit associations so group membership is only ever changed through the authorizer.
	if err := r.db.Omit("Groups").Save(collaborator).Error; err != nil {
		return nil, fmt.Errorf("failed to update collaborator %d: %w", collaborator.ID, err)
	}
	return collaborator, nil
}

// DeleteCollaborator releases the collaborator's clients, contracts and events,
// removes its memberships and deletes the row.
func (r *collaboratorRepository) DeleteCollaborator(collaborator *models.Collaborator) error {
	db := r.db
	if err := db.Model(&models.Client{}).Where("sales_contact_id = ?", collaborator.ID).
		Update("sales_contact_id", nil).Error; err != nil {
		return fmt.Errorf("failed to release clients of collaborator %d: %w", collaborator.ID, err)
	}
	if err := db.Model(&models.Contract{}).Where("sales_contact_id = ?", collaborator.ID).
		Update("sales_contact_id", nil).Error; err != nil {
		return fmt.Errorf("failed to release contracts of collaborator %d: %w", collaborator.ID, err)
	}
	if err := db.Model(&models.Event{}).Where("support_contact_id = ?", collaborator.ID).
		Update("support_contact_id", nil).Error; err != nil {
		return fmt.Errorf("failed to release events of collaborator %d: %w", collaborator.ID, err)
	}
	if err := db.Model(collaborator).Association("Groups").Clear(); err != nil {
		return fmt.Errorf("failed to clear groups of collaborator %d: %w", collaborator.ID, err)
	}
	if err := db.Delete(&models.Collaborator{}, collaborator.ID).Error; err != nil {
		return fmt.Errorf("failed to delete collaborator %d: %w", collaborator.ID, err)
	}
	return nil
}

func (r *collaboratorRepository) GetAllNonSuperuserCollaborators() ([]models.Collaborator, error) {
	var collaborators []models.Collaborator
	err := r.db.Where("is_superuser = ?", false).Order("id").Find(&collaborators).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get collaborators: %w", err)
	}
	return collaborators, nil
}

func (r *collaboratorRepository) GetCollaboratorsByRole(role models.Role) ([]models.Collaborator, error) {
	var collaborators []models.Collaborator
	err := r.db.Where("role = ? AND is_active = ?", role, true).Order("id").Find(&collaborators).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get %s collaborators: %w", role, err)
	}
	return collaborators, nil
}

func (r *collaboratorRepository) UpdateLastLogin(id uint) error {
	return r.db.Model(&models.Collaborator{}).Where("id = ?", id).Update("last_login_at", time.Now()).Error
}
