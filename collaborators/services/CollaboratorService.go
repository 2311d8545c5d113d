package services

import (
	"errors"
	"strings"
	"sync"

	"epic-events-crm/auth"
	"epic-events-crm/collaborators/repositories"
	"epic-events-crm/config"
	"epic-events-crm/crmerrors"
	"epic-events-crm/db/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const invalidCredentials = "Incorrect username or password"

// dummyHash is compared against when the username is unknown so a failed
// login costs the same whether or not the account exists.
var dummyHash = sync.OnceValue(func() string {
	hash, err := repositories.HashPassword("not-a-real-password-1A!")
	if err != nil {
		config.Logger.Error("Failed to build dummy password hash", zap.Error(err))
	}
	return hash
})

type RegisterCollaboratorInput struct {
	Username       string
	FirstName      string
	LastName       string
	Email          string
	EmployeeNumber string
	Password       string
	Role           string
	IsSuperuser    bool
}

type CollaboratorService struct {
	db         *gorm.DB
	repo       repositories.CollaboratorRepository
	authorizer auth.Authorizer
}

func NewCollaboratorService(db *gorm.DB, authorizer auth.Authorizer) *CollaboratorService {
	return &CollaboratorService{
		db:         db,
		repo:       repositories.NewCollaboratorRepository(db),
		authorizer: authorizer,
	}
}

// Register creates a collaborator and puts it in the group of its role.
// Nothing is persisted when a check fails.
func (s *CollaboratorService) Register(input RegisterCollaboratorInput) (*models.Collaborator, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.EmployeeNumber = strings.TrimSpace(input.EmployeeNumber)

	if msg := ValidateCollaborator(input); msg != "" {
		return nil, crmerrors.Validation("%s", msg)
	}
	role, _ := models.ParseRole(input.Role)

	var created *models.Collaborator
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := repositories.NewCollaboratorRepository(tx)

		if err := checkUnique(txRepo, 0, &input.Username, &input.Email, &input.EmployeeNumber); err != nil {
			return err
		}

		hashedPassword, err := repositories.HashPassword(input.Password)
		if err != nil {
			return crmerrors.Unexpected(err, "Could not secure the password")
		}

		collaborator := &models.Collaborator{
			Username:       input.Username,
			FirstName:      strings.TrimSpace(input.FirstName),
			LastName:       strings.TrimSpace(input.LastName),
			Email:          input.Email,
			EmployeeNumber: input.EmployeeNumber,
			Password:       hashedPassword,
			Role:           role,
			IsSuperuser:    input.IsSuperuser,
			IsActive:       true,
		}
		if created, err = txRepo.CreateCollaborator(collaborator); err != nil {
			return crmerrors.FromStorage(err, "Failed to create the collaborator")
		}

		if err := s.authorizer.SetRoleGroups(tx, created, role); err != nil {
			return crmerrors.FromStorage(err, "Failed to assign the collaborator's group")
		}
		return nil
	})
	if err != nil {
		config.Logger.Warn("Collaborator registration failed",
			zap.String("username", input.Username),
			zap.String("kind", crmerrors.KindOf(err).String()),
			zap.Error(err))
		return nil, crmerrors.FromStorage(err, "Failed to create the collaborator")
	}

	config.Logger.Info("Collaborator registered",
		zap.Uint("collaborator_id", created.ID),
		zap.String("username", created.Username),
		zap.String("role", string(created.Role)))
	return created, nil
}

// Modify applies patch to the collaborator with the given id. A role change
// replaces every group membership with the group of the new role.
func (s *CollaboratorService) Modify(id uint, patch CollaboratorPatch) (*models.Collaborator, error) {
	if patch.IsEmpty() {
		return nil, crmerrors.Validation("No modifications were made.")
	}
	if msg := patch.Validate(); msg != "" {
		return nil, crmerrors.Validation("%s", msg)
	}

	var updated *models.Collaborator
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := repositories.NewCollaboratorRepository(tx)

		collaborator, err := txRepo.GetCollaboratorByID(id)
		if err != nil {
			return notFoundOr(err, id)
		}

		if err := checkUnique(txRepo, id, patch.Username, patch.Email, patch.EmployeeNumber); err != nil {
			return err
		}

		previousRole := collaborator.Role
		patch.Apply(collaborator)
		roleChanged := collaborator.Role != previousRole

		if patch.Password != nil {
			hashedPassword, err := repositories.HashPassword(*patch.Password)
			if err != nil {
				return crmerrors.Unexpected(err, "Could not secure the password")
			}
			collaborator.Password = hashedPassword
		}

		if updated, err = txRepo.UpdateCollaborator(collaborator); err != nil {
			return crmerrors.FromStorage(err, "Failed to update the collaborator")
		}

		if roleChanged {
			if err := s.authorizer.SetRoleGroups(tx, updated, updated.Role); err != nil {
				return crmerrors.FromStorage(err, "Failed to update the collaborator's group")
			}
		}
		return nil
	})
	if err != nil {
		return nil, crmerrors.FromStorage(err, "Failed to update the collaborator")
	}

	config.Logger.Info("Collaborator updated",
		zap.Uint("collaborator_id", updated.ID),
		zap.String("role", string(updated.Role)))
	return updated, nil
}

// Delete removes a collaborator for good. Clients, contracts and events it was
// in charge of lose their contact.
func (s *CollaboratorService) Delete(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := repositories.NewCollaboratorRepository(tx)

		collaborator, err := txRepo.GetCollaboratorByID(id)
		if err != nil {
			return notFoundOr(err, id)
		}
		if collaborator.IsSuperuser {
			return crmerrors.Validation("A superuser cannot be deleted.")
		}

		if err := txRepo.DeleteCollaborator(collaborator); err != nil {
			return crmerrors.FromStorage(err, "Failed to delete the collaborator")
		}
		return nil
	})
	if err != nil {
		return crmerrors.FromStorage(err, "Failed to delete the collaborator")
	}

	config.Logger.Info("Collaborator deleted", zap.Uint("collaborator_id", id))
	return nil
}

func (s *CollaboratorService) Authenticate(username, password string) (*models.Collaborator, error) {
	collaborator, err := s.repo.GetCollaboratorByUsername(strings.TrimSpace(username))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, crmerrors.FromStorage(err, "Failed to look up the collaborator")
		}
		repositories.CheckPasswordHash(password, dummyHash())
		return nil, crmerrors.Validation(invalidCredentials)
	}

	if !repositories.CheckPasswordHash(password, collaborator.Password) || !collaborator.IsActive {
		return nil, crmerrors.Validation(invalidCredentials)
	}

	if err := s.repo.UpdateLastLogin(collaborator.ID); err != nil {
		config.Logger.Warn("Failed to record last login",
			zap.Uint("collaborator_id", collaborator.ID),
			zap.Error(err))
	}
	return collaborator, nil
}

func (s *CollaboratorService) ListNonSuperuser() ([]models.Collaborator, error) {
	collaborators, err := s.repo.GetAllNonSuperuserCollaborators()
	if err != nil {
		return nil, crmerrors.FromStorage(err, "Failed to load collaborators")
	}
	return collaborators, nil
}

func (s *CollaboratorService) ListByRole(role models.Role) ([]models.Collaborator, error) {
	collaborators, err := s.repo.GetCollaboratorsByRole(role)
	if err != nil {
		return nil, crmerrors.FromStorage(err, "Failed to load collaborators")
	}
	return collaborators, nil
}

func (s *CollaboratorService) GetByID(id uint) (*models.Collaborator, error) {
	collaborator, err := s.repo.GetCollaboratorByID(id)
	if err != nil {
		return nil, notFoundOr(err, id)
	}
	return collaborator, nil
}

// checkUnique fails on the first of username, email and employee number that
// another collaborator already uses. Nil values are skipped.
func checkUnique(repo repositories.CollaboratorRepository, excludeID uint, username, email, employeeNumber *string) error {
	checks := []struct {
		field   repositories.UniqueField
		value   *string
		message string
	}{
		{repositories.UsernameField, username, "The username: %s is already in use."},
		{repositories.EmailField, email, "The email: %s is already in use."},
		{repositories.EmployeeNumberField, employeeNumber, "The employee number: %s is already in use."},
	}

	for _, check := range checks {
		if check.value == nil {
			continue
		}
		value := strings.TrimSpace(*check.value)
		taken, err := repo.IsValueTaken(check.field, value, excludeID)
		if err != nil {
			return crmerrors.FromStorage(err, "Failed to check collaborator details")
		}
		if taken {
			return crmerrors.Validation(check.message, value)
		}
	}
	return nil
}

func notFoundOr(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return crmerrors.NotFound("No collaborator found with id %d.", id)
	}
	return crmerrors.FromStorage(err, "Failed to load the collaborator")
}
