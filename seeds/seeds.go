package seeds

import (
	"errors"
	"fmt"

	"epic-events-crm/auth"
	"epic-events-crm/collaborators/repositories"
	"epic-events-crm/collaborators/services"
	"epic-events-crm/config"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InitialCollaborators are the first accounts of a fresh CRM, one per role.
var InitialCollaborators = []services.RegisterCollaboratorInput{
	{
		FirstName:      "Thomas",
		LastName:       "Girard",
		Username:       "thomasg",
		Email:          "thomas.girard@example.net",
		Role:           "management",
		EmployeeNumber: "9473",
		Password:       "Manage123*",
	},
	{
		FirstName:      "Alex",
		LastName:       "Johnson",
		Username:       "alexj",
		Email:          "alex.johnson@example.net",
		Role:           "sales",
		EmployeeNumber: "9474",
		Password:       "Sales123*",
	},
	{
		FirstName:      "Emma",
		LastName:       "Smith",
		Username:       "emmas",
		Email:          "emma.smith@example.net",
		Role:           "support",
		EmployeeNumber: "9475",
		Password:       "Support123*",
	},
}

// SeedCollaborators registers every collaborator whose username is not taken yet.
func SeedCollaborators(db *gorm.DB, authorizer auth.Authorizer, collaborators []services.RegisterCollaboratorInput) error {
	config.Logger.Info("Starting collaborators seeding...")

	repo := repositories.NewCollaboratorRepository(db)
	service := services.NewCollaboratorService(db, authorizer)

	createdCount := 0
	skippedCount := 0

	for _, input := range collaborators {
		_, err := repo.GetCollaboratorByUsername(input.Username)
		if err == nil {
			skippedCount++
			config.Logger.Info("Collaborator already exists", zap.String("username", input.Username))
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			config.Logger.Error("Error checking for existing collaborator",
				zap.String("username", input.Username),
				zap.Error(err))
			return fmt.Errorf("error checking for collaborator %s: %w", input.Username, err)
		}

		if _, err := service.Register(input); err != nil {
			config.Logger.Error("Failed to create collaborator",
				zap.String("username", input.Username),
				zap.Error(err))
			return fmt.Errorf("failed to create collaborator %s: %w", input.Username, err)
		}
		createdCount++
		config.Logger.Info("Created collaborator",
			zap.String("username", input.Username),
			zap.String("role", input.Role))
	}

	config.Logger.Info("Collaborators seeding completed",
		zap.Int("created", createdCount),
		zap.Int("skipped", skippedCount))
	return nil
}

// SeedAll seeds groups, permissions and the initial collaborators. It can run
// again on a seeded database.
func SeedAll(db *gorm.DB) error {
	config.Logger.Info("Starting CRM seeding...")

	if err := auth.SeedGroupPermissions(db); err != nil {
		return fmt.Errorf("group permissions seeding failed: %w", err)
	}
	if err := SeedCollaborators(db, auth.NewGroupAuthorizer(db), InitialCollaborators); err != nil {
		return fmt.Errorf("collaborators seeding failed: %w", err)
	}

	config.Logger.Info("CRM seeding completed successfully")
	return nil
}
