package auth

import (
	"fmt"

	"epic-events-crm/config"
	"epic-events-crm/db/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Authorizer answers permission questions and keeps group membership in line
// with a collaborator's role.
type Authorizer interface {
	HasPermission(actor *models.Collaborator, perm Permission) (bool, error)
	SetRoleGroups(tx *gorm.DB, actor *models.Collaborator, role models.Role) error
	GroupNames(collaboratorID uint) ([]string, error)
}

type groupAuthorizer struct {
	db *gorm.DB
}

// NewGroupAuthorizer backs permission checks onto the auth_groups / auth_group_permissions tables.
func NewGroupAuthorizer(db *gorm.DB) Authorizer {
	return &groupAuthorizer{db: db}
}

func (a *groupAuthorizer) HasPermission(actor *models.Collaborator, perm Permission) (bool, error) {
	if actor == nil || !actor.IsActive {
		return false, nil
	}
	if actor.IsSuperuser {
		return true, nil
	}

	var count int64
	err := a.db.Model(&models.Permission{}).
		Joins("JOIN auth_group_permissions ON auth_group_permissions.permission_id = auth_permissions.id").
		Joins("JOIN collaborator_groups ON collaborator_groups.group_id = auth_group_permissions.group_id").
		Where("collaborator_groups.collaborator_id = ? AND auth_permissions.codename = ?", actor.ID, string(perm)).
		Count(&count).Error
	if err != nil {
		config.Logger.Error("Permission lookup failed",
			zap.Uint("collaborator_id", actor.ID),
			zap.String("permission", perm.Qualified()),
			zap.Error(err))
		return false, fmt.Errorf("failed to check permission %s: %w", perm.Qualified(), err)
	}
	return count > 0, nil
}

// SetRoleGroups drops every existing membership and adds the group of role.
func (a *groupAuthorizer) SetRoleGroups(tx *gorm.DB, actor *models.Collaborator, role models.Role) error {
	if tx == nil {
		tx = a.db
	}

	var group models.Group
	if err := tx.Where(models.Group{Name: role.GroupName()}).FirstOrCreate(&group).Error; err != nil {
		return fmt.Errorf("failed to get or create group %s: %w", role.GroupName(), err)
	}

	if err := tx.Model(actor).Association("Groups").Replace(&group); err != nil {
		return fmt.Errorf("failed to assign group %s: %w", group.Name, err)
	}
	actor.Groups = []models.Group{group}

	config.Logger.Info("Collaborator group membership set",
		zap.Uint("collaborator_id", actor.ID),
		zap.String("group", group.Name))
	return nil
}

func (a *groupAuthorizer) GroupNames(collaboratorID uint) ([]string, error) {
	var names []string
	err := a.db.Model(&models.Group{}).
		Joins("JOIN collaborator_groups ON collaborator_groups.group_id = auth_groups.id").
		Where("collaborator_groups.collaborator_id = ?", collaboratorID).
		Order("auth_groups.name").
		Pluck("auth_groups.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list groups of collaborator %d: %w", collaboratorID, err)
	}
	return names, nil
}

// SeedGroupPermissions makes sure every permission and group of GroupPermissions exists
// and that each group holds exactly its declared permissions.
func SeedGroupPermissions(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		byCode := make(map[Permission]models.Permission, len(AllPermissions))
		for _, perm := range AllPermissions {
			var p models.Permission
			err := tx.Where(models.Permission{Codename: string(perm)}).
				Attrs(models.Permission{Name: perm.Description()}).
				FirstOrCreate(&p).Error
			if err != nil {
				return fmt.Errorf("failed to create/find permission %s: %w", perm, err)
			}
			byCode[perm] = p
		}

		for groupName, perms := range GroupPermissions {
			var group models.Group
			if err := tx.Where(models.Group{Name: groupName}).FirstOrCreate(&group).Error; err != nil {
				return fmt.Errorf("failed to create/find group %s: %w", groupName, err)
			}

			rows := make([]models.Permission, 0, len(perms))
			for _, perm := range perms {
				rows = append(rows, byCode[perm])
			}
			if err := tx.Model(&group).Association("Permissions").Replace(rows); err != nil {
				return fmt.Errorf("failed to assign permissions to %s: %w", groupName, err)
			}
			config.Logger.Info("Permissions assigned to group",
				zap.String("group", groupName),
				zap.Int("permissions", len(rows)))
		}
		return nil
	})
}
