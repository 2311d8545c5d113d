package auth

import "epic-events-crm/db/models"

// Permission is a capability codename checked before every gated action.
type Permission string

const (
	ViewClient          Permission = "view_client"
	AddClient           Permission = "add_client"
	ViewContract        Permission = "view_contract"
	ManageContracts     Permission = "manage_contracts_creation_modification"
	ViewEvent           Permission = "view_event"
	ManageCollaborators Permission = "manage_collaborators"
)

// AppLabel prefixes permission codes in log lines and audit entries ("crm.view_event").
const AppLabel = "crm"

func (p Permission) Qualified() string {
	return AppLabel + "." + string(p)
}

// Description is stored alongside the codename when permissions are seeded.
func (p Permission) Description() string {
	switch p {
	case ViewClient:
		return "Can view client"
	case AddClient:
		return "Can add client"
	case ViewContract:
		return "Can view contract"
	case ManageContracts:
		return "Can create and modify contracts"
	case ViewEvent:
		return "Can view event"
	case ManageCollaborators:
		return "Can create, update and delete collaborators"
	}
	return string(p)
}

// AllPermissions lists every permission the CRM knows about.
var AllPermissions = []Permission{
	ViewClient, AddClient, ViewContract, ManageContracts, ViewEvent, ManageCollaborators,
}

// GroupPermissions is the declared group → permission table.
var GroupPermissions = map[string][]Permission{
	models.ManagementRole.GroupName(): {ViewClient, ManageCollaborators, ManageContracts, ViewContract, ViewEvent},
	models.SalesRole.GroupName():      {AddClient, ViewClient, ViewContract, ViewEvent},
	models.SupportRole.GroupName():    {ViewClient, ViewContract, ViewEvent},
}
