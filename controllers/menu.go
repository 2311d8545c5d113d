package controllers

import (
	"fmt"

	"epic-events-crm/auth"
	"epic-events-crm/db/models"
)

// option is one numbered entry of a menu.
type option struct {
	label  string
	action string // metrics and audit name
	perms  []auth.Permission
	denied string // shown when a permission is missing
	run    func(s *Session) error
	exit   bool
}

type menu struct {
	title   string
	options []option
}

func exitOption(label string) option {
	return option{label: label, action: "exit", exit: true}
}

var (
	listClientsOption = option{
		label:  "View the list of all clients.",
		action: "list_clients",
		perms:  []auth.Permission{auth.ViewClient},
		denied: "You do not have permission to view the list of clients.",
		run:    (*Session).listClients,
	}
	listContractsOption = option{
		label:  "View the list of all contracts.",
		action: "list_contracts",
		perms:  []auth.Permission{auth.ViewContract},
		denied: "You do not have permission to view the list of contracts.",
		run:    (*Session).listContracts,
	}
	listEventsOption = option{
		label:  "View the list of all events.",
		action: "list_events",
		perms:  []auth.Permission{auth.ViewEvent},
		denied: "You do not have permission to view the list of events.",
		run:    (*Session).listEvents,
	}
	searchClientsOption = option{
		label:  "Search clients by name, email or company.",
		action: "search_clients",
		perms:  []auth.Permission{auth.ViewClient},
		denied: "You do not have permission to view the clients.",
		run:    (*Session).searchClients,
	}
)

var managementMenu = menu{
	title: "Management",
	options: []option{
		{
			label:  "Create, update and delete collaborators.",
			action: "manage_collaborators",
			perms:  []auth.Permission{auth.ManageCollaborators},
			denied: "You do not have permission to manage collaborators.",
			run:    func(s *Session) error { return s.subMenu(collaboratorsMenu) },
		},
		{
			label:  "Create and modify all contracts.",
			action: "manage_contracts",
			perms:  []auth.Permission{auth.ManageContracts},
			denied: "You do not have permission to manage contracts.",
			run:    func(s *Session) error { return s.subMenu(contractsMenu) },
		},
		{
			label:  "Filter and display events, for example events without a support contact.",
			action: "filter_events",
			perms:  []auth.Permission{auth.ViewEvent},
			denied: "You do not have permission to view the list of events.",
			run:    (*Session).filterEvents,
		},
		{
			label:  "Assign or change the support collaborator of an event.",
			action: "assign_support_contact",
			perms:  []auth.Permission{auth.ViewEvent, auth.ManageCollaborators},
			denied: "You do not have permission to assign a support contact.",
			run:    (*Session).assignSupportContact,
		},
		listClientsOption,
		listContractsOption,
		listEventsOption,
		searchClientsOption,
		exitOption("Exit the CRM system."),
	},
}

var collaboratorsMenu = menu{
	title: "Manage collaborators",
	options: []option{
		{label: "Create a collaborator.", action: "create_collaborator", run: (*Session).createCollaborator},
		{label: "Update a collaborator.", action: "modify_collaborator", run: (*Session).modifyCollaborator},
		{label: "Delete a collaborator.", action: "delete_collaborator", run: (*Session).deleteCollaborator},
		exitOption("Return to main menu."),
	},
}

var contractsMenu = menu{
	title: "Manage contracts",
	options: []option{
		{label: "Create a contract.", action: "create_contract", run: (*Session).createContract},
		{label: "Modify a contract.", action: "modify_contract", run: (*Session).modifyAnyContract},
		exitOption("Return to main menu."),
	},
}

var salesMenu = menu{
	title: "Sales",
	options: []option{
		{
			label:  "Create a client.",
			action: "create_client",
			perms:  []auth.Permission{auth.AddClient},
			denied: "You do not have permission to add a new client.",
			run:    (*Session).createClient,
		},
		{
			label:  "Update one of your clients.",
			action: "modify_client",
			perms:  []auth.Permission{auth.ViewClient, auth.AddClient},
			denied: "You do not have permission to update clients.",
			run:    (*Session).modifyOwnClient,
		},
		{
			label:  "Modify a contract of one of your clients.",
			action: "modify_contract",
			perms:  []auth.Permission{auth.ViewContract},
			denied: "You do not have permission to modify contracts.",
			run:    (*Session).modifyOwnContract,
		},
		{
			label:  "Filter the contracts of your clients.",
			action: "filter_contracts",
			perms:  []auth.Permission{auth.ViewContract},
			denied: "You do not have permission to view the list of contracts.",
			run:    (*Session).filterOwnContracts,
		},
		{
			label:  "Create an event for a signed contract.",
			action: "create_event",
			perms:  []auth.Permission{auth.ViewContract, auth.ViewEvent},
			denied: "You do not have permission to create events.",
			run:    (*Session).createEvent,
		},
		listClientsOption,
		listContractsOption,
		listEventsOption,
		searchClientsOption,
		exitOption("Exit the CRM system."),
	},
}

var supportMenu = menu{
	title: "Support",
	options: []option{
		listClientsOption,
		listContractsOption,
		listEventsOption,
		{
			label:  "View the events assigned to you.",
			action: "list_assigned_events",
			perms:  []auth.Permission{auth.ViewEvent},
			denied: "You do not have permission to view the list of events.",
			run:    (*Session).listAssignedEvents,
		},
		{
			label:  "Update an event assigned to you.",
			action: "modify_event",
			perms:  []auth.Permission{auth.ViewEvent},
			denied: "You do not have permission to update events.",
			run:    (*Session).modifyAssignedEvent,
		},
		searchClientsOption,
		exitOption("Exit the CRM system."),
	},
}

// menuFor returns the main menu of role.
func menuFor(role models.Role) (menu, error) {
	switch role {
	case models.ManagementRole:
		return managementMenu, nil
	case models.SalesRole:
		return salesMenu, nil
	case models.SupportRole:
		return supportMenu, nil
	}
	return menu{}, fmt.Errorf("no menu for role %q", role)
}
