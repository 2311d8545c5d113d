package controllers_test

import (
	"context"
	"testing"

	"epic-events-crm/auth"
	clientservices "epic-events-crm/clients/services"
	collaboratorservices "epic-events-crm/collaborators/services"
	contractservices "epic-events-crm/contracts/services"
	"epic-events-crm/controllers"
	"epic-events-crm/db/models"
	eventservices "epic-events-crm/events/services"
	"epic-events-crm/internal/testdb"

	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

type workflow struct {
	db            *gorm.DB
	authorizer    auth.Authorizer
	collaborators *collaboratorservices.CollaboratorService
	services      controllers.Services
}

func newWorkflow(t *testing.T) workflow {
	t.Helper()
	db := testdb.New(t)
	if err := auth.SeedGroupPermissions(db); err != nil {
		t.Fatalf("Failed to seed permissions: %v", err)
	}

	authorizer := auth.NewGroupAuthorizer(db)
	collaborators := collaboratorservices.NewCollaboratorService(db, authorizer)
	return workflow{
		db:            db,
		authorizer:    authorizer,
		collaborators: collaborators,
		services: controllers.Services{
			Collaborators: collaborators,
			Clients:       clientservices.NewClientService(db, nil),
			Contracts:     contractservices.NewContractService(db),
			Events:        eventservices.NewEventService(db),
		},
	}
}

func (w workflow) register(t *testing.T, input collaboratorservices.RegisterCollaboratorInput) *models.Collaborator {
	t.Helper()
	c, err := w.collaborators.Register(input)
	if err != nil {
		t.Fatalf("Failed to register %s: %v", input.Username, err)
	}
	return c
}

func (w workflow) run(t *testing.T, view *scriptedView) {
	t.Helper()
	c := controllers.NewMainController(w.services, w.authorizer, view,
		controllers.WithLoginLimiter(rate.NewLimiter(rate.Inf, 1)))
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
}

func TestWorkflow_SalesCreatesOwnClient(t *testing.T) {
	w := newWorkflow(t)
	seller := w.register(t, collaboratorservices.RegisterCollaboratorInput{
		Username: "alexj", FirstName: "Alex", LastName: "Johnson",
		Email: "alex.johnson@example.net", EmployeeNumber: "9474",
		Password: "Sales123*", Role: "sales",
	})

	view := newScriptedView(
		"alexj", "Sales123*", "1",
		"Kevin Casey", "kevin@startup.io", "+678 123 456 78", "Cool Startup LLC",
		"no",
	)
	w.run(t, view)

	var client models.Client
	if err := w.db.Where("email = ?", "kevin@startup.io").First(&client).Error; err != nil {
		t.Fatalf("Client was not created: %v", err)
	}
	if client.SalesContactID == nil || *client.SalesContactID != seller.ID {
		t.Errorf("Expected sales contact %d, got %v", seller.ID, client.SalesContactID)
	}
	if !view.shown("Client Kevin Casey created successfully.") {
		t.Errorf("Unexpected messages %+v", view.messages)
	}
}

func TestWorkflow_ManagementRegistersCollaborator(t *testing.T) {
	w := newWorkflow(t)
	w.register(t, collaboratorservices.RegisterCollaboratorInput{
		Username: "thomasg", FirstName: "Thomas", LastName: "Green",
		Email: "thomas.green@example.net", EmployeeNumber: "9473",
		Password: "Manage123*", Role: "management",
	})

	view := newScriptedView(
		"thomasg", "Manage123*",
		"1", "1",
		"Ann", "Lee", "annlee", "Sales123*", "ann.lee@example.net", "sales", "E1",
		"yes",
		"1", "1",
		"Ann", "Lee", "annlee", "Sales123*", "ann.lee2@example.net", "sales", "E2",
		"no",
		"no",
	)
	w.run(t, view)

	var ann []models.Collaborator
	if err := w.db.Where("username = ?", "annlee").Find(&ann).Error; err != nil {
		t.Fatalf("Failed to read collaborators: %v", err)
	}
	if len(ann) != 1 {
		t.Fatalf("Expected exactly one annlee, got %d", len(ann))
	}
	if !view.shown("annlee is already in use.") {
		t.Errorf("Expected the duplicate username message, got %+v", view.messages)
	}

	groups, err := w.authorizer.GroupNames(ann[0].ID)
	if err != nil {
		t.Fatalf("GroupNames failed: %v", err)
	}
	if len(groups) != 1 || groups[0] != "sales_team" {
		t.Errorf("Expected [sales_team], got %v", groups)
	}
}

func TestWorkflow_SupportWithoutGroupIsRefused(t *testing.T) {
	w := newWorkflow(t)
	support := w.register(t, collaboratorservices.RegisterCollaboratorInput{
		Username: "emmas", FirstName: "Emma", LastName: "Smith",
		Email: "emma.smith@example.net", EmployeeNumber: "9475",
		Password: "Support123*", Role: "support",
	})
	if err := w.db.Model(support).Association("Groups").Clear(); err != nil {
		t.Fatalf("Failed to clear groups: %v", err)
	}

	view := newScriptedView("emmas", "Support123*", "3", "no")
	w.run(t, view)

	if !view.shown("You do not have permission to view the list of events.") {
		t.Errorf("Expected a permission denial, got %+v", view.messages)
	}
	if len(view.tables) != 1 {
		t.Errorf("Expected only the menu to be rendered, got %v", view.tables)
	}
}
