package services_test

import (
	"reflect"
	"strings"
	"testing"

	"epic-events-crm/auth"
	"epic-events-crm/collaborators/services"
	"epic-events-crm/crmerrors"
	"epic-events-crm/db/models"
	"epic-events-crm/internal/testdb"

	"gorm.io/gorm"
)

func newService(t *testing.T) (*services.CollaboratorService, *gorm.DB, auth.Authorizer) {
	t.Helper()
	db := testdb.New(t)
	if err := auth.SeedGroupPermissions(db); err != nil {
		t.Fatalf("Failed to seed groups: %v", err)
	}
	authorizer := auth.NewGroupAuthorizer(db)
	return services.NewCollaboratorService(db, authorizer), db, authorizer
}

func salesInput() services.RegisterCollaboratorInput {
	return services.RegisterCollaboratorInput{
		Username:       "alexj",
		FirstName:      "Alex",
		LastName:       "Johnson",
		Email:          "alex.johnson@example.net",
		EmployeeNumber: "9474",
		Password:       "Sales123*",
		Role:           "sales",
	}
}

func strPtr(s string) *string { return &s }

func countCollaborators(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Collaborator{}).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count collaborators: %v", err)
	}
	return count
}

func TestRegister_SetsRoleGroupAndHashesPassword(t *testing.T) {
	svc, _, authorizer := newService(t)

	created, err := svc.Register(salesInput())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if created.Password == "Sales123*" {
		t.Error("Expected password to be stored hashed")
	}

	groups, err := authorizer.GroupNames(created.ID)
	if err != nil {
		t.Fatalf("GroupNames failed: %v", err)
	}
	if !reflect.DeepEqual(groups, []string{"sales_team"}) {
		t.Errorf("Expected groups [sales_team], got %v", groups)
	}

	ok, err := authorizer.HasPermission(created, auth.AddClient)
	if err != nil || !ok {
		t.Errorf("Expected sales collaborator to hold add_client, got %v (%v)", ok, err)
	}
	ok, _ = authorizer.HasPermission(created, auth.ManageCollaborators)
	if ok {
		t.Error("Expected sales collaborator not to hold manage_collaborators")
	}
}

func TestRegister_DuplicatesLeaveNoRow(t *testing.T) {
	svc, db, _ := newService(t)

	if _, err := svc.Register(salesInput()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*services.RegisterCollaboratorInput)
		message string
	}{
		{
			name: "username",
			mutate: func(in *services.RegisterCollaboratorInput) {
				in.Email = "other@example.net"
				in.EmployeeNumber = "1111"
			},
			message: "The username: alexj is already in use.",
		},
		{
			name: "email",
			mutate: func(in *services.RegisterCollaboratorInput) {
				in.Username = "other"
				in.EmployeeNumber = "1111"
			},
			message: "The email: alex.johnson@example.net is already in use.",
		},
		{
			name: "employee number",
			mutate: func(in *services.RegisterCollaboratorInput) {
				in.Username = "other"
				in.Email = "other@example.net"
			},
			message: "The employee number: 9474 is already in use.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := salesInput()
			tt.mutate(&input)

			_, err := svc.Register(input)
			if !crmerrors.IsValidation(err) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if got := crmerrors.MessageOf(err); got != tt.message {
				t.Errorf("Expected message %q, got %q", tt.message, got)
			}
			if n := countCollaborators(t, db); n != 1 {
				t.Errorf("Expected 1 collaborator, got %d", n)
			}
		})
	}
}

func TestRegister_RejectsWeakPasswordAndUnknownRole(t *testing.T) {
	svc, db, _ := newService(t)

	weak := salesInput()
	weak.Password = "password"
	if _, err := svc.Register(weak); !crmerrors.IsValidation(err) {
		t.Errorf("Expected validation error for weak password, got %v", err)
	}

	badRole := salesInput()
	badRole.Role = "marketing"
	if _, err := svc.Register(badRole); !crmerrors.IsValidation(err) {
		t.Errorf("Expected validation error for unknown role, got %v", err)
	}

	if n := countCollaborators(t, db); n != 0 {
		t.Errorf("Expected no collaborator, got %d", n)
	}
}

func TestModify_RoleChangeReplacesGroups(t *testing.T) {
	svc, _, authorizer := newService(t)

	created, err := svc.Register(salesInput())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	support := models.SupportRole
	updated, err := svc.Modify(created.ID, services.CollaboratorPatch{Role: &support})
	if err != nil {
		t.Fatalf("Modify failed: %v", err)
	}
	if updated.Role != models.SupportRole {
		t.Errorf("Expected role support, got %s", updated.Role)
	}

	groups, err := authorizer.GroupNames(created.ID)
	if err != nil {
		t.Fatalf("GroupNames failed: %v", err)
	}
	if !reflect.DeepEqual(groups, []string{"support_team"}) {
		t.Errorf("Expected groups [support_team], got %v", groups)
	}
}

func TestModify_UniquenessAgainstOtherRows(t *testing.T) {
	svc, _, _ := newService(t)

	first, err := svc.Register(salesInput())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	other := salesInput()
	other.Username = "emmas"
	other.Email = "emma.smith@example.net"
	other.EmployeeNumber = "9475"
	other.Role = "support"
	if _, err := svc.Register(other); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Keeping its own email is not a conflict.
	if _, err := svc.Modify(first.ID, services.CollaboratorPatch{Email: strPtr("alex.johnson@example.net")}); err != nil {
		t.Errorf("Expected own email to be accepted, got %v", err)
	}

	_, err = svc.Modify(first.ID, services.CollaboratorPatch{Email: strPtr("emma.smith@example.net")})
	if got := crmerrors.MessageOf(err); got != "The email: emma.smith@example.net is already in use." {
		t.Errorf("Unexpected message %q", got)
	}

	reloaded, err := svc.GetByID(first.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if reloaded.Email != "alex.johnson@example.net" {
		t.Errorf("Expected email to stay unchanged, got %s", reloaded.Email)
	}
}

func TestModify_UnknownID(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Modify(42, services.CollaboratorPatch{FirstName: strPtr("Bob")})
	if !crmerrors.IsNotFound(err) {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newService(t)

	if _, err := svc.Register(salesInput()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	collaborator, err := svc.Authenticate("alexj", "Sales123*")
	if err != nil {
		t.Fatalf("Expected login to succeed, got %v", err)
	}
	if collaborator.Role != models.SalesRole {
		t.Errorf("Expected sales role, got %s", collaborator.Role)
	}

	for _, creds := range [][2]string{{"alexj", "wrong"}, {"nobody", "Sales123*"}} {
		_, err := svc.Authenticate(creds[0], creds[1])
		if got := crmerrors.MessageOf(err); got != "Incorrect username or password" {
			t.Errorf("Authenticate(%q): unexpected message %q", creds[0], got)
		}
	}
}

func TestDelete_ReleasesClients(t *testing.T) {
	svc, db, _ := newService(t)

	seller, err := svc.Register(salesInput())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	client := models.Client{FullName: "Kevin Casey", Email: "kevin@startup.io", SalesContactID: &seller.ID}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	if err := svc.Delete(seller.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var reloaded models.Client
	if err := db.First(&reloaded, client.ID).Error; err != nil {
		t.Fatalf("Client should survive its sales contact: %v", err)
	}
	if reloaded.SalesContactID != nil {
		t.Errorf("Expected sales contact to be cleared, got %d", *reloaded.SalesContactID)
	}
	if n := countCollaborators(t, db); n != 0 {
		t.Errorf("Expected no collaborator left, got %d", n)
	}
}

func TestDelete_RefusesSuperuser(t *testing.T) {
	svc, _, _ := newService(t)

	input := salesInput()
	input.IsSuperuser = true
	admin, err := svc.Register(input)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := svc.Delete(admin.ID); !crmerrors.IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestRegister_AnnLeeScenario(t *testing.T) {
	svc, _, authorizer := newService(t)

	input := services.RegisterCollaboratorInput{
		Username:       "annlee",
		FirstName:      "Ann",
		LastName:       "Lee",
		Email:          "ann.lee@example.net",
		EmployeeNumber: "E1",
		Password:       "Secret123*",
		Role:           "sales",
	}
	ann, err := svc.Register(input)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	groups, _ := authorizer.GroupNames(ann.ID)
	if !reflect.DeepEqual(groups, []string{"sales_team"}) {
		t.Errorf("Expected groups [sales_team], got %v", groups)
	}

	input.Email = "ann.lee2@example.net"
	input.EmployeeNumber = "E2"
	_, err = svc.Register(input)
	if !crmerrors.IsValidation(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if msg := crmerrors.MessageOf(err); !strings.Contains(msg, "annlee is already in use.") {
		t.Errorf("Unexpected message %q", msg)
	}
}
