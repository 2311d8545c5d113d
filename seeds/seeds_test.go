package seeds_test

import (
	"testing"

	"epic-events-crm/auth"
	"epic-events-crm/db/models"
	"epic-events-crm/internal/testdb"
	"epic-events-crm/seeds"
)

func TestSeedAll_IsRepeatable(t *testing.T) {
	db := testdb.New(t)

	for i := 0; i < 2; i++ {
		if err := seeds.SeedAll(db); err != nil {
			t.Fatalf("SeedAll run %d failed: %v", i+1, err)
		}
	}

	var count int64
	if err := db.Model(&models.Collaborator{}).Count(&count).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != int64(len(seeds.InitialCollaborators)) {
		t.Errorf("Expected %d collaborators, got %d", len(seeds.InitialCollaborators), count)
	}

	authorizer := auth.NewGroupAuthorizer(db)
	tests := []struct {
		username string
		perm     auth.Permission
		want     bool
	}{
		{"thomasg", auth.ManageCollaborators, true},
		{"thomasg", auth.AddClient, false},
		{"alexj", auth.AddClient, true},
		{"alexj", auth.ManageContracts, false},
		{"emmas", auth.ViewEvent, true},
		{"emmas", auth.AddClient, false},
	}
	for _, tt := range tests {
		var c models.Collaborator
		if err := db.First(&c, "username = ?", tt.username).Error; err != nil {
			t.Fatalf("Failed to load %s: %v", tt.username, err)
		}
		got, err := authorizer.HasPermission(&c, tt.perm)
		if err != nil {
			t.Fatalf("HasPermission failed: %v", err)
		}
		if got != tt.want {
			t.Errorf("%s %s: got %v, want %v", tt.username, tt.perm, got, tt.want)
		}
	}
}
