package services_test

import (
	"errors"
	"strings"
	"testing"

	"epic-events-crm/clients/services"
	"epic-events-crm/crmerrors"
	"epic-events-crm/db/models"
	"epic-events-crm/internal/testdb"

	"gorm.io/gorm"
)

// fakeIndexer records indexed clients and answers searches from a fixed list.
// With db set it also records whether the indexed row was already stored.
type fakeIndexer struct {
	indexed []uint
	stored  []bool
	hits    []uint
	fail    bool
	db      *gorm.DB
}

func (f *fakeIndexer) IndexSingleClient(client models.Client) error {
	if f.fail {
		return errors.New("index unavailable")
	}
	if f.db != nil {
		var count int64
		f.db.Model(&models.Client{}).Where("id = ? AND email = ?", client.ID, client.Email).Count(&count)
		f.stored = append(f.stored, count == 1)
	}
	f.indexed = append(f.indexed, client.ID)
	return nil
}

func (f *fakeIndexer) SearchClients(string, int) ([]uint, error) {
	return f.hits, nil
}

func createSeller(t *testing.T, db *gorm.DB) models.Collaborator {
	t.Helper()
	seller := models.Collaborator{
		Username: "alexj", FirstName: "Alex", LastName: "Johnson",
		Email: "alex.johnson@example.net", EmployeeNumber: "9474",
		Password: "x", Role: models.SalesRole, IsActive: true,
	}
	if err := db.Create(&seller).Error; err != nil {
		t.Fatalf("Failed to create collaborator: %v", err)
	}
	return seller
}

func clientInput(sellerID uint) services.CreateClientInput {
	return services.CreateClientInput{
		FullName:       "Kevin Casey",
		Email:          "x@example.com",
		Phone:          "+678 123 456 78",
		CompanyName:    "Cool Startup LLC",
		SalesContactID: sellerID,
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := testdb.New(t)
	seller := createSeller(t, db)
	indexer := &fakeIndexer{}
	svc := services.NewClientService(db, indexer)

	first, err := svc.Create(clientInput(seller.ID))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if first.SalesContactID == nil || *first.SalesContactID != seller.ID {
		t.Errorf("Expected sales contact %d, got %v", seller.ID, first.SalesContactID)
	}

	second := clientInput(seller.ID)
	second.FullName = "Someone Else"
	_, err = svc.Create(second)
	if !crmerrors.IsValidation(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if msg := crmerrors.MessageOf(err); !strings.Contains(msg, "x@example.com") {
		t.Errorf("Expected message to mention the email, got %q", msg)
	}

	all, err := svc.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Expected 1 client, got %d", len(all))
	}
	if len(indexer.indexed) != 1 || indexer.indexed[0] != first.ID {
		t.Errorf("Expected client %d to be indexed, got %v", first.ID, indexer.indexed)
	}
}

func TestCreate_IndexFailureRollsBack(t *testing.T) {
	db := testdb.New(t)
	seller := createSeller(t, db)
	svc := services.NewClientService(db, &fakeIndexer{fail: true})

	if _, err := svc.Create(clientInput(seller.ID)); err == nil {
		t.Fatal("Expected an error when indexing fails")
	}

	var count int64
	db.Model(&models.Client{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected the insert to be rolled back, got %d clients", count)
	}
}

func TestCreate_IndexesStoredRow(t *testing.T) {
	db := testdb.New(t)
	seller := createSeller(t, db)
	indexer := &fakeIndexer{db: db}
	svc := services.NewClientService(db, indexer)

	kevin, err := svc.Create(clientInput(seller.ID))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	email := "kevin@startup.io"
	if _, err := svc.Modify(kevin.ID, services.ClientPatch{Email: &email}); err != nil {
		t.Fatalf("Modify failed: %v", err)
	}

	if len(indexer.stored) != 2 || !indexer.stored[0] || !indexer.stored[1] {
		t.Errorf("Expected both index calls to see the stored row, got %v", indexer.stored)
	}
}

func TestModify_IndexFailureRestoresRow(t *testing.T) {
	db := testdb.New(t)
	seller := createSeller(t, db)
	indexer := &fakeIndexer{}
	svc := services.NewClientService(db, indexer)

	kevin, err := svc.Create(clientInput(seller.ID))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	indexer.fail = true
	company := "Big Corp"
	if _, err := svc.Modify(kevin.ID, services.ClientPatch{CompanyName: &company}); err == nil {
		t.Fatal("Expected an error when indexing fails")
	}

	stored, err := svc.GetByID(kevin.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.CompanyName != "Cool Startup LLC" {
		t.Errorf("Expected the previous company to be restored, got %q", stored.CompanyName)
	}
}

func TestModify(t *testing.T) {
	db := testdb.New(t)
	seller := createSeller(t, db)
	svc := services.NewClientService(db, nil)

	kevin, err := svc.Create(clientInput(seller.ID))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	other := clientInput(seller.ID)
	other.Email = "helen@parker.com"
	if _, err := svc.Create(other); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	company := "Big Corp"
	updated, err := svc.Modify(kevin.ID, services.ClientPatch{CompanyName: &company})
	if err != nil {
		t.Fatalf("Modify failed: %v", err)
	}
	if updated.CompanyName != "Big Corp" || updated.Email != "x@example.com" {
		t.Errorf("Unexpected client after modify: %+v", updated)
	}

	taken := "HELEN@parker.com"
	if _, err := svc.Modify(kevin.ID, services.ClientPatch{Email: &taken}); !crmerrors.IsValidation(err) {
		t.Errorf("Expected validation error for taken email, got %v", err)
	}

	if _, err := svc.Modify(kevin.ID, services.ClientPatch{}); !crmerrors.IsValidation(err) {
		t.Errorf("Expected validation error for empty patch, got %v", err)
	}
}

func TestListForSalesContactAndSearch(t *testing.T) {
	db := testdb.New(t)
	seller := createSeller(t, db)
	svc := services.NewClientService(db, nil)

	if _, err := svc.Create(clientInput(seller.ID)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	orphan := clientInput(0)
	orphan.FullName = "Helen Parker"
	orphan.Email = "helen@parker.com"
	orphan.CompanyName = "Parker Weddings"
	if _, err := svc.Create(orphan); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	own, err := svc.ListForSalesContact(seller.ID)
	if err != nil {
		t.Fatalf("ListForSalesContact failed: %v", err)
	}
	if len(own) != 1 || own[0].Email != "x@example.com" {
		t.Errorf("Expected only Kevin's client, got %+v", own)
	}
	if own[0].SalesContactName() != "Alex Johnson" {
		t.Errorf("Expected sales contact to be preloaded, got %q", own[0].SalesContactName())
	}

	found, err := svc.Search("wedd")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(found) != 1 || found[0].FullName != "Helen Parker" {
		t.Errorf("Expected Helen Parker, got %+v", found)
	}

	if _, err := svc.Search("  "); !crmerrors.IsValidation(err) {
		t.Errorf("Expected validation error for blank search, got %v", err)
	}
}

func TestSearch_UsesIndexOrder(t *testing.T) {
	db := testdb.New(t)
	seller := createSeller(t, db)
	indexer := &fakeIndexer{}
	svc := services.NewClientService(db, indexer)

	a, _ := svc.Create(clientInput(seller.ID))
	second := clientInput(seller.ID)
	second.Email = "helen@parker.com"
	b, err := svc.Create(second)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	indexer.hits = []uint{b.ID, 999, a.ID}
	found, err := svc.Search("anything")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(found) != 2 || found[0].ID != b.ID || found[1].ID != a.ID {
		t.Errorf("Expected [%d %d], got %+v", b.ID, a.ID, found)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := services.NewClientService(testdb.New(t), nil)

	if _, err := svc.GetByID(7); !crmerrors.IsNotFound(err) {
		t.Errorf("Expected not found error, got %v", err)
	}
}
