package repositories_test

import (
	"reflect"
	"testing"

	"epic-events-crm/bleve/repositories"
	bleveindex "epic-events-crm/bleve/services"
	"epic-events-crm/db/models"

	"go.uber.org/zap"
)

func newSearchRepo(t *testing.T) repositories.BleveRepositoryInterface {
	t.Helper()
	indexer := bleveindex.NewIndexingService(zap.NewNop(), "")
	t.Cleanup(func() { indexer.Close() })

	_, repo := repositories.NewBleveRepository(indexer)
	clients := []models.Client{
		{ID: 1, FullName: "Kevin Casey", Email: "kevin@startup.io", CompanyName: "Cool Startup LLC"},
		{ID: 2, FullName: "Helen Parker", Email: "helen@parker.com", CompanyName: "Parker Weddings"},
	}
	if err := repo.ReindexClients(clients); err != nil {
		t.Fatalf("ReindexClients failed: %v", err)
	}
	return repo
}

func TestSearchClients(t *testing.T) {
	repo := newSearchRepo(t)

	tests := []struct {
		name  string
		query string
		want  []uint
	}{
		{"exact name", "Kevin", []uint{1}},
		{"prefix", "park", []uint{2}},
		{"typo", "kevim", []uint{1}},
		{"company", "weddings", []uint{2}},
		{"no match", "zzzzzz", []uint{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.SearchClients(tt.query, 10)
			if err != nil {
				t.Fatalf("SearchClients failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SearchClients(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestIndexSingleClient(t *testing.T) {
	repo := newSearchRepo(t)

	if err := repo.IndexSingleClient(models.Client{ID: 3, FullName: "Lou Bouzin", Email: "lou@mail.fr"}); err != nil {
		t.Fatalf("IndexSingleClient failed: %v", err)
	}
	got, err := repo.SearchClients("bouzin", 10)
	if err != nil || !reflect.DeepEqual(got, []uint{3}) {
		t.Fatalf("Expected [3], got %v (%v)", got, err)
	}

	if err := repo.IndexSingleClient(models.Client{ID: 3, FullName: "Lou Martin", Email: "lou@mail.fr"}); err != nil {
		t.Fatalf("IndexSingleClient failed: %v", err)
	}
	got, err = repo.SearchClients("bouzin", 10)
	if err != nil || len(got) != 0 {
		t.Errorf("Expected the old name to be replaced, got %v (%v)", got, err)
	}
}

func TestSearchClients_BlankQuery(t *testing.T) {
	repo := newSearchRepo(t)

	got, err := repo.SearchClients("   ", 10)
	if err != nil || len(got) != 0 {
		t.Errorf("Expected no result for blank query, got %v (%v)", got, err)
	}
}
