package repositories

import (
	bleveindex "epic-events-crm/bleve/services"
	"epic-events-crm/db/models"
)

const clientsIndex = "clients"

type BleveRepository struct {
	indexer bleveindex.IndexingServiceInterface
}

type BleveRepositoryInterface interface {
	// ==== Client Indexing ====
	IndexSingleClient(client models.Client) error
	ReindexClients(clients []models.Client) error
	SearchClients(queryString string, limit int) ([]uint, error)
}

// Constructor returning both the struct and the interface
func NewBleveRepository(indexer bleveindex.IndexingServiceInterface) (*BleveRepository, BleveRepositoryInterface) {
	repo := &BleveRepository{indexer: indexer}
	return repo, repo
}
