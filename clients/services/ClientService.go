package services

import (
	"errors"
	"strings"

	"epic-events-crm/clients/repositories"
	"epic-events-crm/config"
	"epic-events-crm/crmerrors"
	"epic-events-crm/db/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const searchLimit = 20

// ClientIndexer keeps the client search index in step with the database.
type ClientIndexer interface {
	IndexSingleClient(client models.Client) error
	SearchClients(queryString string, limit int) ([]uint, error)
}

type CreateClientInput struct {
	FullName       string
	Email          string
	Phone          string
	CompanyName    string
	SalesContactID uint
}

type ClientService struct {
	db      *gorm.DB
	repo    repositories.ClientRepository
	indexer ClientIndexer
}

// NewClientService builds the service; indexer may be nil, in which case
// search falls back to SQL.
func NewClientService(db *gorm.DB, indexer ClientIndexer) *ClientService {
	return &ClientService{
		db:      db,
		repo:    repositories.NewClientRepository(db),
		indexer: indexer,
	}
}

// Create stores a client owned by input.SalesContactID, then indexes it once
// the insert is committed. A failed indexing removes the row again.
func (s *ClientService) Create(input CreateClientInput) (*models.Client, error) {
	client := &models.Client{
		FullName:    strings.TrimSpace(input.FullName),
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		CompanyName: strings.TrimSpace(input.CompanyName),
	}
	if input.SalesContactID != 0 {
		salesContactID := input.SalesContactID
		client.SalesContactID = &salesContactID
	}

	if msg := ValidateClient(client); msg != "" {
		return nil, crmerrors.Validation("%s", msg)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := repositories.NewClientRepository(tx)

		taken, err := txRepo.IsEmailTaken(client.Email, 0)
		if err != nil {
			return crmerrors.FromStorage(err, "Failed to check the client email")
		}
		if taken {
			return crmerrors.Validation("The %s is already in use.", client.Email)
		}

		if _, err := txRepo.CreateClient(client); err != nil {
			return crmerrors.FromStorage(err, "Failed to create the client")
		}
		return nil
	})
	if err != nil {
		return nil, crmerrors.FromStorage(err, "Failed to create the client")
	}

	if err := s.index(*client); err != nil {
		if delErr := s.repo.DeleteClient(client.ID); delErr != nil {
			config.Logger.Error("Failed to remove unindexed client",
				zap.Uint("client_id", client.ID),
				zap.Error(delErr))
		}
		return nil, err
	}

	config.Logger.Info("Client created",
		zap.Uint("client_id", client.ID),
		zap.Uint("sales_contact_id", input.SalesContactID))
	return client, nil
}

func (s *ClientService) Modify(id uint, patch ClientPatch) (*models.Client, error) {
	if patch.IsEmpty() {
		return nil, crmerrors.Validation("No modifications were made.")
	}

	var (
		updated  *models.Client
		previous models.Client
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := repositories.NewClientRepository(tx)

		client, err := txRepo.GetClientByID(id)
		if err != nil {
			return notFoundOr(err, id)
		}
		previous = *client

		patch.Apply(client)
		if msg := ValidateClient(client); msg != "" {
			return crmerrors.Validation("%s", msg)
		}

		if patch.Email != nil {
			taken, err := txRepo.IsEmailTaken(client.Email, id)
			if err != nil {
				return crmerrors.FromStorage(err, "Failed to check the client email")
			}
			if taken {
				return crmerrors.Validation("The %s is already in use.", client.Email)
			}
		}

		if updated, err = txRepo.UpdateClient(client); err != nil {
			return crmerrors.FromStorage(err, "Failed to update the client")
		}
		return nil
	})
	if err != nil {
		return nil, crmerrors.FromStorage(err, "Failed to update the client")
	}

	if err := s.index(*updated); err != nil {
		if _, restoreErr := s.repo.UpdateClient(&previous); restoreErr != nil {
			config.Logger.Error("Failed to restore unindexed client",
				zap.Uint("client_id", id),
				zap.Error(restoreErr))
		}
		return nil, err
	}

	config.Logger.Info("Client updated", zap.Uint("client_id", id))
	return updated, nil
}

func (s *ClientService) ListAll() ([]models.Client, error) {
	clients, err := s.repo.GetAllClients()
	if err != nil {
		return nil, crmerrors.FromStorage(err, "Failed to load clients")
	}
	return clients, nil
}

func (s *ClientService) ListForSalesContact(collaboratorID uint) ([]models.Client, error) {
	clients, err := s.repo.GetClientsBySalesContact(collaboratorID)
	if err != nil {
		return nil, crmerrors.FromStorage(err, "Failed to load clients")
	}
	return clients, nil
}

func (s *ClientService) GetByID(id uint) (*models.Client, error) {
	client, err := s.repo.GetClientByID(id)
	if err != nil {
		return nil, notFoundOr(err, id)
	}
	return client, nil
}

// GetByIDs returns the clients in the order of ids; unknown ids are skipped.
func (s *ClientService) GetByIDs(ids []uint) ([]models.Client, error) {
	found, err := s.repo.GetClientsByIDs(ids)
	if err != nil {
		return nil, crmerrors.FromStorage(err, "Failed to load clients")
	}

	byID := make(map[uint]models.Client, len(found))
	for _, client := range found {
		byID[client.ID] = client
	}
	ordered := make([]models.Client, 0, len(found))
	for _, id := range ids {
		if client, ok := byID[id]; ok {
			ordered = append(ordered, client)
			delete(byID, id)
		}
	}
	return ordered, nil
}

// Search looks clients up by name, email or company.
func (s *ClientService) Search(term string) ([]models.Client, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, crmerrors.Validation("Please enter something to search for.")
	}

	if s.indexer == nil {
		clients, err := s.repo.SearchClients(term, searchLimit)
		if err != nil {
			return nil, crmerrors.FromStorage(err, "Failed to search clients")
		}
		return clients, nil
	}

	ids, err := s.indexer.SearchClients(term, searchLimit)
	if err != nil {
		return nil, crmerrors.Unexpected(err, "The client search is unavailable, please try again later.")
	}
	return s.GetByIDs(ids)
}

func (s *ClientService) index(client models.Client) error {
	if s.indexer == nil {
		return nil
	}
	if err := s.indexer.IndexSingleClient(client); err != nil {
		config.Logger.Error("Failed to index client, reverting",
			zap.Uint("client_id", client.ID),
			zap.Error(err))
		return crmerrors.Unexpected(err, "The client could not be indexed, please try again.")
	}
	return nil
}

func notFoundOr(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return crmerrors.NotFound("No client found with id %d.", id)
	}
	return crmerrors.FromStorage(err, "Failed to load the client")
}
