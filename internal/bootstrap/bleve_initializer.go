package bootstrap

import (
	"fmt"

	bleveRepositories "epic-events-crm/bleve/repositories"
	clients_repositories "epic-events-crm/clients/repositories"
	"epic-events-crm/config"

	"go.uber.org/zap"
)

// IndexBleveData rebuilds the client search index from the database and
// returns the number of clients indexed.
func IndexBleveData(
	clientRepo clients_repositories.ClientRepository,
	bleveRepo bleveRepositories.BleveRepositoryInterface,
) (int, error) {
	clients, err := clientRepo.GetAllClients()
	if err != nil {
		config.Logger.Error("Error fetching clients for Bleve indexing", zap.Error(err))
		return 0, fmt.Errorf("failed to load clients: %w", err)
	}

	if err := bleveRepo.ReindexClients(clients); err != nil {
		config.Logger.Error("Failed to index clients into Bleve", zap.Error(err))
		return 0, err
	}

	config.Logger.Info("Clients indexed into Bleve", zap.Int("count", len(clients)))
	return len(clients), nil
}
