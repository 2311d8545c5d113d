package repositories

import (
	"fmt"
	"strconv"
	"strings"

	"epic-events-crm/config"
	"epic-events-crm/db/models"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

// Fields of clientDocument searched by SearchClients.
var clientSearchFields = []string{"full_name", "email", "company_name"}

type clientDocument struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CompanyName string `json:"company_name"`
}

func toClientDocument(client models.Client) clientDocument {
	return clientDocument{
		ID:          clientDocID(client.ID),
		FullName:    client.FullName,
		Email:       client.Email,
		Phone:       client.Phone,
		CompanyName: client.CompanyName,
	}
}

func clientDocID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// SearchClients returns the ids of the best matching clients, best first.
// Exact word matches rank above prefix matches, which rank above one-typo matches.
func (r *BleveRepository) SearchClients(queryString string, limit int) ([]uint, error) {
	term := strings.ToLower(strings.TrimSpace(queryString))
	if term == "" {
		return nil, nil
	}

	booleanQuery := bleve.NewBooleanQuery()
	for _, field := range clientSearchFields {
		fieldMatchQuery := bleve.NewMatchQuery(term)
		fieldMatchQuery.SetField(field)
		fieldMatchQuery.SetBoost(3.0)
		booleanQuery.AddShould(fieldMatchQuery)

		fieldPrefixQuery := bleve.NewPrefixQuery(term)
		fieldPrefixQuery.SetField(field)
		fieldPrefixQuery.SetBoost(2.0)
		booleanQuery.AddShould(fieldPrefixQuery)

		fieldFuzzyQuery := bleve.NewFuzzyQuery(term)
		fieldFuzzyQuery.SetField(field)
		fieldFuzzyQuery.SetFuzziness(1)
		fieldFuzzyQuery.SetBoost(1.0)
		booleanQuery.AddShould(fieldFuzzyQuery)
	}
	booleanQuery.SetMinShould(1)

	result, err := r.indexer.SearchIndex(clientsIndex, booleanQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search clients: %w", err)
	}

	ids := make([]uint, 0, len(result.Hits))
	for _, hit := range result.Hits {
		id, err := strconv.ParseUint(hit.ID, 10, 64)
		if err != nil {
			config.Logger.Warn("Skipping client search hit with a malformed id", zap.String("doc_id", hit.ID))
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func (r *BleveRepository) IndexSingleClient(client models.Client) error {
	docID := clientDocID(client.ID)
	if err := r.indexer.IndexDocument(clientsIndex, docID, toClientDocument(client)); err != nil {
		config.Logger.Error("Failed to index single client into Bleve", zap.Error(err), zap.String("client_id", docID))
		return err
	}
	return nil
}

// ReindexClients drops the "clients" index and rebuilds it from clients.
func (r *BleveRepository) ReindexClients(clients []models.Client) error {
	if err := r.indexer.DeleteIndex(clientsIndex); err != nil {
		return fmt.Errorf("failed to drop clients index: %w", err)
	}

	docs := make(map[string]interface{}, len(clients))
	for _, client := range clients {
		docs[clientDocID(client.ID)] = toClientDocument(client)
	}

	if len(docs) == 0 {
		config.Logger.Info("No existing clients to index into Bleve.")
		return nil
	}

	if err := r.indexer.BulkIndexDocuments(clientsIndex, docs); err != nil {
		config.Logger.Error("Failed to bulk index existing clients into Bleve", zap.Error(err))
		return err
	}
	config.Logger.Info("Successfully bulk indexed existing clients into Bleve", zap.Int("count", len(docs)))
	return nil
}
