package repositories

import (
	"fmt"

	"epic-events-crm/db/models"

	"gorm.io/gorm"
)

// ContractFilter narrows the contracts a sales collaborator looks at.
type ContractFilter string

const (
	FilterAll         ContractFilter = ""
	FilterSigned      ContractFilter = "signed"
	FilterNotSigned   ContractFilter = "not_signed"
	FilterNoFullyPaid ContractFilter = "no_fully_paid"
)

// ContractFilters lists the supported filters in menu order.
var ContractFilters = []ContractFilter{FilterAll, FilterSigned, FilterNotSigned, FilterNoFullyPaid}

func (f ContractFilter) IsValid() bool {
	switch f {
	case FilterAll, FilterSigned, FilterNotSigned, FilterNoFullyPaid:
		return true
	}
	return false
}

func (f ContractFilter) Label() string {
	switch f {
	case FilterAll:
		return "All contracts"
	case FilterSigned:
		return "Signed contracts"
	case FilterNotSigned:
		return "Contracts not signed"
	case FilterNoFullyPaid:
		return "Contracts not fully paid"
	}
	return string(f)
}

type ContractRepository interface {
	CreateContract(contract *models.Contract) (*models.Contract, error)
	GetContractByID(id uint) (*models.Contract, error)
	UpdateContract(contract *models.Contract) (*models.Contract, error)
	GetAllContracts() ([]models.Contract, error)
	GetContractsForSalesContact(collaboratorID uint, filter ContractFilter) ([]models.Contract, error)
}

type contractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) preloaded() *gorm.DB {
	return r.db.Preload("Client").Preload("SalesContact")
}

func (r *contractRepository) CreateContract(contract *models.Contract) (*models.Contract, error) {
	if err := r.db.Omit("Client", "SalesContact", "Events").Create(contract).Error; err != nil {
		return nil, fmt.Errorf("failed to create contract in database: %w", err)
	}
	return contract, nil
}

func (r *contractRepository) GetContractByID(id uint) (*models.Contract, error) {
	var contract models.Contract
	if err := r.preloaded().First(&contract, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get contract %d: %w", id, err)
	}
	return &contract, nil
}

func (r *contractRepository) UpdateContract(contract *models.Contract) (*models.Contract, error) {
	if err := r.db.Omit("Client", "SalesContact", "Events").Save(contract).Error; err != nil {
		return nil, fmt.Errorf("failed to update contract %d: %w", contract.ID, err)
	}
	return contract, nil
}

func (r *contractRepository) GetAllContracts() ([]models.Contract, error) {
	var contracts []models.Contract
	if err := r.preloaded().Order("id").Find(&contracts).Error; err != nil {
		return nil, fmt.Errorf("failed to get contracts: %w", err)
	}
	return contracts, nil
}

// GetContractsForSalesContact returns the contracts of the clients the
// collaborator is the sales contact of.
func (r *contractRepository) GetContractsForSalesContact(collaboratorID uint, filter ContractFilter) ([]models.Contract, error) {
	query := r.preloaded().
		Joins("JOIN clients ON clients.id = contracts.client_id").
		Where("clients.sales_contact_id = ?", collaboratorID)

	switch filter {
	case FilterAll:
	case FilterSigned:
		query = query.Where("contracts.status = ?", models.ContractSigned)
	case FilterNotSigned:
		query = query.Where("contracts.status = ?", models.ContractNotSigned)
	case FilterNoFullyPaid:
		query = query.Where("contracts.amount_remaining > ?", 0)
	default:
		return nil, fmt.Errorf("unsupported contract filter %q", filter)
	}

	var contracts []models.Contract
	if err := query.Order("contracts.id").Find(&contracts).Error; err != nil {
		return nil, fmt.Errorf("failed to get contracts of collaborator %d: %w", collaboratorID, err)
	}
	return contracts, nil
}
