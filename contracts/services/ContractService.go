package services

import (
	"errors"

	"epic-events-crm/config"
	"epic-events-crm/contracts/repositories"
	"epic-events-crm/crmerrors"
	"epic-events-crm/db/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateContractInput struct {
	ClientID        uint
	TotalAmount     decimal.Decimal
	AmountRemaining decimal.Decimal
	// Status is "signed" or "not_signed"; blank means not signed.
	Status string
}

type ContractService struct {
	db   *gorm.DB
	repo repositories.ContractRepository
}

func NewContractService(db *gorm.DB) *ContractService {
	return &ContractService{
		db:   db,
		repo: repositories.NewContractRepository(db),
	}
}

// Create stores a contract for an existing client. Its sales contact is the client's.
func (s *ContractService) Create(input CreateContractInput) (*models.Contract, error) {
	status := models.ContractNotSigned
	if input.Status != "" {
		parsed, ok := models.ParseContractStatus(input.Status)
		if !ok {
			return nil, crmerrors.Validation("Invalid status %q, choose between signed and not_signed", input.Status)
		}
		status = parsed
	}

	contract := &models.Contract{
		ClientID:        input.ClientID,
		TotalAmount:     input.TotalAmount,
		AmountRemaining: input.AmountRemaining,
		Status:          status,
	}
	if msg := ValidateContract(contract); msg != "" {
		return nil, crmerrors.Validation("%s", msg)
	}

	var created *models.Contract
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.First(&client, input.ClientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return crmerrors.NotFound("No client found with id %d.", input.ClientID)
			}
			return crmerrors.FromStorage(err, "Failed to load the client")
		}
		contract.SalesContactID = client.SalesContactID

		txRepo := repositories.NewContractRepository(tx)
		if _, err := txRepo.CreateContract(contract); err != nil {
			return crmerrors.FromStorage(err, "Failed to create the contract")
		}

		var err error
		created, err = txRepo.GetContractByID(contract.ID)
		if err != nil {
			return crmerrors.FromStorage(err, "Failed to load the contract")
		}
		return nil
	})
	if err != nil {
		return nil, crmerrors.FromStorage(err, "Failed to create the contract")
	}

	warnOnOverpayment(created)
	config.Logger.Info("Contract created",
		zap.Uint("contract_id", created.ID),
		zap.Uint("client_id", created.ClientID),
		zap.String("status", string(created.Status)))
	return created, nil
}

func (s *ContractService) Modify(id uint, patch ContractPatch) (*models.Contract, error) {
	if patch.IsEmpty() {
		return nil, crmerrors.Validation("No modifications were made.")
	}

	var updated *models.Contract
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := repositories.NewContractRepository(tx)

		contract, err := txRepo.GetContractByID(id)
		if err != nil {
			return notFoundOr(err, id)
		}

		patch.Apply(contract)
		if msg := ValidateContract(contract); msg != "" {
			return crmerrors.Validation("%s", msg)
		}

		if updated, err = txRepo.UpdateContract(contract); err != nil {
			return crmerrors.FromStorage(err, "Failed to update the contract")
		}
		return nil
	})
	if err != nil {
		return nil, crmerrors.FromStorage(err, "Failed to update the contract")
	}

	warnOnOverpayment(updated)
	config.Logger.Info("Contract updated",
		zap.Uint("contract_id", id),
		zap.String("status", string(updated.Status)))
	return updated, nil
}

func (s *ContractService) ListAll() ([]models.Contract, error) {
	contracts, err := s.repo.GetAllContracts()
	if err != nil {
		return nil, crmerrors.FromStorage(err, "Failed to load contracts")
	}
	return contracts, nil
}

func (s *ContractService) GetByID(id uint) (*models.Contract, error) {
	contract, err := s.repo.GetContractByID(id)
	if err != nil {
		return nil, notFoundOr(err, id)
	}
	return contract, nil
}

// ListFilteredForCollaborator returns the contracts of the collaborator's
// clients that match filter.
func (s *ContractService) ListFilteredForCollaborator(collaboratorID uint, filter repositories.ContractFilter) ([]models.Contract, error) {
	if !filter.IsValid() {
		return nil, crmerrors.Validation("Unsupported contract filter %q.", string(filter))
	}

	contracts, err := s.repo.GetContractsForSalesContact(collaboratorID, filter)
	if err != nil {
		return nil, crmerrors.FromStorage(err, "Failed to load contracts")
	}
	return contracts, nil
}

// warnOnOverpayment flags contracts whose remaining amount exceeds the total.
// The rule is not enforced.
func warnOnOverpayment(contract *models.Contract) {
	if contract.AmountRemaining.GreaterThan(contract.TotalAmount) {
		config.Logger.Warn("Contract amount remaining exceeds total amount",
			zap.Uint("contract_id", contract.ID),
			zap.String("total_amount", contract.TotalAmount.StringFixed(2)),
			zap.String("amount_remaining", contract.AmountRemaining.StringFixed(2)))
	}
}

func notFoundOr(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return crmerrors.NotFound("No contract found with id %d.", id)
	}
	return crmerrors.FromStorage(err, "Failed to load the contract")
}
