package controllers

import (
	"strconv"

	"epic-events-crm/contracts/repositories"
	contractservices "epic-events-crm/contracts/services"
	"epic-events-crm/db/models"
	"epic-events-crm/views"
)

func (s *Session) listContracts() error {
	contracts, err := s.services.Contracts.ListAll()
	if err != nil {
		return err
	}
	if len(contracts) == 0 {
		s.view.RenderMessage("No contracts available.", views.Info)
		return nil
	}
	s.showContracts("Contracts", contracts)
	return nil
}

func (s *Session) createContract() error {
	clients, err := s.services.Clients.ListAll()
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		s.view.RenderMessage("No clients available.", views.Info)
		return nil
	}
	ids := s.showClients("Clients", clients)
	clientID := s.view.PromptIntInSet("Client id", ids)

	for {
		input := contractservices.CreateContractInput{
			ClientID:        clientID,
			TotalAmount:     s.requiredAmount("Total amount"),
			AmountRemaining: s.requiredAmount("Amount remaining"),
			Status:          s.view.PromptText("Status [signed/not_signed] (blank for not_signed)", views.Optional(views.PlainText, 10)),
		}

		created, err := s.services.Contracts.Create(input)
		if err == nil {
			s.showContracts("Contract", []models.Contract{*created})
			s.view.RenderMessage("Contract created successfully.", views.Success)
			return nil
		}

		again, err := s.retry(err)
		if err != nil || !again {
			return err
		}
	}
}

func (s *Session) modifyAnyContract() error {
	contracts, err := s.services.Contracts.ListAll()
	if err != nil {
		return err
	}
	if len(contracts) == 0 {
		s.view.RenderMessage("No contracts available.", views.Info)
		return nil
	}
	return s.modifyContractFrom(contracts)
}

// modifyOwnContract only offers the contracts of the actor's clients.
func (s *Session) modifyOwnContract() error {
	contracts, err := s.services.Contracts.ListFilteredForCollaborator(s.actor.ID, repositories.FilterAll)
	if err != nil {
		return err
	}
	if len(contracts) == 0 {
		s.view.RenderMessage("No contracts assigned to you.", views.Info)
		return nil
	}
	return s.modifyContractFrom(contracts)
}

func (s *Session) modifyContractFrom(contracts []models.Contract) error {
	ids := s.showContracts("Contracts", contracts)
	selected := s.view.PromptIntInSet("Contract id", ids)

	patch := contractservices.ContractPatch{
		TotalAmount:     s.optionalAmount("Total amount"),
		AmountRemaining: s.optionalAmount("Amount remaining"),
		Status:          s.optionalStatus("Status"),
	}
	if patch.IsEmpty() {
		s.view.RenderMessage(noChangesMessage, views.Info)
		return nil
	}

	updated, err := s.services.Contracts.Modify(selected, patch)
	if err != nil {
		return err
	}
	s.showContracts("Contract", []models.Contract{*updated})
	s.view.RenderMessage("Contract updated successfully.", views.Success)
	return nil
}

func (s *Session) filterOwnContracts() error {
	rows := make([][]string, len(repositories.ContractFilters))
	choices := make([]uint, len(repositories.ContractFilters))
	for i, f := range repositories.ContractFilters {
		rows[i] = []string{strconv.Itoa(i + 1), f.Label()}
		choices[i] = uint(i + 1)
	}
	s.view.RenderTable("Filter contracts", []string{"#", "Filter"}, rows)
	filter := repositories.ContractFilters[s.view.PromptIntInSet("Filter", choices)-1]

	contracts, err := s.services.Contracts.ListFilteredForCollaborator(s.actor.ID, filter)
	if err != nil {
		return err
	}
	if len(contracts) == 0 {
		s.view.RenderMessage("No contracts match this filter.", views.Info)
		return nil
	}
	s.showContracts(filter.Label(), contracts)
	return nil
}
