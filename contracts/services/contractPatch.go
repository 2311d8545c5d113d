package services

import (
	"epic-events-crm/db/models"

	"github.com/shopspring/decimal"
)

// Largest value a decimal(10,2) column holds.
var maxAmount = decimal.RequireFromString("99999999.99")

// ContractPatch lists the fields to change; nil leaves a field untouched.
type ContractPatch struct {
	TotalAmount     *decimal.Decimal
	AmountRemaining *decimal.Decimal
	Status          *models.ContractStatus
}

func (p ContractPatch) IsEmpty() bool {
	return p.TotalAmount == nil && p.AmountRemaining == nil && p.Status == nil
}

func (p ContractPatch) Apply(c *models.Contract) {
	if p.TotalAmount != nil {
		c.TotalAmount = *p.TotalAmount
	}
	if p.AmountRemaining != nil {
		c.AmountRemaining = *p.AmountRemaining
	}
	if p.Status != nil {
		status, ok := models.ParseContractStatus(string(*p.Status))
		if !ok {
			status = *p.Status
		}
		c.Status = status
	}
}

// ValidateContract returns the first problem found on c, or "".
func ValidateContract(c *models.Contract) string {
	if c.ClientID == 0 {
		return "A contract needs a client"
	}
	if c.TotalAmount.IsNegative() {
		return "Total amount cannot be negative"
	}
	if c.AmountRemaining.IsNegative() {
		return "Amount remaining cannot be negative"
	}
	if c.TotalAmount.GreaterThan(maxAmount) || c.AmountRemaining.GreaterThan(maxAmount) {
		return "Amounts cannot exceed 99999999.99"
	}
	if !c.TotalAmount.Equal(c.TotalAmount.Round(2)) {
		return "Total amount can have at most 2 decimal places"
	}
	if !c.AmountRemaining.Equal(c.AmountRemaining.Round(2)) {
		return "Amount remaining can have at most 2 decimal places"
	}
	if _, ok := models.ParseContractStatus(string(c.Status)); !ok {
		return "Invalid status, choose between signed and not_signed"
	}
	return ""
}
