package controllers

import (
	"strconv"
	"time"

	"epic-events-crm/db/models"
	"epic-events-crm/utils"
	"epic-events-crm/views"

	"github.com/shopspring/decimal"
)

// Blank answers to the optional* prompts mean "keep the current value" and
// come back as nil.

func (s *Session) optionalText(label string, kind views.TextKind, maxLength int) *string {
	value := s.view.PromptText(label+" (leave blank to keep)", views.Optional(kind, maxLength))
	if value == "" {
		return nil
	}
	return &value
}

func (s *Session) optionalAmount(label string) *decimal.Decimal {
	value := s.optionalText(label, views.DecimalText, 12)
	if value == nil {
		return nil
	}
	amount, err := decimal.NewFromString(*value)
	if err != nil {
		return nil
	}
	return &amount
}

func (s *Session) optionalDateTime(label string) *time.Time {
	value := s.optionalText(label+" [YYYY-MM-DD HH:MM]", views.DateTimeText, 16)
	if value == nil {
		return nil
	}
	t, err := utils.ParseDateTime(*value)
	if err != nil {
		return nil
	}
	return &t
}

func (s *Session) optionalInt(label string) *int {
	value := s.optionalText(label, views.IntegerText, 9)
	if value == nil {
		return nil
	}
	n, err := strconv.Atoi(*value)
	if err != nil {
		return nil
	}
	return &n
}

func (s *Session) optionalRole(label string) *models.Role {
	for {
		value := s.optionalText(label+" [management/sales/support]", views.PlainText, 10)
		if value == nil {
			return nil
		}
		if role, ok := models.ParseRole(*value); ok {
			return &role
		}
		s.view.RenderMessage("Please enter management, sales or support.", views.Error)
	}
}

func (s *Session) optionalStatus(label string) *models.ContractStatus {
	for {
		value := s.optionalText(label+" [signed/not_signed]", views.PlainText, 10)
		if value == nil {
			return nil
		}
		if status, ok := models.ParseContractStatus(*value); ok {
			return &status
		}
		s.view.RenderMessage("Please enter signed or not_signed.", views.Error)
	}
}

func (s *Session) requiredText(label string, kind views.TextKind, maxLength int) string {
	return s.view.PromptText(label, views.TextConstraints{Kind: kind, MaxLength: maxLength})
}

func (s *Session) requiredAmount(label string) decimal.Decimal {
	for {
		amount, err := decimal.NewFromString(s.requiredText(label, views.DecimalText, 12))
		if err == nil {
			return amount
		}
		s.view.RenderMessage("Please enter a positive amount, for example 1250.50.", views.Error)
	}
}

func (s *Session) requiredDateTime(label string) time.Time {
	for {
		t, err := utils.ParseDateTime(s.requiredText(label+" [YYYY-MM-DD HH:MM]", views.DateTimeText, 16))
		if err == nil {
			return t
		}
		s.view.RenderMessage("Please enter a date as YYYY-MM-DD HH:MM.", views.Error)
	}
}

func (s *Session) requiredInt(label string) int {
	for {
		n, err := strconv.Atoi(s.requiredText(label, views.IntegerText, 9))
		if err == nil {
			return n
		}
		s.view.RenderMessage("Please enter a whole number.", views.Error)
	}
}
