package controllers

import (
	"strconv"

	"epic-events-crm/db/models"
	"epic-events-crm/utils"
)

var (
	collaboratorColumns = []string{"ID", "Username", "Full name", "Email", "Employee number", "Role"}
	clientColumns       = []string{"ID", "Full name", "Email", "Phone", "Company", "Sales contact", "Created", "Updated"}
	contractColumns     = []string{"ID", "Client", "Sales contact", "Total amount", "Amount remaining", "Status", "Created"}
	eventColumns        = []string{"ID", "Contract", "Client", "Client contact", "Start", "End", "Support contact", "Location", "Attendees", "Notes"}
)

func id(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func collaboratorRows(collaborators []models.Collaborator) ([][]string, []uint) {
	rows := make([][]string, 0, len(collaborators))
	ids := make([]uint, 0, len(collaborators))
	for _, c := range collaborators {
		rows = append(rows, []string{
			id(c.ID), c.Username, c.FullName(), c.Email, c.EmployeeNumber, roleTitle(c.Role),
		})
		ids = append(ids, c.ID)
	}
	return rows, ids
}

func clientRows(clients []models.Client) ([][]string, []uint) {
	rows := make([][]string, 0, len(clients))
	ids := make([]uint, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{
			id(c.ID), c.FullName, c.Email, orDash(c.Phone), orDash(c.CompanyName), c.SalesContactName(),
			utils.FormatDate(c.CreatedAt), utils.FormatDate(c.UpdatedAt),
		})
		ids = append(ids, c.ID)
	}
	return rows, ids
}

func contractRows(contracts []models.Contract) ([][]string, []uint) {
	rows := make([][]string, 0, len(contracts))
	ids := make([]uint, 0, len(contracts))
	for _, c := range contracts {
		rows = append(rows, []string{
			id(c.ID), c.ClientName(), c.SalesContactName(),
			c.TotalAmount.StringFixed(2), c.AmountRemaining.StringFixed(2),
			c.Status.Display(), utils.FormatDate(c.CreatedAt),
		})
		ids = append(ids, c.ID)
	}
	return rows, ids
}

func eventRows(events []models.Event) ([][]string, []uint) {
	rows := make([][]string, 0, len(events))
	ids := make([]uint, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			id(e.ID), id(e.ContractID), e.ClientName, e.ClientContactOrDefault(),
			utils.FormatDateTime(e.StartDate), utils.FormatDateTime(e.EndDate),
			e.SupportContactName(), e.Location, strconv.Itoa(e.Attendees), e.NotesOrDefault(),
		})
		ids = append(ids, e.ID)
	}
	return rows, ids
}

func (s *Session) showCollaborators(title string, collaborators []models.Collaborator) []uint {
	rows, ids := collaboratorRows(collaborators)
	s.view.RenderTable(title, collaboratorColumns, rows)
	return ids
}

func (s *Session) showClients(title string, clients []models.Client) []uint {
	rows, ids := clientRows(clients)
	s.view.RenderTable(title, clientColumns, rows)
	return ids
}

func (s *Session) showContracts(title string, contracts []models.Contract) []uint {
	rows, ids := contractRows(contracts)
	s.view.RenderTable(title, contractColumns, rows)
	return ids
}

func (s *Session) showEvents(title string, events []models.Event) []uint {
	rows, ids := eventRows(events)
	s.view.RenderTable(title, eventColumns, rows)
	return ids
}
