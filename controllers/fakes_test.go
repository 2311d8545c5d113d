package controllers_test

import (
	"context"
	"strconv"
	"strings"

	"epic-events-crm/audit"
	"epic-events-crm/auth"
	clientservices "epic-events-crm/clients/services"
	collaboratorservices "epic-events-crm/collaborators/services"
	"epic-events-crm/contracts/repositories"
	contractservices "epic-events-crm/contracts/services"
	"epic-events-crm/crmerrors"
	"epic-events-crm/db/models"
	eventservices "epic-events-crm/events/services"
	"epic-events-crm/utils"
	"epic-events-crm/views"
)

type shownMessage struct {
	text     string
	severity views.Severity
}

// scriptedView answers prompts from a fixed list and records everything shown.
// It panics with views.ErrInputClosed once the answers run out. With hold set
// it first closes waiting and blocks until hold is closed, like an idle
// operator at a prompt.
type scriptedView struct {
	answers   []string
	messages  []shownMessage
	tables    []string
	reprompts int
	hold      chan struct{}
	waiting   chan struct{}
}

func newScriptedView(answers ...string) *scriptedView {
	return &scriptedView{answers: answers}
}

func (v *scriptedView) next() string {
	if len(v.answers) == 0 {
		if v.hold != nil {
			close(v.waiting)
			<-v.hold
		}
		panic(views.ErrInputClosed)
	}
	answer := v.answers[0]
	v.answers = v.answers[1:]
	return answer
}

func (v *scriptedView) RenderTable(title string, _ []string, _ [][]string) {
	v.tables = append(v.tables, title)
}

func (v *scriptedView) RenderMessage(message string, severity views.Severity) {
	v.messages = append(v.messages, shownMessage{message, severity})
}

func (v *scriptedView) PromptText(string, views.TextConstraints) string { return v.next() }
func (v *scriptedView) PromptPassword(string) string                    { return v.next() }

func (v *scriptedView) PromptInt(string) int {
	n, err := strconv.Atoi(v.next())
	if err != nil {
		return 0
	}
	return n
}

func (v *scriptedView) PromptIntInSet(_ string, validIDs []uint) uint {
	for {
		n, err := strconv.ParseUint(v.next(), 10, 64)
		if err == nil && utils.ContainsID(validIDs, uint(n)) {
			return uint(n)
		}
		v.reprompts++
	}
}

func (v *scriptedView) Confirm(string) bool {
	answer := strings.ToLower(v.next())
	return answer == "yes" || answer == "y"
}

func (v *scriptedView) shown(text string) bool {
	for _, m := range v.messages {
		if strings.Contains(m.text, text) {
			return true
		}
	}
	return false
}

func (v *scriptedView) countTables(prefix string) int {
	n := 0
	for _, title := range v.tables {
		if strings.HasPrefix(title, prefix) {
			n++
		}
	}
	return n
}

// rolePerms grants what the group of each actor's role holds.
type rolePerms struct {
	revoked map[auth.Permission]bool
	checks  int
}

func (p *rolePerms) HasPermission(actor *models.Collaborator, perm auth.Permission) (bool, error) {
	p.checks++
	if p.revoked[perm] {
		return false, nil
	}
	for _, granted := range auth.GroupPermissions[actor.Role.GroupName()] {
		if granted == perm {
			return true, nil
		}
	}
	return false, nil
}

type recordingSink struct {
	entries []audit.Entry
}

func (s *recordingSink) Record(_ context.Context, entry audit.Entry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *recordingSink) count(kind models.AuditKind) int {
	n := 0
	for _, e := range s.entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

const testPassword = "Secret123*"

type fakeCollaborators struct {
	byUsername  map[string]*models.Collaborator
	supportTeam []models.Collaborator
	calls       int
}

func newFakeCollaborators(actors ...models.Collaborator) *fakeCollaborators {
	f := &fakeCollaborators{byUsername: map[string]*models.Collaborator{}}
	for i := range actors {
		f.byUsername[actors[i].Username] = &actors[i]
	}
	return f
}

func (f *fakeCollaborators) Register(collaboratorservices.RegisterCollaboratorInput) (*models.Collaborator, error) {
	f.calls++
	return nil, crmerrors.Validation("not used")
}

func (f *fakeCollaborators) Modify(uint, collaboratorservices.CollaboratorPatch) (*models.Collaborator, error) {
	f.calls++
	return nil, crmerrors.Validation("not used")
}

func (f *fakeCollaborators) Delete(uint) error {
	f.calls++
	return nil
}

func (f *fakeCollaborators) Authenticate(username, password string) (*models.Collaborator, error) {
	if actor, ok := f.byUsername[username]; ok && password == testPassword {
		return actor, nil
	}
	return nil, crmerrors.Validation("Incorrect username or password")
}

func (f *fakeCollaborators) ListNonSuperuser() ([]models.Collaborator, error) {
	f.calls++
	var all []models.Collaborator
	for _, c := range f.byUsername {
		all = append(all, *c)
	}
	return all, nil
}

func (f *fakeCollaborators) ListByRole(models.Role) ([]models.Collaborator, error) {
	f.calls++
	return f.supportTeam, nil
}

type fakeClients struct {
	clients    []models.Client
	listErr    error
	panicOnAll bool
	createErrs []error
	created    []clientservices.CreateClientInput
	calls      int
}

func (f *fakeClients) Create(input clientservices.CreateClientInput) (*models.Client, error) {
	f.calls++
	f.created = append(f.created, input)
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		return nil, err
	}
	return &models.Client{ID: uint(len(f.created)), FullName: input.FullName, Email: input.Email}, nil
}

func (f *fakeClients) Modify(uint, clientservices.ClientPatch) (*models.Client, error) {
	f.calls++
	return nil, crmerrors.Validation("not used")
}

func (f *fakeClients) ListAll() ([]models.Client, error) {
	f.calls++
	if f.panicOnAll {
		panic("nil map write")
	}
	return f.clients, f.listErr
}

func (f *fakeClients) ListForSalesContact(uint) ([]models.Client, error) {
	f.calls++
	return f.clients, nil
}

func (f *fakeClients) Search(string) ([]models.Client, error) {
	f.calls++
	return f.clients, nil
}

type fakeContracts struct {
	calls int
}

func (f *fakeContracts) Create(contractservices.CreateContractInput) (*models.Contract, error) {
	f.calls++
	return nil, crmerrors.Validation("not used")
}

func (f *fakeContracts) Modify(uint, contractservices.ContractPatch) (*models.Contract, error) {
	f.calls++
	return nil, crmerrors.Validation("not used")
}

func (f *fakeContracts) ListAll() ([]models.Contract, error) {
	f.calls++
	return nil, nil
}

func (f *fakeContracts) ListFilteredForCollaborator(uint, repositories.ContractFilter) ([]models.Contract, error) {
	f.calls++
	return nil, nil
}

type assignment struct {
	eventID, collaboratorID uint
}

type fakeEvents struct {
	events      []models.Event
	assignments []assignment
	modified    int
	calls       int
}

func (f *fakeEvents) Create(eventservices.CreateEventInput) (*models.Event, error) {
	f.calls++
	return nil, crmerrors.Validation("not used")
}

func (f *fakeEvents) Modify(uint, eventservices.EventPatch) (*models.Event, error) {
	f.calls++
	f.modified++
	return &f.events[0], nil
}

func (f *fakeEvents) AssignSupportContact(eventID, collaboratorID uint) (*models.Event, error) {
	f.calls++
	f.assignments = append(f.assignments, assignment{eventID, collaboratorID})
	return &f.events[0], nil
}

func (f *fakeEvents) ListAll(*bool) ([]models.Event, error) {
	f.calls++
	return f.events, nil
}

func (f *fakeEvents) ListForSupportContact(uint) ([]models.Event, error) {
	f.calls++
	return f.events, nil
}
