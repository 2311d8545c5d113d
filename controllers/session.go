package controllers

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strconv"
	"time"

	"epic-events-crm/audit"
	"epic-events-crm/auth"
	"epic-events-crm/config"
	"epic-events-crm/crmerrors"
	"epic-events-crm/db/models"
	"epic-events-crm/metrics"
	"epic-events-crm/views"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	storageMessage    = "I encountered a problem with the database, please try again later."
	unexpectedMessage = "Something went wrong, the operation was cancelled."
	deniedMessage     = "You do not have permission to perform this action."
	invalidOption     = "Invalid option selected. Please try again."
	continueQuestion  = "Do you want to perform another operation?"
	goodbyeMessage    = "Thank you for using CRM Events, until next time!"
	noChangesMessage  = "No modifications were made."
	retryQuestion     = "Do you want to try again?"
)

// roleTitle prints a role the way menus show it ("Management").
func roleTitle(role models.Role) string {
	return cases.Title(language.English).String(string(role))
}

// Session is the menu loop of one logged in collaborator.
type Session struct {
	ID       string
	actor    *models.Collaborator
	services Services
	view     Presenter
	perms    PermissionChecker
	audit    audit.Sink
	metrics  *metrics.Metrics
	ctx      context.Context
}

// Run shows m until the operator exits or declines to continue.
func (s *Session) Run(ctx context.Context, m menu) {
	s.ctx = ctx
	for {
		opt, ok := s.choose(m)
		if !ok {
			s.view.RenderMessage(invalidOption, views.Error)
			continue
		}
		if opt.exit {
			s.view.RenderMessage(goodbyeMessage, views.Info)
			return
		}

		s.runOption(opt)

		if !s.view.Confirm(continueQuestion) {
			s.view.RenderMessage(goodbyeMessage, views.Info)
			return
		}
	}
}

// choose renders m and reads one choice; ok is false when it is out of range.
func (s *Session) choose(m menu) (option, bool) {
	rows := make([][]string, len(m.options))
	for i, opt := range m.options {
		rows[i] = []string{strconv.Itoa(i + 1), opt.label}
	}
	title := fmt.Sprintf("%s - %s (%s)", m.title, s.actor.FullName(), roleTitle(s.actor.Role))
	s.view.RenderTable(title, []string{"#", "Option"}, rows)

	choice := s.view.PromptInt("Choose an option")
	if choice < 1 || choice > len(m.options) {
		return option{}, false
	}
	return m.options[choice-1], true
}

// subMenu asks for one entry of m and runs it. Choosing the exit entry returns
// to the caller's menu.
func (s *Session) subMenu(m menu) error {
	for {
		opt, ok := s.choose(m)
		if !ok {
			s.view.RenderMessage(invalidOption, views.Error)
			continue
		}
		if !opt.exit {
			s.runOption(opt)
		}
		return nil
	}
}

func (s *Session) runOption(opt option) {
	start := time.Now()
	outcome := metrics.OutcomeUnexpected
	defer func() {
		s.metrics.RecordOperation(string(s.actor.Role), opt.action, outcome, start)
	}()
	defer s.guard(opt.action)

	if err := s.require(opt, opt.perms...); err != nil {
		outcome = s.report(opt.action, err)
		return
	}
	outcome = s.report(opt.action, opt.run(s))
}

// guard turns a panic inside a handler into an unexpected error. A closed
// input stream keeps unwinding up to the controller.
func (s *Session) guard(action string) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(error); ok && errors.Is(err, views.ErrInputClosed) {
		panic(r)
	}

	config.Logger.Error("Recovered from panic in menu action",
		zap.String("session_id", s.ID),
		zap.String("action", action),
		zap.Any("panic", r),
		zap.ByteString("stack", debug.Stack()))
	s.report(action, crmerrors.Unexpected(fmt.Errorf("panic: %v", r), unexpectedMessage))
}

// require checks every permission in order and stops at the first one missing.
// Refusals are audited.
func (s *Session) require(opt option, perms ...auth.Permission) error {
	for _, perm := range perms {
		allowed, err := s.perms.HasPermission(s.actor, perm)
		if err != nil {
			return crmerrors.Storage(err, "Failed to check permissions")
		}
		if allowed {
			continue
		}

		audit.Report(s.ctx, s.audit, audit.Entry{
			Kind:      models.AuditUnauthorizedAccess,
			SessionID: s.ID,
			ActorID:   &s.actor.ID,
			Username:  s.actor.Username,
			Action:    opt.action,
			Details:   map[string]interface{}{"permission": perm.Qualified()},
		})
		config.Logger.Warn("Permission denied",
			zap.String("session_id", s.ID),
			zap.String("username", s.actor.Username),
			zap.String("action", opt.action),
			zap.String("permission", perm.Qualified()))

		message := opt.denied
		if message == "" {
			message = deniedMessage
		}
		return crmerrors.Permission(message)
	}
	return nil
}

// report renders err and returns the metrics outcome for it.
func (s *Session) report(action string, err error) string {
	if err == nil {
		return metrics.OutcomeOK
	}

	switch crmerrors.KindOf(err) {
	case crmerrors.KindValidation:
		s.view.RenderMessage(crmerrors.MessageOf(err), views.Error)
		return metrics.OutcomeValidation
	case crmerrors.KindNotFound:
		s.view.RenderMessage(crmerrors.MessageOf(err), views.Warning)
		return metrics.OutcomeNotFound
	case crmerrors.KindPermission:
		s.view.RenderMessage(crmerrors.MessageOf(err), views.Error)
		return metrics.OutcomeDenied
	case crmerrors.KindStorage:
		config.Logger.Error("Storage failure",
			zap.String("session_id", s.ID),
			zap.String("action", action),
			zap.Error(err))
		s.view.RenderMessage(storageMessage, views.Error)
		return metrics.OutcomeStorage
	}

	config.Logger.Error("Unexpected failure",
		zap.String("session_id", s.ID),
		zap.String("action", action),
		zap.Error(err))
	audit.Report(s.ctx, s.audit, audit.Entry{
		Kind:      models.AuditUnexpectedError,
		SessionID: s.ID,
		ActorID:   &s.actor.ID,
		Username:  s.actor.Username,
		Action:    action,
		Details:   map[string]interface{}{"error": err.Error()},
	})
	s.view.RenderMessage(unexpectedMessage, views.Error)
	return metrics.OutcomeUnexpected
}

// retry asks whether a creation flow should start over after err.
// Only validation failures are retried.
func (s *Session) retry(err error) (bool, error) {
	if !crmerrors.IsValidation(err) {
		return false, err
	}
	s.view.RenderMessage(crmerrors.MessageOf(err), views.Error)
	return s.view.Confirm(retryQuestion), nil
}
