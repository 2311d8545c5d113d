package controllers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"epic-events-crm/audit"
	"epic-events-crm/config"
	"epic-events-crm/crmerrors"
	"epic-events-crm/db/models"
	"epic-events-crm/metrics"
	"epic-events-crm/views"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	// ErrLoginFailed is returned by Start when no valid credentials were entered.
	ErrLoginFailed = errors.New("login failed")
	// ErrInterrupted is returned by Start when its context ends mid-session.
	ErrInterrupted = errors.New("session interrupted")
)

const defaultMaxLoginAttempts = 3

type MainController struct {
	services         Services
	perms            PermissionChecker
	view             Presenter
	audit            audit.Sink
	metrics          *metrics.Metrics
	loginLimiter     *rate.Limiter
	maxLoginAttempts int
}

type Option func(*MainController)

func WithAuditSink(sink audit.Sink) Option {
	return func(c *MainController) { c.audit = sink }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *MainController) { c.metrics = m }
}

// WithLoginLimiter replaces the pacing of login attempts (one per second by default).
func WithLoginLimiter(l *rate.Limiter) Option {
	return func(c *MainController) { c.loginLimiter = l }
}

func WithMaxLoginAttempts(n int) Option {
	return func(c *MainController) {
		if n > 0 {
			c.maxLoginAttempts = n
		}
	}
}

func NewMainController(services Services, perms PermissionChecker, view Presenter, opts ...Option) *MainController {
	c := &MainController{
		services:         services,
		perms:            perms,
		view:             view,
		audit:            audit.NopSink{},
		loginLimiter:     rate.NewLimiter(rate.Every(time.Second), 1),
		maxLoginAttempts: defaultMaxLoginAttempts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start logs the operator in and runs the menu of their role. It returns nil
// on a normal exit or when the input stream is closed after login, and
// ErrInterrupted as soon as ctx is done, even while a prompt is waiting.
func (c *MainController) Start(ctx context.Context) error {
	sessionID := uuid.NewString()
	done := make(chan error, 1)
	go func() { done <- c.run(ctx, sessionID) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		config.Logger.Info("Session interrupted",
			zap.String("session_id", sessionID),
			zap.Error(ctx.Err()))
		return fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	}
}

func (c *MainController) run(ctx context.Context, sessionID string) (err error) {
	loggedIn := false

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok && errors.Is(e, views.ErrInputClosed) {
			config.Logger.Info("Input closed, ending session", zap.String("session_id", sessionID))
			if !loggedIn {
				err = ErrLoginFailed
			}
			return
		}
		panic(r)
	}()

	actor, err := c.login(ctx, sessionID)
	if err != nil {
		return err
	}
	loggedIn = true

	m, err := menuFor(actor.Role)
	if err != nil {
		c.view.RenderMessage("Your role does not have specific tasks assigned.", views.Warning)
		return err
	}

	session := c.newSession(ctx, sessionID, actor)
	config.Logger.Info("Session started",
		zap.String("session_id", sessionID),
		zap.String("username", actor.Username),
		zap.String("role", string(actor.Role)))
	session.Run(ctx, m)
	config.Logger.Info("Session ended", zap.String("session_id", sessionID))
	return nil
}

func (c *MainController) newSession(ctx context.Context, id string, actor *models.Collaborator) *Session {
	return &Session{
		ID:       id,
		actor:    actor,
		services: c.services,
		view:     c.view,
		perms:    c.perms,
		audit:    c.audit,
		metrics:  c.metrics,
		ctx:      ctx,
	}
}

func (c *MainController) login(ctx context.Context, sessionID string) (*models.Collaborator, error) {
	for attempt := 1; attempt <= c.maxLoginAttempts; attempt++ {
		if err := c.loginLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInterrupted, err)
		}

		username := c.view.PromptText("Username", views.Required(150))
		password := c.view.PromptPassword("Password")

		actor, err := c.services.Collaborators.Authenticate(username, password)
		if err == nil {
			c.metrics.RecordLogin(metrics.OutcomeOK)
			c.view.RenderMessage("Logged in successfully!", views.Success)
			return actor, nil
		}

		if !crmerrors.IsValidation(err) {
			c.metrics.RecordLogin(metrics.OutcomeStorage)
			config.Logger.Error("Login failed", zap.String("session_id", sessionID), zap.Error(err))
			c.view.RenderMessage(storageMessage, views.Error)
			return nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
		}

		c.metrics.RecordLogin(metrics.OutcomeValidation)
		audit.Report(ctx, c.audit, audit.Entry{
			Kind:      models.AuditLoginFailed,
			SessionID: sessionID,
			Username:  username,
			Action:    "login",
			Details:   map[string]interface{}{"attempt": attempt},
		})
		c.view.RenderMessage("Login failed: "+crmerrors.MessageOf(err), views.Error)
	}

	c.view.RenderMessage("Too many failed login attempts.", views.Error)
	return nil, ErrLoginFailed
}
