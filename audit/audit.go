// Package audit receives security relevant events of a CLI session:
// refused actions, failed logins and unexpected errors.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"epic-events-crm/config"
	"epic-events-crm/db/models"

	"go.uber.org/zap"
)

type Entry struct {
	Kind      models.AuditKind
	SessionID string
	ActorID   *uint
	Username  string
	Action    string
	Details   map[string]interface{}
	At        time.Time
}

func (e Entry) detailsJSON() ([]byte, error) {
	if len(e.Details) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(e.Details)
}

type Sink interface {
	Record(ctx context.Context, entry Entry) error
}

// Report sends entry to sink and only logs a failure; a nil sink is ignored.
func Report(ctx context.Context, sink Sink, entry Entry) {
	if sink == nil {
		return
	}
	if entry.At.IsZero() {
		entry.At = time.Now()
	}
	if err := sink.Record(ctx, entry); err != nil {
		config.Logger.Warn("Failed to record audit entry",
			zap.String("kind", string(entry.Kind)),
			zap.String("action", entry.Action),
			zap.Error(err))
	}
}

type NopSink struct{}

func (NopSink) Record(context.Context, Entry) error { return nil }

// LoggerSink writes entries to a zap logger.
type LoggerSink struct {
	Logger *zap.Logger
}

func (s LoggerSink) Record(_ context.Context, entry Entry) error {
	logger := s.Logger
	if logger == nil {
		logger = config.Logger
	}

	fields := []zap.Field{
		zap.String("kind", string(entry.Kind)),
		zap.String("session_id", entry.SessionID),
		zap.String("username", entry.Username),
		zap.String("action", entry.Action),
		zap.Time("at", entry.At),
	}
	if entry.ActorID != nil {
		fields = append(fields, zap.Uint("actor_id", *entry.ActorID))
	}
	if len(entry.Details) > 0 {
		fields = append(fields, zap.Any("details", entry.Details))
	}

	logger.Warn("Audit", fields...)
	return nil
}

// Multi fans an entry out to every sink and joins their errors.
type Multi []Sink

func (m Multi) Record(ctx context.Context, entry Entry) error {
	var errs []error
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.Record(ctx, entry); err != nil {
			errs = append(errs, fmt.Errorf("%T: %w", sink, err))
		}
	}
	return errors.Join(errs...)
}
