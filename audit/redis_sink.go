package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisAuditKey is the list entries are appended to.
const RedisAuditKey = "crm:audit"

// RedisSink appends entries as JSON to a redis list for external consumers.
type RedisSink struct {
	client  redis.Cmdable
	key     string
	timeout time.Duration
}

func NewRedisSink(client redis.Cmdable) *RedisSink {
	return &RedisSink{client: client, key: RedisAuditKey, timeout: 2 * time.Second}
}

type redisEntry struct {
	Kind      string                 `json:"kind"`
	SessionID string                 `json:"session_id"`
	ActorID   *uint                  `json:"actor_id,omitempty"`
	Username  string                 `json:"username"`
	Action    string                 `json:"action"`
	Details   map[string]interface{} `json:"details,omitempty"`
	At        time.Time              `json:"at"`
}

func (s *RedisSink) Record(ctx context.Context, entry Entry) error {
	payload, err := json.Marshal(redisEntry{
		Kind:      string(entry.Kind),
		SessionID: entry.SessionID,
		ActorID:   entry.ActorID,
		Username:  entry.Username,
		Action:    entry.Action,
		Details:   entry.Details,
		At:        entry.At,
	})
	if err != nil {
		return fmt.Errorf("failed to encode audit entry: %w", err)
	}

	redisCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.RPush(redisCtx, s.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to push audit entry to %s: %w", s.key, err)
	}
	return nil
}
