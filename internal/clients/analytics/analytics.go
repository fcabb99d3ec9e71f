package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
)

const queueKey = "analytics:events"

type Event struct {
	Type       string                 `json:"type"`
	UserID     uuid.UUID              `json:"user_id"`
	Props      map[string]interface{} `json:"props,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// Client pushes analytics events onto a redis queue drained by an external
// consumer. Fire-and-forget: a nil client or a push failure is never visible
// to the operation that emitted the event.
type Client struct {
	rdb *redis.Client
	log *logger.Logger
}

// New returns nil when addr is empty; a nil *Client is safe to use.
func New(baseLog *logger.Logger, addr, password string, db int) *Client {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Client{
		rdb: rdb,
		log: baseLog.With("client", "AnalyticsClient"),
	}
}

func (c *Client) Publish(ctx context.Context, ev Event) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return c.rdb.LPush(ctx, queueKey, raw).Err()
}

func (c *Client) Close() {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Close()
}
