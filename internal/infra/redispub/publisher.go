package redispub

import (
	"context"
	"encoding/json"

	"brow-studio-api/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// Publisher fans notification events out over redis pub/sub so connected
// UIs can live-update their feeds. Delivery is best-effort: callers log and
// swallow failures.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) Publish(ctx context.Context, channel string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to marshal event payload")
	}
	if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
		return errs.Wrap(err, "failed to publish event")
	}
	return nil
}
