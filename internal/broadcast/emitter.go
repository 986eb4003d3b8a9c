package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=emitter.go -destination=mock_emitter.go -package=broadcast

type Publisher interface {
	Publish(ctx context.Context, channel string, message []byte) error
}

const publishTimeout = 3 * time.Second

// Emitter publishes events without making the caller wait for delivery.
// Failures are logged and dropped: delivery is at-most-once.
type Emitter struct {
	publisher Publisher
	pool      WorkerPoolI
	now       func() time.Time
}

func NewEmitter(publisher Publisher, pool WorkerPoolI) *Emitter {
	return &Emitter{
		publisher: publisher,
		pool:      pool,
		now:       time.Now,
	}
}

func (e *Emitter) Emit(ctx context.Context, event string, payload any, channels ...string) {
	if len(channels) == 0 {
		return
	}
	msg, err := json.Marshal(Envelope{
		ID:      uuid.NewString(),
		Event:   event,
		Payload: payload,
		SentAt:  e.now().UTC(),
	})
	if err != nil {
		zap.L().Error("can't encode broadcast event", zap.String("event", event), zap.Error(err))
		return
	}

	err = e.pool.AddTask(ctx, func() error {
		return e.publish(event, msg, channels)
	})
	if err != nil {
		zap.L().Warn("broadcast event dropped", zap.String("event", event), zap.Strings("channels", channels), zap.Error(err))
	}
}

func (e *Emitter) publish(event string, msg []byte, channels []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	var g errgroup.Group
	for _, ch := range channels {
		ch := ch
		g.Go(func() error {
			if err := e.publisher.Publish(ctx, ch, msg); err != nil {
				return fmt.Errorf("publish %s to %s: %w", event, ch, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (e *Emitter) Close() {
	e.pool.Close()
}

// Nop drops every event.
type Nop struct{}

func (Nop) Emit(context.Context, string, any, ...string) {}
