package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func TestEmitter_PublishesToEveryChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := NewMockPublisher(ctrl)
	emitter := NewEmitter(publisher, NewWorkerPool(2))
	emitter.now = func() time.Time { return time.Date(2024, 12, 9, 16, 0, 0, 0, time.UTC) }

	var (
		mu       sync.Mutex
		channels []string
		messages [][]byte
	)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, channel string, msg []byte) error {
			mu.Lock()
			defer mu.Unlock()
			channels = append(channels, channel)
			messages = append(messages, msg)
			return nil
		}).Times(2)

	emitter.Emit(context.Background(), EventGiftSent, GiftPayload{SessionID: 12, Total: 15}, DuelChannel(12), NotificationsChannel(7))
	emitter.Close()

	assert.ElementsMatch(t, []string{"duel.12", "notifications.7"}, channels)
	assert.Equal(t, messages[0], messages[1], "one envelope per emit")

	var env struct {
		ID      string      `json:"id"`
		Event   string      `json:"event"`
		Payload GiftPayload `json:"payload"`
		SentAt  time.Time   `json:"sent_at"`
	}
	require.NoError(t, json.Unmarshal(messages[0], &env))
	_, err := uuid.Parse(env.ID)
	assert.NoError(t, err)
	assert.Equal(t, EventGiftSent, env.Event)
	assert.Equal(t, 12, env.Payload.SessionID)
	assert.Equal(t, int64(15), env.Payload.Total)
	assert.True(t, env.SentAt.Equal(time.Date(2024, 12, 9, 16, 0, 0, 0, time.UTC)))
}

func TestEmitter_FailuresAreSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := NewMockPublisher(ctrl)
	emitter := NewEmitter(publisher, NewWorkerPool(1))

	publisher.EXPECT().Publish(gomock.Any(), "duel.12.scores", gomock.Any()).Return(errors.New("redis down"))

	assert.NotPanics(t, func() {
		emitter.Emit(context.Background(), EventScoreUpdated, ScorePayload{SessionID: 12}, ScoresChannel(12))
		emitter.Close()
	})
}

func TestEmitter_NoChannels(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := NewMockPublisher(ctrl)
	emitter := NewEmitter(publisher, NewWorkerPool(1))

	emitter.Emit(context.Background(), EventDuelEnded, SessionPayload{SessionID: 12})
	emitter.Close()
}

func TestEmitter_AfterClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := NewMockPublisher(ctrl)
	emitter := NewEmitter(publisher, NewWorkerPool(1))
	emitter.Close()

	emitter.Emit(context.Background(), EventDuelEnded, SessionPayload{SessionID: 12}, DuelChannel(12))
}

func TestEmitter_FullQueueDropsEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := NewMockPublisher(ctrl)
	pool := NewWorkerPool(1)
	emitter := NewEmitter(publisher, pool)
	release := fillPool(t, pool)

	done := make(chan struct{})
	go func() {
		emitter.Emit(context.Background(), EventScoreUpdated, ScorePayload{SessionID: 12}, ScoresChannel(12))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit waited for queue space")
	}
	release()
	emitter.Close()
}

func TestEmitter_RedisPublisher(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	sub := client.Subscribe(ctx, DuelChannel(12))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	emitter := NewEmitter(NewRedisPublisher(client), NewWorkerPool(1))
	emitter.Emit(ctx, EventDuelStarted, SessionPayload{SessionID: 12, Status: "active", HostID: 7}, DuelChannel(12))
	emitter.Close()

	select {
	case msg := <-sub.Channel():
		var env Envelope
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &env))
		assert.Equal(t, EventDuelStarted, env.Event)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop{}.Emit(context.Background(), EventDuelEnded, nil, DuelChannel(1))
	})
}
