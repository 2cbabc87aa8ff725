package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/team-growth/internal/domain/refresh"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeRedis struct {
	channel string
	message any
	err     error
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, message any) *goredis.IntCmd {
	f.channel = channel
	f.message = message
	cmd := goredis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	cmd.SetVal(1)
	return cmd
}

func TestRedisPublisher_PublishesToTeamChannel(t *testing.T) {
	fake := &fakeRedis{}
	publisher := newRedisPublisher(fake, time.Second, logging.NewNop())
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	publisher.now = func() time.Time { return at }

	err := publisher.Publish(context.Background(), refresh.Event{
		TeamID:   "team-1",
		Kind:     refresh.KindStats,
		EntityID: "match-1",
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if fake.channel != "team-refresh:team-1" {
		t.Fatalf("unexpected channel %q", fake.channel)
	}

	raw, ok := fake.message.(string)
	if !ok {
		t.Fatalf("expected string payload, got %T", fake.message)
	}
	var decoded refresh.Event
	if err := sonic.UnmarshalString(raw, &decoded); err != nil {
		t.Fatalf("decode payload %q: %v", raw, err)
	}
	if decoded.Kind != refresh.KindStats || decoded.EntityID != "match-1" || !decoded.OccurredAt.Equal(at) {
		t.Fatalf("unexpected event %+v", decoded)
	}
}

func TestRedisPublisher_Errors(t *testing.T) {
	publisher := newRedisPublisher(&fakeRedis{err: errors.New("connection refused")}, time.Second, nil)

	if err := publisher.Publish(context.Background(), refresh.Event{Kind: refresh.KindMatch}); err == nil {
		t.Fatalf("expected missing team id error")
	}
	if err := publisher.Publish(context.Background(), refresh.Event{TeamID: "team-1"}); err == nil {
		t.Fatalf("expected redis error to surface")
	}
}

func TestLogPublisher_LogsChannel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	publisher := NewLogPublisher(logging.FromZap(zap.New(core)))

	if err := publisher.Publish(context.Background(), refresh.Event{TeamID: "team-9", Kind: refresh.KindLineup}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	entries := logs.All()
	if len(entries) != 1 || entries[0].ContextMap()["channel"] != "team-refresh:team-9" {
		t.Fatalf("unexpected log entries %+v", entries)
	}
}
