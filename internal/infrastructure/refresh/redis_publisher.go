package refresh

import (
	"bytes"
	"context"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/team-growth/internal/domain/refresh"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

// redisPublisher is the slice of goredis.UniversalClient the publisher needs.
type redisPublisher interface {
	Publish(ctx context.Context, channel string, message any) *goredis.IntCmd
}

type RedisPublisher struct {
	client  redisPublisher
	closer  func() error
	timeout time.Duration
	logger  *logging.Logger
	now     func() time.Time
}

// NewRedisPublisher dials Redis and pings it once so a bad address fails at
// startup instead of on the first mutation.
func NewRedisPublisher(ctx context.Context, cfg RedisConfig, logger *logging.Logger) (*RedisPublisher, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, crerr.New("redis address is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, crerr.Wrapf(err, "ping redis addr=%s", addr)
	}

	publisher := newRedisPublisher(client, timeout, logger)
	publisher.closer = client.Close
	return publisher, nil
}

func newRedisPublisher(client redisPublisher, timeout time.Duration, logger *logging.Logger) *RedisPublisher {
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisPublisher{
		client:  client,
		timeout: timeout,
		logger:  logger,
		now:     time.Now,
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, event refresh.Event) error {
	if strings.TrimSpace(event.TeamID) == "" {
		return crerr.New("refresh event team id is required")
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = p.now().UTC()
	}

	payload, err := encodeEvent(event)
	if err != nil {
		return err
	}

	channel := refresh.Channel(event.TeamID)
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("refresh.channel", channel),
			attribute.String("refresh.kind", string(event.Kind)),
		)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	receivers, err := p.client.Publish(ctx, channel, payload).Result()
	if err != nil {
		return crerr.Wrapf(err, "publish refresh event channel=%s", channel)
	}

	p.logger.DebugContext(ctx, "refresh event published",
		"channel", channel,
		"kind", event.Kind,
		"entity_id", event.EntityID,
		"receivers", receivers,
	)
	return nil
}

func (p *RedisPublisher) Close() error {
	if p == nil || p.closer == nil {
		return nil
	}
	return p.closer()
}

func encodeEvent(event refresh.Event) (string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(event); err != nil {
		return "", crerr.Wrap(err, "encode refresh event")
	}
	return string(bytes.TrimRight(buf.B, "\n")), nil
}
