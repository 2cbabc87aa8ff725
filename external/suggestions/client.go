package suggestions

import (
	"context"
	"net"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/team-growth/internal/domain/suggestion"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
	"github.com/riskibarqy/team-growth/internal/platform/resilience"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrUnavailable marks failures worth retrying later: transport errors,
// 408/429/5xx and an open circuit.
var ErrUnavailable = crerr.New("suggestion generator unavailable")

const generatePath = "/v1/suggestions"

type Config struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	// Dial overrides the transport dialer, mainly for tests.
	Dial func(addr string) (net.Conn, error)
}

type Client struct {
	http           *fasthttp.Client
	baseURL        string
	token          string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg Config, logger *logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Client{
		http: &fasthttp.Client{
			Name:                "team-growth-suggestions",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
			Dial:                cfg.Dial,
		},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(withTransitionLog(cfg.CircuitBreaker, logger)),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

// withTransitionLog logs breaker transitions unless the caller set its own hook.
func withTransitionLog(cfg resilience.CircuitBreakerConfig, logger *logging.Logger) resilience.CircuitBreakerConfig {
	if cfg.OnStateChange == nil {
		cfg.OnStateChange = func(from, to resilience.CircuitState) {
			logger.Warn("suggestion circuit breaker state changed", "from", from, "to", to)
		}
	}
	return cfg
}

type generateRequest struct {
	Feedback string       `json:"feedback"`
	Position string       `json:"position"`
	Stats    statsPayload `json:"stats"`
}

type statsPayload struct {
	MinutesPlayed  int `json:"minutes_played"`
	Goals          int `json:"goals"`
	Assists        int `json:"assists"`
	Tackles        int `json:"tackles"`
	Interceptions  int `json:"interceptions"`
	Saves          int `json:"saves"`
	ChancesCreated int `json:"chances_created"`
	CoachRating    int `json:"coach_rating"`
}

type generateResponse struct {
	Suggestions string `json:"suggestions"`
}

var _ suggestion.Generator = (*Client)(nil)

func (c *Client) Generate(ctx context.Context, req suggestion.Request) (string, error) {
	if c.baseURL == "" {
		return "", crerr.Mark(crerr.New("suggestion generator is not configured"), ErrUnavailable)
	}

	var out string
	call := func() error {
		text, err := c.generate(ctx, req)
		out = text
		return err
	}

	var err error
	if c.circuitEnabled {
		err = c.breaker.Execute(call, isCircuitFailure)
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "suggestion circuit breaker rejected request", "state", c.breaker.State())
			return "", crerr.Mark(crerr.Wrap(err, "suggestion generator"), ErrUnavailable)
		}
	} else {
		err = call()
	}
	if err != nil {
		return "", err
	}
	return out, nil
}

func (c *Client) generate(ctx context.Context, in suggestion.Request) (string, error) {
	body, err := sonic.Marshal(generateRequest{
		Feedback: in.Feedback,
		Position: string(in.Position),
		Stats: statsPayload{
			MinutesPlayed:  in.Stats.MinutesPlayed,
			Goals:          in.Stats.Goals,
			Assists:        in.Stats.Assists,
			Tackles:        in.Stats.Tackles,
			Interceptions:  in.Stats.Interceptions,
			Saves:          in.Stats.Saves,
			ChancesCreated: in.Stats.ChancesCreated,
			CoachRating:    in.Stats.CoachRating,
		},
	})
	if err != nil {
		return "", crerr.Wrap(err, "marshal suggestion request")
	}

	endpoint := c.baseURL + generatePath
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("suggestions.url", endpoint),
			attribute.String("suggestions.position", string(in.Position)),
		)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.SetBodyRaw(body)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return "", crerr.Mark(crerr.Wrapf(err, "call suggestion generator url=%s", endpoint), ErrUnavailable)
	}

	status := resp.StatusCode()
	if status/100 != 2 {
		raw := truncateForLog(strings.TrimSpace(string(resp.Body())), 1024)
		callErr := crerr.Newf("suggestion generator status=%d url=%s body=%s", status, endpoint, raw)
		if isRetryableStatus(status) {
			return "", crerr.Mark(callErr, ErrUnavailable)
		}
		return "", callErr
	}

	var decoded generateResponse
	if err := sonic.Unmarshal(resp.Body(), &decoded); err != nil {
		return "", crerr.Wrap(err, "decode suggestion response")
	}

	c.logger.InfoContext(ctx, "suggestions generated", "position", in.Position, "length", len(decoded.Suggestions))
	return strings.TrimSpace(decoded.Suggestions), nil
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, ErrUnavailable)
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusRequestTimeout ||
		status == fasthttp.StatusTooManyRequests ||
		status >= fasthttp.StatusInternalServerError
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}
