package observability

import (
	"testing"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

func TestLogMirror_QuietPaths(t *testing.T) {
	m := &logMirror{quietPaths: map[string]struct{}{"/healthz": {}, "/docs": {}}}

	if !m.quiet("http request", []any{"method", "GET", "path", "/healthz", "status", 200}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if !m.quiet("http request", []any{"path", "/docs"}) {
		t.Fatalf("expected docs log to be skipped")
	}
	if m.quiet("http request", []any{"path", "/v1/matches/m-1/stats"}) {
		t.Fatalf("did not expect api log to be skipped")
	}
	if m.quiet("refresh event published", []any{"path", "/healthz"}) {
		t.Fatalf("did not expect non-request event to be skipped")
	}
}

func TestLogAttributes(t *testing.T) {
	attrs := logAttributes([]any{"match_id", "match-01", 7, uint16(2), "payload"})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "match_id" || attrs[0].Value.AsString() != "match-01" {
		t.Fatalf("unexpected match_id attribute: %v", attrs[0])
	}
	if attrs[1].Key != "arg_1" || attrs[1].Value.AsInt64() != 2 {
		t.Fatalf("unexpected positional attribute: %v", attrs[1])
	}
	if attrs[2].Key != "payload" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute: %v", attrs[2])
	}
}

func TestLogValue_MapAndStruct(t *testing.T) {
	v := logValue(map[string]any{
		"passes_completed": 11,
		"unlocked":         true,
	}, 0)
	if v.Kind() != otellog.KindMap || len(v.AsMap()) != 2 {
		t.Fatalf("expected 2-item map value, got %v", v)
	}
	if v.AsMap()[0].Key != "passes_completed" {
		t.Fatalf("expected sorted keys, got %v", v.AsMap())
	}

	s := logValue(struct {
		Goals int `json:"goals"`
	}{Goals: 2}, 0)
	if s.AsString() != `{"goals":2}` {
		t.Fatalf("unexpected struct encoding: %q", s.AsString())
	}
}

func TestSeverityOf(t *testing.T) {
	cases := map[zapcore.Level]otellog.Severity{
		zapcore.DebugLevel:  otellog.SeverityDebug,
		zapcore.InfoLevel:   otellog.SeverityInfo,
		zapcore.WarnLevel:   otellog.SeverityWarn,
		zapcore.ErrorLevel:  otellog.SeverityError,
		zapcore.DPanicLevel: otellog.SeverityFatal,
	}
	for level, want := range cases {
		if got := severityOf(level); got != want {
			t.Fatalf("severityOf(%s)=%v want=%v", level, got, want)
		}
	}
}
