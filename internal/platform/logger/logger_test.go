package logger

import (
	"bytes"
	"context"
	"testing"

	kit "robots/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"  nonsense ", zerolog.InfoLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

// Init runs once per process so every assertion on the root logger lives here
func TestInit_Get_Named_C(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:     "debug",
		Format:    "json",
		Service:   "robots-test",
		Component: "root",
		Writer:    &buf,
	})

	Get().Info().Str("k", "v").Msg("root-msg")
	out := buf.String()
	kit.MustContain(t, out, `"service":"robots-test"`)
	kit.MustContain(t, out, `"message":"root-msg"`)

	buf.Reset()
	Named("http").Info().Msg("named-msg")
	kit.MustContain(t, buf.String(), `"component":"http"`)

	buf.Reset()
	ctx := WithRequest(context.Background(), "rid-123")
	if RequestID(ctx) != "rid-123" {
		t.Fatalf("RequestID = %q", RequestID(ctx))
	}
	C(ctx).Warn().Msg("scoped")
	kit.MustContain(t, buf.String(), `"request_id":"rid-123"`)

	// a second Init must not replace the root
	Init(Options{Format: "json", Service: "other", Writer: &bytes.Buffer{}})
	buf.Reset()
	Get().Info().Msg("still-here")
	kit.MustContain(t, buf.String(), "still-here")
}

func TestWithRequest_Empty(t *testing.T) {
	ctx := context.Background()
	if WithRequest(ctx, "") != ctx {
		t.Fatalf("empty id should return ctx unchanged")
	}
	if RequestID(ctx) != "" {
		t.Fatalf("RequestID on bare ctx should be empty")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	o := FromEnv()
	if o.Level != "warn" || o.Format != "json" || !o.WithCaller || o.SampleEvery != 5 {
		t.Fatalf("FromEnv mismatch: %+v", o)
	}
	if o.Service != "robots-api" {
		t.Fatalf("default service = %q", o.Service)
	}
}
