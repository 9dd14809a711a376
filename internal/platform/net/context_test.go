package net

import (
	"context"
	"testing"

	"robots/internal/platform/logger"
)

func TestWithRequest(t *testing.T) {
	t.Parallel()

	ctx := WithRequest(context.Background(), "rid-1")
	if got := RequestID(ctx); got != "rid-1" {
		t.Fatalf("RequestID = %q, want rid-1", got)
	}
	if got := logger.RequestID(ctx); got != "rid-1" {
		t.Fatalf("logger.RequestID = %q, want rid-1", got)
	}

	bare := context.Background()
	if WithRequest(bare, "") != bare {
		t.Fatalf("empty id should leave ctx unchanged")
	}
	if RequestID(bare) != "" {
		t.Fatalf("RequestID on bare ctx should be empty")
	}
}
