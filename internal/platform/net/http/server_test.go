package http_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"robots/internal/platform/config"
	phttp "robots/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestServer_RoutesAndRunShutdown(t *testing.T) {
	t.Setenv("SRV_PORT", "127.0.0.1:0")
	t.Setenv("SRV_SHUTDOWN_GRACE", "2s")

	optCalled := false
	srv := phttp.NewServer(config.New().Prefix("SRV_"), func(*chi.Mux) { optCalled = true })
	if !optCalled {
		t.Fatalf("expected NewServer option to be called")
	}
	if srv.Addr() != "127.0.0.1:0" {
		t.Fatalf("Addr = %q", srv.Addr())
	}

	srv.Router().Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		phttp.Text(w, http.StatusOK, "pong")
	})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Fatalf("GET /ping = %d %q", rec.Code, rec.Body.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v, want nil after shutdown", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestServer_RunReportsListenError(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer busy.Close()
	t.Setenv("BAD_PORT", busy.Addr().String())

	srv := phttp.NewServer(config.New().Prefix("BAD_"))
	select {
	case err := <-runAsync(srv):
		if err == nil {
			t.Fatalf("expected a listen error")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not fail on a bad address")
	}
}

func runAsync(s *phttp.Server) <-chan error {
	ch := make(chan error, 1)
	go func() { ch <- s.Run(context.Background()) }()
	return ch
}
