package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/restkit/component"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/rest"
)

func TestComponent_Lifecycle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	ctx := context.Background()
	comp := NewComponent(Config{Name: "backend", BaseURL: srv.URL}, WithLogger(logger.Nop()))

	if out := comp.Send(ctx, &rest.TransportRequest{URL: "/"}); !errors.Is(out.Err, ErrNotStarted) || out.Status != rest.StatusNoResponse {
		t.Errorf("expected not-started abort, got %+v", out)
	}
	if comp.Health(ctx).Status != component.StatusUnhealthy {
		t.Error("expected unhealthy before Start")
	}

	if err := comp.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if h := comp.Health(ctx); h.Status != component.StatusHealthy || h.Name != "backend" {
		t.Errorf("health = %+v", h)
	}
	if out := comp.Send(ctx, &rest.TransportRequest{URL: "/"}); out.Status != http.StatusNoContent || !out.Succeeded() {
		t.Errorf("unexpected outcome %+v", out)
	}

	if err := comp.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if comp.Adapter() != nil {
		t.Error("adapter should be released after Stop")
	}
}

func TestComponent_Describe(t *testing.T) {
	comp := NewComponent(Config{BaseURL: "https://api.example.com"})
	d := comp.Describe()
	if d.Type != "http-transport" || d.Details != "https://api.example.com timeout=30s retries=0" {
		t.Errorf("unexpected description %+v", d)
	}
	if comp.Name() != "http" {
		t.Errorf("Name = %q", comp.Name())
	}
}
