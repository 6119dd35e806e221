package component

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/restkit/logger"
)

type fakeComponent struct {
	name     string
	startErr error
	stopErr  error
	status   HealthStatus
	events   *[]string
	describe bool
}

func (f *fakeComponent) Name() string { return f.name }

func (f *fakeComponent) Start(context.Context) error {
	*f.events = append(*f.events, "start:"+f.name)
	return f.startErr
}

func (f *fakeComponent) Stop(context.Context) error {
	*f.events = append(*f.events, "stop:"+f.name)
	return f.stopErr
}

func (f *fakeComponent) Health(context.Context) Health {
	return Health{Name: f.name, Status: f.status}
}

type describedComponent struct{ fakeComponent }

func (d *describedComponent) Describe() Description {
	return Description{Type: "http-transport", Details: "http://backend"}
}

func newRegistry() *Registry { return NewRegistry(logger.Nop()) }

func TestRegistry_StartStopOrder(t *testing.T) {
	var events []string
	r := newRegistry()
	for _, name := range []string{"transport", "publisher", "metrics"} {
		if err := r.Register(&fakeComponent{name: name, events: &events}); err != nil {
			t.Fatalf("Register(%s): %v", name, err)
		}
	}

	ctx := context.Background()
	if err := r.StartAll(ctx); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := r.StopAll(ctx); err != nil {
		t.Fatalf("StopAll: %v", err)
	}

	want := []string{
		"start:transport", "start:publisher", "start:metrics",
		"stop:metrics", "stop:publisher", "stop:transport",
	}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, events[i], want[i])
		}
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	var events []string
	r := newRegistry()
	_ = r.Register(&fakeComponent{name: "http", events: &events})
	if err := r.Register(&fakeComponent{name: "http", events: &events}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestRegistry_StartFailureStopsOnlyStarted(t *testing.T) {
	var events []string
	boom := errors.New("boom")
	r := newRegistry()
	_ = r.Register(&fakeComponent{name: "a", events: &events})
	_ = r.Register(&fakeComponent{name: "b", events: &events, startErr: boom})
	_ = r.Register(&fakeComponent{name: "c", events: &events})

	ctx := context.Background()
	err := r.StartAll(ctx)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	events = nil
	if err := r.StopAll(ctx); err != nil {
		t.Fatalf("StopAll: %v", err)
	}
	if len(events) != 1 || events[0] != "stop:a" {
		t.Errorf("expected only a to be stopped, got %v", events)
	}
}

func TestRegistry_StopJoinsErrors(t *testing.T) {
	var events []string
	e1, e2 := errors.New("e1"), errors.New("e2")
	r := newRegistry()
	_ = r.Register(&fakeComponent{name: "a", events: &events, stopErr: e1})
	_ = r.Register(&fakeComponent{name: "b", events: &events, stopErr: e2})

	ctx := context.Background()
	_ = r.StartAll(ctx)
	err := r.StopAll(ctx)
	if !errors.Is(err, e1) || !errors.Is(err, e2) {
		t.Errorf("expected both errors, got %v", err)
	}
}

func TestRegistry_HealthAndDescribe(t *testing.T) {
	var events []string
	r := newRegistry()
	_ = r.Register(&fakeComponent{name: "plain", events: &events, status: StatusDegraded})
	_ = r.Register(&describedComponent{fakeComponent{name: "http", events: &events, status: StatusHealthy}})

	health := r.HealthAll(context.Background())
	if len(health) != 2 {
		t.Fatalf("expected 2 health entries, got %d", len(health))
	}
	if health[0].Healthy() || !health[1].Healthy() {
		t.Errorf("unexpected health: %+v", health)
	}

	desc := r.Describe()
	if len(desc) != 1 {
		t.Fatalf("expected 1 description, got %d", len(desc))
	}
	if desc[0].Name != "http" || desc[0].Type != "http-transport" {
		t.Errorf("unexpected description: %+v", desc[0])
	}
}

func TestRegistry_GetAndAll(t *testing.T) {
	var events []string
	r := newRegistry()
	_ = r.Register(&fakeComponent{name: "x", events: &events})

	if r.Get("x") == nil {
		t.Error("expected x")
	}
	if r.Get("missing") != nil {
		t.Error("expected nil for missing")
	}
	if len(r.All()) != 1 {
		t.Errorf("expected 1 component, got %d", len(r.All()))
	}
}
