package scoped_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/kbukum/restkit/rest"
	"github.com/kbukum/restkit/scoped"
	"github.com/kbukum/restkit/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func wait(t *testing.T, h *rest.Handle) rest.Result {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := h.Wait(ctx)
	if err != nil {
		t.Fatalf("dispatch did not complete: %v", err)
	}
	return res
}

func TestDispatch_SuccessScenario(t *testing.T) {
	tr := testutil.NewTransport(rest.Success(http.StatusCreated, rest.Payload(`"payload"`)))
	var workingDuringSend bool
	state := scoped.NewState()
	tr.OnSend(func(*rest.TransportRequest) { workingDuringSend = state.Working() })
	h := scoped.NewHandler(rest.NewHandler(tr))

	var got string
	errorFired := false
	wait(t, h.Dispatch(context.Background(), state, &rest.Request{
		Method:  http.MethodPut,
		URL:     "api/entity/catalog-partition",
		Payload: map[string]string{"owner": "type", "name": "name"},
		Callbacks: rest.Callbacks{
			Success: func(p rest.Payload) { _ = p.Decode(&got) },
			Error:   func() { errorFired = true },
		},
	}))

	if got != "payload" {
		t.Errorf("success payload = %q", got)
	}
	if !workingDuringSend {
		t.Error("expected working while the request is in flight")
	}
	if state.Working() {
		t.Error("expected working=false after completion")
	}
	if errorFired {
		t.Error("error must not fire on success")
	}
}

func TestDispatch_RejectedPopulatesState(t *testing.T) {
	tr := testutil.NewTransport(rest.Failure(http.StatusPreconditionFailed,
		rest.Payload(`{"field-with-violations":["violation"],"empty":[]}`)))
	state := scoped.NewState()
	h := scoped.NewHandler(rest.NewHandler(tr))

	errorFired := false
	wait(t, h.Dispatch(context.Background(), state, &rest.Request{
		Callbacks: rest.Callbacks{Error: func() { errorFired = true }},
	}))

	msgs, ok := state.Violation("field-with-violations")
	if !ok || len(msgs) != 1 || msgs[0] != "violation" {
		t.Errorf("violation = %v, %v", msgs, ok)
	}
	if class, _ := state.ErrorClass("field-with-violations"); class != scoped.ErrorClass {
		t.Errorf("class = %q", class)
	}
	if class, ok := state.ErrorClass("empty"); !ok || class != "" {
		t.Errorf("empty field class = %q, %v", class, ok)
	}
	if _, ok := state.Violation("unrelated"); ok {
		t.Error("unrelated field must be absent")
	}
	if _, ok := state.ErrorClass("unrelated"); ok {
		t.Error("unrelated field must have no class")
	}
	if !errorFired {
		t.Error("caller Error should pass through")
	}
	if state.Working() {
		t.Error("expected working=false")
	}
}

func TestDispatch_ResubmitClearsBeforeSend(t *testing.T) {
	tr := testutil.NewTransport(
		rest.Failure(http.StatusPreconditionFailed, rest.Payload(`{"name":["required"]}`)),
		rest.Success(http.StatusOK, nil),
	)
	state := scoped.NewState()
	h := scoped.NewHandler(rest.NewHandler(tr))

	wait(t, h.Dispatch(context.Background(), state, &rest.Request{}))
	if len(state.Violations()) != 1 {
		t.Fatalf("expected violations from first submit, got %v", state.Violations())
	}

	var violationsAtSend, classesAtSend int
	tr.OnSend(func(*rest.TransportRequest) {
		violationsAtSend = len(state.Violations())
		classesAtSend = len(state.ErrorClassFor())
	})
	wait(t, h.Dispatch(context.Background(), state, &rest.Request{}))

	if violationsAtSend != 0 || classesAtSend != 0 {
		t.Errorf("state not cleared before send: violations=%d classes=%d", violationsAtSend, classesAtSend)
	}
}

func TestDispatch_ViolationsSurviveCompletion(t *testing.T) {
	tr := testutil.NewTransport(rest.Failure(http.StatusPreconditionFailed, rest.Payload(`{"a":["b"]}`)))
	state := scoped.NewState()
	h := scoped.NewHandler(rest.NewHandler(tr))

	wait(t, h.Dispatch(context.Background(), state, &rest.Request{}))
	if _, ok := state.Violation("a"); !ok {
		t.Error("violations must remain after completion")
	}
}

func TestDispatch_ReplacesCallerLifecycleHooks(t *testing.T) {
	tr := testutil.NewTransport(rest.Failure(http.StatusPreconditionFailed, rest.Payload(`{"a":["b"]}`)))
	state := scoped.NewState()
	h := scoped.NewHandler(rest.NewHandler(tr))

	calls := 0
	req := &rest.Request{Callbacks: rest.Callbacks{
		Reset:    func() { calls++ },
		Start:    func() { calls++ },
		Stop:     func() { calls++ },
		Rejected: func(rest.Violations) { calls++ },
	}}
	wait(t, h.Dispatch(context.Background(), state, req))

	if calls != 0 {
		t.Errorf("caller lifecycle hooks should be replaced, %d ran", calls)
	}
	if req.Callbacks.Reset == nil {
		t.Error("caller request must not be modified")
	}
}

func TestDispatch_NotFoundPassesThrough(t *testing.T) {
	tr := testutil.NewTransport(rest.Failure(http.StatusNotFound, nil))
	state := scoped.NewState()
	h := scoped.NewHandler(rest.NewHandler(tr))

	notFound := false
	wait(t, h.Dispatch(context.Background(), state, &rest.Request{
		Callbacks: rest.Callbacks{NotFound: func() { notFound = true }},
	}))
	if !notFound {
		t.Error("NotFound should pass through")
	}
}
