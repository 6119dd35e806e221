package headers

import (
	"sync"
	"testing"
)

func TestChain_ApplyInRegistrationOrder(t *testing.T) {
	var order []string
	record := func(name string) Mapper {
		return func(h Headers) Headers {
			order = append(order, name)
			h["last"] = name
			return h
		}
	}

	c := NewChain(record("first"), record("second"))
	c.Register(record("third"))

	got := c.Apply(nil)
	if got["last"] != "third" {
		t.Errorf("expected last mapper to win, got %q", got["last"])
	}
	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestChain_EachMapperSeesPreviousOutput(t *testing.T) {
	c := NewChain(
		func(h Headers) Headers { h["a"] = "1"; return h },
		func(h Headers) Headers {
			if h["a"] != "1" {
				t.Errorf("second mapper did not see first mapper's header")
			}
			return Headers{"b": "2"}
		},
	)

	got := c.Apply(Headers{"caller": "x"})
	if len(got) != 1 || got["b"] != "2" {
		t.Errorf("a replacing mapper should replace, got %v", got)
	}
}

func TestChain_EmptyAndNilInitial(t *testing.T) {
	c := NewChain()
	got := c.Apply(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil headers, got %#v", got)
	}

	var nilChain *Chain
	if out := nilChain.Apply(Headers{"k": "v"}); out["k"] != "v" {
		t.Errorf("nil chain should pass headers through, got %v", out)
	}
}

func TestChain_DoesNotMutateCallerHeaders(t *testing.T) {
	c := NewChain(Default("default-header", "default-header-value"))
	caller := Headers{"custom-header": "custom-header-value"}

	got := c.Apply(caller)

	if _, ok := caller["default-header"]; ok {
		t.Error("caller map must not be modified")
	}
	if got["default-header"] != "default-header-value" {
		t.Errorf("expected default header, got %v", got)
	}
	if got["custom-header"] != "custom-header-value" {
		t.Errorf("expected custom header preserved, got %v", got)
	}
}

func TestChain_RegisterTwiceAppliesTwice(t *testing.T) {
	count := 0
	m := func(h Headers) Headers { count++; return h }

	c := NewChain()
	c.Register(m)
	c.Register(m)
	c.Register(nil)

	if c.Len() != 2 {
		t.Fatalf("expected 2 mappers, got %d", c.Len())
	}
	c.Apply(nil)
	if count != 2 {
		t.Errorf("expected mapper applied twice, got %d", count)
	}
}

func TestChain_NilMapperResultBecomesEmpty(t *testing.T) {
	c := NewChain(
		func(Headers) Headers { return nil },
		Default("k", "v"),
	)
	got := c.Apply(Headers{"x": "y"})
	if len(got) != 1 || got["k"] != "v" {
		t.Errorf("expected fold to continue from empty map, got %v", got)
	}
}

func TestChain_ApplyDoesNotGrowChain(t *testing.T) {
	c := NewChain(Default("k", "v"))
	for i := 0; i < 3; i++ {
		c.Apply(nil)
	}
	if c.Len() != 1 {
		t.Errorf("Apply must not change the chain, len=%d", c.Len())
	}
}

func TestChain_ConcurrentApply(t *testing.T) {
	c := NewChain(RequestID(""), Default("Accept", "application/json"))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := c.Apply(nil)
			if !h.Has(HeaderRequestID) {
				t.Error("expected request id")
			}
		}()
	}
	wg.Wait()
}

func TestHeaders_GetCaseInsensitive(t *testing.T) {
	h := Headers{"content-type": "text/plain"}
	if v, ok := h.Get("Content-Type"); !ok || v != "text/plain" {
		t.Errorf("Get = %q, %v", v, ok)
	}
	if h.Has("Accept") {
		t.Error("did not expect Accept")
	}
}
