package headers

import (
	"maps"
	"strings"
	"sync"
)

// Headers maps header names to values.
type Headers map[string]string

// Get returns the value of key, matching the name case-insensitively.
func (h Headers) Get(key string) (string, bool) {
	if v, ok := h[key]; ok {
		return v, true
	}
	for k, v := range h {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// Has reports whether key is present, matching the name case-insensitively.
func (h Headers) Has(key string) bool {
	_, ok := h.Get(key)
	return ok
}

// Clone returns a shallow copy. A nil receiver yields an empty map.
func (h Headers) Clone() Headers {
	out := make(Headers, len(h))
	maps.Copy(out, h)
	return out
}

// Mapper takes the current headers and returns the (possibly modified) headers.
type Mapper func(Headers) Headers

// Chain is an ordered list of mappers applied before every request.
// Registration is the only mutation; there is no removal.
type Chain struct {
	mu      sync.RWMutex
	mappers []Mapper
}

// NewChain creates a chain pre-populated with mappers, in order.
func NewChain(mappers ...Mapper) *Chain {
	c := &Chain{}
	for _, m := range mappers {
		c.Register(m)
	}
	return c
}

// Register appends m to the chain. Registering the same mapper twice applies it twice.
// A nil mapper is ignored.
func (c *Chain) Register(m Mapper) {
	if m == nil {
		return
	}
	c.mu.Lock()
	c.mappers = append(c.mappers, m)
	c.mu.Unlock()
}

// Len returns the number of registered mappers.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.mappers)
}

// Apply folds the chain over a copy of initial (nil means empty) and returns
// the result. Neither initial nor the chain is modified.
func (c *Chain) Apply(initial Headers) Headers {
	out := initial.Clone()
	if c == nil {
		return out
	}

	c.mu.RLock()
	mappers := c.mappers
	c.mu.RUnlock()

	for _, m := range mappers {
		out = m(out)
		if out == nil {
			out = Headers{}
		}
	}
	return out
}
