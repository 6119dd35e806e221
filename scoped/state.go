package scoped

import (
	"maps"
	"sync"

	"github.com/kbukum/restkit/rest"
)

// ErrorClass marks a field that has at least one violation.
const ErrorClass = "error"

// State is the form-facing view of a dispatch. It is reset when a dispatch
// starts, not when one completes, so violations stay visible until the next
// submission. Concurrent dispatches sharing a State are last-writer-wins.
type State struct {
	mu            sync.RWMutex
	working       bool
	violations    rest.Violations
	errorClassFor map[string]string
}

// NewState returns an idle State with no violations.
func NewState() *State {
	return &State{
		violations:    rest.Violations{},
		errorClassFor: map[string]string{},
	}
}

// Working reports whether a dispatch is in flight.
func (s *State) Working() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.working
}

// Violations returns a copy of the current violations.
func (s *State) Violations() rest.Violations {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.violations.Clone()
}

// Violation returns the messages for field.
func (s *State) Violation(field string) ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs, ok := s.violations[field]
	if !ok {
		return nil, false
	}
	return append([]string(nil), msgs...), true
}

// ErrorClassFor returns a copy of the per-field error classes.
func (s *State) ErrorClassFor() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.errorClassFor)
}

// ErrorClass returns the error class for field: ErrorClass when it has
// violations, "" when it was reported without any.
func (s *State) ErrorClass(field string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	class, ok := s.errorClassFor[field]
	return class, ok
}

// SetViolations merges v into the state as a rejected dispatch would.
func (s *State) SetViolations(v rest.Violations) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for field, msgs := range v {
		s.violations[field] = append([]string(nil), msgs...)
		if len(msgs) > 0 {
			s.errorClassFor[field] = ErrorClass
		} else {
			s.errorClassFor[field] = ""
		}
	}
}

func (s *State) reset() {
	s.mu.Lock()
	s.violations = rest.Violations{}
	s.errorClassFor = map[string]string{}
	s.mu.Unlock()
}

func (s *State) setWorking(w bool) {
	s.mu.Lock()
	s.working = w
	s.mu.Unlock()
}
