package rest

import (
	"net/http"
)

// Category is the semantic class of a completed dispatch.
type Category int

const (
	// Succeeded is a 2xx outcome.
	Succeeded Category = iota
	// Aborted is a request that produced no response (status 0 or -1).
	Aborted
	// NotFound is a 404.
	NotFound
	// Rejected is a 412 carrying field violations.
	Rejected
	// AuthRequired is a 401 or 403.
	AuthRequired
	// Alert is any other failure.
	Alert
)

var categoryNames = map[Category]string{
	Succeeded:    "succeeded",
	Aborted:      "aborted",
	NotFound:     "not_found",
	Rejected:     "rejected",
	AuthRequired: "auth_required",
	Alert:        "alert",
}

// String returns the category name used in logs and metric labels.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Failed reports whether c is a failure category.
func (c Category) Failed() bool {
	return c != Succeeded
}

// Classify maps an outcome to its category. Rules are checked in priority order.
func Classify(o Outcome) Category {
	switch {
	case o.Succeeded():
		return Succeeded
	case o.Status == StatusNoResponse || o.Status == StatusCancelled:
		return Aborted
	case o.Status == http.StatusNotFound:
		return NotFound
	case o.Status == http.StatusPreconditionFailed:
		return Rejected
	case o.Status == http.StatusUnauthorized || o.Status == http.StatusForbidden:
		return AuthRequired
	default:
		return Alert
	}
}

// DecodeViolations reads a 412 body of the form {"field": ["message", ...]}.
// On error it returns an empty, non-nil Violations along with the error.
func DecodeViolations(body Payload) (Violations, error) {
	v := Violations{}
	if len(body) == 0 {
		return v, nil
	}
	if err := body.Decode(&v); err != nil {
		return Violations{}, err
	}
	if v == nil {
		v = Violations{}
	}
	return v, nil
}
