package testutil

import (
	"context"

	"github.com/kbukum/restkit/component"
)

// TestComponent is a component.Component that can also be reset between test
// cases and snapshotted.
type TestComponent interface {
	component.Component

	// Reset returns the component to its freshly started state.
	Reset(ctx context.Context) error
	// Snapshot captures the current state.
	Snapshot(ctx context.Context) (interface{}, error)
	// Restore returns to a state captured by Snapshot.
	Restore(ctx context.Context, snapshot interface{}) error
}
