// Package component defines the lifecycle contract shared by restkit's
// long-lived infrastructure (HTTP transport, notification publishers) and a
// Registry that starts them in order and stops them in reverse.
package component
