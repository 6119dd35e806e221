// Package metrics exposes Prometheus instruments for dispatches.
//
// Collector implements rest.Observer. Register it on a handler and serve
// Handler from the service's metrics endpoint.
package metrics
