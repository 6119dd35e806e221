// Package errors provides the structured error type used across restkit.
//
// Dispatch failures are surfaced to callers through callbacks, but a completed
// dispatch can also be inspected as an error: every failure category maps to
// an AppError carrying a machine-readable code, the HTTP status that produced
// it and, for rejected submissions, the per-field violations.
package errors
