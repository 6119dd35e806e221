// Package logger provides structured logging for restkit using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("rest")
//	log.Debug("dispatch completed", logger.Fields("status", 201))
package logger
