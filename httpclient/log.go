package httpclient

import (
	"github.com/hashicorp/go-retryablehttp"

	"github.com/kbukum/restkit/logger"
)

// leveledLogger routes retryablehttp diagnostics to the restkit logger.
type leveledLogger struct {
	log *logger.Logger
}

var _ retryablehttp.LeveledLogger = leveledLogger{}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.log.Error(msg, logger.Fields(kv...)) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.log.Warn(msg, logger.Fields(kv...)) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.log.Debug(msg, logger.Fields(kv...)) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.log.Debug(msg, logger.Fields(kv...)) }
