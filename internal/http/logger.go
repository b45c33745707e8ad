package http

import (
	"fmt"
	"net/url"
)

// leveledLogger adapts Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, toFields(keysAndValues))
}

func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = sanitize(keysAndValues[i+1])
	}

	return fields
}

// sanitize keeps login passwords out of retry logs.
func sanitize(value interface{}) interface{} {
	switch typed := value.(type) {
	case *url.URL:
		return redactURL(typed.String())
	case string:
		return redactURL(typed)
	case error:
		return redactURL(typed.Error())
	case fmt.Stringer:
		return redactURL(typed.String())
	}

	return value
}
