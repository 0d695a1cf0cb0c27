package logger

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lumigen/lumigen/application/port/outbound"
)

type contextKey struct{}

// correlationIDKey is the typed context key under which middleware stores
// the request correlation ID; the logger picks it up automatically.
var correlationIDKey = contextKey{}

// WithCorrelationID returns a context carrying the given correlation ID.
func WithCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationIDKey, cid)
}

// CorrelationID extracts the correlation ID from context, if any.
func CorrelationID(ctx context.Context) string {
	if cid, ok := ctx.Value(correlationIDKey).(string); ok {
		return cid
	}
	return ""
}

type structuredLogger struct {
	logger *logrus.Logger
	fields map[string]interface{}
}

type LoggerConfig struct {
	Level       string
	Format      string // json or text
	ServiceName string
}

func NewStructuredLogger(config LoggerConfig) outbound.Logger {
	logrusLogger := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrusLogger.SetLevel(level)

	if config.Format == "json" {
		logrusLogger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	} else {
		logrusLogger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
			FullTimestamp:   true,
		})
	}

	logrusLogger.SetOutput(os.Stdout)

	return &structuredLogger{
		logger: logrusLogger,
		fields: map[string]interface{}{
			"service": config.ServiceName,
		},
	}
}

func (l *structuredLogger) Info(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(ctx, nil, fields).Info(message)
}

func (l *structuredLogger) Error(ctx context.Context, message string, err error, fields map[string]interface{}) {
	l.entry(ctx, err, fields).Error(message)
}

func (l *structuredLogger) Warn(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(ctx, nil, fields).Warn(message)
}

func (l *structuredLogger) Debug(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(ctx, nil, fields).Debug(message)
}

// WithFields returns a logger carrying additional base fields.
func (l *structuredLogger) WithFields(fields map[string]interface{}) outbound.Logger {
	newFields := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &structuredLogger{
		logger: l.logger,
		fields: newFields,
	}
}

func (l *structuredLogger) entry(ctx context.Context, err error, fields map[string]interface{}) *logrus.Entry {
	logrusFields := logrus.Fields{}
	for k, v := range l.fields {
		logrusFields[k] = v
	}
	for k, v := range fields {
		logrusFields[k] = v
	}
	if cid := CorrelationID(ctx); cid != "" {
		logrusFields["correlation_id"] = cid
	}
	if err != nil {
		logrusFields["error"] = err.Error()
	}
	return l.logger.WithFields(logrusFields)
}
