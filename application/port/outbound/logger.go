package outbound

import (
	"context"
	"fmt"
	"time"
)

// Logger is the structured logging port used across the service. The
// implementation picks up the request correlation ID from context.
type Logger interface {
	Info(ctx context.Context, message string, fields map[string]interface{})
	Error(ctx context.Context, message string, err error, fields map[string]interface{})
	Warn(ctx context.Context, message string, fields map[string]interface{})
	Debug(ctx context.Context, message string, fields map[string]interface{})
	WithFields(fields map[string]interface{}) Logger
}

// LogSecurityEvent records security-relevant events such as webhook
// signature failures.
func LogSecurityEvent(ctx context.Context, logger Logger, event string, severity string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["event_type"] = "security"
	fields["security_event"] = event
	fields["severity"] = severity

	message := fmt.Sprintf("Security event: %s", event)

	switch severity {
	case "HIGH":
		logger.Error(ctx, message, nil, fields)
	case "MEDIUM":
		logger.Warn(ctx, message, fields)
	default:
		logger.Info(ctx, message, fields)
	}
}

// LogPerformance records the duration of an operation.
func LogPerformance(ctx context.Context, logger Logger, operation string, duration time.Duration, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["event_type"] = "performance"
	fields["operation"] = operation
	fields["duration_ms"] = duration.Milliseconds()

	logger.Info(ctx, fmt.Sprintf("Performance: %s took %s", operation, duration), fields)
}
