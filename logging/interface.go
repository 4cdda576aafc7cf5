package logging

// Logger is a structured-only logging handle. Every call produces one record
// carrying level, timestamp and event fields.
type Logger interface {
	DebugWith() LogEvent
	InfoWith() LogEvent
	WarnWith() LogEvent
	ErrorWith() LogEvent

	// With creates a child logger with pre-populated fields.
	// Example: reqLogger := logger.With().Str("request_id", id).Logger()
	With() LogContext
}
