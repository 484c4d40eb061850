package client

import "fmt"

// RequestLogger is the interface used by [Client] for request tracing and
// retry diagnostics. Its methods follow the [log/slog] calling convention
// (a message followed by alternating keys and values), so a *slog.Logger can
// be supplied directly via [WithRequestLogger].
//
// Logging is best-effort and never affects the outcome of a request.
type RequestLogger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NoopLogger is a [RequestLogger] that silently discards all log messages.
// It is the default logger used when no logger is provided to [New].
type NoopLogger struct{}

func (l *NoopLogger) Debug(_ string, _ ...any) {}
func (l *NoopLogger) Info(_ string, _ ...any)  {}
func (l *NoopLogger) Warn(_ string, _ ...any)  {}
func (l *NoopLogger) Error(_ string, _ ...any) {}

// restyLogger routes resty's printf-style diagnostics to a RequestLogger.
type restyLogger struct {
	logger RequestLogger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...), "component", "resty")
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn(fmt.Sprintf(format, v...), "component", "resty")
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...), "component", "resty")
}
