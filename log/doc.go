// Package log provides a thin, concurrency-safe wrapper over [log/slog].
//
// It adds a Trace level below Debug, selectable text/JSON output formats,
// and a functional-option configuration surface. The zero value of [Logger]
// is valid and discards all messages, which lets library code accept an
// optional logger without nil checks.
//
// A package-level default logger writes to stderr and can be reconfigured
// with [Config]; the package-level Trace/Debug/Info/Warn/Error helpers
// forward to it.
package log
