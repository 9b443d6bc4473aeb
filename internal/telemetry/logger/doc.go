// Package logger provides structured logging for the static server.
//
// This package wraps log/slog:
//
//   - logger.go: Logger interface, levels (including silent), text/json output
//   - context.go: Context-aware logging with request IDs
//
// The launcher builds one Logger per instance. A disabled logging setting
// maps to the silent level, which emits nothing for any of the levels used
// by the server.
package logger
