// Package logging builds the structured log/slog loggers used for property
// loading diagnostics, the HTTP listener and the command line tool.
// Output is JSON by default, or text for interactive use.
package logging
