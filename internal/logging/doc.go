// Package logging provides zerolog-based structured logging for libris.
//
// Loggers travel through context.Context. Commands attach a logger and a
// ULID trace ID in PersistentPreRunE, and every component retrieves it with
// FromContext so log lines from one invocation can be correlated.
package logging
