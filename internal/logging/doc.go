// Package logging assembles structured slog loggers and formatting helpers used
// across prompter.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers and standard field names so the
// MIDI listener, the dispatch loop and the viewer session emit records with
// the same shape. The package also provides a no-op logger for tests and
// wiring code that cannot fail.
package logging
