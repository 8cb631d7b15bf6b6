// Package config loads, normalizes, and validates prompter configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment fallbacks such as PROMPTER_MIDI_PORT.
// The Config type centralizes the MIDI, viewer, dispatch and logging knobs so
// the runtime receives sanitized values and clear validation errors.
package config
