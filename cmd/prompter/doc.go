// Package main hosts the prompter CLI entrypoint and command graph.
//
// The root command runs a show: it loads the document manifest, launches the
// viewer and turns MIDI and keyboard input into page turns until "exit" or
// an interrupt. Subcommands list MIDI ports, check a manifest and scaffold
// configuration. The heavy lifting lives in internal/showrun; this package
// only resolves configuration and flags.
package main
