// Package preflight provides readiness checks for the filesystem paths and
// external programs a show depends on.
//
// The CLI "prompter check" command runs RunAll before a performance so
// problems surface in the rehearsal room instead of on stage. Each Result is
// independent; a failed check never stops the others from running.
package preflight
