// Package logs finds and tails prompter run logs.
//
// Every show writes prompter-<run id>.log into the log directory. Latest
// picks the newest one, Last returns its final lines with bounded memory and
// Follow streams lines appended after an offset until the context ends.
package logs
