// Package zathura drives the zathura PDF viewer as a viewer.Backend.
//
// The launcher starts zathura in presentation mode, the connector finds the
// per-process D-Bus name zathura registers on the session bus
// (org.pwmt.zathura.PID-<pid>) and the cleaner wipes the stored sessions and
// history so a relaunch never restores a stale page.
package zathura
