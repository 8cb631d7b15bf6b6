// Package midiin connects a MIDI input port to the action queue.
//
// It lists and selects ports through gomidi's rtmidi driver, opens the
// chosen input and, when thru is enabled, the output port of the same
// device so every incoming message is echoed back out. Each message is
// handed to a decoder.Handler on the driver's callback goroutine; nothing
// here touches the viewer.
package midiin
