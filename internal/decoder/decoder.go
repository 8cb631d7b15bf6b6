// Package decoder turns raw MIDI messages into viewer commands.
//
// Decoding is pure: Decoder.Decode inspects the status nibble, the channel
// nibble and the first data byte and either yields a command.Command or
// reports that the message is ignored. Handler adds the side effects the
// input path needs around it (MIDI-thru echo, monitor logging, enqueue) and
// never blocks on the viewer.
package decoder

import (
	"time"

	"prompter/internal/command"
)

const (
	// StatusNoteOn is the high nibble of a note-on message.
	StatusNoteOn uint8 = 0x9
	// StatusProgramChange is the high nibble of a program change message.
	StatusProgramChange uint8 = 0xC

	// DefaultNextPageNote is C3.
	DefaultNextPageNote uint8 = 48
)

// RawEvent is one message as delivered by the input driver.
type RawEvent struct {
	Status uint8
	Data   []uint8
	Delta  time.Duration
}

// Bytes returns the message in wire order.
func (e RawEvent) Bytes() []byte {
	out := make([]byte, 0, 1+len(e.Data))
	out = append(out, e.Status)
	return append(out, e.Data...)
}

// FromBytes splits a wire message into a RawEvent. An empty message yields
// the zero event and false.
func FromBytes(msg []byte, delta time.Duration) (RawEvent, bool) {
	if len(msg) == 0 {
		return RawEvent{}, false
	}
	data := make([]uint8, len(msg)-1)
	copy(data, msg[1:])
	return RawEvent{Status: msg[0], Data: data, Delta: delta}, true
}

// Decoder maps raw events on one channel to commands.
type Decoder struct {
	// Channel is the zero-based channel nibble (MIDI channel 1 is 0).
	Channel      uint8
	NextPageNote uint8
}

// New returns a decoder for the zero-based channel nibble and page-turn note.
func New(channel, nextPageNote uint8) Decoder {
	return Decoder{Channel: channel & 0x0F, NextPageNote: nextPageNote}
}

// Decode returns the command carried by ev, or false when ev is ignored.
func (d Decoder) Decode(ev RawEvent) (command.Command, bool) {
	kind := ev.Status >> 4
	channel := ev.Status & 0x0F
	if channel != d.Channel || len(ev.Data) == 0 {
		return command.Command{}, false
	}
	switch kind {
	case StatusProgramChange:
		return command.OpenDocument(int(ev.Data[0])), true
	case StatusNoteOn:
		if ev.Data[0] == d.NextPageNote {
			return command.TurnPage(), true
		}
	}
	return command.Command{}, false
}
