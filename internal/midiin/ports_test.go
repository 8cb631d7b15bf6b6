package midiin_test

import (
	"errors"
	"strings"
	"testing"

	"prompter/internal/midiin"
)

var testPorts = []midiin.Port{
	{Number: 1, Name: "Midi Through:Midi Through Port-0 14:0"},
	{Number: 2, Name: "FS-6 Footswitch:FS-6 MIDI 1 20:0"},
	{Number: 3, Name: "Keystation 49:Keystation 49 MIDI 1 24:0"},
}

func TestSelectByNumber(t *testing.T) {
	got, err := midiin.Select(testPorts, "2")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got.Number != 2 {
		t.Fatalf("selected %v, want port 2", got)
	}
}

func TestSelectNumberOutOfRange(t *testing.T) {
	if _, err := midiin.Select(testPorts, "4"); err == nil {
		t.Fatal("expected out of range error")
	}
	if _, err := midiin.Select(testPorts, "0"); err == nil {
		t.Fatal("expected out of range error for 0")
	}
}

func TestSelectByFragmentIgnoresCase(t *testing.T) {
	got, err := midiin.Select(testPorts, "keystation")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got.Number != 3 {
		t.Fatalf("selected %v, want port 3", got)
	}
}

func TestSelectExactNameWins(t *testing.T) {
	got, err := midiin.Select(testPorts, testPorts[1].Name)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got.Number != 2 {
		t.Fatalf("selected %v, want port 2", got)
	}
}

func TestSelectAmbiguousFragment(t *testing.T) {
	_, err := midiin.Select(testPorts, "midi 1")
	if err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Fatalf("expected ambiguous error, got %v", err)
	}
}

func TestSelectNoMatch(t *testing.T) {
	_, err := midiin.Select(testPorts, "launchpad")
	if err == nil || !strings.Contains(err.Error(), "Keystation 49") {
		t.Fatalf("expected error listing available ports, got %v", err)
	}
}

func TestSelectNoPorts(t *testing.T) {
	if _, err := midiin.Select(nil, "1"); !errors.Is(err, midiin.ErrNoPorts) {
		t.Fatalf("expected ErrNoPorts, got %v", err)
	}
}

func TestSelectEmptySpec(t *testing.T) {
	if _, err := midiin.Select(testPorts, "  "); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestPortString(t *testing.T) {
	if got := (midiin.Port{Number: 2, Name: "FS-6"}).String(); got != "2: FS-6" {
		t.Fatalf("String() = %q", got)
	}
}

func TestSelectFoldsUnicodeCase(t *testing.T) {
	ports := []midiin.Port{{Number: 1, Name: "STRASSE Pedal"}, {Number: 2, Name: "Other"}}
	got, err := midiin.Select(ports, "straße")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got.Number != 1 {
		t.Fatalf("selected %v, want port 1", got)
	}
}
