package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"prompter/internal/midiin"
)

// ChoosePort lists ports on out and reads a selection from in until one
// resolves. Input accepts the same forms as midiin.Select.
func ChoosePort(in *Lines, out io.Writer, ports []midiin.Port) (midiin.Port, error) {
	if len(ports) == 0 {
		return midiin.Port{}, midiin.ErrNoPorts
	}
	fmt.Fprintln(out, "Available MIDI inputs:")
	for _, p := range ports {
		fmt.Fprintf(out, "  %s\n", p)
	}

	for {
		fmt.Fprintf(out, "Select MIDI input (1-%d): ", len(ports))
		text, ok := in.Next()
		if !ok {
			fmt.Fprintln(out)
			if err := in.Err(); err != nil {
				return midiin.Port{}, fmt.Errorf("read port selection: %w", err)
			}
			return midiin.Port{}, errors.New("no MIDI input selected")
		}
		line := strings.TrimSpace(text)
		if line == "" {
			continue
		}
		port, err := midiin.Select(ports, line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		return port, nil
	}
}
