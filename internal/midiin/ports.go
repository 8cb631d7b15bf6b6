package midiin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// ErrNoPorts reports that the driver exposes no MIDI inputs.
var ErrNoPorts = errors.New("no MIDI input ports available")

// Port is a MIDI input as shown to the user. Number is 1-based.
type Port struct {
	Number int
	Name   string
}

func (p Port) String() string {
	return fmt.Sprintf("%d: %s", p.Number, p.Name)
}

// Select resolves query against ports. A number selects by position; any
// other text matches a port name exactly or, failing that, as a
// case-folded fragment that must identify a single port.
func Select(ports []Port, query string) (Port, error) {
	if len(ports) == 0 {
		return Port{}, ErrNoPorts
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return Port{}, errors.New("no MIDI port given")
	}

	if n, err := strconv.Atoi(query); err == nil {
		for _, p := range ports {
			if p.Number == n {
				return p, nil
			}
		}
		return Port{}, fmt.Errorf("MIDI port %d out of range (1-%d)", n, len(ports))
	}

	for _, p := range ports {
		if p.Name == query {
			return p, nil
		}
	}
	fold := cases.Fold()
	needle := fold.String(query)
	var matches []Port
	for _, p := range ports {
		if strings.Contains(fold.String(p.Name), needle) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return Port{}, fmt.Errorf("no MIDI port matches %q (available: %s)", query, portNames(ports))
	case 1:
		return matches[0], nil
	default:
		return Port{}, fmt.Errorf("MIDI port %q is ambiguous (matches: %s)", query, portNames(matches))
	}
}

func portNames(ports []Port) string {
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}
