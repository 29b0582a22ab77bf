package grbl

import (
	"strconv"
	"strings"
)

// Status is a snapshot parsed from a Grbl status report line.
type Status struct {
	// State is the machine state field, e.g. "Idle", "Run", "Home".
	State string

	// Label names the coordinate system of Coords: "WPos" or "MPos".
	// Empty when the report carried no position.
	Label string

	// Coords holds up to three position values.
	Coords []float64
}

// Idle reports whether the machine state satisfies the idle-wait
// condition.
func (s Status) Idle() bool {
	return strings.Contains(s.State, "Idle")
}

// ParseStatus parses a status report shaped `<State|WPos:x,y,z|...>`.
//
// ok is false for anything malformed. Line noise is expected during
// polling, so callers skip bad lines instead of treating them as errors.
func ParseStatus(line string) (st Status, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "<") || !strings.HasSuffix(line, ">") {
		return st, false
	}

	fields := strings.Split(line[1:len(line)-1], "|")
	st.State = strings.TrimSpace(fields[0])
	if st.State == "" {
		return st, false
	}

	for _, f := range fields[1:] {
		var data string
		switch {
		case strings.HasPrefix(f, "WPos:"):
			st.Label = "WPos"
			data = f[5:]
		case strings.HasPrefix(f, "MPos:"):
			st.Label = "MPos"
			data = f[5:]
		default:
			continue
		}

		for _, part := range strings.Split(data, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return st, false
			}
			st.Coords = append(st.Coords, v)
			if len(st.Coords) == 3 {
				break
			}
		}
		break
	}
	return st, true
}

// String renders a concise human-readable status line.
func (s Status) String() string {
	if s.Label == "" {
		return s.State
	}
	parts := make([]string, len(s.Coords))
	for i, c := range s.Coords {
		parts[i] = strconv.FormatFloat(c, 'f', 3, 64)
	}
	return s.State + " " + s.Label + ": " + strings.Join(parts, ", ")
}
