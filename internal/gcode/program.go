package gcode

import "strings"

// ParseProgram tokenises a full G-code text body into a Command stream,
// one per line, in order. CRLF line endings are tolerated by trimming the
// trailing '\r' (spec.md §6: "lines terminated by \n ... CRLF tolerance
// is up to the caller").
func ParseProgram(text string) ([]Command, error) {
	lines := strings.Split(text, "\n")
	commands := make([]Command, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		cmd, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}
