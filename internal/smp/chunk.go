package smp

import "strings"

// SplitMessage splits a report into ordered parts that each fit within
// limit, breaking only at line boundaries. Lines are accumulated greedily;
// a line that would push the current part past the limit starts the next
// part instead. A single line longer than limit becomes its own oversized
// part. Joining the parts with newlines reproduces the input exactly.
func SplitMessage(report string, limit int) []string {
	lines := strings.Split(report, "\n")

	var parts []string
	current := ""
	started := false

	for _, line := range lines {
		if !started {
			current = line
			started = true
			continue
		}
		if len(current)+len(line)+1 > limit {
			parts = append(parts, current)
			current = line
			continue
		}
		current += "\n" + line
	}

	parts = append(parts, current)
	return parts
}
