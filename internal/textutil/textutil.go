package textutil

import "strings"

// Concat joins string fragments without a separator.
func Concat(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	return strings.Join(parts, "")
}

// LinesWithEndings splits s after every newline, keeping the "\n" on each
// line. A final line without a terminator is returned as is.
func LinesWithEndings(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
