package gettextpo

import (
	"fmt"
	"strings"
)

// ParseError is the only error kind produced by the lexer and the parser.
type ParseError struct {
	Message string
	Pos     CharPos
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Format renders the error with the offending source line and a caret under
// the faulty column. When src doesn't contain the line only the header and
// the message are written.
func (e *ParseError) Format(filename, src string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Syntax error in %s:%d:%d\n", filename, e.Pos.Line, e.Pos.Column)

	lineText, ok := findLine(src, e.Pos.Line)
	if !ok {
		sb.WriteString(e.Message)
		return sb.String()
	}

	lineNumber := fmt.Sprintf("%d", e.Pos.Line)
	margin := strings.Repeat(" ", len(lineNumber))
	fmt.Fprintf(&sb, "%s | %s\n", lineNumber, lineText)
	// Columns start at one, so the caret lines up with the space after "|".
	fmt.Fprintf(&sb, "%s |%s^\n", margin, strings.Repeat(" ", e.Pos.Column))
	fmt.Fprintf(&sb, "%s = %s", margin, e.Message)
	return sb.String()
}

// findLine returns the text of the 1-based line n without its terminator.
func findLine(src string, n int) (string, bool) {
	if n < 1 || src == "" {
		return "", false
	}
	for line := 1; ; line++ {
		end := strings.IndexByte(src, '\n')
		if line == n {
			if end < 0 {
				return src, true
			}
			return src[:end], true
		}
		if end < 0 || end+1 == len(src) {
			return "", false
		}
		src = src[end+1:]
	}
}
