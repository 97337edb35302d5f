package gettextpo

import "fmt"

// CharPos locates a character inside a source document.
//
// Index is a byte offset into the source string. Line and Column are 1-based
// and count runes. The zero value means the position has not been set yet.
type CharPos struct {
	Index  int
	Line   int
	Column int
}

func (p CharPos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// advance returns the position of the character following one consumed at p.
func (p CharPos) advance(r rune, size int) CharPos {
	next := CharPos{Index: p.Index + size, Line: p.Line, Column: p.Column + 1}
	if r == '\n' {
		next.Line++
		next.Column = 1
	}
	return next
}
