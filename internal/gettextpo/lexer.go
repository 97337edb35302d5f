package gettextpo

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var characterEscapes = map[rune]string{
	'\n': "",
	'n':  "\n",
	't':  "\t",
	'b':  "\b",
	'r':  "\r",
	'f':  "\f",
	'v':  "\v",
	'a':  "\a",
	'\\': "\\",
	'"':  "\"",
}

// Lexer splits a PO document into tokens. It is single-use: once the input
// is exhausted or an error has been returned, NextToken keeps returning nil.
type Lexer struct {
	src  string
	done bool

	tokenStart CharPos
	// current is the position of the last consumed character, next is the
	// position of the character peekChar would return.
	current CharPos
	next    CharPos

	// isPreviousEntry is set by "#|" and cleared by every newline.
	isPreviousEntry bool
}

// NewLexer creates a lexer over the whole document src.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  src,
		next: CharPos{Index: 0, Line: 1, Column: 1},
	}
}

// Offset returns the number of source bytes consumed so far.
func (l *Lexer) Offset() int {
	return l.next.Index
}

// NextToken returns the next token, or nil at the end of input. After an
// error the lexer is exhausted.
func (l *Lexer) NextToken() (Token, error) {
	for !l.done {
		l.skipWhitespace()

		c, ok := l.nextChar()
		if !ok {
			return nil, nil
		}
		l.tokenStart = l.current

		var (
			tok Token
			err error
		)
		switch {
		case c == '#':
			tok, err = l.lexComment()
		case c == '"':
			tok, err = l.lexString()
		case isKeywordChar(c):
			tok, err = l.lexKeyword()
		default:
			return nil, l.errorf("unexpected character %q", c)
		}
		if err != nil {
			return nil, err
		}
		// "#|" only flips a flag and produces no token.
		if tok != nil {
			return tok, nil
		}
	}
	return nil, nil
}

func (l *Lexer) nextChar() (rune, bool) {
	if l.next.Index >= len(l.src) {
		l.done = true
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(l.src[l.next.Index:])
	l.current = l.next
	l.next = l.next.advance(r, size)
	if r == '\n' {
		l.isPreviousEntry = false
	}
	return r, true
}

func (l *Lexer) peekChar() (rune, bool) {
	if l.next.Index >= len(l.src) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.next.Index:])
	return r, true
}

func (l *Lexer) span() Span {
	return Span{StartPos: l.tokenStart, EndPos: l.next}
}

func (l *Lexer) errorf(format string, args ...any) error {
	l.done = true
	return &ParseError{Message: fmt.Sprintf(format, args...), Pos: l.current}
}

func (l *Lexer) skipWhitespace() {
	for {
		c, ok := l.peekChar()
		if !ok || !isWhitespace(c) {
			return
		}
		l.nextChar()
	}
}

func (l *Lexer) lexComment() (Token, error) {
	kind := CommentTranslator

	c, _ := l.peekChar()
	switch c {
	case '~':
		l.nextChar()
		return nil, l.errorf("obsolete entries are unsupported")
	case '|':
		l.nextChar()
		l.isPreviousEntry = true
		return nil, nil
	case '.':
		kind = CommentAutomatic
	case ':':
		kind = CommentReference
	case ',':
		kind = CommentFlags
	}
	if kind != CommentTranslator {
		l.nextChar()
	}

	textStart := l.next.Index
	for {
		c, ok := l.peekChar()
		if !ok || c == '\n' {
			break
		}
		l.nextChar()
	}

	return &CommentToken{
		Span: l.span(),
		Kind: kind,
		Text: l.src[textStart:l.next.Index],
	}, nil
}

func (l *Lexer) lexString() (Token, error) {
	var text strings.Builder
	literalStart := l.next.Index

	for {
		c, ok := l.peekChar()
		if !ok || c == '\n' {
			return nil, l.errorf("unterminated string")
		}
		l.nextChar()

		if c == '"' {
			break
		}
		if c != '\\' {
			continue
		}

		text.WriteString(l.src[literalStart:l.current.Index])
		c, ok = l.peekChar()
		if !ok {
			return nil, l.errorf("expected a character to escape")
		}
		l.nextChar()
		unescaped, known := characterEscapes[c]
		if !known {
			return nil, l.errorf("unknown escaped character %q", c)
		}
		text.WriteString(unescaped)
		literalStart = l.next.Index
	}
	text.WriteString(l.src[literalStart:l.current.Index])

	return &StringToken{
		Span:       l.span(),
		IsPrevious: l.isPreviousEntry,
		Text:       text.String(),
	}, nil
}

func (l *Lexer) lexKeyword() (Token, error) {
	for {
		c, ok := l.peekChar()
		if !ok || !isKeywordChar(c) {
			break
		}
		l.nextChar()
	}

	keyword := l.src[l.tokenStart.Index:l.next.Index]
	switch keyword {
	case "msgctxt":
		return &MsgctxtToken{Span: l.span(), IsPrevious: l.isPreviousEntry}, nil
	case "msgid":
		return &MsgidToken{Span: l.span(), IsPrevious: l.isPreviousEntry}, nil
	case "msgstr":
		if l.isPreviousEntry {
			return nil, l.errorf("%q is not allowed in a previous-value block", keyword)
		}
		return &MsgstrToken{Span: l.span()}, nil
	case "domain":
		return nil, l.errorf("the %q keyword is unsupported due to the lack of documentation about it", keyword)
	case "msgid_plural", "msgstr_plural":
		return nil, l.errorf("keyword %q is unsupported because plurals were unneeded and thus are unsupported", keyword)
	}
	return nil, l.errorf("unexpected keyword %q", keyword)
}

func isWhitespace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isKeywordChar(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}
