package gettextpo

// Message is one catalog entry. Every string section holds the adjacent
// quoted fragments as they appeared in the source; joining them yields the
// logical value. Msgid and Msgstr are never empty in a parsed message.
type Message struct {
	TranslatorComments []string
	AutomaticComments  []string
	ReferenceComments  []string
	FlagsComments      []string

	PrevMsgctxt []string
	PrevMsgid   []string
	Msgctxt     []string
	Msgid       []string
	Msgstr      []string
}

// Parser assembles messages from the tokens of a single document. It stops
// for good at the end of input or at the first error.
type Parser struct {
	lexer *Lexer
	done  bool

	peeked  Token
	current Token
	// last is the most recently consumed token, kept after current becomes
	// nil at the end of input so errors there still have a location.
	last Token
}

// NewParser creates a parser over the whole document src.
func NewParser(src string) *Parser {
	return &Parser{lexer: NewLexer(src)}
}

// Offset returns the number of source bytes the lexer has consumed.
func (p *Parser) Offset() int {
	return p.lexer.Offset()
}

// ParseAll collects every message of src. On error the messages parsed
// before the fault are returned together with it.
func ParseAll(src string) ([]*Message, error) {
	p := NewParser(src)
	var messages []*Message
	for {
		msg, err := p.Next()
		if err != nil {
			return messages, err
		}
		if msg == nil {
			return messages, nil
		}
		messages = append(messages, msg)
	}
}

// Next returns the next message, or nil once the document is exhausted.
// Errors are *ParseError values and end the sequence.
func (p *Parser) Next() (*Message, error) {
	if p.done {
		return nil, nil
	}

	tok, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		p.done = true
		return nil, nil
	}

	msg := &Message{}
	if err := p.parseComments(msg); err != nil {
		return nil, err
	}

	hasPrevMsgctxt := false
	tok, err = p.peekToken()
	if err != nil {
		return nil, err
	}
	if t, ok := tok.(*MsgctxtToken); ok && t.IsPrevious {
		p.nextToken()
		if err := p.parseStrings(&msg.PrevMsgctxt, true); err != nil {
			return nil, err
		}
		hasPrevMsgctxt = true
	}

	tok, err = p.peekToken()
	if err != nil {
		return nil, err
	}
	if t, ok := tok.(*MsgidToken); ok && t.IsPrevious {
		p.nextToken()
		if err := p.parseStrings(&msg.PrevMsgid, true); err != nil {
			return nil, err
		}
	} else if hasPrevMsgctxt {
		p.nextToken()
		return nil, p.errorAt("expected prev_msgid")
	}

	hasMsgctxt := false
	tok, err = p.peekToken()
	if err != nil {
		return nil, err
	}
	if t, ok := tok.(*MsgctxtToken); ok && !t.IsPrevious {
		p.nextToken()
		if err := p.parseStrings(&msg.Msgctxt, false); err != nil {
			return nil, err
		}
		hasMsgctxt = true
	}

	tok, err = p.nextToken()
	if err != nil {
		return nil, err
	}
	if t, ok := tok.(*MsgidToken); !ok || t.IsPrevious {
		if hasMsgctxt {
			return nil, p.errorAt("expected msgid")
		}
		return nil, p.errorAt("expected msgid or msgctxt")
	}
	if err := p.parseStrings(&msg.Msgid, false); err != nil {
		return nil, err
	}

	tok, err = p.nextToken()
	if err != nil {
		return nil, err
	}
	if _, ok := tok.(*MsgstrToken); !ok {
		return nil, p.errorAt("expected msgstr")
	}
	if err := p.parseStrings(&msg.Msgstr, false); err != nil {
		return nil, err
	}

	return msg, nil
}

func (p *Parser) parseComments(msg *Message) error {
	for {
		tok, err := p.peekToken()
		if err != nil {
			return err
		}
		comment, ok := tok.(*CommentToken)
		if !ok {
			return nil
		}
		p.nextToken()

		switch comment.Kind {
		case CommentTranslator:
			msg.TranslatorComments = append(msg.TranslatorComments, comment.Text)
		case CommentAutomatic:
			msg.AutomaticComments = append(msg.AutomaticComments, comment.Text)
		case CommentReference:
			msg.ReferenceComments = append(msg.ReferenceComments, comment.Text)
		case CommentFlags:
			msg.FlagsComments = append(msg.FlagsComments, comment.Text)
		}
	}
}

// parseStrings appends one or more adjacent strings whose previous-value
// flag equals previous.
func (p *Parser) parseStrings(out *[]string, previous bool) error {
	found := false
	for {
		tok, err := p.peekToken()
		if err != nil {
			return err
		}
		str, ok := tok.(*StringToken)
		if !ok || str.IsPrevious != previous {
			break
		}
		p.nextToken()
		*out = append(*out, str.Text)
		found = true
	}

	if !found {
		if previous {
			return p.errorAfter("expected one or more prev_strings")
		}
		return p.errorAfter("expected one or more strings")
	}
	return nil
}

func (p *Parser) peekToken() (Token, error) {
	if p.peeked == nil {
		tok, err := p.lexer.NextToken()
		if err != nil {
			p.done = true
			return nil, err
		}
		p.peeked = tok
	}
	return p.peeked, nil
}

// nextToken consumes the peeked token. Callers that already peeked may
// ignore the error, it can only come from a fresh lexer read.
func (p *Parser) nextToken() (Token, error) {
	tok, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	p.peeked = nil
	p.current = tok
	if tok != nil {
		p.last = tok
	}
	return tok, nil
}

func (p *Parser) errorAt(message string) error {
	p.done = true
	pos := CharPos{}
	switch {
	case p.current != nil:
		pos = p.current.Start()
	case p.last != nil:
		pos = p.last.End()
	}
	return &ParseError{Message: message, Pos: pos}
}

func (p *Parser) errorAfter(message string) error {
	p.done = true
	pos := CharPos{}
	if p.last != nil {
		pos = p.last.End()
	}
	return &ParseError{Message: message, Pos: pos}
}
