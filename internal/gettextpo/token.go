package gettextpo

// CommentKind selects which of the four PO comment lists a comment belongs to.
type CommentKind int

const (
	// CommentTranslator is a plain "# text" comment.
	CommentTranslator CommentKind = iota
	// CommentAutomatic is an extracted "#. text" comment.
	CommentAutomatic
	// CommentReference is a "#: file:line" source reference.
	CommentReference
	// CommentFlags is a "#, fuzzy" flags comment.
	CommentFlags
)

func (k CommentKind) String() string {
	switch k {
	case CommentTranslator:
		return "translator"
	case CommentAutomatic:
		return "automatic"
	case CommentReference:
		return "reference"
	case CommentFlags:
		return "flags"
	}
	return "unknown"
}

// Span covers the characters of a token, end exclusive.
type Span struct {
	StartPos CharPos
	EndPos   CharPos
}

func (s Span) Start() CharPos { return s.StartPos }
func (s Span) End() CharPos   { return s.EndPos }

// Token is one of *CommentToken, *MsgctxtToken, *MsgidToken, *MsgstrToken
// or *StringToken. The set is closed.
type Token interface {
	Start() CharPos
	End() CharPos
	isToken()
}

// CommentToken holds the text of a comment line after its marker.
type CommentToken struct {
	Span
	Kind CommentKind
	Text string
}

// MsgctxtToken is the msgctxt keyword.
type MsgctxtToken struct {
	Span
	IsPrevious bool
}

// MsgidToken is the msgid keyword.
type MsgidToken struct {
	Span
	IsPrevious bool
}

// MsgstrToken is the msgstr keyword. It never appears on a "#|" line.
type MsgstrToken struct {
	Span
}

// StringToken is a quoted string with its escapes already decoded.
type StringToken struct {
	Span
	IsPrevious bool
	Text       string
}

func (*CommentToken) isToken() {}
func (*MsgctxtToken) isToken() {}
func (*MsgidToken) isToken()   {}
func (*MsgstrToken) isToken()  {}
func (*StringToken) isToken()  {}
