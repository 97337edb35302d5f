package gettextpo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `# Translators' notes
#. extracted
#: data/lang/sc/gui.en_US.json
#, fuzzy
#| msgctxt "lang/sc/gui.en_US.json//labels/old"
#| msgid "Old"
msgctxt "lang/sc/gui.en_US.json//labels/title"
msgid "New "
"Game"
msgstr "Nouvelle partie"

msgid ""
msgstr ""
"Language: fr\n"
"Plural-Forms: nplurals=2;\n"
`

func TestParser_FullMessage(t *testing.T) {
	messages, err := ParseAll(sampleCatalog)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, &Message{
		TranslatorComments: []string{" Translators' notes"},
		AutomaticComments:  []string{" extracted"},
		ReferenceComments:  []string{" data/lang/sc/gui.en_US.json"},
		FlagsComments:      []string{" fuzzy"},
		PrevMsgctxt:        []string{"lang/sc/gui.en_US.json//labels/old"},
		PrevMsgid:          []string{"Old"},
		Msgctxt:            []string{"lang/sc/gui.en_US.json//labels/title"},
		Msgid:              []string{"New ", "Game"},
		Msgstr:             []string{"Nouvelle partie"},
	}, messages[0])

	assert.Equal(t, &Message{
		Msgid:  []string{""},
		Msgstr: []string{"", "Language: fr\n", "Plural-Forms: nplurals=2;\n"},
	}, messages[1])
}

func TestParser_AdjacentStrings(t *testing.T) {
	messages, err := ParseAll("msgid \"foo\" \"bar\"\nmsgstr \"baz\"")
	require.NoError(t, err)
	require.Len(t, messages, 1)

	assert.Equal(t, []string{"foo", "bar"}, messages[0].Msgid)
	assert.Equal(t, "foobar", strings.Join(messages[0].Msgid, ""))
	assert.Empty(t, messages[0].Msgctxt)
	assert.Empty(t, messages[0].PrevMsgctxt)
	assert.Empty(t, messages[0].PrevMsgid)
}

func TestParser_PrevMsgidWithoutPrevMsgctxt(t *testing.T) {
	messages, err := ParseAll("#| msgid \"a\"\nmsgid \"b\"\nmsgstr \"c\"")
	require.NoError(t, err)
	require.Len(t, messages, 1)

	assert.Empty(t, messages[0].PrevMsgctxt)
	assert.Equal(t, []string{"a"}, messages[0].PrevMsgid)
	assert.Equal(t, []string{"b"}, messages[0].Msgid)
}

func TestParser_PreviousBlockSpanningLines(t *testing.T) {
	messages, err := ParseAll("#| msgid \"a\"\n#| \"b\"\nmsgid \"c\"\nmsgstr \"d\"")
	require.NoError(t, err)
	require.Len(t, messages, 1)

	assert.Equal(t, []string{"a", "b"}, messages[0].PrevMsgid)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		wantMessage string
		wantPos     CharPos
	}{
		{
			name:        "missing msgstr",
			src:         `msgid "x"`,
			wantMessage: "expected msgstr",
			wantPos:     CharPos{9, 1, 10},
		},
		{
			name:        "prev msgctxt without prev msgid",
			src:         "#| msgctxt \"a\"\nmsgid \"b\"\nmsgstr \"c\"",
			wantMessage: "expected prev_msgid",
			wantPos:     CharPos{15, 2, 1},
		},
		{
			name:        "msgctxt without msgid",
			src:         "msgctxt \"a\"\nmsgstr \"b\"",
			wantMessage: "expected msgid",
			wantPos:     CharPos{12, 2, 1},
		},
		{
			name:        "msgstr first",
			src:         `msgstr "b"`,
			wantMessage: "expected msgid or msgctxt",
			wantPos:     CharPos{0, 1, 1},
		},
		{
			name:        "keyword without strings",
			src:         "msgid\nmsgstr \"x\"",
			wantMessage: "expected one or more strings",
			wantPos:     CharPos{5, 1, 6},
		},
		{
			name:        "previous keyword without strings",
			src:         "#| msgid\nmsgid \"x\"",
			wantMessage: "expected one or more prev_strings",
			wantPos:     CharPos{8, 1, 9},
		},
		{
			name:        "previous flag does not carry over lines",
			src:         "#| msgid \"a\"\n\"b\"\nmsgid \"c\"\nmsgstr \"d\"",
			wantMessage: "expected msgid or msgctxt",
			wantPos:     CharPos{13, 2, 1},
		},
		{
			name:        "trailing comments",
			src:         "# c\n",
			wantMessage: "expected msgid or msgctxt",
			wantPos:     CharPos{3, 1, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages, err := ParseAll(tt.src)
			perr := requireParseError(t, err)
			assert.Empty(t, messages)
			assert.Equal(t, tt.wantMessage, perr.Message)
			assert.Equal(t, tt.wantPos, perr.Pos)
		})
	}
}

func TestParser_StopsAtFirstError(t *testing.T) {
	src := "msgid \"a\"\nmsgstr \"b\"\n\nmsgid \"c\"\nmsgstr \"d\"\n\nmsgid \"e\"\n\nmsgid \"f\"\nmsgstr \"g\"\n"
	p := NewParser(src)

	for _, want := range []string{"a", "c"} {
		msg, err := p.Next()
		require.NoError(t, err)
		require.NotNil(t, msg)
		assert.Equal(t, []string{want}, msg.Msgid)
	}

	msg, err := p.Next()
	perr := requireParseError(t, err)
	assert.Nil(t, msg)
	assert.Equal(t, "expected msgstr", perr.Message)
	assert.Equal(t, 9, perr.Pos.Line)

	msg, err = p.Next()
	assert.NoError(t, err)
	assert.Nil(t, msg)
}

func TestParser_UnsupportedConstructs(t *testing.T) {
	tests := []struct {
		name         string
		src          string
		wantMessages int
		wantContains string
	}{
		{
			name:         "obsolete entry",
			// The lookahead after "b" already reaches the obsolete marker.
			src:          "msgid \"a\"\nmsgstr \"b\"\n\n#~ msgid \"old\"\n#~ msgstr \"x\"\n",
			wantMessages: 0,
			wantContains: "obsolete",
		},
		{
			name:         "domain",
			src:          "domain \"game\"\nmsgid \"a\"\nmsgstr \"b\"\n",
			wantMessages: 0,
			wantContains: "domain",
		},
		{
			name:         "plural",
			src:          "msgid \"apple\"\nmsgid_plural \"apples\"\nmsgstr[0] \"x\"\n",
			wantMessages: 0,
			wantContains: "plurals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages, err := ParseAll(tt.src)
			perr := requireParseError(t, err)
			assert.Len(t, messages, tt.wantMessages)
			assert.Contains(t, perr.Message, tt.wantContains)
		})
	}
}

func TestParser_EmptyDocument(t *testing.T) {
	for _, src := range []string{"", "\n\n  \t\n"} {
		messages, err := ParseAll(src)
		assert.NoError(t, err)
		assert.Empty(t, messages)
	}
}

func TestParser_Offset(t *testing.T) {
	src := "msgid \"a\"\nmsgstr \"b\"\nmsgid \"c\"\nmsgstr \"d\""
	p := NewParser(src)
	assert.Equal(t, 0, p.Offset())

	// One token of lookahead: the second msgid keyword has been read.
	_, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, strings.LastIndex(src, "msgid")+len("msgid"), p.Offset())

	_, err = p.Next()
	require.NoError(t, err)
	assert.Equal(t, len(src), p.Offset())
}
