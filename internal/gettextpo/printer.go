package gettextpo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"crosslocale/internal/textutil"
)

var quoteReplacer = strings.NewReplacer(
	"\\", `\\`,
	"\"", `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
	"\b", `\b`,
	"\f", `\f`,
	"\v", `\v`,
	"\a", `\a`,
)

// Quote renders s as a PO string literal.
func Quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}

type messageJSON struct {
	TranslatorComments []string `json:"translator_comments,omitempty"`
	AutomaticComments  []string `json:"automatic_comments,omitempty"`
	ReferenceComments  []string `json:"reference_comments,omitempty"`
	FlagsComments      []string `json:"flags_comments,omitempty"`
	PrevMsgctxt        string   `json:"prev_msgctxt,omitempty"`
	PrevMsgid          string   `json:"prev_msgid,omitempty"`
	Msgctxt            string   `json:"msgctxt,omitempty"`
	Msgid              string   `json:"msgid,omitempty"`
	Msgstr             string   `json:"msgstr,omitempty"`
}

// MarshalJSON encodes the message with empty lists and sections left out
// and every string section joined into a single value.
func (m Message) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(messageJSON{
		TranslatorComments: m.TranslatorComments,
		AutomaticComments:  m.AutomaticComments,
		ReferenceComments:  m.ReferenceComments,
		FlagsComments:      m.FlagsComments,
		PrevMsgctxt:        textutil.Concat(m.PrevMsgctxt),
		PrevMsgid:          textutil.Concat(m.PrevMsgid),
		Msgctxt:            textutil.Concat(m.Msgctxt),
		Msgid:              textutil.Concat(m.Msgid),
		Msgstr:             textutil.Concat(m.Msgstr),
	})
	if err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// JSONWriter writes one indented JSON object per message.
type JSONWriter struct {
	enc *json.Encoder
}

func NewJSONWriter(w io.Writer) *JSONWriter {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return &JSONWriter{enc: enc}
}

func (jw *JSONWriter) Write(msg *Message) error {
	if err := jw.enc.Encode(msg); err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	return nil
}

// POWriter serializes messages back into PO syntax, one blank line between
// consecutive messages. Sections are re-split at newlines.
type POWriter struct {
	w        io.Writer
	wroteAny bool
}

func NewPOWriter(w io.Writer) *POWriter {
	return &POWriter{w: w}
}

func (pw *POWriter) Write(msg *Message) error {
	var sb strings.Builder
	if pw.wroteAny {
		sb.WriteByte('\n')
	}

	writeComments(&sb, "#", msg.TranslatorComments)
	writeComments(&sb, "#.", msg.AutomaticComments)
	writeComments(&sb, "#:", msg.ReferenceComments)
	writeComments(&sb, "#,", msg.FlagsComments)

	writeSection(&sb, "#| ", "msgctxt", msg.PrevMsgctxt)
	writeSection(&sb, "#| ", "msgid", msg.PrevMsgid)
	writeSection(&sb, "", "msgctxt", msg.Msgctxt)
	writeSection(&sb, "", "msgid", msg.Msgid)
	writeSection(&sb, "", "msgstr", msg.Msgstr)

	if _, err := io.WriteString(pw.w, sb.String()); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	pw.wroteAny = true
	return nil
}

func writeComments(sb *strings.Builder, prefix string, comments []string) {
	for _, c := range comments {
		sb.WriteString(prefix)
		sb.WriteString(c)
		sb.WriteByte('\n')
	}
}

func writeSection(sb *strings.Builder, prefix, keyword string, fragments []string) {
	if len(fragments) == 0 {
		return
	}
	lines := textutil.LinesWithEndings(textutil.Concat(fragments))

	sb.WriteString(prefix)
	sb.WriteString(keyword)
	sb.WriteByte(' ')
	if len(lines) == 1 {
		sb.WriteString(Quote(lines[0]))
		sb.WriteByte('\n')
		return
	}
	sb.WriteString(`""`)
	sb.WriteByte('\n')
	for _, line := range lines {
		sb.WriteString(prefix)
		sb.WriteString(Quote(line))
		sb.WriteByte('\n')
	}
}
