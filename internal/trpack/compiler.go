// Package trpack folds parsed catalog messages into Localize Me translation
// packs and writes them out as JSON.
package trpack

import (
	"strings"
	"sync"

	"crosslocale/internal/gettextpo"
	"crosslocale/internal/textutil"
)

const (
	// PathSeparator splits a msgctxt into the data file and the JSON path
	// inside it.
	PathSeparator = "//"
	dataDirPrefix = "data/"
)

// Entry is the original and translated text of one JSON path.
type Entry struct {
	Orig string `json:"orig"`
	Text string `json:"text"`
}

// Pack maps "<file_path>/<json_path>" keys to entries.
type Pack map[string]Entry

// Compiler accumulates packs across any number of documents. It is safe for
// concurrent use.
type Compiler struct {
	mu      sync.Mutex
	packs   map[string]Pack
	mapping map[string]string
}

// NewCompiler creates an empty compiler.
func NewCompiler() *Compiler {
	return &Compiler{
		packs:   make(map[string]Pack),
		mapping: make(map[string]string),
	}
}

// AddFragment folds one message into the packs. Messages without a context,
// a source text, a translation or a "//" in the context are ignored. A key
// that is already present is overwritten.
func (c *Compiler) AddFragment(msg *gettextpo.Message) {
	msgctxt := textutil.Concat(msg.Msgctxt)
	msgid := textutil.Concat(msg.Msgid)
	msgstr := textutil.Concat(msg.Msgstr)

	filePath, jsonPath, found := strings.Cut(msgctxt, PathSeparator)
	if msgctxt == "" || msgid == "" || msgstr == "" || !found {
		return
	}
	filePath = strings.TrimPrefix(filePath, dataDirPrefix)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.mapping[filePath] = filePath
	pack, ok := c.packs[filePath]
	if !ok {
		pack = make(Pack)
		c.packs[filePath] = pack
	}
	pack[filePath+"/"+jsonPath] = Entry{Orig: msgid, Text: msgstr}
}

// Packs returns the compiled packs keyed by file path. The map is owned by
// the compiler and must not be modified.
func (c *Compiler) Packs() map[string]Pack {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.packs
}

// Mapping returns the file path to pack path manifest.
func (c *Compiler) Mapping() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mapping
}

// Len returns the number of compiled packs.
func (c *Compiler) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.packs)
}
