package trpack

import (
	"fmt"
	"sync"
	"testing"

	"crosslocale/internal/gettextpo"

	"github.com/stretchr/testify/assert"
)

func message(msgctxt, msgid, msgstr string) *gettextpo.Message {
	return &gettextpo.Message{
		Msgctxt: []string{msgctxt},
		Msgid:   []string{msgid},
		Msgstr:  []string{msgstr},
	}
}

func TestCompiler_AddFragment(t *testing.T) {
	c := NewCompiler()
	c.AddFragment(message("data/foo.json//bar", "Hello", "Bonjour"))

	assert.Equal(t, map[string]Pack{
		"foo.json": {"foo.json/bar": {Orig: "Hello", Text: "Bonjour"}},
	}, c.Packs())
	assert.Equal(t, map[string]string{"foo.json": "foo.json"}, c.Mapping())
	assert.Equal(t, 1, c.Len())
}

func TestCompiler_JoinsFragments(t *testing.T) {
	c := NewCompiler()
	c.AddFragment(&gettextpo.Message{
		Msgctxt: []string{"data/lang/", "gui.json//", "labels/title"},
		Msgid:   []string{"New ", "Game"},
		Msgstr:  []string{"Nouvelle ", "partie"},
	})

	assert.Equal(t, Pack{
		"lang/gui.json/labels/title": {Orig: "New Game", Text: "Nouvelle partie"},
	}, c.Packs()["lang/gui.json"])
}

func TestCompiler_SkipsIncompleteMessages(t *testing.T) {
	tests := []struct {
		name string
		msg  *gettextpo.Message
	}{
		{name: "empty msgstr", msg: message("data/foo.json//bar", "Hello", "")},
		{name: "empty msgid", msg: message("data/foo.json//bar", "", "Bonjour")},
		{name: "empty msgctxt", msg: message("", "Hello", "Bonjour")},
		{name: "no separator", msg: message("data/foo.json/bar", "Hello", "Bonjour")},
		{name: "header entry", msg: &gettextpo.Message{Msgid: []string{""}, Msgstr: []string{"Language: fr\n"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCompiler()
			c.AddFragment(tt.msg)
			assert.Empty(t, c.Packs())
			assert.Empty(t, c.Mapping())
		})
	}
}

func TestCompiler_PathHandling(t *testing.T) {
	c := NewCompiler()
	c.AddFragment(message("maps/a.json//x//y", "A", "a"))
	c.AddFragment(message("data/data/b.json//z", "B", "b"))

	assert.Equal(t, Entry{Orig: "A", Text: "a"}, c.Packs()["maps/a.json"]["maps/a.json/x//y"])
	assert.Equal(t, Entry{Orig: "B", Text: "b"}, c.Packs()["data/b.json"]["data/b.json/z"])
	assert.Equal(t, map[string]string{"maps/a.json": "maps/a.json", "data/b.json": "data/b.json"}, c.Mapping())
}

func TestCompiler_LastWriteWins(t *testing.T) {
	c := NewCompiler()
	c.AddFragment(message("data/foo.json//bar", "Hello", "Bonjour"))
	c.AddFragment(message("foo.json//bar", "Hello", "Salut"))

	assert.Equal(t, Pack{"foo.json/bar": {Orig: "Hello", Text: "Salut"}}, c.Packs()["foo.json"])
}

func TestCompiler_Idempotent(t *testing.T) {
	once := NewCompiler()
	once.AddFragment(message("data/foo.json//bar", "Hello", "Bonjour"))

	twice := NewCompiler()
	twice.AddFragment(message("data/foo.json//bar", "Hello", "Bonjour"))
	twice.AddFragment(message("data/foo.json//bar", "Hello", "Bonjour"))

	assert.Equal(t, once.Packs(), twice.Packs())
	assert.Equal(t, once.Mapping(), twice.Mapping())
}

func TestCompiler_IndependentInstances(t *testing.T) {
	a := NewCompiler()
	b := NewCompiler()
	a.AddFragment(message("foo.json//bar", "Hello", "Bonjour"))

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, b.Len())
}

func TestCompiler_ConcurrentAddFragment(t *testing.T) {
	c := NewCompiler()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				c.AddFragment(message(fmt.Sprintf("data/pack%d.json//entry%d", w, i), "orig", "text"))
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 8, c.Len())
	for w := 0; w < 8; w++ {
		assert.Len(t, c.Packs()[fmt.Sprintf("pack%d.json", w)], 50)
	}
}
