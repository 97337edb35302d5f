package trpack

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Writer places pack files and the mapping file on disk.
type Writer struct {
	// Indent is passed to the JSON encoder; empty means compact output.
	Indent string
}

// WritePacks writes every pack to dir joined with its file path, creating
// parent directories as needed. It returns the paths written, sorted.
func (w *Writer) WritePacks(dir string, packs map[string]Pack) ([]string, error) {
	relPaths := make([]string, 0, len(packs))
	for rel := range packs {
		relPaths = append(relPaths, rel)
	}
	sort.Strings(relPaths)

	written := make([]string, 0, len(relPaths))
	for _, rel := range relPaths {
		local := filepath.FromSlash(rel)
		if !filepath.IsLocal(local) {
			return written, fmt.Errorf("pack path %q escapes the packs directory", rel)
		}
		packPath := filepath.Join(dir, local)
		if err := w.writeFile(packPath, packs[rel]); err != nil {
			return written, fmt.Errorf("write pack %s: %w", rel, err)
		}
		written = append(written, packPath)
	}
	return written, nil
}

// WriteMapping writes the manifest consumed by Localize Me.
func (w *Writer) WriteMapping(path string, mapping map[string]string) error {
	if err := w.writeFile(path, mapping); err != nil {
		return fmt.Errorf("write mapping file: %w", err)
	}
	return nil
}

func (w *Writer) writeFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if err := w.Encode(f, v); err != nil {
		return err
	}
	return f.Close()
}

// Encode writes v as JSON followed by a newline, without HTML escaping.
func (w *Writer) Encode(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", w.Indent)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
