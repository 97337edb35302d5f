package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// ComponentExt is the extension of catalog files in a components directory.
const ComponentExt = ".po"

// Component is a catalog discovered on disk.
type Component struct {
	// ID is the file name without ComponentExt.
	ID   string
	Path string
}

// Walker discovers catalogs in a components directory.
type Walker struct {
	ext string
}

// NewWalker creates a Walker looking for ComponentExt files.
func NewWalker() *Walker {
	return &Walker{ext: ComponentExt}
}

// Walk lists the catalogs directly inside dir, sorted by ID. Directories are
// skipped even when their name ends with the extension.
func (w *Walker) Walk(dir string) ([]Component, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve components path: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read components directory: %w", err)
	}

	var components []Component
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, w.ext) {
			continue
		}
		components = append(components, Component{
			ID:   strings.TrimSuffix(name, w.ext),
			Path: filepath.Join(dir, name),
		})
	}

	sort.Slice(components, func(i, j int) bool {
		return components[i].ID < components[j].ID
	})

	log.Info().Int("count", len(components)).Str("dir", dir).Msg("Discovered components")
	return components, nil
}

// ReadComponent loads the whole catalog as text.
func (w *Walker) ReadComponent(c Component) (string, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return "", fmt.Errorf("read component %s: %w", c.ID, err)
	}
	return string(data), nil
}
