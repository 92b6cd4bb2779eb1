// Package names maps book/chapter/section identifiers to display names.
// The lookup is loaded once at process start and is read-only thereafter;
// reloading requires a restart.
package names

import (
	"encoding/json"
	"fmt"
	"os"
)

// Lookup is an immutable id-to-display-name table.
type Lookup struct {
	Books    map[string]string `json:"books"`
	Chapters map[string]string `json:"chapters"`
	Sections map[string]string `json:"sections"`
}

// Load reads a lookup file. A missing path yields an empty lookup; every
// name then falls back to its generic form.
func Load(path string) (*Lookup, error) {
	if path == "" {
		return &Lookup{}, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Lookup{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read names file: %w", err)
	}
	var l Lookup
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode names file %s: %w", path, err)
	}
	return &l, nil
}

// BookName returns the display name for a book id, falling back to
// "Book <id>".
func (l *Lookup) BookName(id string) string {
	if name, ok := l.Books[id]; ok {
		return name
	}
	return "Book " + id
}

// ChapterName returns the display name for a chapter id.
func (l *Lookup) ChapterName(id string) string {
	if name, ok := l.Chapters[id]; ok {
		return name
	}
	return "Chapter " + id
}

// SectionName returns the display name for a section id.
func (l *Lookup) SectionName(id string) string {
	if name, ok := l.Sections[id]; ok {
		return name
	}
	return "Section " + id
}
