package label

import (
	"fmt"
	"path"
	"strings"
)

// Unknown is substituted for all three components when a classifier
// prediction cannot be decomposed.
const Unknown = "Unknown"

// Label identifies the (book, chapter, section) a problem belongs to.
// Components are opaque strings; leading zeros and non-numeric IDs
// round-trip unchanged.
type Label struct {
	Book    string `json:"book_id"`
	Chapter string `json:"chapter_id"`
	Section string `json:"section_id"`
}

// String returns the hyphen-joined class form used by the classifier,
// e.g. "1-24-185".
func (l Label) String() string {
	return l.Book + "-" + l.Chapter + "-" + l.Section
}

// ParseClass splits a class string back into a Label. A string that does
// not split into exactly three parts yields the Unknown label and false;
// this can happen when a component itself contains a hyphen.
func ParseClass(s string) (Label, bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Label{Book: Unknown, Chapter: Unknown, Section: Unknown}, false
	}
	return Label{Book: parts[0], Chapter: parts[1], Section: parts[2]}, true
}

// MalformedPathError reports a path that does not carry enough segments
// to derive a label.
type MalformedPathError struct {
	Path   string
	Reason string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("malformed path %q: %s", e.Path, e.Reason)
}

// FromPath derives a label and problem id from a file path.
//
// The fixed convention: the first three path segments are
// book/chapter/section, the fourth is the problem folder, and the file
// stem is the problem id. "1/1/2/1288/1288.xml" derives ("1","1","2")
// with problem id "1288". Because the label anchors at the start of the
// path this generalizes to arbitrarily deep trees.
func FromPath(p string) (Label, string, error) {
	segs := splitPath(p)
	if len(segs) < 4 {
		return Label{}, "", &MalformedPathError{
			Path:   p,
			Reason: fmt.Sprintf("need at least 4 segments (book/chapter/section/file), got %d", len(segs)),
		}
	}
	file := segs[len(segs)-1]
	stem := strings.TrimSuffix(file, path.Ext(file))
	if stem == "" {
		return Label{}, "", &MalformedPathError{Path: p, Reason: "empty file stem"}
	}
	return Label{Book: segs[0], Chapter: segs[1], Section: segs[2]}, stem, nil
}

// FromDir derives a label from a directory path (no filename); the first
// three segments are book/chapter/section.
func FromDir(dir string) (Label, error) {
	segs := splitPath(dir)
	if len(segs) < 3 {
		return Label{}, &MalformedPathError{
			Path:   dir,
			Reason: fmt.Sprintf("need at least 3 segments (book/chapter/section), got %d", len(segs)),
		}
	}
	return Label{Book: segs[0], Chapter: segs[1], Section: segs[2]}, nil
}

// splitPath normalizes separators to forward slashes and splits,
// dropping empty segments.
func splitPath(p string) []string {
	p = strings.ReplaceAll(p, "\\", "/")
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" && s != "." {
			segs = append(segs, s)
		}
	}
	return segs
}
