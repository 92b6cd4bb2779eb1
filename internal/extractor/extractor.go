// Package extractor turns raw problem-document bytes into plain text for
// classification. Documents are XML encoded as UTF-8 or UTF-16; decoding
// tries UTF-8 first and falls back to UTF-16.
package extractor

import (
	"fmt"
)

// Extraction modes.
const (
	ModeGeneric  = "generic"
	ModeTargeted = "targeted"
)

// Extractor converts raw document bytes into plain text. Implementations
// are pure; a failed extraction returns a *DecodeError or *ParseError.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// ForMode returns the extractor for a configured mode.
//
// Generic mode collects the direct text of every node and may include
// label-correlated content such as answer text; targeted mode reads only
// the statement, step and hint fields. Generic is the default.
func ForMode(mode string) (Extractor, error) {
	switch mode {
	case ModeGeneric, "":
		return &Generic{}, nil
	case ModeTargeted:
		return &Targeted{}, nil
	default:
		return nil, fmt.Errorf("unknown extract mode: %s", mode)
	}
}

// DecodeError reports document bytes that are neither valid UTF-8 nor
// valid UTF-16.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return "decode document: " + e.Reason
}

// ParseError reports decodable bytes that are not well-formed XML.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "parse document: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }
