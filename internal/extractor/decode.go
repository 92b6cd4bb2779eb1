package extractor

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decode attempts UTF-8 first, then UTF-16. No other encodings are tried.
// A UTF-16 document whose bytes also happen to form valid UTF-8 decodes
// (incorrectly) as UTF-8; that is an accepted limitation of the order.
func decode(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	if len(data)%2 != 0 {
		return "", &DecodeError{Reason: "not valid UTF-8, and odd byte length rules out UTF-16"}
	}

	// Little-endian is assumed when no BOM is present, matching the most
	// common producer of these documents.
	dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", &DecodeError{Reason: "not valid UTF-8 or UTF-16: " + err.Error()}
	}
	// The UTF-16 decoder substitutes U+FFFD for broken code units rather
	// than failing; treat any substitution as a decode failure so garbage
	// never flows into the corpus silently.
	if !utf8.Valid(out) || strings.ContainsRune(string(out), utf8.RuneError) {
		return "", &DecodeError{Reason: "not valid UTF-8 or UTF-16"}
	}
	return string(out), nil
}
