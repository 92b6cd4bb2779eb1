package extractor

import (
	"encoding/xml"
	"io"
	"strings"
)

// Generic extracts text by depth-first traversal, collecting the direct
// text content of every element (not tail text) that is non-empty after
// trimming, joined with newlines in document order.
type Generic struct{}

func (g *Generic) Extract(data []byte) (string, error) {
	text, err := decode(data)
	if err != nil {
		return "", err
	}

	d := newDecoder(strings.NewReader(text))

	type frame struct {
		buf      strings.Builder
		sawChild bool
	}
	var stack []*frame
	var parts []string

	flush := func(f *frame) {
		if t := strings.TrimSpace(f.buf.String()); t != "" {
			parts = append(parts, t)
		}
		f.buf.Reset()
	}

	sawRoot := false
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", &ParseError{Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			sawRoot = true
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				if !top.sawChild {
					// Parent's direct text is complete once the first
					// child opens; emit it ahead of the child's text.
					top.sawChild = true
					flush(top)
				}
			}
			stack = append(stack, &frame{})
		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				if !top.sawChild {
					top.buf.Write(t)
				}
			}
		case xml.EndElement:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !top.sawChild {
				flush(top)
			}
		}
	}
	if !sawRoot {
		return "", &ParseError{Err: io.ErrUnexpectedEOF}
	}

	return strings.Join(parts, "\n"), nil
}

// newDecoder returns an XML decoder that tolerates encoding declarations
// left over from the original byte stream; input is already UTF-8 here.
func newDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(r)
	d.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	return d
}
