package extractor

import (
	"strings"
)

// Problem holds the named fields read by targeted extraction.
type Problem struct {
	ProblemID string `xml:"ProblemID"`
	Title     string `xml:"Title"`
	Statement string `xml:"Statement"`
	Steps     []struct {
		Statement string `xml:"Statement"`
	} `xml:"Steps>Step"`
	Hints []struct {
		Text string `xml:"Text"`
	} `xml:"Hints>Hint"`
}

// ParseProblem decodes a document into its named fields. Used by targeted
// extraction and by callers that want the document's own ProblemID.
func ParseProblem(data []byte) (*Problem, error) {
	text, err := decode(data)
	if err != nil {
		return nil, err
	}
	var p Problem
	d := newDecoder(strings.NewReader(text))
	if err := d.Decode(&p); err != nil {
		return nil, &ParseError{Err: err}
	}
	p.ProblemID = strings.TrimSpace(p.ProblemID)
	p.Title = strings.TrimSpace(p.Title)
	p.Statement = strings.TrimSpace(p.Statement)
	return &p, nil
}

// Targeted extracts only specific named fields: the top-level statement,
// per-step statements and per-hint text. Answer fields are ignored so the
// answer never leaks into the text used for classification.
type Targeted struct{}

func (t *Targeted) Extract(data []byte) (string, error) {
	p, err := ParseProblem(data)
	if err != nil {
		return "", err
	}

	var parts []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	add(p.Title)
	add(p.Statement)
	for _, step := range p.Steps {
		add(step.Statement)
	}
	for _, hint := range p.Hints {
		add(hint.Text)
	}
	return strings.Join(parts, "\n"), nil
}
