package extractor

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sampleProblem = `<?xml version="1.0"?>
<Problem>
  <ProblemID>1288</ProblemID>
  <Title>Right triangles</Title>
  <Statement>Find the hypotenuse of a right triangle with legs 3 and 4.</Statement>
  <Steps>
    <Step><Statement>Apply the Pythagorean theorem.</Statement></Step>
    <Step><Statement>Take the square root.</Statement></Step>
  </Steps>
  <Hints>
    <Hint><Text>Remember a squared plus b squared.</Text></Hint>
  </Hints>
  <Answer>5</Answer>
</Problem>`

func TestGeneric_CollectsDirectTextInDocumentOrder(t *testing.T) {
	g := &Generic{}
	got, err := g.Extract([]byte(`<root>alpha<child>beta</child>tail text</root>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// "tail text" follows the child's end tag; it is tail text of the
	// child, not direct content, so it is excluded.
	if got != "alpha\nbeta" {
		t.Errorf("expected %q, got %q", "alpha\nbeta", got)
	}
}

func TestGeneric_IncludesAnswerText(t *testing.T) {
	g := &Generic{}
	got, err := g.Extract([]byte(sampleProblem))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "hypotenuse") {
		t.Errorf("expected statement text in output, got %q", got)
	}
	if !strings.Contains(got, "5") {
		t.Errorf("generic mode collects every node, answer included; got %q", got)
	}
}

func TestGeneric_WhitespaceOnlyDocument(t *testing.T) {
	g := &Generic{}
	got, err := g.Extract([]byte("<root>   \n\t </root>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty extraction, got %q", got)
	}
}

func TestGeneric_UTF16Input(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	data, _, err := transform.Bytes(enc, []byte(`<?xml version="1.0" encoding="utf-16"?><p>héllo wörld</p>`))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	g := &Generic{}
	got, err := g.Extract(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "héllo wörld" {
		t.Errorf("expected %q, got %q", "héllo wörld", got)
	}
}

func TestGeneric_DecodeError(t *testing.T) {
	// Invalid UTF-8 with odd length cannot be UTF-16 either.
	g := &Generic{}
	_, err := g.Extract([]byte{0xff, 0xfe, 0x41})
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestGeneric_ParseError(t *testing.T) {
	g := &Generic{}
	for _, input := range []string{"not xml at all", "<a><b></a>", ""} {
		_, err := g.Extract([]byte(input))
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("Extract(%q): expected ParseError, got %v", input, err)
		}
	}
}

func TestTargeted_ReadsOnlyNamedFields(t *testing.T) {
	tg := &Targeted{}
	got, err := tg.Extract([]byte(sampleProblem))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Right triangles",
		"Find the hypotenuse",
		"Apply the Pythagorean theorem.",
		"Take the square root.",
		"Remember a squared plus b squared.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output, got %q", want, got)
		}
	}
	// The answer never leaks into targeted-mode text.
	for _, line := range strings.Split(got, "\n") {
		if line == "5" {
			t.Errorf("answer leaked into targeted extraction: %q", got)
		}
	}
}

func TestParseProblem_Metadata(t *testing.T) {
	p, err := ParseProblem([]byte(sampleProblem))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ProblemID != "1288" {
		t.Errorf("expected problem id %q, got %q", "1288", p.ProblemID)
	}
	if p.Title != "Right triangles" {
		t.Errorf("expected title %q, got %q", "Right triangles", p.Title)
	}
}

func TestForMode(t *testing.T) {
	if _, err := ForMode("generic"); err != nil {
		t.Errorf("generic: %v", err)
	}
	if _, err := ForMode("targeted"); err != nil {
		t.Errorf("targeted: %v", err)
	}
	if _, err := ForMode(""); err != nil {
		t.Errorf("empty mode should default: %v", err)
	}
	if _, err := ForMode("bogus"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestExtract_Deterministic(t *testing.T) {
	g := &Generic{}
	a, err := g.Extract([]byte(sampleProblem))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := g.Extract([]byte(sampleProblem))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Error("extraction is not deterministic")
	}
}
