package renderer_test

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ByLCY/quire/layout"
	"github.com/ByLCY/quire/renderer"
)

type monoBackend struct{ rendered *layout.Document }

func (b *monoBackend) TextWidth(text string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(text)) * fontSize / 2
}

func (b *monoBackend) Render(doc *layout.Document) ([]byte, error) {
	b.rendered = doc
	return []byte("pdf"), nil
}

func (b *monoBackend) ContentType() string { return "application/pdf" }
func (b *monoBackend) Extension() string   { return ".pdf" }

func init() {
	renderer.Register("mono-test", func(string) (renderer.Backend, error) { return &monoBackend{}, nil })
}

func TestExport(t *testing.T) {
	b := &monoBackend{}
	profile := layout.DefaultProfile()
	doc, out, err := renderer.Export(b, profile, "Dear ${who},\r\nthanks", "Letter", map[string]any{"who": "Ada"})
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if string(out) != "pdf" || b.rendered != doc {
		t.Fatalf("backend did not render the typeset document")
	}
	if got := strings.Join(doc.Texts(), "|"); got != "Dear Ada, thanks" {
		t.Fatalf("texts = %q", got)
	}
	if doc.Meta.Title != "Letter" || doc.Meta.Creator != "quire" {
		t.Fatalf("meta = %+v", doc.Meta)
	}
	if doc.Pages[0].Lines[0].X != profile.Geometry.MarginLeft {
		t.Fatalf("x = %g", doc.Pages[0].Lines[0].X)
	}
}

func TestExportInvalidGeometry(t *testing.T) {
	profile := layout.DefaultProfile()
	profile.Geometry.LineHeight = 0
	b := &monoBackend{}
	_, _, err := renderer.Export(b, profile, "text", "", nil)
	if !errors.Is(err, layout.ErrInvalidLayoutConfig) {
		t.Fatalf("expected ErrInvalidLayoutConfig, got %v", err)
	}
	if b.rendered != nil {
		t.Fatalf("nothing should be rendered for an invalid geometry")
	}
}

func TestRegistry(t *testing.T) {
	b, err := renderer.Open("MONO-TEST", "")
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if b.ContentType() != "application/pdf" {
		t.Fatalf("unexpected backend %T", b)
	}
	if _, err := renderer.Open("nope", ""); err == nil {
		t.Fatalf("unknown renderer should fail")
	}
	found := false
	for _, n := range renderer.Names() {
		found = found || n == "mono-test"
	}
	if !found {
		t.Fatalf("Names() = %v", renderer.Names())
	}
}
