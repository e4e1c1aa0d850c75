package canvasrenderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ByLCY/quire/layout"
	"github.com/ByLCY/quire/renderer"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New("")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return r
}

func TestTextWidthMonotonic(t *testing.T) {
	r := newTestRenderer(t)
	short := r.TextWidth("hello", 12)
	long := r.TextWidth("hello world", 12)
	if short <= 0 {
		t.Fatalf("expected positive width, got %g", short)
	}
	if long <= short {
		t.Fatalf("longer text must not be narrower: %g <= %g", long, short)
	}
	if big := r.TextWidth("hello", 24); big <= short {
		t.Fatalf("larger font must be wider: %g <= %g", big, short)
	}
	if r.TextWidth("", 12) != 0 {
		t.Fatalf("empty text should have zero width")
	}
}

// TestWrapWithCanvasMetrics 验证：使用 canvas 度量换行后，每行宽度不超过正文宽度。
func TestWrapWithCanvasMetrics(t *testing.T) {
	r := newTestRenderer(t)
	geom := layout.DefaultGeometry()
	content := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 60)
	lines, err := layout.Wrap(content, geom.TextWidth(), geom.FontSize, r)
	if err != nil {
		t.Fatalf("Wrap error: %v", err)
	}
	if len(lines) < 5 {
		t.Fatalf("expected wrapping into many lines, got %d", len(lines))
	}
	for i, ln := range lines {
		if w := r.TextWidth(ln.Text, geom.FontSize); w > geom.TextWidth() {
			t.Fatalf("line %d width %g exceeds %g", i, w, geom.TextWidth())
		}
	}
}

func TestRenderPDF(t *testing.T) {
	r := newTestRenderer(t)
	doc, err := layout.Typeset(strings.Repeat("paginated text ", 3000), layout.DefaultGeometry(), r)
	if err != nil {
		t.Fatalf("Typeset error: %v", err)
	}
	if len(doc.Pages) < 2 {
		t.Fatalf("expected several pages, got %d", len(doc.Pages))
	}
	doc.Meta = layout.DocumentMeta{Title: "Export", Keywords: []string{"a", "b"}}
	out, err := r.Render(doc)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", out[:min(len(out), 8)])
	}
}

func TestRenderEmptyDocument(t *testing.T) {
	r := newTestRenderer(t)
	doc, err := layout.Paginate(nil, layout.DefaultGeometry())
	if err != nil {
		t.Fatalf("Paginate error: %v", err)
	}
	out, err := r.Render(doc)
	if err != nil {
		t.Fatalf("single empty page should render, got %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if _, err := r.Render(&layout.Document{}); err == nil {
		t.Fatalf("page-less document should fail")
	}
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("nil document should fail")
	}
}

func TestRegistry(t *testing.T) {
	b, err := renderer.Open(Name, "go-mono")
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if b.ContentType() != "application/pdf" || b.Extension() != ".pdf" {
		t.Fatalf("unexpected format %s %s", b.ContentType(), b.Extension())
	}
	if _, err := New("does/not/exist.ttf"); err == nil {
		t.Fatalf("missing font file should fail")
	}
}
