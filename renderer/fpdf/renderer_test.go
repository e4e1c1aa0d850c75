package fpdfrenderer

import (
	"bytes"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/ByLCY/quire/layout"
	"github.com/ByLCY/quire/renderer"
)

func TestHelveticaMetrics(t *testing.T) {
	r, err := New("")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	// Helvetica 中 "0" 的宽度为 556/1000 em
	if got := r.TextWidth("00", 10); math.Abs(got-11.12) > 1e-6 {
		t.Fatalf("TextWidth(\"00\", 10) = %g want 11.12", got)
	}
	if a, b := r.TextWidth("abc", 12), r.TextWidth("abcd", 12); b <= a {
		t.Fatalf("longer text must not be narrower: %g <= %g", b, a)
	}
}

func TestMeasureConcurrently(t *testing.T) {
	r, err := New("helvetica")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	want := r.TextWidth("concurrent layout", 12)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if got := r.TextWidth("concurrent layout", 12); got != want {
					t.Errorf("got %g want %g", got, want)
					return
				}
				_ = r.TextWidth("other", 9)
			}
		}()
	}
	wg.Wait()
}

func TestRenderPDF(t *testing.T) {
	for _, font := range []string{"", "courier", "go-regular"} {
		t.Run(font, func(t *testing.T) {
			b, err := renderer.Open(Name, font)
			if err != nil {
				t.Fatalf("Open error: %v", err)
			}
			doc, err := layout.Typeset(strings.Repeat("Grüße aus dem Exporter. ", 400), layout.DefaultGeometry(), b)
			if err != nil {
				t.Fatalf("Typeset error: %v", err)
			}
			doc.Meta.Title = "Export"
			out, err := b.Render(doc)
			if err != nil {
				t.Fatalf("Render error: %v", err)
			}
			if !bytes.HasPrefix(out, []byte("%PDF")) {
				t.Fatalf("output is not a PDF")
			}
		})
	}
}

func TestRenderRejectsEmpty(t *testing.T) {
	r, err := New("")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if _, err := r.Render(&layout.Document{}); err == nil {
		t.Fatalf("page-less document should fail")
	}
	if _, err := New("missing.ttf"); err == nil {
		t.Fatalf("missing font file should fail")
	}
}
