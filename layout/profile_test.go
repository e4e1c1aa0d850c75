package layout

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestReadProfile(t *testing.T) {
	src := `profile Report v2 {
  meta {
    title: "Quarterly report"
    author: "ops"
    keywords: ["q3", "report"]
  }
  page Letter landscape margin 1in 36pt {
    font-size: 10pt
    line-height: 1.5x
    wrap: break-word
    paragraphs: true
    font: "go-mono"
  }
}`
	p, err := ReadProfile("report.quire", strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadProfile error: %v", err)
	}
	g := p.Geometry
	if g.PageWidth != 792 || g.PageHeight != 612 {
		t.Fatalf("expected landscape letter, got %gx%g", g.PageWidth, g.PageHeight)
	}
	if g.MarginTop != 72 || g.MarginBottom != 72 || g.MarginLeft != 36 || g.MarginRight != 36 {
		t.Fatalf("unexpected margins: %+v", g)
	}
	if g.FontSize != 10 || g.LineHeight != 15 {
		t.Fatalf("unexpected font size/line height: %g/%g", g.FontSize, g.LineHeight)
	}
	if p.Wrapper.Overflow != OverflowBreak || !p.Wrapper.KeepParagraphs {
		t.Fatalf("unexpected wrapper: %+v", p.Wrapper)
	}
	if p.Font != "go-mono" || p.Name != "Report" {
		t.Fatalf("unexpected font/name: %q %q", p.Font, p.Name)
	}
	if p.Meta.Title != "Quarterly report" || p.Meta.Author != "ops" || len(p.Meta.Keywords) != 2 {
		t.Fatalf("unexpected meta: %+v", p.Meta)
	}
	if p.Meta.Creator != "quire" {
		t.Fatalf("creator should keep its default, got %q", p.Meta.Creator)
	}
}

func TestProfileDefaultsAndFontScaling(t *testing.T) {
	p, err := ReadProfile("", strings.NewReader(`profile Big v1 { page A4 { font-size: 24pt } }`))
	if err != nil {
		t.Fatalf("ReadProfile error: %v", err)
	}
	def := DefaultGeometry()
	if p.Geometry.MarginLeft != def.MarginLeft || p.Geometry.MarginTop != def.MarginTop {
		t.Fatalf("margins should fall back to defaults: %+v", p.Geometry)
	}
	if math.Abs(p.Geometry.LineHeight-34) > 1e-9 {
		t.Fatalf("line height should scale with font size, got %g", p.Geometry.LineHeight)
	}
}

func TestProfileErrors(t *testing.T) {
	cases := map[string]string{
		"unknown size":     `profile X v1 { page B9 }`,
		"unknown param":    `profile X v1 { page A4 sideways }`,
		"bad wrap":         `profile X v1 { page A4 { wrap: hyphenate } }`,
		"bad font size":    `profile X v1 { page A4 { font-size: big } }`,
		"two pages":        `profile X v1 { page A4 page A5 }`,
		"syntax":           `profile X { }`,
		"no usable height": `profile X v1 { page A5 margin 300pt 10pt }`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadProfile("", strings.NewReader(src)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	_, err := ReadProfile("", strings.NewReader(`profile X v1 { page A5 margin 300pt 10pt }`))
	if !errors.Is(err, ErrInvalidLayoutConfig) {
		t.Fatalf("geometry failures should be ErrInvalidLayoutConfig, got %v", err)
	}
}

func TestLoadProfileExamples(t *testing.T) {
	p, err := LoadProfile("../examples/default.quire")
	if err != nil {
		t.Fatalf("LoadProfile error: %v", err)
	}
	if p.Geometry != DefaultGeometry() {
		t.Fatalf("default.quire should match DefaultGeometry:\n got %s\nwant %s", p.Geometry, DefaultGeometry())
	}
	if p.Geometry.LinesPerPage() != 45 {
		t.Fatalf("lines per page = %d", p.Geometry.LinesPerPage())
	}

	if _, err := LoadProfile("../examples/report.quire"); err != nil {
		t.Fatalf("report.quire: %v", err)
	}
	if _, err := LoadProfile("../examples/missing.quire"); err == nil {
		t.Fatalf("missing file should fail")
	}
}
