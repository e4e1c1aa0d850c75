package fpdfrenderer

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"codeberg.org/go-pdf/fpdf"

	"github.com/ByLCY/quire/fonts"
	"github.com/ByLCY/quire/layout"
	"github.com/ByLCY/quire/renderer"
)

// Name 是该渲染器在 renderer 注册表中的名称。
const Name = "fpdf"

// utf8Family 是内嵌 TrueType 字体在 fpdf 中注册的族名。
const utf8Family = "quire"

var coreFonts = map[string]string{
	"":          "Helvetica",
	"helvetica": "Helvetica",
	"arial":     "Helvetica",
	"times":     "Times",
	"courier":   "Courier",
}

// Renderer 使用 go-pdf/fpdf 输出 PDF。默认使用 PDF 标准字体 Helvetica，
// 也可以内嵌 TrueType 字体以支持 cp1252 之外的字符。
type Renderer struct {
	family string
	ttf    []byte // nil 表示标准字体
	tr     func(string) string

	// metrics 是只用于测宽的文档；fpdf 对象不是并发安全的
	mu      sync.Mutex
	metrics *fpdf.Fpdf
}

var _ renderer.Backend = (*Renderer)(nil)

func init() {
	renderer.Register(Name, func(font string) (renderer.Backend, error) {
		return New(font)
	})
}

// New creates a renderer for font: a core font name (helvetica, times, courier),
// a builtin font name (see fonts.Names) or a TrueType file path.
func New(font string) (*Renderer, error) {
	r := &Renderer{}
	if family, ok := coreFonts[strings.ToLower(font)]; ok {
		r.family = family
	} else {
		data, err := loadTTF(font)
		if err != nil {
			return nil, err
		}
		r.family = utf8Family
		r.ttf = data
	}

	r.metrics = r.newPDF(layout.DefaultGeometry().PageWidth, layout.DefaultGeometry().PageHeight)
	if r.ttf == nil {
		r.tr = r.metrics.UnicodeTranslatorFromDescriptor("")
	} else {
		r.tr = func(s string) string { return s }
	}
	if err := r.metrics.Error(); err != nil {
		return nil, fmt.Errorf("初始化字体 %s 失败: %w", font, err)
	}
	return r, nil
}

// ContentType implements renderer.Backend.
func (r *Renderer) ContentType() string { return "application/pdf" }

// Extension implements renderer.Backend.
func (r *Renderer) Extension() string { return ".pdf" }

// TextWidth 实现 layout.TextMeasurer，单位 pt。
func (r *Renderer) TextWidth(text string, fontSize float64) float64 {
	if text == "" {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics.SetFontSize(fontSize)
	return r.metrics.GetStringWidth(r.tr(text))
}

// Render 输出 PDF；fpdf 的 y 轴向下，这里把基线坐标换算为距页顶的距离。
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	first := doc.Pages[0]
	pdf := r.newPDF(first.Width, first.Height)
	applyMeta(pdf, doc.Meta)
	for _, page := range doc.Pages {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: page.Width, Ht: page.Height})
		for _, ln := range page.Lines {
			if strings.TrimSpace(ln.Text) == "" {
				continue
			}
			pdf.SetFontSize(ln.FontSize)
			pdf.Text(ln.X, page.Height-ln.Y, r.tr(ln.Text))
		}
		if pdf.Err() {
			return nil, fmt.Errorf("绘制页面失败: %w", pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) newPDF(width, height float64) *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if r.ttf != nil {
		pdf.AddUTF8FontFromBytes(r.family, "", r.ttf)
	}
	pdf.SetFont(r.family, "", layout.DefaultGeometry().FontSize)
	return pdf
}

func applyMeta(pdf *fpdf.Fpdf, meta layout.DocumentMeta) {
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetCreator(meta.Creator, true)
	pdf.SetKeywords(meta.KeywordList(), true)
}

func loadTTF(font string) ([]byte, error) {
	if fonts.IsBuiltin(font) {
		return fonts.Load(font)
	}
	data, err := os.ReadFile(font)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", font, err)
	}
	return data, nil
}
