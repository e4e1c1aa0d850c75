package canvasrenderer

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/quire/fonts"
	"github.com/ByLCY/quire/layout"
	"github.com/ByLCY/quire/renderer"
)

// Name 是该渲染器在 renderer 注册表中的名称。
const Name = "canvas"

// Renderer draws layout documents via github.com/tdewolff/canvas and
// measures text with the same font, so wrapped lines match the output.
type Renderer struct {
	font string

	// canvas 的字体面带有内部缓存，测量与绘制都在 mu 下进行
	mu     sync.Mutex
	family *canvas.FontFamily
	faces  map[float64]*canvas.FontFace
}

var (
	_ renderer.Backend    = (*Renderer)(nil)
	_ layout.TextMeasurer = (*Renderer)(nil)
)

func init() {
	renderer.Register(Name, func(font string) (renderer.Backend, error) {
		return New(font)
	})
}

// New loads font (a builtin name such as "go-regular", or a TTF/OTF path)
// and returns a renderer. An empty font selects fonts.Default.
func New(font string) (*Renderer, error) {
	data, err := loadFontBytes(font)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("quire")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", displayName(font), err)
	}
	return &Renderer{
		font:   font,
		family: family,
		faces:  map[float64]*canvas.FontFace{},
	}, nil
}

// ContentType implements renderer.Backend.
func (r *Renderer) ContentType() string { return "application/pdf" }

// Extension implements renderer.Backend.
func (r *Renderer) Extension() string { return ".pdf" }

// TextWidth 实现 layout.TextMeasurer：canvas 以 mm 计量，这里换算回 pt。
func (r *Renderer) TextWidth(text string, fontSize float64) float64 {
	if text == "" {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return toPt(r.face(fontSize).TextWidth(text))
}

// Render renders the document into a PDF byte slice.
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var buf bytes.Buffer
	first := doc.Pages[0]
	writer := pdf.New(&buf, toMm(first.Width), toMm(first.Height), nil)
	applyMeta(writer, doc.Meta)
	for i, page := range doc.Pages {
		if i > 0 {
			writer.NewPage(toMm(page.Width), toMm(page.Height))
		}
		// 默认坐标系原点在左下角、y 轴向上，与排版坐标一致
		c := canvas.New(toMm(page.Width), toMm(page.Height))
		ctx := canvas.NewContext(c)
		r.drawPage(ctx, page)
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page) {
	for _, ln := range page.Lines {
		if strings.TrimSpace(ln.Text) == "" {
			continue
		}
		text := canvas.NewTextLine(r.face(ln.FontSize), ln.Text, canvas.Left)
		// y 为基线位置
		ctx.DrawText(toMm(ln.X), toMm(ln.Y), text)
	}
}

// face returns a cached font face for size (pt). Callers hold r.mu.
func (r *Renderer) face(size float64) *canvas.FontFace {
	if f, ok := r.faces[size]; ok {
		return f
	}
	f := r.family.Face(size, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	r.faces[size] = f
	return f
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	writer.SetInfo(meta.Title, meta.Subject, meta.KeywordList(), meta.Author, meta.Creator)
}

func loadFontBytes(font string) ([]byte, error) {
	if font == "" || fonts.IsBuiltin(font) {
		return fonts.Load(font)
	}
	data, err := os.ReadFile(font)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", font, err)
	}
	return data, nil
}

func displayName(font string) string {
	if font == "" {
		return fonts.Default
	}
	return font
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }
