package layout

import (
	"fmt"
	"math"
	"strings"
)

// Geometry 描述页面尺寸、边距与行参数，单位均为 pt。
type Geometry struct {
	PageWidth    float64 `json:"pageWidth"`
	PageHeight   float64 `json:"pageHeight"`
	MarginLeft   float64 `json:"marginLeft"`
	MarginRight  float64 `json:"marginRight,omitempty"` // 仅用于计算换行宽度，0 表示与左边距相同
	MarginTop    float64 `json:"marginTop"`
	MarginBottom float64 `json:"marginBottom"`
	FontSize     float64 `json:"fontSize"`
	LineHeight   float64 `json:"lineHeight"`
}

// eps 吸收可用高度除以行高时的浮点误差。
const eps = 1e-9

// pagePresets 以 pt 记录常用纸张的纵向尺寸。
var pagePresets = map[string][2]float64{
	"A4":     {595, 842},
	"A5":     {420, 595},
	"LETTER": {612, 792},
	"LEGAL":  {612, 1008},
}

// PageSize 返回预设纸张的宽高（pt），landscape 为 true 时交换宽高。
func PageSize(name string, landscape bool) (float64, float64, error) {
	base, ok := pagePresets[strings.ToUpper(name)]
	if !ok {
		return 0, 0, invalidConfig("page size", "unsupported paper size %q", name)
	}
	w, h := base[0], base[1]
	if landscape {
		w, h = h, w
	}
	return w, h, nil
}

// DefaultGeometry 返回 A4、Helvetica 12pt 导出所用的默认版式：
// 第一行基线位于 y=800，行距 17pt，每页 45 行（最后一行 y=52），正文宽 500pt。
func DefaultGeometry() Geometry {
	return Geometry{
		PageWidth:    595,
		PageHeight:   842,
		MarginLeft:   50,
		MarginRight:  45,
		MarginTop:    42,
		MarginBottom: 35,
		FontSize:     12,
		LineHeight:   17,
	}
}

// UsableHeight 是上下边距之间可用于排版的高度。
func (g Geometry) UsableHeight() float64 {
	return g.PageHeight - g.MarginTop - g.MarginBottom
}

// TextWidth 是左右边距之间的换行宽度。
func (g Geometry) TextWidth() float64 {
	right := g.MarginRight
	if right == 0 {
		right = g.MarginLeft
	}
	return g.PageWidth - g.MarginLeft - right
}

// LinesPerPage 返回每页可容纳的行数 floor(UsableHeight / LineHeight)。
func (g Geometry) LinesPerPage() int {
	if g.LineHeight <= 0 {
		return 0
	}
	return int(math.Floor(g.UsableHeight()/g.LineHeight + eps))
}

// Validate 检查分页所需的全部参数；任何字段 ≤ 0 或可用高度容纳不下一行都视为配置错误。
func (g Geometry) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"pageWidth", g.PageWidth},
		{"pageHeight", g.PageHeight},
		{"marginLeft", g.MarginLeft},
		{"marginTop", g.MarginTop},
		{"marginBottom", g.MarginBottom},
		{"fontSize", g.FontSize},
		{"lineHeight", g.LineHeight},
	}
	for _, f := range fields {
		if !isPositive(f.value) {
			return invalidConfig(f.name, "must be positive, got %g", f.value)
		}
	}
	if g.MarginRight < 0 || math.IsNaN(g.MarginRight) {
		return invalidConfig("marginRight", "must not be negative, got %g", g.MarginRight)
	}
	if g.MarginLeft >= g.PageWidth {
		return invalidConfig("marginLeft", "%g leaves no room on a page %g wide", g.MarginLeft, g.PageWidth)
	}
	usable := g.UsableHeight()
	if usable <= 0 {
		return invalidConfig("usable height", "pageHeight %g - marginTop %g - marginBottom %g = %g",
			g.PageHeight, g.MarginTop, g.MarginBottom, usable)
	}
	if g.LinesPerPage() < 1 {
		return invalidConfig("lineHeight", "%g does not fit into usable height %g", g.LineHeight, usable)
	}
	return nil
}

// String 便于日志输出。
func (g Geometry) String() string {
	return fmt.Sprintf("%gx%gpt margin(l=%g r=%g t=%g b=%g) font=%gpt line=%gpt",
		g.PageWidth, g.PageHeight, g.MarginLeft, g.MarginRight, g.MarginTop, g.MarginBottom, g.FontSize, g.LineHeight)
}
