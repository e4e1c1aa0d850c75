package layout

import "strings"

// 该文件定义排版结果的数据结构，供分页、渲染器与调试 JSON 共用。
// 所有长度单位均为 pt，坐标原点位于页面左下角，y 轴向上。

// Line 是换行后、尚未定位的一行文本。
type Line struct {
	Text string `json:"text"`
}

// PositionedLine 是已经分配到某一页并带有绘制坐标的一行。
type PositionedLine struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"` // 基线位置
	FontSize float64 `json:"fontSize"`
}

// Page 记录页面尺寸与按顺序排列的行，尺寸在创建后不再变化。
type Page struct {
	Width  float64          `json:"width"`
	Height float64          `json:"height"`
	Lines  []PositionedLine `json:"lines"`
}

// Document 是排版的最终产物，交给渲染器后不应再被修改。
type Document struct {
	Pages []Page       `json:"pages"`
	Meta  DocumentMeta `json:"meta"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}

// KeywordList 把关键词以 ", " 连接，供各渲染器写入 PDF Keywords。
func (m DocumentMeta) KeywordList() string {
	return strings.Join(m.Keywords, ", ")
}

// LineCount 返回所有页面上的行数之和。
func (d *Document) LineCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, p := range d.Pages {
		n += len(p.Lines)
	}
	return n
}

// Texts 按页序、行序返回所有行的文本。
func (d *Document) Texts() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, d.LineCount())
	for _, p := range d.Pages {
		for _, ln := range p.Lines {
			out = append(out, ln.Text)
		}
	}
	return out
}
