package layout

// TextMeasurer 返回一段文本在给定字号（pt）下的渲染宽度（pt）。
// 实现必须是无副作用的，并且可以被多个排版调用并发使用。
type TextMeasurer interface {
	TextWidth(text string, fontSize float64) float64
}

// MeasureFunc 让普通函数实现 TextMeasurer。
type MeasureFunc func(text string, fontSize float64) float64

// TextWidth 实现 TextMeasurer。
func (f MeasureFunc) TextWidth(text string, fontSize float64) float64 {
	return f(text, fontSize)
}

// OverflowPolicy 决定单个词宽于行宽时的处理方式。
type OverflowPolicy int

const (
	// OverflowVerbatim 将过宽的词原样单独成行（默认）。
	OverflowVerbatim OverflowPolicy = iota
	// OverflowBreak 按字符把过宽的词拆成若干能放下的片段。
	OverflowBreak
)

// String returns the name used by the CLI and profiles.
func (p OverflowPolicy) String() string {
	switch p {
	case OverflowBreak:
		return "break-word"
	default:
		return "verbatim"
	}
}
