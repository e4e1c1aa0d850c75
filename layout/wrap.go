package layout

import (
	"math"
	"strings"
)

// Wrapper 按空白把文本拆成不超过最大宽度的行。零值即默认策略：
// 连续空白折叠为单个空格，过宽的词原样单独成行。
type Wrapper struct {
	Overflow OverflowPolicy
	// KeepParagraphs 为 true 时换行符会结束当前行，段落间的空行保留为空 Line。
	KeepParagraphs bool
}

// Wrap 使用默认策略换行。空内容（或只有空白）返回零行。
func Wrap(content string, maxWidth, fontSize float64, measure TextMeasurer) ([]Line, error) {
	return Wrapper{}.Wrap(content, maxWidth, fontSize, measure)
}

// Wrap 将 content 拆分为有序的行；maxWidth 与 fontSize 均为 pt。
func (w Wrapper) Wrap(content string, maxWidth, fontSize float64, measure TextMeasurer) ([]Line, error) {
	if !isPositive(maxWidth) {
		return nil, invalidConfig("maxWidth", "must be positive, got %g", maxWidth)
	}
	if !isPositive(fontSize) {
		return nil, invalidConfig("fontSize", "must be positive, got %g", fontSize)
	}
	if measure == nil {
		return nil, invalidConfig("measurer", "is nil")
	}

	st := &wrapState{
		maxWidth: maxWidth,
		fontSize: fontSize,
		measure:  measure,
		overflow: w.Overflow,
	}
	if !w.KeepParagraphs {
		for _, token := range strings.Fields(content) {
			st.add(token)
		}
		st.flush()
		return st.lines, nil
	}

	for _, para := range paragraphs(content) {
		tokens := strings.Fields(para)
		if len(tokens) == 0 {
			st.blank()
			continue
		}
		for _, token := range tokens {
			st.add(token)
		}
		st.flush()
	}
	return st.lines, nil
}

// wrapState 是贪心换行的累加器：当前行缓冲与已完成的行。
type wrapState struct {
	maxWidth float64
	fontSize float64
	measure  TextMeasurer
	overflow OverflowPolicy

	buf   string
	lines []Line
}

func (s *wrapState) fits(text string) bool {
	return s.measure.TextWidth(text, s.fontSize) <= s.maxWidth
}

func (s *wrapState) add(token string) {
	candidate := token
	if s.buf != "" {
		candidate = s.buf + " " + token
	}
	if s.fits(candidate) {
		s.buf = candidate
		return
	}

	s.flush()
	if s.fits(token) {
		s.buf = token
		return
	}

	// 单个词比整行还宽
	if s.overflow == OverflowBreak {
		chunks := splitTokenByWidth(token, s.maxWidth, s.fontSize, s.measure)
		for _, chunk := range chunks[:len(chunks)-1] {
			s.emit(chunk)
		}
		s.buf = chunks[len(chunks)-1]
		return
	}
	s.emit(token)
}

func (s *wrapState) flush() {
	if s.buf == "" {
		return
	}
	s.emit(s.buf)
	s.buf = ""
}

func (s *wrapState) blank() {
	s.flush()
	s.emit("")
}

func (s *wrapState) emit(text string) {
	s.lines = append(s.lines, Line{Text: text})
}

// paragraphs 按换行符切分内容，并去掉首尾的空白段落，
// 保证只含空白的内容仍然得到零行。
func paragraphs(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	parts := strings.Split(content, "\n")

	start, end := 0, len(parts)
	for start < end && strings.TrimSpace(parts[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(parts[end-1]) == "" {
		end--
	}
	return parts[start:end]
}

// splitTokenByWidth 在字符边界处切分过宽的词，每段至少包含一个字符。
func splitTokenByWidth(token string, limit, fontSize float64, measure TextMeasurer) []string {
	var parts []string
	var builder strings.Builder
	for _, r := range token {
		if builder.Len() > 0 && measure.TextWidth(builder.String()+string(r), fontSize) > limit {
			parts = append(parts, builder.String())
			builder.Reset()
		}
		builder.WriteRune(r)
	}
	if builder.Len() > 0 {
		parts = append(parts, builder.String())
	}
	return parts
}

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
