package binding

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Prepare 把外部传入的原始文本整理成可排版的内容：
// 替换 ${...} 占位符，统一换行符，并做 NFC 规范化，
// 使组合字符序列与预组合字符测量出相同的宽度。
func Prepare(raw string, data any) string {
	text := Interpolate(raw, data)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return norm.NFC.String(text)
}
