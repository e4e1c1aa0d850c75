package renderer

import "github.com/ByLCY/quire/layout"

// Renderer 将排版结果输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据以及可能的错误，不得修改 doc。
type Renderer interface {
	Render(doc *layout.Document) ([]byte, error)
}

// Backend 同时提供测量与输出能力：换行时用它测宽度，排版后用它输出，
// 两者使用同一套字体度量，保证行宽与最终绘制一致。
type Backend interface {
	Renderer
	layout.TextMeasurer
	// ContentType 与 Extension 描述输出格式，例如 "application/pdf" 与 ".pdf"。
	ContentType() string
	Extension() string
}
