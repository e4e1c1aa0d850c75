package renderer

import (
	"fmt"

	"github.com/ByLCY/quire/binding"
	"github.com/ByLCY/quire/layout"
)

// Export 串联内容整理、换行、分页与输出。title 非空时覆盖版式中的标题。
// 排版参数错误原样返回，可用 errors.Is(err, layout.ErrInvalidLayoutConfig) 判断。
func Export(b Backend, profile layout.Profile, content, title string, data any) (*layout.Document, []byte, error) {
	if b == nil {
		return nil, nil, fmt.Errorf("renderer 不能为空")
	}
	text := binding.Prepare(content, data)
	doc, err := layout.TypesetWith(profile.Wrapper, text, profile.Geometry, b)
	if err != nil {
		return nil, nil, err
	}
	doc.Meta = profile.Meta
	if title != "" {
		doc.Meta.Title = title
	}
	out, err := b.Render(doc)
	if err != nil {
		return doc, nil, fmt.Errorf("渲染失败: %w", err)
	}
	return doc, out, nil
}
