package layout

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ByLCY/quire/dsl"
)

// Profile 是从版式文件解析出的完整排版设置。
type Profile struct {
	Name     string       `json:"name"`
	Geometry Geometry     `json:"geometry"`
	Wrapper  Wrapper      `json:"wrapper"`
	Font     string       `json:"font,omitempty"` // 渲染器字体名或字体文件路径，空表示渲染器默认字体
	Meta     DocumentMeta `json:"meta"`
}

// DefaultProfile 返回与 DefaultGeometry 对应的版式。
func DefaultProfile() Profile {
	return Profile{
		Name:     "default",
		Geometry: DefaultGeometry(),
		Meta:     DocumentMeta{Title: "Export", Creator: "quire"},
	}
}

// LoadProfile 读取并解析版式文件。
func LoadProfile(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return Profile{}, fmt.Errorf("无法打开版式文件 %s: %w", path, err)
	}
	defer f.Close()
	return ReadProfile(path, f)
}

// ReadProfile 从 r 解析版式；name 用于报错定位。
func ReadProfile(name string, r io.Reader) (Profile, error) {
	doc, err := dsl.Parse(name, r)
	if err != nil {
		return Profile{}, fmt.Errorf("解析版式失败: %w", err)
	}
	return ProfileFromDSL(doc)
}

// ProfileFromDSL 把 DSL AST 转为 Profile。未出现的设置沿用 DefaultProfile，
// 结果的 Geometry 一定通过 Validate。
func ProfileFromDSL(doc *dsl.Profile) (Profile, error) {
	if doc == nil {
		return Profile{}, fmt.Errorf("版式为空")
	}
	p := DefaultProfile()
	p.Name = doc.Name

	var page *dsl.PageSection
	for _, section := range doc.Sections {
		switch {
		case section.Meta != nil:
			applyMeta(&p.Meta, section.Meta.Block)
		case section.Page != nil:
			if page != nil {
				return Profile{}, fmt.Errorf("版式 %s 只能包含一个 page 段落（第 %d 行）", doc.Name, section.Page.Pos.Line)
			}
			page = section.Page
		}
	}
	if page != nil {
		if err := applyPage(&p, page); err != nil {
			return Profile{}, err
		}
	}
	if err := p.Geometry.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func applyMeta(meta *DocumentMeta, block *dsl.Block) {
	if a := block.Lookup("title"); a != nil {
		meta.Title = a.Value.Text()
	}
	if a := block.Lookup("author"); a != nil {
		meta.Author = a.Value.Text()
	}
	if a := block.Lookup("subject"); a != nil {
		meta.Subject = a.Value.Text()
	}
	if a := block.Lookup("creator"); a != nil {
		meta.Creator = a.Value.Text()
	}
	if a := block.Lookup("keywords"); a != nil {
		meta.Keywords = a.Value.Strings()
	}
}

func applyPage(p *Profile, page *dsl.PageSection) error {
	g := &p.Geometry
	landscape := false
	var margins []float64
	params := page.Spec.Params
	for i := 0; i < len(params); i++ {
		switch params[i].Value {
		case "portrait":
			landscape = false
		case "landscape":
			landscape = true
		case "margin":
			// 最多读取 4 个长度，遇到非长度 token 停止
			for j := i + 1; j < len(params) && len(margins) < 4; j++ {
				l, err := ParseLength(params[j].Value)
				if err != nil {
					break
				}
				margins = append(margins, l.ToPT())
				i = j
			}
		default:
			return fmt.Errorf("page 参数 %q 无法识别（第 %d 行）", params[i].Value, params[i].Pos.Line)
		}
	}

	w, h, err := PageSize(page.Spec.Size, landscape)
	if err != nil {
		return err
	}
	g.PageWidth, g.PageHeight = w, h
	applyMargins(g, margins)

	block := page.Block
	if a := block.Lookup("font-size"); a != nil {
		l, err := ParseLength(a.Value.Text())
		if err != nil {
			return fmt.Errorf("font-size: %w", err)
		}
		g.FontSize = l.ToPT()
		// 仅修改字号时行距按原比例缩放
		g.LineHeight = g.FontSize * DefaultGeometry().LineHeight / DefaultGeometry().FontSize
	}
	if a := block.Lookup("line-height"); a != nil {
		spec, err := ParseLineHeight(a.Value.Text())
		if err != nil {
			return fmt.Errorf("line-height: %w", err)
		}
		g.LineHeight = spec.Resolve(g.FontSize)
	}
	if a := block.Lookup("font"); a != nil {
		p.Font = a.Value.Text()
	}
	if a := block.Lookup("wrap"); a != nil {
		switch v := a.Value.Text(); v {
		case "verbatim", "normal":
			p.Wrapper.Overflow = OverflowVerbatim
		case "break-word", "anywhere":
			p.Wrapper.Overflow = OverflowBreak
		default:
			return fmt.Errorf("wrap 取值 %q 无法识别", v)
		}
	}
	if a := block.Lookup("paragraphs"); a != nil {
		keep, err := strconv.ParseBool(strings.TrimSpace(a.Value.Text()))
		if err != nil {
			return fmt.Errorf("paragraphs: %w", err)
		}
		p.Wrapper.KeepParagraphs = keep
	}
	return nil
}

// applyMargins 采用 CSS 语义：
// 1 个值四边相同；2 个值为 上下/左右；3 个值为 上/左右/下；4 个值为 上/右/下/左。
func applyMargins(g *Geometry, vals []float64) {
	switch len(vals) {
	case 1:
		g.MarginTop, g.MarginRight, g.MarginBottom, g.MarginLeft = vals[0], vals[0], vals[0], vals[0]
	case 2:
		g.MarginTop, g.MarginBottom = vals[0], vals[0]
		g.MarginRight, g.MarginLeft = vals[1], vals[1]
	case 3:
		g.MarginTop, g.MarginRight, g.MarginBottom, g.MarginLeft = vals[0], vals[1], vals[2], vals[1]
	case 4:
		g.MarginTop, g.MarginRight, g.MarginBottom, g.MarginLeft = vals[0], vals[1], vals[2], vals[3]
	}
}
