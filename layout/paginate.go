package layout

// Paginate 将有序的行依次放到固定尺寸的页面上，当前页的纵向空间用尽时新建一页。
// 行的文本不会被修改；没有任何行时仍返回一张空白页。
func Paginate(lines []Line, geom Geometry) (*Document, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}

	collector := newPageCollector(geom)
	for _, ln := range lines {
		collector.place(ln)
	}
	return &Document{Pages: collector.pages()}, nil
}

// Typeset 串联换行与分页：按 geom.TextWidth() 换行后分页。
func Typeset(content string, geom Geometry, measure TextMeasurer) (*Document, error) {
	return TypesetWith(Wrapper{}, content, geom, measure)
}

// TypesetWith 与 Typeset 相同，但使用指定的换行策略。
func TypesetWith(w Wrapper, content string, geom Geometry, measure TextMeasurer) (*Document, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	lines, err := w.Wrap(content, geom.TextWidth(), geom.FontSize, measure)
	if err != nil {
		return nil, err
	}
	return Paginate(lines, geom)
}

// pageCollector 按需分配页面；slot 是当前页已经放置的行数，
// 基线位置由 slot 直接算出，避免逐行累减带来的误差。
type pageCollector struct {
	geom     Geometry
	capacity int
	accs     [][]PositionedLine
	slot     int
}

func newPageCollector(geom Geometry) *pageCollector {
	pc := &pageCollector{
		geom:     geom,
		capacity: geom.LinesPerPage(),
	}
	pc.newPage()
	return pc
}

func (pc *pageCollector) newPage() {
	pc.accs = append(pc.accs, nil)
	pc.slot = 0
}

func (pc *pageCollector) contentTop() float64 {
	return pc.geom.PageHeight - pc.geom.MarginTop
}

func (pc *pageCollector) place(ln Line) {
	if pc.slot >= pc.capacity {
		pc.newPage()
	}
	cur := len(pc.accs) - 1
	pc.accs[cur] = append(pc.accs[cur], PositionedLine{
		Text:     ln.Text,
		X:        pc.geom.MarginLeft,
		Y:        pc.contentTop() - float64(pc.slot)*pc.geom.LineHeight,
		FontSize: pc.geom.FontSize,
	})
	pc.slot++
}

func (pc *pageCollector) pages() []Page {
	out := make([]Page, len(pc.accs))
	for i, acc := range pc.accs {
		if acc == nil {
			acc = []PositionedLine{}
		}
		out[i] = Page{
			Width:  pc.geom.PageWidth,
			Height: pc.geom.PageHeight,
			Lines:  acc,
		}
	}
	return out
}
