package navigator

// Section is a block of a laid out page, in document coordinates.
type Section struct {
	ID     string
	Top    float64
	Height float64
}

// Page is an in-memory Viewport over a fixed layout.
type Page struct {
	Sections []Section
	Scroll   float64
	// Writes records every ScrollTo position.
	Writes []float64
}

// StackedPage lays out ids one after another, each with the given height.
func StackedPage(ids []string, height float64) *Page {
	p := &Page{}
	for i, id := range ids {
		p.Sections = append(p.Sections, Section{ID: id, Top: float64(i) * height, Height: height})
	}
	return p
}

func (p *Page) ElementRect(id string) (Rect, bool) {
	for _, s := range p.Sections {
		if s.ID == id {
			return Rect{Top: s.Top - p.Scroll, Height: s.Height}, true
		}
	}
	return Rect{}, false
}

func (p *Page) ScrollY() float64 { return p.Scroll }

func (p *Page) ScrollTo(y float64) {
	p.Scroll = y
	p.Writes = append(p.Writes, y)
}
