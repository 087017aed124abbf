package comps

import (
	"html"

	"github.com/rohanthewiz/element"
)

// Heading is a section heading with an optional hint line underneath.
type Heading struct {
	Title string
	Hint  string
}

func (h Heading) Render(b *element.Builder) (x any) {
	b.DivClass("heading").R(
		b.H2("class", "heading-title").T(html.EscapeString(h.Title)),
		func() (x any) {
			if h.Hint != "" {
				b.Small("class", "heading-hint").T(html.EscapeString(h.Hint))
			}
			return
		}(),
	)
	return
}
