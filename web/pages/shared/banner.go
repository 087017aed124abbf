package shared

import (
	"html"

	"github.com/rohanthewiz/element"
)

// Banner is the site header.
type Banner struct {
	Title    string
	Subtitle string
}

func (bn Banner) Render(b *element.Builder) any {
	b.Header("class", "banner").R(
		b.H1("class", "banner-title").T(html.EscapeString(bn.Title)),
		func() (x any) {
			if bn.Subtitle != "" {
				b.P("class", "banner-subtitle").T(html.EscapeString(bn.Subtitle))
			}
			return
		}(),
	)
	return nil
}
