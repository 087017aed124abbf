package landing

import (
	"html"

	"github.com/rohanthewiz/element"
)

// ProvinceFilter is the province dropdown. Its first option is always the
// "All" sentinel; app.js re-filters on change.
type ProvinceFilter struct {
	Provinces []string
	Selected  string
}

// Render implements element.Component
func (f ProvinceFilter) Render(b *element.Builder) any {
	b.DivClass("province-filter").R(
		b.Label("for", "province-select", "class", "province-label").T("Province"),
		b.Select("class", "province-select", "id", "province-select", "name", "province").R(
			func() (x any) {
				for _, province := range f.Provinces {
					value := html.EscapeString(province)
					if province == f.Selected {
						b.Option("value", value, "selected", "selected").T(value)
					} else {
						b.Option("value", value).T(value)
					}
				}
				return
			}(),
		),
	)
	return nil
}
