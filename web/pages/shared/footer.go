package shared

import "github.com/rohanthewiz/element"

// Footer credits the data source.
type Footer struct{}

func (f Footer) Render(b *element.Builder) any {
	b.Footer("class", "site-footer").R(
		b.P().R(
			b.Span().T("University data from the "),
			b.A("href", "http://universities.hipolabs.com", "target", "_blank", "rel", "noopener noreferrer").
				T("Hipo university domains list"),
		),
	)
	return nil
}
