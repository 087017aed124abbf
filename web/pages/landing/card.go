package landing

import (
	"html"
	"strconv"
	"strings"

	"unisearch/models"

	"github.com/rohanthewiz/element"
)

// UniversityCard renders one university of the grid with its download link.
type UniversityCard struct {
	Index int
	Card  models.Card
}

// Render implements element.Component
func (c UniversityCard) Render(b *element.Builder) any {
	idx := strconv.Itoa(c.Index)

	b.Div("class", "card", "id", "card-"+idx, "data-index", idx).R(
		b.H3("class", "card-name").T(html.EscapeString(c.Card.Name)),
		b.P("class", "card-province").T(html.EscapeString(c.Card.ProvinceLabel)),
		b.DivClass("card-actions").R(
			b.A("href", safeHref(c.Card.Website), "class", "card-link",
				"target", "_blank", "rel", "noopener noreferrer").T(html.EscapeString(c.Card.LinkLabel)),
			b.A("href", "/api/v1/cards/"+idx, "class", "card-download",
				"download", models.CardFilename(c.Index)).T("Download"),
		),
	)
	return nil
}

// safeHref only lets http(s) links through; anything else from upstream data
// is neutralized.
func safeHref(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "#"
	}
	return html.EscapeString(strings.TrimSpace(raw))
}
