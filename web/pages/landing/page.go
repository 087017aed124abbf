package landing

import (
	"strconv"
	"time"

	"unisearch/models"
	"unisearch/web/pages/comps"
	"unisearch/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// Page is the single-page search widget
type Page struct {
	shared.Page
	View       models.View
	AutoSearch bool
	Debounce   time.Duration
}

// NewPage creates the landing page for view
func NewPage(view models.View, autoSearch bool, debounce time.Duration) Page {
	return Page{
		Page: shared.Page{
			Title:    "University Search",
			Subtitle: "Look up the universities of any country",
		},
		View:       view,
		AutoSearch: autoSearch,
		Debounce:   debounce,
	}
}

// Render generates the complete HTML for the landing page
func (p Page) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		p.renderHead(b),
		p.renderBody(b),
	)

	return b.String()
}

func (p Page) renderHead(b *element.Builder) any {
	return b.Head().R(
		b.Meta("charset", "UTF-8"),
		b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
		b.Title().T(p.Title),
		b.Link("rel", "icon", "href", "/favicon.ico"),
		b.Link("rel", "stylesheet", "href", "/static/css/app.css?v=1"),
	)
}

func (p Page) renderBody(b *element.Builder) any {
	// app.js reads its settings from the data attributes
	return b.Body("data-auto-search", strconv.FormatBool(p.AutoSearch),
		"data-debounce-ms", strconv.FormatInt(p.Debounce.Milliseconds(), 10)).R(
		b.Div("class", "app-container", "id", "app").R(
			element.RenderComponents(b, p.Banner()),

			b.Main("class", "app-main").R(
				element.RenderComponents(b,
					comps.Heading{Title: "Search by country", Hint: "e.g. Pakistan, Canada, Chile"},
					SearchBar{Query: p.View.Session.Query},
					Results{View: p.View},
				),
			),

			element.RenderComponents(b, StatusBar{View: p.View}, p.Footer()),
		),

		b.Script("src", "/static/js/app.js?v=1").R(),
	)
}
