package landing

import (
	"html"

	"unisearch/models"

	"github.com/rohanthewiz/element"
)

// Results is the swappable part of the page: loading indicator, province
// filter, card grid or the empty message, depending on the presentation.
// The same markup is served as a fragment by /partials/results.
type Results struct {
	View models.View
}

// Render implements element.Component
func (r Results) Render(b *element.Builder) any {
	p := r.View.Presentation
	status := StatusBar{View: r.View}

	// app.js copies data-status and data-count into the status bar after a swap
	b.Div("class", "results", "id", "results", "data-phase", string(p.Phase),
		"data-status", status.statusText(), "data-count", status.countText(),
		"aria-live", "polite").R(
		func() (x any) {
			switch p.Phase {
			case models.PhaseLoading:
				b.DivClass("loading", "id", "loading").R(
					b.SpanClass("spinner").R(),
					b.Span().T("Loading..."),
				)

			case models.PhaseEmpty:
				b.P("class", "empty-message").T(html.EscapeString(p.Message))

			case models.PhaseResults:
				if p.ShowDropdown {
					element.RenderComponents(b, ProvinceFilter{
						Provinces: r.View.Session.Provinces,
						Selected:  r.View.Session.SelectedProvince,
					})
				}
				b.DivClass("card-grid", "id", "card-grid").R(
					func() (x any) {
						for i, card := range r.View.Cards {
							element.RenderComponents(b, UniversityCard{Index: i, Card: card})
						}
						return
					}(),
				)
			}
			return
		}(),
	)
	return nil
}

// RenderResults renders the results fragment on its own.
func RenderResults(view models.View) string {
	b := element.NewBuilder()
	element.RenderComponents(b, Results{View: view})
	return b.String()
}
