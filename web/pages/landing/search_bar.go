package landing

import (
	"html"

	"github.com/rohanthewiz/element"
)

// SearchBar is the country input and its Search button. It is a plain GET
// form, so searching works without JavaScript; app.js takes it over to add
// debounced search-as-you-type and partial updates.
type SearchBar struct {
	Query string
}

// Render implements element.Component
func (s SearchBar) Render(b *element.Builder) (x any) {
	b.Form("class", "search-bar", "id", "search-form", "method", "get", "action", "/").R(
		b.Input("type", "text", "class", "search-bar-input", "id", "country-input",
			"name", "country", "value", html.EscapeString(s.Query),
			"placeholder", "Enter a country name...",
			"autocomplete", "off", "aria-label", "Country"),
		b.Button("type", "submit", "class", "btn btn-primary", "id", "search-button").T("Search"),
	)
	return
}
