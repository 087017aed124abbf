// Package shared contains components used by more than one page.
package shared

// Page is embedded by full-page views to share the site chrome.
type Page struct {
	Title    string
	Subtitle string
}

// Banner returns the header for the page.
func (p Page) Banner() Banner {
	return Banner{Title: p.Title, Subtitle: p.Subtitle}
}

// Footer returns the page footer.
func (p Page) Footer() Footer {
	return Footer{}
}
