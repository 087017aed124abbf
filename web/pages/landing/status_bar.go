package landing

import (
	"fmt"

	"unisearch/models"

	"github.com/rohanthewiz/element"
)

// StatusBar represents the bottom status bar
type StatusBar struct {
	View models.View
}

// Render implements the element.Component interface
func (s StatusBar) Render(b *element.Builder) any {
	b.Div("class", "status-bar", "id", "status-bar").R(
		b.Span("class", "status-text", "id", "status-text").T(s.statusText()),
		b.Span("class", "result-count", "id", "result-count").T(s.countText()),
	)
	return nil
}

func (s StatusBar) statusText() string {
	switch s.View.Presentation.Phase {
	case models.PhaseLoading:
		return "Searching..."
	case models.PhaseNotSearched:
		return "Ready"
	}
	return "Done"
}

func (s StatusBar) countText() string {
	if s.View.Presentation.Phase != models.PhaseResults {
		return ""
	}
	total := len(s.View.Session.Results)
	shown := len(s.View.Session.Filtered)
	if shown == total {
		return fmt.Sprintf("%d universities", total)
	}
	return fmt.Sprintf("%d of %d universities", shown, total)
}
