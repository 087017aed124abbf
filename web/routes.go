package web

import (
	"unisearch/models"
	"unisearch/web/api"
	"unisearch/web/pages/landing"

	"github.com/rohanthewiz/rweb"
)

// setupRoutes configures all application routes
func setupRoutes(s *rweb.Server, app *App) {
	h := api.NewHandlers(app.Store, app.Exporter, app.Config.Search.Dropdown)

	// Page routes - HTML responses
	s.Get("/", func(ctx rweb.Context) error {
		view := applyQuery(ctx, h, models.TriggerExplicit)
		page := landing.NewPage(view, app.Config.Search.AutoSearch, app.Config.Search.Debounce)
		return ctx.WriteHTML(page.Render())
	})

	// Results fragment swapped in by app.js
	s.Get("/partials/results", func(ctx rweb.Context) error {
		trigger := models.ParseTrigger(ctx.Request().QueryParam("trigger"))
		return ctx.WriteHTML(landing.RenderResults(applyQuery(ctx, h, trigger)))
	})

	s.Get("/health", api.Health(app.Store))

	// API v1 routes - JSON or MessagePack responses
	s.Get("/api/v1/search", h.Search)     // Search a country
	s.Put("/api/v1/selection", h.Select)  // Change the province filter
	s.Get("/api/v1/session", h.Session)   // Current view
	s.Get("/api/v1/cards/:index", h.Card) // Download a card as JPEG
}

// applyQuery runs what the query string asks for: a search when country is
// set, a province selection when province is set, and returns the view.
func applyQuery(ctx rweb.Context, h *api.Handlers, trigger models.Trigger) models.View {
	sc := h.Controller(ctx)
	snap := sc.Snapshot()

	if country := ctx.Request().QueryParam("country"); country != "" {
		snap = sc.Search(api.RequestContext(ctx), country, trigger)
	}
	if province := ctx.Request().QueryParam("province"); province != "" {
		snap = sc.Select(province)
	}
	return h.View(snap)
}
