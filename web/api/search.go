package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"unisearch/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// Handlers serves the search API for every browser session in Store.
type Handlers struct {
	Store    *models.SessionStore
	Exporter *models.CardExporter
	Dropdown string
}

// NewHandlers returns handlers over store that render dropdowns per dropdownMode.
func NewHandlers(store *models.SessionStore, exporter *models.CardExporter, dropdownMode string) *Handlers {
	return &Handlers{Store: store, Exporter: exporter, Dropdown: dropdownMode}
}

// Controller returns the search controller of the request's session.
func (h *Handlers) Controller(ctx rweb.Context) *models.SearchController {
	sessionID, _ := ctx.Get(SessionIDKey).(string)
	if sessionID == "" {
		// never share state between callers we cannot tell apart
		sessionID = models.NewSessionID()
	}
	return h.Store.Controller(sessionID)
}

// View renders snap the way every API endpoint returns it.
func (h *Handlers) View(snap models.Snapshot) models.View {
	return models.NewView(snap, h.Dropdown)
}

// RequestContext returns the context for upstream work done on behalf of ctx.
// rweb.Context carries no context.Context, so a client that disconnects does
// not cancel the call; the directory client's timeout bounds it instead.
func RequestContext(rweb.Context) context.Context {
	return context.Background()
}

// SelectionInput is the body of PUT /api/v1/selection.
type SelectionInput struct {
	Province *string `json:"province"`
}

// Search handles GET /api/v1/search?country=...&trigger=explicit|auto
// Runs a search for the session and returns the resulting view. Upstream
// failures are not HTTP errors: they come back as a view with status failed.
// An empty country changes nothing and returns the current view.
func (h *Handlers) Search(ctx rweb.Context) error {
	country := ctx.Request().QueryParam("country")
	trigger := models.ParseTrigger(ctx.Request().QueryParam("trigger"))

	snap := h.Controller(ctx).Search(RequestContext(ctx), country, trigger)
	return writeSuccess(ctx, http.StatusOK, h.View(snap))
}

// Select handles PUT /api/v1/selection
// Changes the province filter. Any string is accepted; a province that is
// not in the index simply yields an empty grid.
func (h *Handlers) Select(ctx rweb.Context) error {
	var input SelectionInput
	if err := json.Unmarshal(ctx.Request().Body(), &input); err != nil {
		logger.LogErr(serr.Wrap(err, "failed to decode request body"), "invalid JSON")
		return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
	}
	if input.Province == nil {
		return writeError(ctx, http.StatusBadRequest, "province is required")
	}

	snap := h.Controller(ctx).Select(*input.Province)
	return writeSuccess(ctx, http.StatusOK, h.View(snap))
}

// Session handles GET /api/v1/session
// Returns the current view without changing anything.
func (h *Handlers) Session(ctx rweb.Context) error {
	return writeSuccess(ctx, http.StatusOK, h.View(h.Controller(ctx).Snapshot()))
}

// Card handles GET /api/v1/cards/:index
// Rasterizes the card at index of the session's filtered view and returns it
// as a JPEG download. When the card is not rendered any more, or the export
// fails, nothing is downloaded and the answer is 204 No Content.
func (h *Handlers) Card(ctx rweb.Context) error {
	index, err := strconv.Atoi(ctx.Request().Param("index"))
	if err != nil || index < 0 {
		return writeError(ctx, http.StatusBadRequest, "invalid card index")
	}

	sink := &attachmentSink{}
	sc := h.Controller(ctx)
	if !h.Exporter.Export(RequestContext(ctx), sc.CardRef(index), index, sink) {
		ctx.SetStatus(http.StatusNoContent)
		return nil
	}

	ctx.Response().SetHeader("Content-Type", "image/jpeg")
	ctx.Response().SetHeader("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sink.filename))
	ctx.Response().SetHeader("Cache-Control", "no-store")
	return ctx.Bytes(sink.data)
}

// attachmentSink holds an exported card until it is written as the response body.
type attachmentSink struct {
	filename string
	data     []byte
}

func (as *attachmentSink) Deliver(filename string, data []byte) error {
	if len(data) == 0 {
		return serr.New("empty card image")
	}
	as.filename = filename
	as.data = data
	return nil
}
