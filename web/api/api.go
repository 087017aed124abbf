package api

import (
	"net/http"
	"strings"

	"unisearch/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// SessionIDKey is the context key under which the session middleware stores
// the caller's session id.
const SessionIDKey = "session_id"

// APIResponse provides a consistent response structure for all API endpoints.
// Success responses include data, error responses include an error message.
type APIResponse struct {
	Success bool   `json:"success" msgpack:"success"`
	Data    any    `json:"data,omitempty" msgpack:"data,omitempty"`
	Error   string `json:"error,omitempty" msgpack:"error,omitempty"`
}

// writeSuccess sends a successful response with data.
func writeSuccess(ctx rweb.Context, status int, data any) error {
	return writeResponse(ctx, status, APIResponse{Success: true, Data: data})
}

// writeError sends an error response.
func writeError(ctx rweb.Context, status int, message string) error {
	return writeResponse(ctx, status, APIResponse{Success: false, Error: message})
}

// writeResponse encodes resp as MessagePack when the client asks for it
// in Accept, and as JSON otherwise.
func writeResponse(ctx rweb.Context, status int, resp APIResponse) error {
	if !wantsMsgPack(ctx) {
		ctx.SetStatus(status)
		return ctx.WriteJSON(resp)
	}

	data, err := models.EncodeMsgPack(resp)
	if err != nil {
		logger.LogErr(err, "msgpack encoding failed, falling back to JSON")
		ctx.SetStatus(status)
		return ctx.WriteJSON(resp)
	}
	ctx.Response().SetHeader("Content-Type", models.MsgPackContentType)
	ctx.SetStatus(status)
	return ctx.Bytes(data)
}

func wantsMsgPack(ctx rweb.Context) bool {
	return strings.Contains(ctx.Request().Header("Accept"), models.MsgPackContentType)
}

// Health handles GET /health
func Health(store *models.SessionStore) rweb.Handler {
	return func(ctx rweb.Context) error {
		return writeSuccess(ctx, http.StatusOK, map[string]any{
			"status":   "ok",
			"sessions": store.Len(),
		})
	}
}
