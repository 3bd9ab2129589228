package api

import (
	"net/http"

	"github.com/rohanthewiz/rweb"
)

// APIResponse provides a consistent JSON response structure for all API endpoints.
// Success responses include data, error responses include an error message.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// writeSuccess sends a successful JSON response with data.
// Uses rweb's built-in WriteJSON which sets content-type automatically.
func writeSuccess(ctx rweb.Context, status int, data interface{}) error {
	ctx.SetStatus(status)
	return ctx.WriteJSON(APIResponse{Success: true, Data: data})
}

// writeError sends an error JSON response.
func writeError(ctx rweb.Context, status int, message string) error {
	ctx.SetStatus(status)
	return ctx.WriteJSON(APIResponse{Success: false, Error: message})
}

// writeErrorData sends an error JSON response that still carries data,
// e.g. the unchanged draft after a rejected edit.
func writeErrorData(ctx rweb.Context, status int, message string, data interface{}) error {
	ctx.SetStatus(status)
	return ctx.WriteJSON(APIResponse{Success: false, Data: data, Error: message})
}

// HealthCheck handles GET /health
func HealthCheck(ctx rweb.Context) error {
	return writeSuccess(ctx, http.StatusOK, map[string]string{"status": "ok"})
}
