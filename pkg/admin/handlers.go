package admin

import (
	"net/http"
	"time"
)

// handleHealth reports liveness.
// GET /health
func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGetStatus reports server version, uptime, and entity counts.
// GET /status
func (a *API) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	workspaces, err := a.dataStore.Workspaces().List(ctx)
	if err != nil {
		a.logger().Error("failed to count workspaces", "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}
	requests, err := a.dataStore.Requests().List(ctx, nil)
	if err != nil {
		a.logger().Error("failed to count requests", "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"version":             a.version,
		"uptime":              int64(time.Since(a.startTime).Seconds()),
		"port":                a.port,
		"workspaceCount":      len(workspaces),
		"requestCount":        len(requests),
		"encryptionConfigured": a.codec != nil,
	})
}
