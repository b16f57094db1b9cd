package admin

import (
	"encoding/json"
	"net/http"

	idgen "github.com/getreqd/reqd/internal/id"
	"github.com/getreqd/reqd/pkg/runner"
)

// handleExecute substitutes workspace variables into the submitted draft,
// performs the outbound call, and returns the classified response.
//
// Substitution problems never fail the call: the draft goes out as-is.
// Transport failures are the one thing that does, reported as a structured
// error with the underlying message; there is no retry.
// POST /execute
func (a *API) handleExecute(w http.ResponseWriter, r *http.Request) {
	var draft runner.Request
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", sanitizeJSONError(err, a.logger()))
		return
	}
	if draft.URL == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "url is required")
		return
	}

	// Each execution gets a correlation ID so its log lines can be tied
	// together; the draft URL is logged pre-substitution to keep resolved
	// secret values out of the logs.
	execID := idgen.UUID()
	log := a.logger().With("executionID", execID)

	substituted := a.engine.SubstituteRequest(r.Context(), draft)

	resp, err := a.runner.Execute(r.Context(), substituted)
	if err != nil {
		log.Warn("execution failed", "method", draft.Method, "url", draft.URL, "error", err)
		writeBadGateway(w, "execution_failed", err.Error())
		return
	}

	log.Debug("execution completed",
		"method", draft.Method, "status", resp.Status, "elapsedMs", resp.ElapsedMs, "sizeBytes", resp.SizeBytes)
	writeJSON(w, http.StatusOK, resp)
}
