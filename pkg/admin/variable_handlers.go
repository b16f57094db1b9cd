package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getreqd/reqd/pkg/secrets"
	"github.com/getreqd/reqd/pkg/store"
)

// UpdateVariablesRequest is the full-replacement variable list submitted by
// the editor UI. Values are plaintext on the way in and are encrypted before
// they touch disk.
type UpdateVariablesRequest struct {
	Variables []secrets.PlainVariable `json:"variables"`
}

// handleGetVariables returns a workspace's variables with decrypted values.
// Records whose ciphertext does not verify come back with
// error=decryption_failed instead of being dropped, so operators can see
// that something is broken.
// GET /workspaces/{id}/variables
func (a *API) handleGetVariables(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, err := a.dataStore.Workspaces().Get(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Workspace not found")
			return
		}
		a.logger().Error("failed to get workspace", "workspaceID", id, "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	variables, err := a.resolver.DecryptAll(r.Context(), id)
	if err != nil {
		if errors.Is(err, secrets.ErrNoSecret) {
			writeError(w, http.StatusInternalServerError, "encryption_not_configured", ErrMsgNotConfigured)
			return
		}
		a.logger().Error("failed to read variables", "workspaceID", id, "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"variables": variables})
}

// handleUpdateVariables replaces a workspace's variable set wholesale.
// Blank and duplicate keys are rejected here at the boundary; the stored
// values are always ciphertext envelopes. Returns the decrypted list as
// confirmation.
// PUT /workspaces/{id}/variables
func (a *API) handleUpdateVariables(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, err := a.dataStore.Workspaces().Get(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Workspace not found")
			return
		}
		a.logger().Error("failed to get workspace", "workspaceID", id, "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	var input UpdateVariablesRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", sanitizeJSONError(err, a.logger()))
		return
	}

	seen := make(map[string]bool, len(input.Variables))
	for _, v := range input.Variables {
		if v.Key == "" {
			writeError(w, http.StatusBadRequest, "validation_error", "variable keys cannot be blank")
			return
		}
		if seen[v.Key] {
			writeError(w, http.StatusBadRequest, "validation_error", "duplicate variable key: "+v.Key)
			return
		}
		seen[v.Key] = true
	}

	variables, err := a.resolver.Replace(r.Context(), id, input.Variables)
	if err != nil {
		if errors.Is(err, secrets.ErrNoSecret) {
			writeError(w, http.StatusInternalServerError, "encryption_not_configured", ErrMsgNotConfigured)
			return
		}
		a.logger().Error("failed to save variables", "workspaceID", id, "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	a.logger().Info("variables replaced", "workspaceID", id, "count", len(variables))
	writeJSON(w, http.StatusOK, map[string]any{"variables": variables})
}
