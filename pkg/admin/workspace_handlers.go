package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	idgen "github.com/getreqd/reqd/internal/id"
	"github.com/getreqd/reqd/pkg/store"
)

// handleListWorkspaces returns all workspaces.
// GET /workspaces
func (a *API) handleListWorkspaces(w http.ResponseWriter, r *http.Request) {
	workspaces, err := a.dataStore.Workspaces().List(r.Context())
	if err != nil {
		a.logger().Error("failed to list workspaces", "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"workspaces": workspaces,
		"count":      len(workspaces),
	})
}

// handleGetWorkspace returns a specific workspace.
// GET /workspaces/{id}
func (a *API) handleGetWorkspace(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	ws, err := a.dataStore.Workspaces().Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Workspace not found")
			return
		}
		a.logger().Error("failed to get workspace", "workspaceID", id, "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, ws)
}

// handleCreateWorkspace creates a new workspace.
// POST /workspaces
func (a *API) handleCreateWorkspace(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", sanitizeJSONError(err, a.logger()))
		return
	}
	if input.Name == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "name is required")
		return
	}

	ws := &store.Workspace{
		ID:          idgen.Prefixed("ws"),
		Name:        input.Name,
		Description: input.Description,
	}
	if err := a.dataStore.Workspaces().Create(r.Context(), ws); err != nil {
		a.logger().Error("failed to create workspace", "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	a.logger().Info("workspace created", "workspaceID", ws.ID, "name", ws.Name)
	writeCreated(w, ws)
}

// handleUpdateWorkspace updates a workspace's name or description.
// PUT /workspaces/{id}
func (a *API) handleUpdateWorkspace(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var input struct {
		Name        *string `json:"name,omitempty"`
		Description *string `json:"description,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", sanitizeJSONError(err, a.logger()))
		return
	}

	ws, err := a.dataStore.Workspaces().Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Workspace not found")
			return
		}
		a.logger().Error("failed to get workspace", "workspaceID", id, "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	if input.Name != nil {
		if *input.Name == "" {
			writeError(w, http.StatusBadRequest, "validation_error", "name cannot be blank")
			return
		}
		ws.Name = *input.Name
	}
	if input.Description != nil {
		ws.Description = *input.Description
	}

	if err := a.dataStore.Workspaces().Update(r.Context(), ws); err != nil {
		a.logger().Error("failed to update workspace", "workspaceID", id, "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, ws)
}

// handleDeleteWorkspace deletes a workspace and everything it owns.
// DELETE /workspaces/{id}
func (a *API) handleDeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := a.dataStore.Workspaces().Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Workspace not found")
			return
		}
		a.logger().Error("failed to delete workspace", "workspaceID", id, "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	a.logger().Info("workspace deleted", "workspaceID", id)
	writeNoContent(w)
}
