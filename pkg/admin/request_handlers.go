package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	idgen "github.com/getreqd/reqd/internal/id"
	"github.com/getreqd/reqd/pkg/store"
)

// CreateRequestRequest is the request body for creating a request definition.
type CreateRequestRequest struct {
	Name        string            `json:"name"`
	WorkspaceID string            `json:"workspaceId"`
	FolderID    string            `json:"folderId,omitempty"`
	Method      string            `json:"method"`
	URL         string            `json:"url"`
	Headers     map[string]string `json:"headers,omitempty"`
	Body        string            `json:"body,omitempty"`
	SortKey     float64           `json:"sortKey,omitempty"`

	PreRequestScript string `json:"preRequestScript,omitempty"`
	TestScript       string `json:"testScript,omitempty"`
}

// UpdateRequestRequest is the request body for updating a request definition.
type UpdateRequestRequest struct {
	Name     *string            `json:"name,omitempty"`
	FolderID *string            `json:"folderId,omitempty"`
	Method   *string            `json:"method,omitempty"`
	URL      *string            `json:"url,omitempty"`
	Headers  *map[string]string `json:"headers,omitempty"`
	Body     *string            `json:"body,omitempty"`
	SortKey  *float64           `json:"sortKey,omitempty"`

	PreRequestScript *string `json:"preRequestScript,omitempty"`
	TestScript       *string `json:"testScript,omitempty"`
}

// handleListRequests returns request definitions, optionally filtered by
// workspace and folder.
// GET /requests?workspaceId=&folderId=
func (a *API) handleListRequests(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var filter *store.RequestFilter
	if query.Has("workspaceId") || query.Has("folderId") {
		filter = &store.RequestFilter{WorkspaceID: query.Get("workspaceId")}
		if query.Has("folderId") {
			folder := query.Get("folderId")
			filter.FolderID = &folder
		}
	}

	requests, err := a.dataStore.Requests().List(r.Context(), filter)
	if err != nil {
		a.logger().Error("failed to list requests", "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// handleGetRequest returns a single request definition.
// GET /requests/{id}
func (a *API) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	req, err := a.dataStore.Requests().Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Request not found")
			return
		}
		a.logger().Error("failed to get request", "requestID", id, "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, req)
}

// handleCreateRequest creates a new request definition.
// POST /requests
func (a *API) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	var input CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", sanitizeJSONError(err, a.logger()))
		return
	}
	if input.Name == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "name is required")
		return
	}
	if input.WorkspaceID == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "workspaceId is required")
		return
	}
	if input.Method == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "method is required")
		return
	}
	if _, err := a.dataStore.Workspaces().Get(r.Context(), input.WorkspaceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Workspace not found")
			return
		}
		a.logger().Error("failed to get workspace", "workspaceID", input.WorkspaceID, "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	req := &store.RequestDefinition{
		ID:               idgen.Prefixed("req"),
		WorkspaceID:      input.WorkspaceID,
		FolderID:         input.FolderID,
		Name:             input.Name,
		Method:           input.Method,
		URL:              input.URL,
		Headers:          input.Headers,
		Body:             input.Body,
		SortKey:          input.SortKey,
		PreRequestScript: input.PreRequestScript,
		TestScript:       input.TestScript,
	}
	if err := a.dataStore.Requests().Create(r.Context(), req); err != nil {
		a.logger().Error("failed to create request", "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	writeCreated(w, req)
}

// handleUpdateRequest updates a request definition.
// PUT /requests/{id}
func (a *API) handleUpdateRequest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var input UpdateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", sanitizeJSONError(err, a.logger()))
		return
	}

	req, err := a.dataStore.Requests().Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Request not found")
			return
		}
		a.logger().Error("failed to get request", "requestID", id, "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	if input.Name != nil {
		req.Name = *input.Name
	}
	if input.FolderID != nil {
		req.FolderID = *input.FolderID
	}
	if input.Method != nil {
		req.Method = *input.Method
	}
	if input.URL != nil {
		req.URL = *input.URL
	}
	if input.Headers != nil {
		req.Headers = *input.Headers
	}
	if input.Body != nil {
		req.Body = *input.Body
	}
	if input.SortKey != nil {
		req.SortKey = *input.SortKey
	}
	if input.PreRequestScript != nil {
		req.PreRequestScript = *input.PreRequestScript
	}
	if input.TestScript != nil {
		req.TestScript = *input.TestScript
	}

	if err := a.dataStore.Requests().Update(r.Context(), req); err != nil {
		a.logger().Error("failed to update request", "requestID", id, "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, req)
}

// handleDeleteRequest deletes a request definition.
// DELETE /requests/{id}
func (a *API) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := a.dataStore.Requests().Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Request not found")
			return
		}
		a.logger().Error("failed to delete request", "requestID", id, "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	writeNoContent(w)
}
