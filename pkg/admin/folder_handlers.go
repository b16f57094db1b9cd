package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	idgen "github.com/getreqd/reqd/internal/id"
	"github.com/getreqd/reqd/pkg/store"
)

// CreateFolderRequest is the request body for creating a folder.
type CreateFolderRequest struct {
	Name        string  `json:"name"`
	WorkspaceID string  `json:"workspaceId"`
	ParentID    string  `json:"parentId,omitempty"`
	SortKey     float64 `json:"sortKey,omitempty"`
}

// UpdateFolderRequest is the request body for updating a folder.
type UpdateFolderRequest struct {
	Name     *string  `json:"name,omitempty"`
	ParentID *string  `json:"parentId,omitempty"`
	SortKey  *float64 `json:"sortKey,omitempty"`
}

// handleListFolders returns all folders, optionally filtered by workspace
// and parent.
// GET /folders?workspaceId=&parentId=
func (a *API) handleListFolders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var filter *store.FolderFilter
	if query.Has("workspaceId") || query.Has("parentId") {
		filter = &store.FolderFilter{WorkspaceID: query.Get("workspaceId")}
		if query.Has("parentId") {
			parent := query.Get("parentId")
			filter.ParentID = &parent
		}
	}

	folders, err := a.dataStore.Folders().List(r.Context(), filter)
	if err != nil {
		a.logger().Error("failed to list folders", "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}
	writeJSON(w, http.StatusOK, folders)
}

// handleGetFolder returns a single folder by ID.
// GET /folders/{id}
func (a *API) handleGetFolder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	folder, err := a.dataStore.Folders().Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Folder not found")
			return
		}
		a.logger().Error("failed to get folder", "folderID", id, "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, folder)
}

// handleCreateFolder creates a new folder.
// POST /folders
func (a *API) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var input CreateFolderRequest
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
	if _, err := a.dataStore.Workspaces().Get(r.Context(), input.WorkspaceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Workspace not found")
			return
		}
		a.logger().Error("failed to get workspace", "workspaceID", input.WorkspaceID, "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	folder := &store.Folder{
		ID:          idgen.Prefixed("fld"),
		WorkspaceID: input.WorkspaceID,
		ParentID:    input.ParentID,
		Name:        input.Name,
		SortKey:     input.SortKey,
	}
	if err := a.dataStore.Folders().Create(r.Context(), folder); err != nil {
		a.logger().Error("failed to create folder", "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	writeCreated(w, folder)
}

// handleUpdateFolder updates a folder's name, parent, or sort position.
// PUT /folders/{id}
func (a *API) handleUpdateFolder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var input UpdateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", sanitizeJSONError(err, a.logger()))
		return
	}

	folder, err := a.dataStore.Folders().Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Folder not found")
			return
		}
		a.logger().Error("failed to get folder", "folderID", id, "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	if input.Name != nil {
		if *input.Name == "" {
			writeError(w, http.StatusBadRequest, "validation_error", "name cannot be blank")
			return
		}
		folder.Name = *input.Name
	}
	if input.ParentID != nil {
		folder.ParentID = *input.ParentID
	}
	if input.SortKey != nil {
		folder.SortKey = *input.SortKey
	}

	if err := a.dataStore.Folders().Update(r.Context(), folder); err != nil {
		a.logger().Error("failed to update folder", "folderID", id, "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, folder)
}

// handleDeleteFolder deletes a folder.
// DELETE /folders/{id}
func (a *API) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := a.dataStore.Folders().Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Folder not found")
			return
		}
		a.logger().Error("failed to delete folder", "folderID", id, "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", ErrMsgInternalError)
		return
	}

	writeNoContent(w)
}
