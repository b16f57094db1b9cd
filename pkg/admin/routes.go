// Route registration for the admin API.

package admin

import (
	"net/http"
)

// registerRoutes sets up all API routes.
func (a *API) registerRoutes(mux *http.ServeMux) {
	// Health and status
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.HandleFunc("GET /status", a.handleGetStatus)

	// Workspace management
	mux.HandleFunc("GET /workspaces", a.handleListWorkspaces)
	mux.HandleFunc("POST /workspaces", a.handleCreateWorkspace)
	mux.HandleFunc("GET /workspaces/{id}", a.handleGetWorkspace)
	mux.HandleFunc("PUT /workspaces/{id}", a.handleUpdateWorkspace)
	mux.HandleFunc("DELETE /workspaces/{id}", a.handleDeleteWorkspace)

	// Workspace variables (encrypted at rest)
	mux.HandleFunc("GET /workspaces/{id}/variables", a.handleGetVariables)
	mux.HandleFunc("PUT /workspaces/{id}/variables", a.handleUpdateVariables)

	// Folder management (tree organization of requests)
	mux.HandleFunc("GET /folders", a.handleListFolders)
	mux.HandleFunc("POST /folders", a.handleCreateFolder)
	mux.HandleFunc("GET /folders/{id}", a.handleGetFolder)
	mux.HandleFunc("PUT /folders/{id}", a.handleUpdateFolder)
	mux.HandleFunc("DELETE /folders/{id}", a.handleDeleteFolder)

	// Request definitions
	mux.HandleFunc("GET /requests", a.handleListRequests)
	mux.HandleFunc("POST /requests", a.handleCreateRequest)
	mux.HandleFunc("GET /requests/{id}", a.handleGetRequest)
	mux.HandleFunc("PUT /requests/{id}", a.handleUpdateRequest)
	mux.HandleFunc("DELETE /requests/{id}", a.handleDeleteRequest)

	// Execution
	mux.HandleFunc("POST /execute", a.handleExecute)
}
