package store

// Workspace is the grouping scope that owns folders, request definitions,
// and encrypted variables.
type Workspace struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

// Folder organizes request definitions inside a workspace. Folders nest via
// ParentID; an empty ParentID means the folder sits at the workspace root.
type Folder struct {
	ID          string  `json:"id"`
	WorkspaceID string  `json:"workspaceId"`
	ParentID    string  `json:"parentId,omitempty"`
	Name        string  `json:"name"`
	SortKey     float64 `json:"sortKey,omitempty"`
	CreatedAt   int64   `json:"createdAt"`
	UpdatedAt   int64   `json:"updatedAt"`
}

// RequestDefinition is a stored, editable HTTP request draft.
// PreRequestScript and TestScript are persisted for round-tripping with the
// editor UI but are never executed.
type RequestDefinition struct {
	ID          string            `json:"id"`
	WorkspaceID string            `json:"workspaceId"`
	FolderID    string            `json:"folderId,omitempty"`
	Name        string            `json:"name"`
	Method      string            `json:"method"`
	URL         string            `json:"url"`
	Headers     map[string]string `json:"headers,omitempty"`
	Body        string            `json:"body,omitempty"`
	SortKey     float64           `json:"sortKey,omitempty"`

	PreRequestScript string `json:"preRequestScript,omitempty"`
	TestScript       string `json:"testScript,omitempty"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// VariableRecord is one encrypted variable belonging to a workspace.
// Value always holds a ciphertext envelope, never plaintext.
type VariableRecord struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	IsSecret bool   `json:"isSecret"`
}
