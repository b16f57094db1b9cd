package store

import (
	"context"
	"errors"
)

// Sentinel errors returned by store implementations.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotLoaded is returned when the store is used before a successful
	// Open. Mutations especially must not proceed: saving the empty
	// in-memory state would overwrite whatever is on disk.
	ErrNotLoaded = errors.New("store not loaded")
)

// WorkspaceStore handles workspace persistence.
type WorkspaceStore interface {
	List(ctx context.Context) ([]*Workspace, error)
	Get(ctx context.Context, id string) (*Workspace, error)
	Create(ctx context.Context, workspace *Workspace) error
	Update(ctx context.Context, workspace *Workspace) error
	Delete(ctx context.Context, id string) error
}

// FolderFilter provides filtering criteria for folder list operations.
type FolderFilter struct {
	WorkspaceID string  // Filter by workspace ("" = no filter)
	ParentID    *string // Filter by parent folder (nil = no filter, "" = root level)
}

// FolderStore handles folder persistence.
type FolderStore interface {
	List(ctx context.Context, filter *FolderFilter) ([]*Folder, error)
	Get(ctx context.Context, id string) (*Folder, error)
	Create(ctx context.Context, folder *Folder) error
	Update(ctx context.Context, folder *Folder) error
	Delete(ctx context.Context, id string) error
}

// RequestFilter provides filtering criteria for request list operations.
type RequestFilter struct {
	WorkspaceID string  // Filter by workspace ("" = no filter)
	FolderID    *string // Filter by folder (nil = no filter, "" = root level)
}

// RequestStore handles request definition persistence.
type RequestStore interface {
	List(ctx context.Context, filter *RequestFilter) ([]*RequestDefinition, error)
	Get(ctx context.Context, id string) (*RequestDefinition, error)
	Create(ctx context.Context, req *RequestDefinition) error
	Update(ctx context.Context, req *RequestDefinition) error
	Delete(ctx context.Context, id string) error
}

// VariableStore reads and persists a workspace's encrypted variable records.
// Load returns an empty slice when the workspace has no records; that is not
// an error. Save replaces the workspace's record set wholesale, creating it
// if absent.
type VariableStore interface {
	Load(ctx context.Context, workspaceID string) ([]VariableRecord, error)
	Save(ctx context.Context, workspaceID string, records []VariableRecord) ([]VariableRecord, error)
}

// Store aggregates the persistence interfaces behind one open/close lifecycle.
type Store interface {
	Open(ctx context.Context) error
	Close() error

	Workspaces() WorkspaceStore
	Folders() FolderStore
	Requests() RequestStore
	Variables() VariableStore
}
