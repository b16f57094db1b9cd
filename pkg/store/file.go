package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Current data format version for migration support.
const dataVersion = 1

// dataFileName is the single JSON document holding all persisted state.
const dataFileName = "reqd.json"

// DefaultDataDir returns the platform default data directory,
// honoring XDG_DATA_HOME.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "reqd")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".reqd"
	}
	return filepath.Join(home, ".local", "share", "reqd")
}

// storeData holds all persisted data.
type storeData struct {
	Version    int                         `json:"version"`
	Workspaces []*Workspace                `json:"workspaces,omitempty"`
	Folders    []*Folder                   `json:"folders,omitempty"`
	Requests   []*RequestDefinition        `json:"requests,omitempty"`
	Variables  map[string][]VariableRecord `json:"variables,omitempty"` // workspace ID -> records
}

// FileStore implements Store using a single JSON file.
// All mutations are written through to disk under the store lock, trading a
// little write latency for a store that is always consistent on disk.
type FileStore struct {
	mu       sync.RWMutex
	dataDir  string
	filePath string
	data     *storeData
	loaded   bool
	log      *slog.Logger
}

// NewFileStore creates a file store rooted at dataDir.
// If dataDir is empty, it uses DefaultDataDir().
func NewFileStore(dataDir string, log *slog.Logger) *FileStore {
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}
	if log == nil {
		log = slog.Default()
	}
	return &FileStore{
		dataDir:  dataDir,
		filePath: filepath.Join(dataDir, dataFileName),
		data:     &storeData{Version: dataVersion},
		log:      log,
	}
}

// Open initializes the store by loading data from disk.
// Creates the data directory and an empty data file if they don't exist.
func (s *FileStore) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}

	if err := os.MkdirAll(s.dataDir, 0700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.loaded = true
			return s.saveLocked()
		}
		return fmt.Errorf("read data file: %w", err)
	}

	var data storeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse data file: %w", err)
	}
	if data.Version == 0 {
		data.Version = dataVersion
	}
	s.data = &data
	s.loaded = true
	return nil
}

// Close writes any in-memory state to disk.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil
	}
	return s.saveLocked()
}

// ensureLoaded reports ErrNotLoaded until Open has succeeded. Every view
// method calls this under the store lock so a store whose data file could
// not be read never serves reads from, or persists, its empty initial state.
func (s *FileStore) ensureLoaded() error {
	if !s.loaded {
		return ErrNotLoaded
	}
	return nil
}

// saveLocked writes the data file. Callers must hold the write lock.
// The file is written to a temp path and renamed so a crash mid-write never
// leaves a truncated document.
func (s *FileStore) saveLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return os.Rename(tmp, s.filePath)
}

// Workspaces returns the workspace store view.
func (s *FileStore) Workspaces() WorkspaceStore { return &workspaceView{s} }

// Folders returns the folder store view.
func (s *FileStore) Folders() FolderStore { return &folderView{s} }

// Requests returns the request store view.
func (s *FileStore) Requests() RequestStore { return &requestView{s} }

// Variables returns the variable store view.
func (s *FileStore) Variables() VariableStore { return &variableView{s} }

// --- Workspaces ---

type workspaceView struct{ fs *FileStore }

func (v *workspaceView) List(ctx context.Context) ([]*Workspace, error) {
	v.fs.mu.RLock()
	defer v.fs.mu.RUnlock()

	if err := v.fs.ensureLoaded(); err != nil {
		return nil, err
	}
	result := make([]*Workspace, len(v.fs.data.Workspaces))
	copy(result, v.fs.data.Workspaces)
	return result, nil
}

func (v *workspaceView) Get(ctx context.Context, id string) (*Workspace, error) {
	v.fs.mu.RLock()
	defer v.fs.mu.RUnlock()

	if err := v.fs.ensureLoaded(); err != nil {
		return nil, err
	}
	for _, ws := range v.fs.data.Workspaces {
		if ws.ID == id {
			return ws, nil
		}
	}
	return nil, ErrNotFound
}

func (v *workspaceView) Create(ctx context.Context, workspace *Workspace) error {
	v.fs.mu.Lock()
	defer v.fs.mu.Unlock()

	if err := v.fs.ensureLoaded(); err != nil {
		return err
	}
	for _, ws := range v.fs.data.Workspaces {
		if ws.ID == workspace.ID {
			return ErrAlreadyExists
		}
	}

	now := time.Now().Unix()
	if workspace.CreatedAt == 0 {
		workspace.CreatedAt = now
	}
	workspace.UpdatedAt = now

	v.fs.data.Workspaces = append(v.fs.data.Workspaces, workspace)
	return v.fs.saveLocked()
}

func (v *workspaceView) Update(ctx context.Context, workspace *Workspace) error {
	v.fs.mu.Lock()
	defer v.fs.mu.Unlock()

	if err := v.fs.ensureLoaded(); err != nil {
		return err
	}
	for i, ws := range v.fs.data.Workspaces {
		if ws.ID == workspace.ID {
			workspace.CreatedAt = ws.CreatedAt
			workspace.UpdatedAt = time.Now().Unix()
			v.fs.data.Workspaces[i] = workspace
			return v.fs.saveLocked()
		}
	}
	return ErrNotFound
}

// Delete removes a workspace and everything it owns: folders, request
// definitions, and variable records.
func (v *workspaceView) Delete(ctx context.Context, id string) error {
	v.fs.mu.Lock()
	defer v.fs.mu.Unlock()

	if err := v.fs.ensureLoaded(); err != nil {
		return err
	}
	idx := -1
	for i, ws := range v.fs.data.Workspaces {
		if ws.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	v.fs.data.Workspaces = append(v.fs.data.Workspaces[:idx], v.fs.data.Workspaces[idx+1:]...)

	folders := v.fs.data.Folders[:0]
	for _, f := range v.fs.data.Folders {
		if f.WorkspaceID != id {
			folders = append(folders, f)
		}
	}
	v.fs.data.Folders = folders

	requests := v.fs.data.Requests[:0]
	for _, r := range v.fs.data.Requests {
		if r.WorkspaceID != id {
			requests = append(requests, r)
		}
	}
	v.fs.data.Requests = requests

	delete(v.fs.data.Variables, id)

	return v.fs.saveLocked()
}

// --- Folders ---

type folderView struct{ fs *FileStore }

func (v *folderView) List(ctx context.Context, filter *FolderFilter) ([]*Folder, error) {
	v.fs.mu.RLock()
	defer v.fs.mu.RUnlock()

	if err := v.fs.ensureLoaded(); err != nil {
		return nil, err
	}
	result := make([]*Folder, 0, len(v.fs.data.Folders))
	for _, f := range v.fs.data.Folders {
		if filter != nil {
			if filter.WorkspaceID != "" && f.WorkspaceID != filter.WorkspaceID {
				continue
			}
			if filter.ParentID != nil && f.ParentID != *filter.ParentID {
				continue
			}
		}
		result = append(result, f)
	}
	return result, nil
}

func (v *folderView) Get(ctx context.Context, id string) (*Folder, error) {
	v.fs.mu.RLock()
	defer v.fs.mu.RUnlock()

	if err := v.fs.ensureLoaded(); err != nil {
		return nil, err
	}
	for _, f := range v.fs.data.Folders {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, ErrNotFound
}

func (v *folderView) Create(ctx context.Context, folder *Folder) error {
	v.fs.mu.Lock()
	defer v.fs.mu.Unlock()

	if err := v.fs.ensureLoaded(); err != nil {
		return err
	}
	for _, f := range v.fs.data.Folders {
		if f.ID == folder.ID {
			return ErrAlreadyExists
		}
	}

	now := time.Now().Unix()
	if folder.CreatedAt == 0 {
		folder.CreatedAt = now
	}
	folder.UpdatedAt = now

	v.fs.data.Folders = append(v.fs.data.Folders, folder)
	return v.fs.saveLocked()
}

func (v *folderView) Update(ctx context.Context, folder *Folder) error {
	v.fs.mu.Lock()
	defer v.fs.mu.Unlock()

	if err := v.fs.ensureLoaded(); err != nil {
		return err
	}
	for i, f := range v.fs.data.Folders {
		if f.ID == folder.ID {
			folder.CreatedAt = f.CreatedAt
			folder.UpdatedAt = time.Now().Unix()
			v.fs.data.Folders[i] = folder
			return v.fs.saveLocked()
		}
	}
	return ErrNotFound
}

func (v *folderView) Delete(ctx context.Context, id string) error {
	v.fs.mu.Lock()
	defer v.fs.mu.Unlock()

	if err := v.fs.ensureLoaded(); err != nil {
		return err
	}
	for i, f := range v.fs.data.Folders {
		if f.ID == id {
			v.fs.data.Folders = append(v.fs.data.Folders[:i], v.fs.data.Folders[i+1:]...)
			return v.fs.saveLocked()
		}
	}
	return ErrNotFound
}

// --- Requests ---

type requestView struct{ fs *FileStore }

func (v *requestView) List(ctx context.Context, filter *RequestFilter) ([]*RequestDefinition, error) {
	v.fs.mu.RLock()
	defer v.fs.mu.RUnlock()

	if err := v.fs.ensureLoaded(); err != nil {
		return nil, err
	}
	result := make([]*RequestDefinition, 0, len(v.fs.data.Requests))
	for _, r := range v.fs.data.Requests {
		if filter != nil {
			if filter.WorkspaceID != "" && r.WorkspaceID != filter.WorkspaceID {
				continue
			}
			if filter.FolderID != nil && r.FolderID != *filter.FolderID {
				continue
			}
		}
		result = append(result, r)
	}
	return result, nil
}

func (v *requestView) Get(ctx context.Context, id string) (*RequestDefinition, error) {
	v.fs.mu.RLock()
	defer v.fs.mu.RUnlock()

	if err := v.fs.ensureLoaded(); err != nil {
		return nil, err
	}
	for _, r := range v.fs.data.Requests {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, ErrNotFound
}

func (v *requestView) Create(ctx context.Context, req *RequestDefinition) error {
	v.fs.mu.Lock()
	defer v.fs.mu.Unlock()

	if err := v.fs.ensureLoaded(); err != nil {
		return err
	}
	for _, r := range v.fs.data.Requests {
		if r.ID == req.ID {
			return ErrAlreadyExists
		}
	}

	now := time.Now().Unix()
	if req.CreatedAt == 0 {
		req.CreatedAt = now
	}
	req.UpdatedAt = now

	v.fs.data.Requests = append(v.fs.data.Requests, req)
	return v.fs.saveLocked()
}

func (v *requestView) Update(ctx context.Context, req *RequestDefinition) error {
	v.fs.mu.Lock()
	defer v.fs.mu.Unlock()

	if err := v.fs.ensureLoaded(); err != nil {
		return err
	}
	for i, r := range v.fs.data.Requests {
		if r.ID == req.ID {
			req.CreatedAt = r.CreatedAt
			req.UpdatedAt = time.Now().Unix()
			v.fs.data.Requests[i] = req
			return v.fs.saveLocked()
		}
	}
	return ErrNotFound
}

func (v *requestView) Delete(ctx context.Context, id string) error {
	v.fs.mu.Lock()
	defer v.fs.mu.Unlock()

	if err := v.fs.ensureLoaded(); err != nil {
		return err
	}
	for i, r := range v.fs.data.Requests {
		if r.ID == id {
			v.fs.data.Requests = append(v.fs.data.Requests[:i], v.fs.data.Requests[i+1:]...)
			return v.fs.saveLocked()
		}
	}
	return ErrNotFound
}

// --- Variables ---

type variableView struct{ fs *FileStore }

func (v *variableView) Load(ctx context.Context, workspaceID string) ([]VariableRecord, error) {
	v.fs.mu.RLock()
	defer v.fs.mu.RUnlock()

	if err := v.fs.ensureLoaded(); err != nil {
		return nil, err
	}
	records := v.fs.data.Variables[workspaceID]
	result := make([]VariableRecord, len(records))
	copy(result, records)
	return result, nil
}

func (v *variableView) Save(ctx context.Context, workspaceID string, records []VariableRecord) ([]VariableRecord, error) {
	v.fs.mu.Lock()
	defer v.fs.mu.Unlock()

	if err := v.fs.ensureLoaded(); err != nil {
		return nil, err
	}
	if v.fs.data.Variables == nil {
		v.fs.data.Variables = make(map[string][]VariableRecord)
	}
	stored := make([]VariableRecord, len(records))
	copy(stored, records)
	v.fs.data.Variables[workspaceID] = stored

	if err := v.fs.saveLocked(); err != nil {
		return nil, err
	}
	return stored, nil
}

// Ensure FileStore satisfies the Store interface.
var _ Store = (*FileStore)(nil)
