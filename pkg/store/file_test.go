package store

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/getreqd/reqd/pkg/logging"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	fs := NewFileStore(t.TempDir(), logging.Nop())
	if err := fs.Open(context.Background()); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = fs.Close() })
	return fs
}

func TestWorkspaceCRUD(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()
	ws := fs.Workspaces()

	if err := ws.Create(ctx, &Workspace{ID: "ws_1", Name: "Dev"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := ws.Create(ctx, &Workspace{ID: "ws_1", Name: "Dup"}); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("duplicate Create() error = %v, want ErrAlreadyExists", err)
	}

	got, err := ws.Get(ctx, "ws_1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Dev" || got.CreatedAt == 0 {
		t.Errorf("Get() = %+v", got)
	}

	got.Name = "Development"
	if err := ws.Update(ctx, got); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	list, err := ws.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("List() = %v, %v", list, err)
	}

	if err := ws.Delete(ctx, "ws_1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := ws.Get(ctx, "ws_1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
}

func TestWorkspaceDeleteCascades(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()

	if err := fs.Workspaces().Create(ctx, &Workspace{ID: "ws_1", Name: "Dev"}); err != nil {
		t.Fatal(err)
	}
	if err := fs.Folders().Create(ctx, &Folder{ID: "fld_1", WorkspaceID: "ws_1", Name: "Auth"}); err != nil {
		t.Fatal(err)
	}
	if err := fs.Requests().Create(ctx, &RequestDefinition{ID: "req_1", WorkspaceID: "ws_1", Method: "GET", URL: "https://example.com"}); err != nil {
		t.Fatal(err)
	}
	if _, err := fs.Variables().Save(ctx, "ws_1", []VariableRecord{{Key: "token", Value: "aaa:bbb:ccc"}}); err != nil {
		t.Fatal(err)
	}

	if err := fs.Workspaces().Delete(ctx, "ws_1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	folders, _ := fs.Folders().List(ctx, &FolderFilter{WorkspaceID: "ws_1"})
	if len(folders) != 0 {
		t.Errorf("folders not cascaded: %v", folders)
	}
	requests, _ := fs.Requests().List(ctx, &RequestFilter{WorkspaceID: "ws_1"})
	if len(requests) != 0 {
		t.Errorf("requests not cascaded: %v", requests)
	}
	vars, _ := fs.Variables().Load(ctx, "ws_1")
	if len(vars) != 0 {
		t.Errorf("variables not cascaded: %v", vars)
	}
}

func TestFolderFilter(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()

	_ = fs.Folders().Create(ctx, &Folder{ID: "fld_1", WorkspaceID: "ws_1", Name: "A"})
	_ = fs.Folders().Create(ctx, &Folder{ID: "fld_2", WorkspaceID: "ws_1", ParentID: "fld_1", Name: "B"})
	_ = fs.Folders().Create(ctx, &Folder{ID: "fld_3", WorkspaceID: "ws_2", Name: "C"})

	byWs, _ := fs.Folders().List(ctx, &FolderFilter{WorkspaceID: "ws_1"})
	if len(byWs) != 2 {
		t.Errorf("workspace filter returned %d folders", len(byWs))
	}

	root := ""
	atRoot, _ := fs.Folders().List(ctx, &FolderFilter{WorkspaceID: "ws_1", ParentID: &root})
	if len(atRoot) != 1 || atRoot[0].ID != "fld_1" {
		t.Errorf("root filter = %v", atRoot)
	}
}

func TestVariablesSaveReplacesWholesale(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()
	vars := fs.Variables()

	// No records yet: empty, not an error.
	got, err := vars.Load(ctx, "ws_1")
	if err != nil || len(got) != 0 {
		t.Fatalf("Load() = %v, %v", got, err)
	}

	if _, err := vars.Save(ctx, "ws_1", []VariableRecord{
		{Key: "a", Value: "enc-a", IsSecret: true},
		{Key: "b", Value: "enc-b"},
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := vars.Save(ctx, "ws_1", []VariableRecord{{Key: "c", Value: "enc-c"}}); err != nil {
		t.Fatal(err)
	}

	got, _ = vars.Load(ctx, "ws_1")
	if len(got) != 1 || got[0].Key != "c" {
		t.Errorf("Save() did not replace wholesale: %v", got)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs := NewFileStore(dir, logging.Nop())
	if err := fs.Open(ctx); err != nil {
		t.Fatal(err)
	}
	if err := fs.Requests().Create(ctx, &RequestDefinition{ID: "req_1", WorkspaceID: "ws_1", Method: "POST", URL: "https://api.example.com", Headers: map[string]string{"X-Key": "{{apiKey}}"}}); err != nil {
		t.Fatal(err)
	}
	if err := fs.Close(); err != nil {
		t.Fatal(err)
	}

	reopened := NewFileStore(dir, logging.Nop())
	if err := reopened.Open(ctx); err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	got, err := reopened.Requests().Get(ctx, "req_1")
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if got.Headers["X-Key"] != "{{apiKey}}" {
		t.Errorf("headers not persisted: %v", got.Headers)
	}
}

func TestCorruptDataFileRefusesMutations(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs := NewFileStore(dir, logging.Nop())
	if err := fs.Open(ctx); err != nil {
		t.Fatal(err)
	}
	if err := fs.Workspaces().Create(ctx, &Workspace{ID: "ws_keep", Name: "Keep"}); err != nil {
		t.Fatal(err)
	}
	if err := fs.Close(); err != nil {
		t.Fatal(err)
	}

	// Truncate the data file mid-document, as a crashed writer might.
	path := filepath.Join(dir, dataFileName)
	original, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, original[:len(original)/2], 0600); err != nil {
		t.Fatal(err)
	}
	truncated, _ := os.ReadFile(path)

	broken := NewFileStore(dir, logging.Nop())
	if err := broken.Open(ctx); err == nil {
		t.Fatal("Open() on truncated data file succeeded, want error")
	}

	// Every access must refuse; a write here would replace the file on disk
	// with the empty in-memory state and lose ws_keep.
	if err := broken.Workspaces().Create(ctx, &Workspace{ID: "ws_new", Name: "New"}); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Create() error = %v, want ErrNotLoaded", err)
	}
	if _, err := broken.Workspaces().List(ctx); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("List() error = %v, want ErrNotLoaded", err)
	}
	if _, err := broken.Variables().Save(ctx, "ws_keep", nil); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Variables().Save() error = %v, want ErrNotLoaded", err)
	}
	if err := broken.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(onDisk, truncated) {
		t.Fatalf("data file rewritten while unloaded:\n%s", onDisk)
	}
}
