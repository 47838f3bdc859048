// Package workspace provides the in-memory virtual file system every
// pipeline stage operates on. A Workspace is the only mutable state in a
// generation or edit run; agents mutate it through List/Read/Write/Patch
// rather than holding file content themselves.
//
// A Workspace assumes a single writer for the lifetime of one pipeline
// invocation. Callers must not share a live instance across concurrent runs;
// cross-request serialization belongs to the caller's project lock.
package workspace

import (
	"sort"
	"strings"

	"github.com/sitesmith/sitesmith/pkg/patch"
)

// FileType tags a workspace entry.
type FileType string

const (
	TypeFile   FileType = "file"
	TypeFolder FileType = "folder"
)

// File is one entry in the workspace. Only file-typed entries carry content.
type File struct {
	Path    string   `json:"path"`
	Content string   `json:"content"`
	Type    FileType `json:"type"`
}

// Workspace maps file paths to content. It keeps both a lookup map and an
// ordered path list so reads are cheap and listings are stable in insertion
// order.
type Workspace struct {
	files map[string]*File
	order []string
}

// New creates an empty workspace.
func New() *Workspace {
	return &Workspace{files: make(map[string]*File)}
}

// FromFileMap hydrates a workspace from the flat path -> content shape.
// Paths are inserted in sorted order so hydration is deterministic.
func FromFileMap(files map[string]string) *Workspace {
	ws := New()
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		ws.Write(p, files[p])
	}
	return ws
}

// FromRecords hydrates a workspace from explicit {path, content, type}
// records. Folder records are ignored; they carry no content and List is
// prefix-based anyway.
func FromRecords(records []File) *Workspace {
	ws := New()
	for _, r := range records {
		if r.Type == TypeFolder {
			continue
		}
		ws.Write(r.Path, r.Content)
	}
	return ws
}

// List returns the paths of all files, in insertion order. With a prefix,
// only paths under that prefix are returned.
func (w *Workspace) List(prefix string) []string {
	out := make([]string, 0, len(w.order))
	for _, p := range w.order {
		if prefix == "" || strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	return out
}

// Read returns the content of path. ok is false when the file is absent.
func (w *Workspace) Read(path string) (string, bool) {
	f, ok := w.files[path]
	if !ok {
		return "", false
	}
	return f.Content, true
}

// Write creates or overwrites path with content, keeping the lookup map and
// the ordered list consistent.
func (w *Workspace) Write(path, content string) {
	if existing, ok := w.files[path]; ok {
		existing.Content = content
		return
	}
	w.files[path] = &File{Path: path, Content: content, Type: TypeFile}
	w.order = append(w.order, path)
}

// Patch applies a unified diff to path and writes back the result. A missing
// path is patched against empty content; callers that care should guard with
// Read first.
func (w *Workspace) Patch(path, diff string) error {
	current, _ := w.Read(path)
	patched, err := patch.Apply(current, diff)
	if err != nil {
		return err
	}
	w.Write(path, patched)
	return nil
}

// Has reports whether path exists in the workspace.
func (w *Workspace) Has(path string) bool {
	_, ok := w.files[path]
	return ok
}

// Len returns the number of files.
func (w *Workspace) Len() int {
	return len(w.order)
}

// FileMap serializes the workspace to the flat path -> content shape that
// downstream consumers standardize on.
func (w *Workspace) FileMap() map[string]string {
	out := make(map[string]string, len(w.order))
	for _, p := range w.order {
		out[p] = w.files[p].Content
	}
	return out
}
