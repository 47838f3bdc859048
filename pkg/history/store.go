// Package history is the flat-file version ledger. Every generation or edit
// produces an immutable snapshot of the full file set under
// .sitesmith/versions/<project>/; versions are never rewritten, only
// appended.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrNoVersions is returned when a project has no snapshots yet.
var ErrNoVersions = errors.New("history: no versions for project")

// ErrVersionNotFound is returned when a requested snapshot id does not
// exist.
var ErrVersionNotFound = errors.New("history: version not found")

const idLength = 10

// Version is one immutable snapshot of a project's files.
type Version struct {
	ID        string            `json:"id"`
	Number    int               `json:"number"`
	Project   string            `json:"project"`
	Prompt    string            `json:"prompt,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	Files     map[string]string `json:"files"`
}

// Summary is the metadata of a snapshot without its file contents.
type Summary struct {
	ID        string    `json:"id"`
	Number    int       `json:"number"`
	Prompt    string    `json:"prompt,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	FileCount int       `json:"fileCount"`
}

// Store reads and writes snapshots under a root directory.
type Store struct {
	root string
}

// NewStore opens a ledger rooted at dir, typically ".sitesmith/versions".
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Save appends a new snapshot and returns it. Numbers are monotonic per
// project; the file name leads with the zero-padded number so lexical order
// is version order.
func (s *Store) Save(project, prompt string, files map[string]string) (*Version, error) {
	latest, err := s.latestNumber(project)
	if err != nil {
		return nil, err
	}
	id, err := gonanoid.New(idLength)
	if err != nil {
		return nil, fmt.Errorf("generating version id: %w", err)
	}

	v := &Version{
		ID:        id,
		Number:    latest + 1,
		Project:   project,
		Prompt:    prompt,
		CreatedAt: time.Now().UTC(),
		Files:     files,
	}

	dir := s.projectDir(project)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating version dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding version: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%06d-%s.json", v.Number, v.ID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing version: %w", err)
	}
	return v, nil
}

// Latest returns the newest snapshot of a project.
func (s *Store) Latest(project string) (*Version, error) {
	names, err := s.versionFiles(project)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoVersions, project)
	}
	return s.readVersion(project, names[len(names)-1])
}

// Get returns the snapshot with the given id.
func (s *Store) Get(project, id string) (*Version, error) {
	names, err := s.versionFiles(project)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if strings.HasSuffix(name, "-"+id+".json") {
			return s.readVersion(project, name)
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrVersionNotFound, project, id)
}

// List returns every snapshot's metadata, oldest first.
func (s *Store) List(project string) ([]Summary, error) {
	names, err := s.versionFiles(project)
	if err != nil {
		return nil, err
	}
	summaries := make([]Summary, 0, len(names))
	for _, name := range names {
		v, err := s.readVersion(project, name)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, Summary{
			ID:        v.ID,
			Number:    v.Number,
			Prompt:    v.Prompt,
			CreatedAt: v.CreatedAt,
			FileCount: len(v.Files),
		})
	}
	return summaries, nil
}

// Projects lists every project that has at least one snapshot.
func (s *Store) Projects() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledger root: %w", err)
	}
	var projects []string
	for _, e := range entries {
		if e.IsDir() {
			projects = append(projects, e.Name())
		}
	}
	sort.Strings(projects)
	return projects, nil
}

func (s *Store) projectDir(project string) string {
	return filepath.Join(s.root, project)
}

// versionFiles lists a project's snapshot file names in version order.
func (s *Store) versionFiles(project string) ([]string, error) {
	entries, err := os.ReadDir(s.projectDir(project))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) latestNumber(project string) (int, error) {
	names, err := s.versionFiles(project)
	if err != nil || len(names) == 0 {
		return 0, err
	}
	v, err := s.readVersion(project, names[len(names)-1])
	if err != nil {
		return 0, err
	}
	return v.Number, nil
}

func (s *Store) readVersion(project, name string) (*Version, error) {
	data, err := os.ReadFile(filepath.Join(s.projectDir(project), name))
	if err != nil {
		return nil, fmt.Errorf("reading version %s: %w", name, err)
	}
	var v Version
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decoding version %s: %w", name, err)
	}
	return &v, nil
}
