// Package discovery loads an on-disk project directory into a workspace so
// edits can run against projects that were exported or hand-modified
// outside the ledger.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/sitesmith/sitesmith/pkg/workspace"
)

// skipDirs are never descended into regardless of ignore rules.
var skipDirs = map[string]bool{
	".git":         true,
	".sitesmith":   true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
	".cache":       true,
}

// binaryExtensions are skipped without content sniffing.
var binaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
	".ico": true, ".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".zip": true, ".gz": true, ".pdf": true, ".mp4": true, ".mp3": true,
}

// maxFileSize keeps a stray bundle or lockfile blob from bloating the
// workspace.
const maxFileSize = 512 * 1024

// LoadDir walks dir and returns a workspace of its text files, honoring
// .gitignore plus the built-in skip list. Paths in the workspace are
// slash-separated and relative to dir.
func LoadDir(dir string) (*workspace.Workspace, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("discovery: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("discovery: %s is not a directory", dir)
	}

	rules := ignoreRules(dir)
	ws := workspace.New()

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if skipDirs[d.Name()] || (rules != nil && rules.MatchesPath(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}
		if rules != nil && rules.MatchesPath(rel) {
			return nil
		}
		if binaryExtensions[strings.ToLower(filepath.Ext(rel))] {
			return nil
		}
		fi, err := d.Info()
		if err != nil || fi.Size() > maxFileSize {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		if !utf8.Valid(content) {
			return nil
		}
		ws.Write(rel, string(content))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovery: walking %s: %w", dir, err)
	}
	return ws, nil
}

// ignoreRules compiles the project's .gitignore, if present.
func ignoreRules(dir string) *ignore.GitIgnore {
	rules, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil
	}
	return rules
}
