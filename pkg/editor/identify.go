package editor

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sitesmith/sitesmith/pkg/workspace"
)

// configPathMarkers identify files that an edit may only touch when the
// instruction is explicitly about configuration or dependencies.
var configPathMarkers = []string{"package.json", "vite.config", "tailwind.config", "postcss.config"}

var configKeywords = []string{"config", "configuration", "dependency", "dependencies", "package", "install", "build setup"}

// appPath is only editable when the instruction implies adding or removing a
// whole section.
const appPath = "src/App.jsx"

var structuralKeywords = []string{"add", "remove", "delete", "create", "drop"}

// candidate is one file scored against the instruction text.
type candidate struct {
	Path    string
	Score   int
	Matched []string
}

var wordRegex = regexp.MustCompile(`[\p{L}\p{N}]+`)

// stopwords are instruction words that carry no relevance signal.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "to": true, "of": true, "in": true,
	"on": true, "make": true, "change": true, "update": true, "please": true,
	"and": true, "or": true, "it": true, "my": true, "more": true, "less": true,
	"bigger": true, "smaller": true, "section": true, "page": true, "website": true,
}

// rankCandidates scores every component file's text against the
// instruction. Users refer to the words they SEE on the page, which often
// diverge from file names (a "career highlights" request may target
// Experience.jsx), so visible-text matching is surfaced to the
// identification prompt alongside the file listing.
func rankCandidates(ws *workspace.Workspace, instruction string) []candidate {
	tokens := instructionTokens(instruction)
	phrase := strings.ToLower(strings.TrimSpace(instruction))

	var out []candidate
	for _, path := range ws.List("src/components/") {
		content, _ := ws.Read(path)
		lower := strings.ToLower(content)

		c := candidate{Path: path}
		for _, tok := range tokens {
			if n := strings.Count(lower, tok); n > 0 {
				c.Score += n
				c.Matched = append(c.Matched, tok)
			}
		}
		// A full-phrase hit is far stronger evidence than token counts.
		if len(phrase) > 3 && strings.Contains(lower, phrase) {
			c.Score += 25
		}
		// File name hit: "hero" matching Hero.jsx.
		base := strings.ToLower(strings.TrimSuffix(pathBase(path), ".jsx"))
		for _, tok := range tokens {
			if tok == base {
				c.Score += 10
				break
			}
		}
		if c.Score > 0 {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func instructionTokens(instruction string) []string {
	var tokens []string
	seen := map[string]bool{}
	for _, w := range wordRegex.FindAllString(strings.ToLower(instruction), -1) {
		if len(w) < 3 || stopwords[w] || seen[w] {
			continue
		}
		seen[w] = true
		tokens = append(tokens, w)
	}
	return tokens
}

func pathBase(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// formatCandidates renders the ranked list for the identification prompt.
func formatCandidates(candidates []candidate) string {
	if len(candidates) == 0 {
		return "(no text matches found)"
	}
	var b strings.Builder
	for i, c := range candidates {
		if i >= 8 {
			break
		}
		fmt.Fprintf(&b, "%s (score %d, matched: %s)\n", c.Path, c.Score, strings.Join(c.Matched, ", "))
	}
	return b.String()
}

// appImportGraph extracts the import lines of the App entry, giving the
// identification call the component wiring without the whole file.
func appImportGraph(ws *workspace.Workspace) string {
	content, ok := ws.Read(appPath)
	if !ok {
		return "(no App entry)"
	}
	var imports []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "import ") {
			imports = append(imports, strings.TrimSpace(line))
		}
	}
	return strings.Join(imports, "\n")
}

// applyGuardrails narrows the identified file list: files must exist, config
// files and the App entry need explicit instruction support, and the total
// is capped at MaxFilesPerEdit. The identification call over-selects; this
// step is deterministic and final.
func applyGuardrails(files []string, instruction string, ws *workspace.Workspace) []string {
	lower := strings.ToLower(instruction)
	allowConfig := containsAny(lower, configKeywords)
	allowApp := isStructuralRequest(lower)

	var out []string
	seen := map[string]bool{}
	for _, f := range files {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] || !ws.Has(f) {
			continue
		}
		if isConfigPath(f) && !allowConfig {
			continue
		}
		if f == appPath && !allowApp {
			continue
		}
		seen[f] = true
		out = append(out, f)
		if len(out) == MaxFilesPerEdit {
			break
		}
	}
	return out
}

func isConfigPath(path string) bool {
	for _, marker := range configPathMarkers {
		if strings.Contains(path, marker) {
			return true
		}
	}
	return false
}

// isStructuralRequest reports whether the instruction implies adding or
// removing a whole section, which is the only reason to touch the App entry.
func isStructuralRequest(lower string) bool {
	if !strings.Contains(lower, "section") && !strings.Contains(lower, "component") {
		return false
	}
	return containsAny(lower, structuralKeywords)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
