// Package patch parses and validates unified-diff-style patches against
// current file content. The whole "is this patch trustworthy" decision lives
// here: context matching, the fuzzy offset window, and the disproportion
// threshold are centralized so callers only decide what to do on rejection.
package patch

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalid indicates the patch does not replay cleanly against the
	// current content (context or deletion mismatch).
	ErrInvalid = errors.New("patch: validation failed")
	// ErrTooLarge indicates a structurally valid patch that would change a
	// disproportionate share of the file.
	ErrTooLarge = errors.New("patch: change exceeds size threshold")
)

const (
	// FuzzWindow is how many lines around the stated offset a context line
	// may drift and still match. Small on purpose: it tolerates off-by-one
	// hunk headers from the model without letting a patch land in the wrong
	// part of the file.
	FuzzWindow = 3

	// MaxChangeRatio is the fraction of a file's lines a patch may change.
	// A minimal instruction should never need to rewrite a third of a file,
	// so anything above this is rejected even when it replays cleanly.
	MaxChangeRatio = 0.30
)

// Hunk is one @@ section of a unified diff.
type Hunk struct {
	OldStart int // 1-based line number in the original content
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Line is a single diff line with its leading marker stripped.
type Line struct {
	Op   byte // ' ' context, '-' deletion, '+' insertion
	Text string
}

// Patch is a parsed unified diff for a single file.
type Patch struct {
	Hunks []Hunk
}

var hunkHeaderRegex = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// Parse parses a unified-diff string. File headers (---/+++) and index lines
// are skipped; only hunks matter. Returns an error when no well-formed hunk
// is present.
func Parse(diff string) (*Patch, error) {
	p := &Patch{}
	var current *Hunk

	rows := strings.Split(diff, "\n")
	// A trailing newline on the diff text is not an empty context line.
	if len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	for _, raw := range rows {
		if m := hunkHeaderRegex.FindStringSubmatch(raw); m != nil {
			if current != nil {
				p.Hunks = append(p.Hunks, *current)
			}
			current = &Hunk{
				OldStart: atoiDefault(m[1], 1),
				OldCount: atoiDefault(m[2], 1),
				NewStart: atoiDefault(m[3], 1),
				NewCount: atoiDefault(m[4], 1),
			}
			continue
		}
		if current == nil {
			continue // preamble: ---, +++, index, prose
		}
		if raw == "" {
			// A blank line inside a hunk is an empty context line.
			current.Lines = append(current.Lines, Line{Op: ' ', Text: ""})
			continue
		}
		switch raw[0] {
		case ' ', '-', '+':
			current.Lines = append(current.Lines, Line{Op: raw[0], Text: raw[1:]})
		case '\\':
			// "\ No newline at end of file" marker
		default:
			// A line with no marker inside a hunk usually means the model
			// dropped the leading space on a context line.
			current.Lines = append(current.Lines, Line{Op: ' ', Text: raw})
		}
	}
	if current != nil {
		p.Hunks = append(p.Hunks, *current)
	}
	if len(p.Hunks) == 0 {
		return nil, fmt.Errorf("%w: no hunks found", ErrInvalid)
	}
	return p, nil
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Apply replays the patch against content and returns the patched result.
// Context lines must match at their stated offset, tolerating drift of up to
// FuzzWindow lines; deletions must match the line being removed. A valid
// patch that changes more than MaxChangeRatio of the file's lines is
// rejected with ErrTooLarge.
func Apply(content, diff string) (string, error) {
	p, err := Parse(diff)
	if err != nil {
		return "", err
	}

	lines := strings.Split(content, "\n")
	changed := 0
	for _, h := range p.Hunks {
		changed += countChanges(h)
	}
	if len(lines) > 0 {
		ratio := float64(changed) / float64(len(lines))
		if ratio > MaxChangeRatio {
			return "", fmt.Errorf("%w: %d of %d lines (%.0f%%)", ErrTooLarge, changed, len(lines), ratio*100)
		}
	}

	// Hunks are applied bottom-up so earlier replacements don't shift the
	// offsets of later ones.
	result := make([]string, len(lines))
	copy(result, lines)
	for i := len(p.Hunks) - 1; i >= 0; i-- {
		result, err = applyHunk(result, p.Hunks[i])
		if err != nil {
			return "", err
		}
	}
	return strings.Join(result, "\n"), nil
}

func countChanges(h Hunk) int {
	n := 0
	for _, l := range h.Lines {
		if l.Op == '-' || l.Op == '+' {
			n++
		}
	}
	return n
}

// applyHunk locates the hunk's old-side lines in content, allowing the whole
// hunk to drift by up to FuzzWindow lines from its stated position, then
// splices in the new-side lines.
func applyHunk(lines []string, h Hunk) ([]string, error) {
	oldLines := make([]string, 0, len(h.Lines))
	newLines := make([]string, 0, len(h.Lines))
	for _, l := range h.Lines {
		switch l.Op {
		case ' ':
			oldLines = append(oldLines, l.Text)
			newLines = append(newLines, l.Text)
		case '-':
			oldLines = append(oldLines, l.Text)
		case '+':
			newLines = append(newLines, l.Text)
		}
	}

	want := h.OldStart - 1 // to 0-based
	if want < 0 {
		want = 0
	}

	pos := -1
	for offset := 0; offset <= FuzzWindow; offset++ {
		for _, candidate := range []int{want + offset, want - offset} {
			if candidate < 0 || candidate+len(oldLines) > len(lines) {
				continue
			}
			if matchesAt(lines, oldLines, candidate) {
				pos = candidate
				break
			}
		}
		if pos != -1 {
			break
		}
	}
	if pos == -1 {
		return nil, fmt.Errorf("%w: hunk at line %d does not match current content", ErrInvalid, h.OldStart)
	}

	result := make([]string, 0, len(lines)-len(oldLines)+len(newLines))
	result = append(result, lines[:pos]...)
	result = append(result, newLines...)
	result = append(result, lines[pos+len(oldLines):]...)
	return result, nil
}

func matchesAt(lines, oldLines []string, pos int) bool {
	for i, want := range oldLines {
		if lines[pos+i] != want {
			return false
		}
	}
	return true
}

// ChangedLineCount reports how many lines the patch adds plus deletes,
// without applying it. Used for reporting and guard checks.
func ChangedLineCount(diff string) int {
	p, err := Parse(diff)
	if err != nil {
		return 0
	}
	n := 0
	for _, h := range p.Hunks {
		n += countChanges(h)
	}
	return n
}
