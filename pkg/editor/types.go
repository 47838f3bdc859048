package editor

import "github.com/sitesmith/sitesmith/pkg/llm"

// EditRequest is one natural-language change request against an existing
// project.
type EditRequest struct {
	Instruction string
	History     []llm.Message
}

// RegeneratedMarker replaces the diff in a PatchRecord when patch-based
// editing failed and the file was rewritten whole. Downstream consumers use
// it to distinguish the two change kinds.
const RegeneratedMarker = "[File regenerated]"

// PatchRecord describes one applied change.
type PatchRecord struct {
	Path    string `json:"path"`
	Diff    string `json:"diff"`
	Summary string `json:"summary"`
}

// EditResult reports the outcome of one edit request. A request with some
// failed files and some changed files is a partial success: Success is true
// only when at least one file changed and nothing failed unrecovered.
type EditResult struct {
	FilesChanged []string      `json:"filesChanged"`
	Patches      []PatchRecord `json:"patches"`
	Success      bool          `json:"success"`
	Errors       []string      `json:"errors,omitempty"`
}

// MaxFilesPerEdit caps how many files one instruction may touch. An
// unconstrained identification step over-selects, and every extra file is an
// extra chance to corrupt working code.
const MaxFilesPerEdit = 5
