// Package editor applies natural-language edit requests to an existing
// project. Edits are patch-first: the model proposes a unified diff, the
// patch package validates and replays it, and only when validation rejects
// the diff does the editor fall back to regenerating the whole file.
package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/sitesmith/sitesmith/pkg/llm"
	"github.com/sitesmith/sitesmith/pkg/logging"
	"github.com/sitesmith/sitesmith/pkg/parser"
	"github.com/sitesmith/sitesmith/pkg/patch"
	"github.com/sitesmith/sitesmith/pkg/prompts"
	"github.com/sitesmith/sitesmith/pkg/workspace"
)

// Editor runs edit requests against a workspace.
type Editor struct {
	client llm.Client
	logger *logging.Logger
}

func New(client llm.Client) *Editor {
	return &Editor{client: client, logger: logging.GetLogger()}
}

// identifyResponse is the JSON shape of the file-identification call.
type identifyResponse struct {
	Files    []string `json:"files"`
	EditType string   `json:"edit_type"`
	Reason   string   `json:"reason"`
}

// Edit applies one instruction to the workspace. Per-file failures are
// recorded and the remaining files still run; the request never aborts
// midway. Success means at least one file changed and no file failed.
func (e *Editor) Edit(ctx context.Context, req EditRequest, ws *workspace.Workspace) *EditResult {
	res := &EditResult{}

	targets := e.identifyFiles(ctx, req, ws)
	if len(targets) == 0 {
		res.Errors = append(res.Errors, "no editable files identified for this request")
		return res
	}
	e.logger.LogProcessStep(fmt.Sprintf("Editing %d file(s): %s", len(targets), strings.Join(targets, ", ")))

	for _, path := range targets {
		rec, err := e.editFile(ctx, req, ws, path)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		res.FilesChanged = append(res.FilesChanged, path)
		res.Patches = append(res.Patches, rec)
	}

	res.Success = len(res.FilesChanged) > 0 && len(res.Errors) == 0
	return res
}

// identifyFiles asks the model which files the instruction concerns, then
// narrows the answer through the guardrails. When the identification call
// fails or returns nothing usable, the top-ranked relevance candidates stand
// in for it.
func (e *Editor) identifyFiles(ctx context.Context, req EditRequest, ws *workspace.Workspace) []string {
	candidates := rankCandidates(ws, req.Instruction)

	userPrompt := prompts.EditIdentifyUser(
		req.Instruction,
		strings.Join(ws.List(""), "\n"),
		appImportGraph(ws),
		formatCandidates(candidates),
	)

	var identified []string
	raw, err := e.client.Complete(ctx, llm.CompletionRequest{
		System:  prompts.EditIdentifySystem,
		Prompt:  userPrompt,
		History: req.History,
	})
	if err == nil {
		var resp identifyResponse
		if perr := parser.ExtractJSONInto(raw, &resp); perr == nil {
			identified = resp.Files
			if resp.Reason != "" {
				e.logger.Logf("Edit target selection (%s): %s", resp.EditType, resp.Reason)
			}
		} else {
			e.logger.LogError(fmt.Errorf("identification response unparseable: %w", perr))
		}
	} else {
		e.logger.LogError(fmt.Errorf("identification call failed: %w", err))
	}

	if len(identified) == 0 {
		for _, c := range candidates {
			identified = append(identified, c.Path)
		}
	}
	return applyGuardrails(identified, req.Instruction, ws)
}

// editFile runs the patch-then-regenerate ladder on one file.
func (e *Editor) editFile(ctx context.Context, req EditRequest, ws *workspace.Workspace, path string) (PatchRecord, error) {
	content, ok := ws.Read(path)
	if !ok {
		return PatchRecord{}, fmt.Errorf("file disappeared during edit")
	}

	diff, patched, err := e.tryPatch(ctx, req, path, content)
	if err == nil {
		ws.Write(path, patched)
		return PatchRecord{Path: path, Diff: diff, Summary: changeSummary(content, patched)}, nil
	}
	e.logger.Logf("Patch for %s rejected (%v), regenerating whole file", path, err)

	regenerated, err := e.regenerate(ctx, req, path, content)
	if err != nil {
		return PatchRecord{}, err
	}
	ws.Write(path, regenerated)
	return PatchRecord{Path: path, Diff: RegeneratedMarker, Summary: changeSummary(content, regenerated)}, nil
}

// tryPatch asks for a unified diff and validates it against the current
// content. Returns the diff text and the patched content on success.
func (e *Editor) tryPatch(ctx context.Context, req EditRequest, path, content string) (string, string, error) {
	raw, err := e.client.Complete(ctx, llm.CompletionRequest{
		System:  prompts.EditPatchSystem,
		Prompt:  prompts.EditPatchUser(req.Instruction, path, content),
		History: req.History,
	})
	if err != nil {
		return "", "", err
	}

	diff := parser.StripCodeFences(raw)
	if fenced, lang, ok := parser.FirstFencedBlock(raw); ok && (lang == "diff" || lang == "patch") {
		diff = fenced
	}

	patched, err := patch.Apply(content, diff)
	if err != nil {
		return "", "", err
	}
	if patched == content {
		return "", "", fmt.Errorf("patch applied but changed nothing")
	}
	return diff, patched, nil
}

// regenerate asks for the complete corrected file. It is the fallback, not
// the first choice: full regeneration invites the model to rewrite code the
// request never mentioned.
func (e *Editor) regenerate(ctx context.Context, req EditRequest, path, content string) (string, error) {
	raw, err := e.client.Complete(ctx, llm.CompletionRequest{
		System:  prompts.EditRegenerateSystem,
		Prompt:  prompts.EditRegenerateUser(req.Instruction, path, content),
		History: req.History,
	})
	if err != nil {
		return "", fmt.Errorf("regeneration failed: %w", err)
	}
	regenerated := strings.TrimSpace(parser.StripCodeFences(raw))
	if regenerated == "" {
		return "", fmt.Errorf("regeneration returned empty content")
	}
	// A regeneration that loses most of the file truncated it.
	if len(regenerated) < len(content)/2 {
		return "", fmt.Errorf("regenerated content suspiciously short (%d bytes vs %d)", len(regenerated), len(content))
	}
	return regenerated + "\n", nil
}

// changeSummary reports a "+N/-N lines" summary of the before/after delta.
func changeSummary(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	added, removed := 0, 0
	for _, d := range diffs {
		n := strings.Count(d.Text, "\n")
		if n == 0 && d.Text != "" {
			n = 1
		}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += n
		case diffmatchpatch.DiffDelete:
			removed += n
		}
	}
	return fmt.Sprintf("+%d/-%d lines", added, removed)
}
