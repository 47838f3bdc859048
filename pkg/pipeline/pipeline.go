// Package pipeline orchestrates the generation and editing flows. It owns
// the per-project advisory lock and the order of the stages; the stages
// themselves live in planner, architect, coder, and editor.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sitesmith/sitesmith/pkg/architect"
	"github.com/sitesmith/sitesmith/pkg/coder"
	"github.com/sitesmith/sitesmith/pkg/config"
	"github.com/sitesmith/sitesmith/pkg/editor"
	"github.com/sitesmith/sitesmith/pkg/llm"
	"github.com/sitesmith/sitesmith/pkg/logging"
	"github.com/sitesmith/sitesmith/pkg/planner"
	"github.com/sitesmith/sitesmith/pkg/workspace"
)

// ErrProjectBusy is returned when a generate or edit request arrives while
// another request holds the same project's lock. Requests are strictly
// sequential per project; callers retry, they do not queue here.
var ErrProjectBusy = errors.New("pipeline: project is busy with another request")

// Pipeline runs generation and edit requests.
type Pipeline struct {
	client llm.Client
	cfg    *config.Config
	logger *logging.Logger

	mu     sync.Mutex
	locked map[string]bool
}

func New(client llm.Client, cfg *config.Config) *Pipeline {
	return &Pipeline{
		client: client,
		cfg:    cfg,
		logger: logging.GetLogger(),
		locked: make(map[string]bool),
	}
}

// GenerateResult is the outcome of one full generation run.
type GenerateResult struct {
	Plan   *planner.GenerationPlan `json:"plan"`
	Files  map[string]string       `json:"files"`
	Errors []string                `json:"errors,omitempty"`
}

// EditOutcome pairs the editor's result with the full post-edit file set.
type EditOutcome struct {
	Result *editor.EditResult `json:"result"`
	Files  map[string]string  `json:"files"`
}

// Generate runs the full plan/architect/code flow for one prompt on a fresh
// workspace. Stage failures degrade (the planner falls back to defaults,
// the coder skips failed files) rather than aborting, so an error return
// means the request could not run at all, not that some files failed.
func (p *Pipeline) Generate(ctx context.Context, project, prompt string, history []llm.Message) (*GenerateResult, error) {
	if err := p.acquire(project); err != nil {
		return nil, err
	}
	defer p.release(project)

	plan, err := planner.New(p.client).CreatePlan(ctx, prompt, history)
	if err != nil {
		return nil, fmt.Errorf("planning failed: %w", err)
	}
	if p.cfg.ForceBilingual {
		plan.LanguageMode = planner.Bilingual
	}
	p.logger.LogProcessStep(fmt.Sprintf("Plan ready: industry=%s mode=%s sections=%d",
		plan.Industry, plan.LanguageMode, len(plan.RequiredSections)))

	arch := architect.Plan(plan)
	ws := workspace.New()
	res := coder.New(p.client).Run(ctx, plan, arch, ws, prompt)

	out := &GenerateResult{Plan: plan, Files: ws.FileMap()}
	for _, e := range res.Errors {
		out.Errors = append(out.Errors, e.Error())
	}
	return out, nil
}

// Edit applies one instruction to an existing file set and returns the
// editor's result plus the complete updated map.
func (p *Pipeline) Edit(ctx context.Context, project string, req editor.EditRequest, files map[string]string) (*EditOutcome, error) {
	if err := p.acquire(project); err != nil {
		return nil, err
	}
	defer p.release(project)

	ws := workspace.FromFileMap(files)
	res := editor.New(p.client).Edit(ctx, req, ws)
	return &EditOutcome{Result: res, Files: ws.FileMap()}, nil
}

func (p *Pipeline) acquire(project string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.locked[project] {
		return fmt.Errorf("%w: %s", ErrProjectBusy, project)
	}
	p.locked[project] = true
	return nil
}

func (p *Pipeline) release(project string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.locked, project)
}
