// Package coder executes an ArchitecturePlan against a Workspace: one
// generative call per file, phase-ordered, with deterministic synthesis for
// the files where a hallucination would take down the whole site.
//
// The phase order is load-bearing. Translations are generated before
// components so components can discover and reuse real keys instead of
// inventing inconsistent ones, and the App entry is synthesized last, from
// the final component list, never by a generative call.
package coder

import (
	"context"
	"fmt"
	"strings"

	"github.com/sitesmith/sitesmith/pkg/architect"
	"github.com/sitesmith/sitesmith/pkg/llm"
	"github.com/sitesmith/sitesmith/pkg/logging"
	"github.com/sitesmith/sitesmith/pkg/parser"
	"github.com/sitesmith/sitesmith/pkg/planner"
	"github.com/sitesmith/sitesmith/pkg/prompts"
	"github.com/sitesmith/sitesmith/pkg/workspace"
)

// Coder runs the code-generation stage.
type Coder struct {
	client llm.Client
	logger *logging.Logger
}

// New creates a Coder backed by the given completion client.
func New(client llm.Client) *Coder {
	return &Coder{client: client, logger: logging.GetLogger()}
}

// Result reports which files were written and which tasks failed. A failed
// task is a gap, not an abort: the next edit or a regeneration can fill it.
type Result struct {
	FilesWritten []string
	Errors       []error
}

func (r *Result) fail(path string, err error) {
	r.Errors = append(r.Errors, fmt.Errorf("%s: %w", path, err))
}

func (r *Result) wrote(path string) {
	r.FilesWritten = append(r.FilesWritten, path)
}

// Run executes every task of the architecture plan against the workspace.
func (c *Coder) Run(ctx context.Context, plan *planner.GenerationPlan, arch *architect.ArchitecturePlan, ws *workspace.Workspace, userPrompt string) *Result {
	res := &Result{}
	bilingual := plan.LanguageMode.IsBilingual()

	// Phase 1: configs and static entry files.
	for _, task := range arch.Tasks {
		switch task.Type {
		case architect.TaskConfig, architect.TaskAsset:
			c.runConfigTask(ctx, task, plan, ws, res)
		}
	}

	// Phase 2: translations (bilingual only).
	var translationKeys string
	if bilingual {
		translationKeys = c.runTranslationTasks(ctx, plan, ws, res, userPrompt)
		ws.Write("src/i18n.js", i18nRuntimeTemplate)
		res.wrote("src/i18n.js")
	}

	// Phase 3: components, reading the already-written translation keys.
	for _, task := range arch.Tasks {
		if task.Type != architect.TaskComponent {
			continue
		}
		c.runComponentTask(ctx, task, arch, ws, res, userPrompt, bilingual, translationKeys)
	}

	// Phase 4: entry files, App last of all.
	ws.Write("src/main.jsx", mainEntryTemplate)
	res.wrote("src/main.jsx")
	ws.Write("src/App.jsx", Sanitize(BuildAppEntry(arch.Components, bilingual), "App"))
	res.wrote("src/App.jsx")

	return res
}

// runConfigTask generates one config/asset file, degrading to the
// deterministic template when the generative call fails or returns nothing.
func (c *Coder) runConfigTask(ctx context.Context, task architect.FileTask, plan *planner.GenerationPlan, ws *workspace.Workspace, res *Result) {
	template := c.configTemplate(task.Path, plan.ProjectName, plan.LanguageMode.IsRTL())

	// Assets and stylesheets gain nothing from a generative call.
	if task.Type == architect.TaskAsset || task.Path == "src/index.css" {
		if template != "" {
			ws.Write(task.Path, template)
			res.wrote(task.Path)
		}
		return
	}

	response, err := c.client.Complete(ctx, llm.CompletionRequest{
		System:      prompts.ConfigSystem,
		Prompt:      fmt.Sprintf("File: %s\nPurpose: %s\nProject name: %s", task.Path, task.Description, plan.ProjectName),
		Temperature: 0.1,
	})
	content := parser.StripCodeFences(response)
	if err != nil || strings.TrimSpace(content) == "" {
		if template == "" {
			c.logger.LogFileOperation("skip", task.Path, "generative call failed and no template exists")
			res.fail(task.Path, fmt.Errorf("config generation failed: %w", errOrEmpty(err)))
			return
		}
		c.logger.LogFileOperation("fallback", task.Path, "generative call failed, using template")
		content = template
	}
	ws.Write(task.Path, content)
	res.wrote(task.Path)
}

// runComponentTask generates one section component.
func (c *Coder) runComponentTask(ctx context.Context, task architect.FileTask, arch *architect.ArchitecturePlan, ws *workspace.Workspace, res *Result, userPrompt string, bilingual bool, translationKeys string) {
	name := resolveComponentName(task, arch.Components)

	response, err := c.client.Complete(ctx, llm.CompletionRequest{
		System:      prompts.ComponentSystem(bilingual),
		Prompt:      prompts.ComponentUser(name, task.Description, userPrompt, translationKeys),
		Temperature: 0.4,
	})
	if err != nil || strings.TrimSpace(response) == "" {
		c.logger.LogFileOperation("skip", task.Path, "component generation failed")
		res.fail(task.Path, fmt.Errorf("component generation failed: %w", errOrEmpty(err)))
		return
	}

	ws.Write(architect.ComponentPath(name), Sanitize(response, name))
	res.wrote(architect.ComponentPath(name))
}

// resolveComponentName maps a task back to the canonical identifier from the
// plan: exact match first, then case-insensitive, then re-derive from the
// section slug. The model sometimes echoes a different casing than the plan,
// and the App entry's import list must agree with the file names exactly.
func resolveComponentName(task architect.FileTask, components []string) string {
	derived := architect.ComponentName(task.Section)
	for _, c := range components {
		if c == derived {
			return c
		}
	}
	for _, c := range components {
		if strings.EqualFold(c, derived) {
			return c
		}
	}
	return derived
}

// runTranslationTasks generates both locale files and returns the flattened
// key listing components are prompted to reuse. The English locale is
// generated first and its structure is handed to the Arabic call verbatim,
// which is the strongest lever available for structural symmetry.
func (c *Coder) runTranslationTasks(ctx context.Context, plan *planner.GenerationPlan, ws *workspace.Workspace, res *Result, userPrompt string) string {
	en, err := c.generateLocale(ctx, "en", plan.RequiredSections, userPrompt, "")
	if err != nil {
		res.fail("src/locales/en.json", err)
		return ""
	}
	ws.Write("src/locales/en.json", marshalLocale(en))
	res.wrote("src/locales/en.json")

	ar, err := c.generateLocale(ctx, "ar", plan.RequiredSections, userPrompt, marshalLocale(en))
	if err != nil {
		res.fail("src/locales/ar.json", err)
	} else {
		if symErr := ValidateLocaleSymmetry(en, ar); symErr != nil {
			// Recorded but still written: an asymmetric locale renders
			// partially, a missing one renders nothing.
			c.logger.Logf("coder: locale symmetry violation: %v", symErr)
			res.Errors = append(res.Errors, fmt.Errorf("src/locales/ar.json: %w", symErr))
		}
		ws.Write("src/locales/ar.json", marshalLocale(ar))
		res.wrote("src/locales/ar.json")
	}

	return strings.Join(FlattenLeafKeys(en), "\n")
}

func (c *Coder) generateLocale(ctx context.Context, locale string, sections []string, userPrompt, structureHint string) (map[string]any, error) {
	response, err := c.client.Complete(ctx, llm.CompletionRequest{
		System:      prompts.TranslationSystem,
		Prompt:      prompts.TranslationUser(locale, sections, userPrompt, structureHint),
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("locale %s generation failed: %w", locale, err)
	}
	jsonStr, err := parser.ExtractJSON(response)
	if err != nil {
		return nil, fmt.Errorf("locale %s: %w", locale, err)
	}
	return decodeLocale(locale, jsonStr)
}

func errOrEmpty(err error) error {
	if err != nil {
		return err
	}
	return llm.ErrEmptyResponse
}
