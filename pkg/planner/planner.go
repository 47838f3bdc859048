// Package planner turns a natural-language website prompt into a structured
// GenerationPlan. The generative call proposes industry, sections and a
// name; everything the rest of the pipeline depends on structurally (the
// language mode, the mandatory sections, the industry defaults) is enforced
// deterministically after the call.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sitesmith/sitesmith/pkg/llm"
	"github.com/sitesmith/sitesmith/pkg/logging"
	"github.com/sitesmith/sitesmith/pkg/parser"
	"github.com/sitesmith/sitesmith/pkg/prompts"
)

// MaxPromptLength bounds the user prompt before any generative call.
const MaxPromptLength = 10000

// ErrInvalidPrompt indicates the user prompt was rejected before any
// generative call; no side effects occurred.
var ErrInvalidPrompt = errors.New("planner: invalid prompt")

// GenerationPlan is the immutable output of the planning stage.
type GenerationPlan struct {
	Industry          string       `json:"industry"`
	ProjectName       string       `json:"projectName"`
	RequiredSections  []string     `json:"requiredSections"`
	OptionalSections  []string     `json:"optionalSections"`
	LanguageMode      LanguageMode `json:"languageMode"`
	RequiredLibraries []string     `json:"requiredLibraries,omitempty"`
	FolderStructure   []string     `json:"folderStructure,omitempty"`
}

// Planner runs the planning stage.
type Planner struct {
	client llm.Client
	logger *logging.Logger
}

// New creates a Planner backed by the given completion client.
func New(client llm.Client) *Planner {
	return &Planner{client: client, logger: logging.GetLogger()}
}

// planResponse is the shape the generative call is asked for. The model's
// language suggestion, if any, is deliberately not even decoded.
type planResponse struct {
	Industry         string   `json:"industry"`
	ProjectName      string   `json:"project_name"`
	RequiredSections []string `json:"required_sections"`
	OptionalSections []string `json:"optional_sections"`
}

// CreatePlan analyzes the prompt into a GenerationPlan. A failed or
// unparseable generative call degrades to the deterministic fallback plan
// without retrying: a planner failure must never abort the pipeline.
func (p *Planner) CreatePlan(ctx context.Context, prompt string, history []llm.Message) (*GenerationPlan, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPrompt)
	}
	if len(prompt) > MaxPromptLength {
		return nil, fmt.Errorf("%w: %d chars exceeds limit of %d", ErrInvalidPrompt, len(prompt), MaxPromptLength)
	}

	// Computed once, trusted over anything the model says.
	mode := DetectLanguageMode(prompt)

	response, err := p.client.Complete(ctx, llm.CompletionRequest{
		System:      prompts.PlannerSystem,
		Prompt:      prompt,
		History:     history,
		Temperature: 0.2,
	})
	if err != nil {
		p.logger.Logf("planner: generative call failed, using fallback plan: %v", err)
		return FallbackPlan(mode), nil
	}

	var proposed planResponse
	if err := parser.ExtractJSONInto(response, &proposed); err != nil {
		p.logger.Logf("planner: unparseable plan response, using fallback plan: %v", err)
		return FallbackPlan(mode), nil
	}

	return finalizePlan(proposed, mode), nil
}

// FallbackPlan is the hard-coded plan used when the generative step fails.
// It still respects the deterministically computed language mode.
func FallbackPlan(mode LanguageMode) *GenerationPlan {
	return &GenerationPlan{
		Industry:         "other",
		ProjectName:      "New Website",
		RequiredSections: []string{"navbar", "hero", "about", "contact", "footer"},
		OptionalSections: []string{},
		LanguageMode:     mode,
	}
}

// finalizePlan enforces the plan invariants on whatever the model proposed:
// mandatory sections present, industry defaults unioned into required,
// required/optional deduplicated and disjoint, heuristic language mode.
func finalizePlan(proposed planResponse, mode LanguageMode) *GenerationPlan {
	industry := strings.ToLower(strings.TrimSpace(proposed.Industry))
	if industry == "" {
		industry = "other"
	}

	name := strings.TrimSpace(proposed.ProjectName)
	if name == "" {
		name = "New Website"
	}

	// navbar/hero lead and contact/footer close, with the model's sections
	// and the industry defaults in between, so the required list reads in
	// page order.
	required := dedupeSections(append(
		append([]string{"navbar", "hero"}, proposed.RequiredSections...),
		IndustryDefaults(industry)...))
	required = dedupeSections(append(required, "contact", "footer"))

	inRequired := make(map[string]bool, len(required))
	for _, s := range required {
		inRequired[s] = true
	}
	optional := make([]string, 0, len(proposed.OptionalSections))
	for _, s := range dedupeSections(proposed.OptionalSections) {
		if !inRequired[s] {
			optional = append(optional, s)
		}
	}

	return &GenerationPlan{
		Industry:         industry,
		ProjectName:      name,
		RequiredSections: required,
		OptionalSections: optional,
		LanguageMode:     mode,
	}
}
