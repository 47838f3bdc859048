package coder

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sitesmith/sitesmith/pkg/architect"
	"github.com/sitesmith/sitesmith/pkg/llm"
	"github.com/sitesmith/sitesmith/pkg/planner"
	"github.com/sitesmith/sitesmith/pkg/prompts"
	"github.com/sitesmith/sitesmith/pkg/workspace"
	"github.com/stretchr/testify/require"
)

// scriptedClient routes responses by which system contract the call used.
type scriptedClient struct {
	componentErrFor map[string]bool // component name -> fail the call
	configErr       bool
}

func (s *scriptedClient) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	switch {
	case req.System == prompts.ConfigSystem:
		if s.configErr {
			return "", errors.New("provider down")
		}
		return "// generated config for " + firstLine(req.Prompt), nil
	case req.System == prompts.TranslationSystem:
		if strings.Contains(req.Prompt, "Locale: ar") {
			return `{"hero": {"title": "أهلاً"}, "menu": {"items": ["أ", "ب"]}}`, nil
		}
		return `{"hero": {"title": "Welcome"}, "menu": {"items": ["a", "b"]}}`, nil
	default: // component contract
		name := componentNameFromPrompt(req.Prompt)
		if s.componentErrFor[name] {
			return "", errors.New("provider down")
		}
		// Echo a lowercased identifier to exercise the rename rule.
		lower := strings.ToLower(name)
		return "```jsx\nconst " + lower + "Section = () => <section className='py-16' />;\nexport default " + lower + "Section;\n```", nil
	}
}

func firstLine(s string) string {
	return strings.SplitN(s, "\n", 2)[0]
}

func componentNameFromPrompt(prompt string) string {
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "Component name: ") {
			return strings.TrimPrefix(line, "Component name: ")
		}
	}
	return ""
}

func testPlan(mode planner.LanguageMode) *planner.GenerationPlan {
	return &planner.GenerationPlan{
		Industry:         "restaurant",
		ProjectName:      "Al Bahr",
		RequiredSections: []string{"navbar", "hero", "menu", "contact", "footer"},
		LanguageMode:     mode,
	}
}

func TestRunBilingualGeneration(t *testing.T) {
	plan := testPlan(planner.Bilingual)
	arch := architect.Plan(plan)
	ws := workspace.New()

	res := New(&scriptedClient{}).Run(context.Background(), plan, arch, ws, "a seafood restaurant, bilingual")
	require.Empty(t, res.Errors)

	// Every component exists under its canonical name despite the model
	// echoing a lowercased identifier.
	for _, name := range arch.Components {
		content, ok := ws.Read("src/components/" + name + ".jsx")
		require.True(t, ok, "missing component %s", name)
		require.Contains(t, content, "const "+name+" =")
		require.Contains(t, content, "export default "+name+";")
		require.Contains(t, content, `className="py-16"`, "quote normalization must run on %s", name)
	}

	// App entry imports exactly the plan's components.
	app, ok := ws.Read("src/App.jsx")
	require.True(t, ok)
	require.Equal(t, len(arch.Components), strings.Count(app, "from './components/"))

	// Translation runtime and both locales are present.
	for _, path := range []string{"src/i18n.js", "src/locales/en.json", "src/locales/ar.json"} {
		_, ok := ws.Read(path)
		require.True(t, ok, "missing %s", path)
	}
}

func TestRunEnglishOnlySkipsTranslations(t *testing.T) {
	plan := testPlan(planner.EnglishOnly)
	arch := architect.Plan(plan)
	ws := workspace.New()

	res := New(&scriptedClient{}).Run(context.Background(), plan, arch, ws, "a seafood restaurant")
	require.Empty(t, res.Errors)
	require.False(t, ws.Has("src/i18n.js"))
	require.False(t, ws.Has("src/locales/en.json"))

	app, _ := ws.Read("src/App.jsx")
	require.NotContains(t, app, "LanguageProvider")
}

func TestRunComponentFailureLeavesGap(t *testing.T) {
	plan := testPlan(planner.EnglishOnly)
	arch := architect.Plan(plan)
	ws := workspace.New()

	client := &scriptedClient{componentErrFor: map[string]bool{"Menu": true}}
	res := New(client).Run(context.Background(), plan, arch, ws, "a restaurant")

	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0].Error(), "src/components/Menu.jsx")
	require.False(t, ws.Has("src/components/Menu.jsx"), "failed component must be skipped, not written empty")

	// The rest of the generation continued.
	require.True(t, ws.Has("src/components/Hero.jsx"))
	require.True(t, ws.Has("src/App.jsx"))
}

func TestRunConfigFailureFallsBackToTemplate(t *testing.T) {
	plan := testPlan(planner.EnglishOnly)
	arch := architect.Plan(plan)
	ws := workspace.New()

	res := New(&scriptedClient{configErr: true}).Run(context.Background(), plan, arch, ws, "a restaurant")
	require.Empty(t, res.Errors, "config failures degrade to templates, not errors")

	pkg, ok := ws.Read("package.json")
	require.True(t, ok)
	require.Contains(t, pkg, `"al-bahr"`)
	require.Contains(t, pkg, "tailwindcss")

	html, _ := ws.Read("index.html")
	require.Contains(t, html, `<div id="root">`)
}

func TestRunArabicOnlyIndexHTMLIsRTL(t *testing.T) {
	plan := testPlan(planner.ArabicOnly)
	arch := architect.Plan(plan)
	ws := workspace.New()

	New(&scriptedClient{configErr: true}).Run(context.Background(), plan, arch, ws, "مطعم")
	html, _ := ws.Read("index.html")
	require.Contains(t, html, `dir="rtl"`)
	require.Contains(t, html, `lang="ar"`)
}
