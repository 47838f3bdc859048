// Package architect expands a GenerationPlan into the concrete list of file
// tasks the coder will execute. It makes no generative calls: the same plan
// always yields the same task list and component-name set, which is what
// keeps the coder's later per-file generation internally addressable.
package architect

import (
	"fmt"

	"github.com/sitesmith/sitesmith/pkg/planner"
)

// TaskType classifies a file task.
type TaskType string

const (
	TaskComponent   TaskType = "component"
	TaskConfig      TaskType = "config"
	TaskAsset       TaskType = "asset"
	TaskTranslation TaskType = "translation"
	TaskEntry       TaskType = "entry"
)

// Priority orders tasks within the plan.
type Priority string

const (
	PriorityRequired Priority = "required"
	PriorityOptional Priority = "optional"
)

// FileTask is one file the coder must produce.
type FileTask struct {
	Path        string   `json:"path"`
	Type        TaskType `json:"type"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Section     string   `json:"section,omitempty"` // set for component tasks
}

// ArchitecturePlan is the ordered task list plus the derived lists the coder
// and the entry synthesizer address files through.
type ArchitecturePlan struct {
	Tasks            []FileTask `json:"tasks"`
	Components       []string   `json:"components"`
	ConfigFiles      []string   `json:"configFiles"`
	TranslationFiles []string   `json:"translationFiles"`
	Assets           []string   `json:"assets"`
}

// configTasks are emitted for every project, in generation order.
var configTasks = []FileTask{
	{Path: "package.json", Type: TaskConfig, Description: "npm package manifest with react, react-dom, vite and tailwindcss", Priority: PriorityRequired},
	{Path: "vite.config.js", Type: TaskConfig, Description: "vite config with the react plugin", Priority: PriorityRequired},
	{Path: "tailwind.config.js", Type: TaskConfig, Description: "tailwind config scanning index.html and src/**/*.jsx", Priority: PriorityRequired},
	{Path: "index.html", Type: TaskConfig, Description: "html entry with a root div and the main.jsx module script", Priority: PriorityRequired},
	{Path: "src/index.css", Type: TaskConfig, Description: "global stylesheet with the tailwind directives", Priority: PriorityRequired},
}

// entryTasks close every plan; App.jsx is last because its import list is
// synthesized from the final component set.
var entryTasks = []FileTask{
	{Path: "src/main.jsx", Type: TaskEntry, Description: "react-dom entry mounting App into #root", Priority: PriorityRequired},
	{Path: "src/App.jsx", Type: TaskEntry, Description: "root component importing and rendering every generated section", Priority: PriorityRequired},
}

// Plan expands a GenerationPlan into an ArchitecturePlan. Pure function.
func Plan(plan *planner.GenerationPlan) *ArchitecturePlan {
	ap := &ArchitecturePlan{}

	for _, t := range configTasks {
		ap.Tasks = append(ap.Tasks, t)
		ap.ConfigFiles = append(ap.ConfigFiles, t.Path)
	}

	if plan.LanguageMode.IsBilingual() {
		translation := []FileTask{
			{Path: "src/i18n.js", Type: TaskTranslation, Description: "translation runtime: language state, toggle and t() lookup", Priority: PriorityRequired},
			{Path: "src/locales/en.json", Type: TaskTranslation, Description: "english locale data", Priority: PriorityRequired},
			{Path: "src/locales/ar.json", Type: TaskTranslation, Description: "arabic locale data", Priority: PriorityRequired},
		}
		for _, t := range translation {
			ap.Tasks = append(ap.Tasks, t)
			ap.TranslationFiles = append(ap.TranslationFiles, t.Path)
		}
	}

	for _, section := range plan.RequiredSections {
		name := ComponentName(section)
		if name == "" {
			continue
		}
		ap.Components = append(ap.Components, name)
		ap.Tasks = append(ap.Tasks, FileTask{
			Path:        ComponentPath(name),
			Type:        TaskComponent,
			Description: fmt.Sprintf("%s section of the %s website", section, plan.Industry),
			Priority:    PriorityRequired,
			Section:     section,
		})
	}

	for _, t := range entryTasks {
		ap.Tasks = append(ap.Tasks, t)
	}

	logo := FileTask{Path: "src/assets/logo.svg", Type: TaskAsset, Description: "placeholder logo mark", Priority: PriorityOptional}
	ap.Tasks = append(ap.Tasks, logo)
	ap.Assets = append(ap.Assets, logo.Path)

	return ap
}
