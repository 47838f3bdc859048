package architect

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English, cases.NoLower)

// ComponentName derives the canonical PascalCase component identifier from a
// section slug. The transform is deterministic and idempotent: planner,
// architect and coder all resolve a section through this one function, so
// "team-members", "Team Members" and "TEAM_MEMBERS" agree on TeamMembers.
func ComponentName(section string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '-', '_':
			return ' '
		}
		return r
	}, section)

	var b strings.Builder
	for _, token := range strings.Fields(cleaned) {
		b.WriteString(titleCaser.String(strings.ToLower(token)))
	}
	return b.String()
}

// ComponentPath returns the workspace path for a component identifier.
func ComponentPath(name string) string {
	return "src/components/" + name + ".jsx"
}
