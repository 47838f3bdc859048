package planner

import "strings"

// MandatorySections are present in every generated site regardless of
// industry or what the model proposed.
var MandatorySections = []string{"navbar", "hero", "contact", "footer"}

// industryDefaults maps industry keywords to the sections the product
// guarantees for that industry. Matched defaults are appended to the
// REQUIRED list, not optional: the guarantee is a complete page, not a
// minimal one.
var industryDefaults = []struct {
	keywords []string
	sections []string
}{
	{[]string{"restaurant", "cafe", "coffee"}, []string{"menu", "gallery", "testimonials", "about"}},
	{[]string{"portfolio"}, []string{"gallery", "projects", "skills", "about"}},
	{[]string{"clinic", "medical"}, []string{"services", "appointment", "about"}},
	{[]string{"agency"}, []string{"services", "pricing", "portfolio", "about"}},
}

// genericDefaults apply when no industry keyword matches.
var genericDefaults = []string{"about", "features"}

// IndustryDefaults returns the default required sections for an industry
// string. Matching is case-insensitive and substring-based so "coffee shop"
// hits the coffee entry.
func IndustryDefaults(industry string) []string {
	lower := strings.ToLower(industry)
	for _, entry := range industryDefaults {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.sections
			}
		}
	}
	return genericDefaults
}

// normalizeSection lowercases and trims a section slug. Internal whitespace
// collapses to single hyphens so "Team Members" and "team-members" are the
// same slug.
func normalizeSection(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "-")
}

// dedupeSections normalizes a slug list, dropping empties and duplicates
// while preserving first-seen order.
func dedupeSections(sections []string) []string {
	seen := make(map[string]bool, len(sections))
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		n := normalizeSection(s)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
