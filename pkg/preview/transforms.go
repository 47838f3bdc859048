package preview

import (
	"regexp"
	"strings"
)

// PlaceholderImageURL replaces unresolved image references. An undefined
// identifier at render time blanks the whole page; a placeholder degrades
// one image.
const PlaceholderImageURL = "https://placehold.co/600x400?text=Image"

var (
	importLineRegex   = regexp.MustCompile(`(?m)^\s*import\s+[^\n]*\n?`)
	exportDefaultLine = regexp.MustCompile(`(?m)^\s*export\s+default\s+[A-Za-z_][A-Za-z0-9_]*\s*;?\s*\n?`)
	exportDefaultDecl = regexp.MustCompile(`export\s+default\s+function\s+`)
	exportDecl        = regexp.MustCompile(`(?m)^(\s*)export\s+(const|let|var|function)\b`)

	declRegex        = regexp.MustCompile(`(?m)\b(?:const|let|var|function)\s+([A-Za-z_][A-Za-z0-9_]*)`)
	destructureRegex = regexp.MustCompile(`(?:const|let|var)\s*\{([^}]*)\}`)
	importNameRegex  = regexp.MustCompile(`import\s+([A-Za-z_][A-Za-z0-9_]*)`)
	importBraceRegex = regexp.MustCompile(`import\s*\{([^}]*)\}`)
	arrowParamsRegex = regexp.MustCompile(`\(([A-Za-z_][A-Za-z0-9_,\s]*)\)\s*=>`)
	bareParamRegex   = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\s*=>`)

	srcAttrRegex       = regexp.MustCompile(`src=\{([A-Za-z_][A-Za-z0-9_]*)\}`)
	bareExprRegex      = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)
	imageIshNameRegex  = regexp.MustCompile(`(?i)(pic|image|img|photo|logo|avatar)`)
	identifierKeywords = map[string]bool{"true": true, "false": true, "null": true, "undefined": true}
)

// stripModuleSyntax removes import and export statements so the source can
// run as one combined script. The in-browser transpiler has no module
// loader; every component becomes a top-level declaration instead.
func stripModuleSyntax(src string) string {
	src = importLineRegex.ReplaceAllString(src, "")
	src = exportDefaultLine.ReplaceAllString(src, "")
	src = exportDefaultDecl.ReplaceAllString(src, "function ")
	src = exportDecl.ReplaceAllString(src, "$1$2")
	return src
}

// declaredIdentifiers collects every name the source declares or imports.
// The scan is lexical, not a real parse; it only needs to answer whether an
// identifier used in JSX could possibly resolve.
func declaredIdentifiers(src string) map[string]bool {
	names := map[string]bool{}
	add := func(raw string) {
		name := strings.TrimSpace(raw)
		// Drop rename and default-value syntax: "items: menuItems", "x = 1".
		if i := strings.IndexAny(name, ":="); i >= 0 {
			name = strings.TrimSpace(name[i+1:])
		}
		if name != "" && !identifierKeywords[name] {
			names[name] = true
		}
	}
	for _, m := range declRegex.FindAllStringSubmatch(src, -1) {
		add(m[1])
	}
	for _, m := range importNameRegex.FindAllStringSubmatch(src, -1) {
		add(m[1])
	}
	for _, re := range []*regexp.Regexp{destructureRegex, importBraceRegex, arrowParamsRegex} {
		for _, m := range re.FindAllStringSubmatch(src, -1) {
			for _, part := range strings.Split(m[1], ",") {
				add(part)
			}
		}
	}
	for _, m := range bareParamRegex.FindAllStringSubmatch(src, -1) {
		add(m[1])
	}
	return names
}

func isImageIshName(name string) bool {
	return imageIshNameRegex.MatchString(name)
}

// rewriteUnresolvedImages replaces image references that cannot resolve at
// runtime with a placeholder URL. Two shapes are handled: any unresolved
// bare identifier assigned to a src attribute, and standalone {name}
// expressions whose name looks image-related.
func rewriteUnresolvedImages(src string) string {
	declared := declaredIdentifiers(src)

	src = srcAttrRegex.ReplaceAllStringFunc(src, func(match string) string {
		name := srcAttrRegex.FindStringSubmatch(match)[1]
		if declared[name] {
			return match
		}
		return `src="` + PlaceholderImageURL + `"`
	})

	return bareExprRegex.ReplaceAllStringFunc(src, func(match string) string {
		name := bareExprRegex.FindStringSubmatch(match)[1]
		if declared[name] || !isImageIshName(name) {
			return match
		}
		return `{"` + PlaceholderImageURL + `"}`
	})
}

// prepareSource runs the full transform chain on one component or entry
// file. Image resolution runs first so import statements still count as
// declarations.
func prepareSource(src string) string {
	return strings.TrimSpace(stripModuleSyntax(rewriteUnresolvedImages(src)))
}

var tailwindDirectiveRegex = regexp.MustCompile(`(?m)^@tailwind[^\n]*\n?`)

// prepareCSS strips @tailwind directives, which are build-time syntax the
// browser cannot parse. Utility classes come from the CDN runtime instead.
func prepareCSS(css string) string {
	return strings.TrimSpace(tailwindDirectiveRegex.ReplaceAllString(css, ""))
}
