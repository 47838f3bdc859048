// Package preview renders a generated project's file set into one
// self-contained HTML document. Rendering is a pure transform: no generative
// calls, no I/O, no state. The document carries React, an in-browser Babel
// transpiler, and the Tailwind CDN runtime, so the generated JSX executes
// directly without a build step.
package preview

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/sitesmith/sitesmith/pkg/planner"
)

const (
	appPath        = "src/App.jsx"
	cssPath        = "src/index.css"
	componentsDir  = "src/components/"
	enLocalePath   = "src/locales/en.json"
	arLocalePath   = "src/locales/ar.json"
	fallbackMarkup = `const App = () => (
  <div style={{ padding: '48px', fontFamily: 'sans-serif' }}>
    <h1>Nothing to preview yet</h1>
    <p>The project has no App entry.</p>
  </div>
);`
)

// Render builds the preview HTML for a project file set. Missing pieces
// degrade instead of failing: a project without an App entry renders an
// explanatory page, and broken locale JSON falls back to empty objects.
func Render(files map[string]string, mode planner.LanguageMode) string {
	var script strings.Builder

	if mode.IsBilingual() {
		script.WriteString("const __SITESMITH_LOCALES__ = " + localesJSON(files) + ";\n")
		script.WriteString(bilingualRuntimeJS)
	} else {
		script.WriteString(monolingualRuntimeJS)
	}

	for _, path := range componentPaths(files) {
		fmt.Fprintf(&script, "\n// %s\n%s\n", path, prepareSource(files[path]))
	}

	app, ok := files[appPath]
	if ok {
		fmt.Fprintf(&script, "\n// %s\n%s\n", appPath, prepareSource(app))
	} else {
		script.WriteString("\n" + fallbackMarkup + "\n")
	}

	// The generated entry file mounts through module imports; the combined
	// script mounts directly instead.
	script.WriteString("\nReactDOM.createRoot(document.getElementById('root')).render(<App />);\n")

	return buildDocument(documentParams{
		Dir:    htmlDir(mode),
		Lang:   htmlLang(mode),
		CSS:    prepareCSS(files[cssPath]),
		Script: wrapInCatch(script.String()),
	})
}

// ModeFromFiles infers the language mode from a stored file set that no
// longer carries its plan: an i18n runtime means bilingual, an RTL document
// root means Arabic only.
func ModeFromFiles(files map[string]string) planner.LanguageMode {
	if _, ok := files["src/i18n.js"]; ok {
		return planner.Bilingual
	}
	if strings.Contains(files["index.html"], `dir="rtl"`) {
		return planner.ArabicOnly
	}
	return planner.EnglishOnly
}

// componentPaths returns every component file in stable path order.
func componentPaths(files map[string]string) []string {
	var paths []string
	for path := range files {
		if strings.HasPrefix(path, componentsDir) && strings.HasSuffix(path, ".jsx") {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// localesJSON embeds both locale files as one JS object literal. Unparseable
// or missing locales become empty objects so t() degrades to echoing keys.
func localesJSON(files map[string]string) string {
	locales := map[string]json.RawMessage{
		"en": parseLocale(files[enLocalePath]),
		"ar": parseLocale(files[arLocalePath]),
	}
	out, err := json.Marshal(locales)
	if err != nil {
		return `{"en":{},"ar":{}}`
	}
	return string(out)
}

func parseLocale(content string) json.RawMessage {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" || !json.Valid([]byte(trimmed)) {
		return json.RawMessage(`{}`)
	}
	return json.RawMessage(trimmed)
}

// wrapInCatch guards the transpiled script so a runtime failure renders the
// error banner instead of a blank page. Compile failures never reach this
// catch; the plain-script global error handler covers those.
func wrapInCatch(script string) string {
	return "try {\n" + script + "\n} catch (err) {\n" +
		"  window.__sitesmithShowError(err.message || String(err), err.stack);\n" +
		"}\n"
}

func htmlDir(mode planner.LanguageMode) string {
	if mode.IsRTL() {
		return "rtl"
	}
	return "ltr"
}

func htmlLang(mode planner.LanguageMode) string {
	if mode == planner.ArabicOnly {
		return "ar"
	}
	return "en"
}

type documentParams struct {
	Dir    string
	Lang   string
	CSS    string
	Script string
}

func buildDocument(p documentParams) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	fmt.Fprintf(&b, "<html lang=%q dir=%q>\n", p.Lang, p.Dir)
	b.WriteString(`<head>
<meta charset="UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>Preview</title>
<script src="https://unpkg.com/react@18/umd/react.production.min.js"></script>
<script src="https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"></script>
<script src="https://unpkg.com/@babel/standalone/babel.min.js"></script>
<script src="https://cdn.tailwindcss.com"></script>
`)
	if p.CSS != "" {
		fmt.Fprintf(&b, "<style>\n%s\n</style>\n", p.CSS)
	}
	b.WriteString("</head>\n<body>\n<div id=\"root\"></div>\n")
	fmt.Fprintf(&b, "<script>\n%s\n</script>\n", errorOverlayJS)
	fmt.Fprintf(&b, "<script type=\"text/babel\">\n%s\n</script>\n", p.Script)
	b.WriteString("</body>\n</html>\n")
	return b.String()
}
