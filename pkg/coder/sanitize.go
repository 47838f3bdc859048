package coder

import (
	"regexp"
	"strings"

	"github.com/sitesmith/sitesmith/pkg/parser"
)

// Rule is one named sanitization pass over generated content. Rules exist
// because each one maps to a known, observed generative failure mode; new
// failure modes become new rules instead of ad hoc string surgery scattered
// through the coder.
type Rule struct {
	Name  string
	Apply func(content, component string) string
}

// Rules is the ordered sanitization pipeline applied to every generated
// component and to the App entry content before it is written. Order
// matters: fences come off before anything else can be matched, and quote
// normalization runs before void-element closing so attribute scanning sees
// consistent quoting.
var Rules = []Rule{
	{"strip-markdown-fences", stripMarkdownFences},
	{"strip-file-tool-syntax", stripFileToolSyntax},
	{"strip-foreign-quoted-blocks", stripForeignQuotedBlocks},
	{"rename-to-canonical-component", renameToCanonicalComponent},
	{"normalize-classname-quotes", normalizeClassNameQuotes},
	{"close-void-elements", closeVoidElements},
}

// Sanitize runs the full rule pipeline over generated file content.
// component is the canonical identifier the file must declare; pass "" for
// non-component content to skip the rename rule.
func Sanitize(content, component string) string {
	for _, rule := range Rules {
		content = rule.Apply(content, component)
	}
	return strings.TrimSpace(content) + "\n"
}

func stripMarkdownFences(content, _ string) string {
	return parser.StripCodeFences(content)
}

// fileToolPatterns match literal file-operation syntax models sometimes echo
// instead of (or around) the file content itself.
var fileToolPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^\s*(?:write_file|create_file|edit_file|createFile|writeFile)\s*\(.*\)\s*;?\s*$`),
	regexp.MustCompile(`(?m)^\s*<(?:write_file|create_file|file)\b[^>]*>\s*$`),
	regexp.MustCompile(`(?m)^\s*</(?:write_file|create_file|file)>\s*$`),
	regexp.MustCompile(`(?m)^\s*(?:File|FILE|Path):\s+\S+\.(?:jsx?|json|css|html)\s*$`),
}

func stripFileToolSyntax(content, _ string) string {
	for _, re := range fileToolPatterns {
		content = re.ReplaceAllString(content, "")
	}
	return content
}

// foreignQuotedBlockRegex matches python-style triple-quoted blocks, which
// some models emit around prose or alternate-language content.
var foreignQuotedBlockRegex = regexp.MustCompile(`(?s)(?:'''|""").*?(?:'''|""")`)

func stripForeignQuotedBlocks(content, _ string) string {
	return foreignQuotedBlockRegex.ReplaceAllString(content, "")
}

// renameToCanonicalComponent rewrites the declared component identifier to
// the canonical name from the architecture plan, covering const/function
// declarations and the default export. The model frequently echoes a
// slightly different casing than the plan.
var (
	exportDefaultRegex = regexp.MustCompile(`export\s+default\s+(?:function\s+)?([A-Za-z_][A-Za-z0-9_]*)`)
	componentDeclRegex = regexp.MustCompile(`(?:const|function)\s+([A-Z][A-Za-z0-9_]*)\s*(?:=|\()`)
)

func renameToCanonicalComponent(content, component string) string {
	if component == "" {
		return content
	}
	// The default export names the component; fall back to the first
	// capitalized declaration so helper consts above it are left alone.
	var declared string
	if m := exportDefaultRegex.FindStringSubmatch(content); m != nil {
		declared = m[1]
	} else if m := componentDeclRegex.FindStringSubmatch(content); m != nil {
		declared = m[1]
	} else {
		return content
	}
	if declared == component {
		return content
	}
	wordRegex := regexp.MustCompile(`\b` + regexp.QuoteMeta(declared) + `\b`)
	return wordRegex.ReplaceAllString(content, component)
}

var singleQuotedClassRegex = regexp.MustCompile(`className='([^']*)'`)

func normalizeClassNameQuotes(content, _ string) string {
	return singleQuotedClassRegex.ReplaceAllString(content, `className="$1"`)
}

// voidTagRegex matches opening tags of HTML void elements. JSX requires
// them self-closed; an unclosed one fails the in-browser transform.
var voidTagRegex = regexp.MustCompile(`<(?:img|br|hr|input|meta|link|source)\b((?:[^<>"{}]|"[^"]*"|\{[^{}]*\})*)>`)

func closeVoidElements(content, _ string) string {
	return voidTagRegex.ReplaceAllStringFunc(content, func(tag string) string {
		inner := strings.TrimSuffix(tag, ">")
		if strings.HasSuffix(strings.TrimSpace(inner), "/") {
			return tag // already self-closed
		}
		return inner + " />"
	})
}
