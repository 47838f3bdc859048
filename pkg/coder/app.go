package coder

import (
	"fmt"
	"strings"
)

// renderOrder is the fixed component priority for the page layout. Whatever
// section set was requested, the page always reads navbar-first,
// footer-last, so the result is stable and reviewable.
var renderOrder = []string{"Navbar", "Hero", "About", "Features", "Services", "Gallery", "Contact", "Footer"}

// unknownSlot is where components outside the fixed list are inserted:
// after Gallery, before Contact, so custom sections land in the page body.
const unknownSlot = "Gallery"

// OrderComponents arranges component names into the fixed render order.
// Unrecognized components keep their relative order and are inserted at the
// fixed mid-point slot.
func OrderComponents(components []string) []string {
	known := make(map[string]bool, len(renderOrder))
	for _, name := range renderOrder {
		known[name] = true
	}

	present := make(map[string]bool, len(components))
	var unknown []string
	for _, c := range components {
		if known[c] {
			present[c] = true
		} else {
			unknown = append(unknown, c)
		}
	}

	out := make([]string, 0, len(components))
	for _, name := range renderOrder {
		if present[name] {
			out = append(out, name)
		}
		if name == unknownSlot {
			out = append(out, unknown...)
		}
	}
	return out
}

// BuildAppEntry synthesizes src/App.jsx from the authoritative component
// list. This file is never produced by a generative call: a wrong or missing
// import here blanks the whole site, so the single highest-risk hallucination
// point is eliminated by writing it programmatically.
func BuildAppEntry(components []string, bilingual bool) string {
	ordered := OrderComponents(components)

	var b strings.Builder
	b.WriteString("import React from 'react';\n")
	if bilingual {
		b.WriteString("import { LanguageProvider } from './i18n';\n")
	}
	for _, name := range ordered {
		fmt.Fprintf(&b, "import %s from './components/%s';\n", name, name)
	}

	b.WriteString("\nconst App = () => {\n  return (\n")
	indent := "    "
	if bilingual {
		b.WriteString("    <LanguageProvider>\n")
		indent = "      "
	}
	fmt.Fprintf(&b, "%s<div className=\"min-h-screen bg-white\">\n", indent)
	for _, name := range ordered {
		fmt.Fprintf(&b, "%s  <%s />\n", indent, name)
	}
	fmt.Fprintf(&b, "%s</div>\n", indent)
	if bilingual {
		b.WriteString("    </LanguageProvider>\n")
	}
	b.WriteString("  );\n};\n\nexport default App;\n")
	return b.String()
}
