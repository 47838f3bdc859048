package coder

import (
	"strings"
	"testing"
)

func TestSanitizeRules(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		component string
		want      []string // substrings that must be present
		absent    []string // substrings that must be gone
	}{
		{
			name:      "markdown fences stripped",
			content:   "```jsx\nconst Hero = () => <section />;\nexport default Hero;\n```",
			component: "Hero",
			want:      []string{"const Hero"},
			absent:    []string{"```"},
		},
		{
			name:      "echoed file tool call stripped",
			content:   "write_file(\"src/components/Hero.jsx\", content)\nconst Hero = () => <section />;\nexport default Hero;",
			component: "Hero",
			want:      []string{"const Hero"},
			absent:    []string{"write_file"},
		},
		{
			name:      "foreign triple quoted block stripped",
			content:   "const Hero = () => <section />;\n'''\nهذا شرح بالعربية\n'''\nexport default Hero;",
			component: "Hero",
			want:      []string{"const Hero", "export default Hero"},
			absent:    []string{"'''", "شرح"},
		},
		{
			name:      "component renamed to canonical identifier",
			content:   "const HeroSection = () => <section />;\nexport default HeroSection;",
			component: "Hero",
			want:      []string{"const Hero =", "export default Hero;"},
			absent:    []string{"HeroSection"},
		},
		{
			name:      "rename leaves helper consts alone",
			content:   "const menuItems = ['a'];\nconst MenuList = () => <ul />;\nexport default MenuList;",
			component: "Menu",
			want:      []string{"const menuItems", "const Menu =", "export default Menu;"},
			absent:    []string{"MenuList"},
		},
		{
			name:      "single quoted className normalized",
			content:   "const Hero = () => <section className='py-16 bg-white' />;\nexport default Hero;",
			component: "Hero",
			want:      []string{`className="py-16 bg-white"`},
			absent:    []string{"className='"},
		},
		{
			name:      "unclosed img tag closed",
			content:   "const Hero = () => <div><img src=\"https://placehold.co/600x400\" alt=\"hero\"></div>;\nexport default Hero;",
			component: "Hero",
			want:      []string{`alt="hero" />`},
		},
		{
			name:      "already closed img untouched",
			content:   "const Hero = () => <img src=\"x\" />;\nexport default Hero;",
			component: "Hero",
			want:      []string{`<img src="x" />`},
			absent:    []string{"/ />"},
		},
		{
			name:      "unclosed br and hr closed",
			content:   "const Footer = () => <div>a<br>b<hr></div>;\nexport default Footer;",
			component: "Footer",
			want:      []string{"<br />", "<hr />"},
		},
		{
			name:      "img with jsx expression attr closed",
			content:   "const Hero = () => <img src={logoUrl} alt=\"logo\">;\nexport default Hero;",
			component: "Hero",
			want:      []string{`alt="logo" />`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.content, tt.component)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Sanitize() missing %q in:\n%s", w, got)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(got, a) {
					t.Errorf("Sanitize() still contains %q in:\n%s", a, got)
				}
			}
		})
	}
}

func TestSanitizeEndsWithSingleNewline(t *testing.T) {
	got := Sanitize("const A = () => null;\nexport default A;\n\n\n", "A")
	if !strings.HasSuffix(got, ";\n") || strings.HasSuffix(got, "\n\n") {
		t.Errorf("Sanitize() trailing whitespace not normalized: %q", got)
	}
}

func TestRuleNamesStable(t *testing.T) {
	// The pipeline is ordered; a reordering is a behavior change.
	want := []string{
		"strip-markdown-fences",
		"strip-file-tool-syntax",
		"strip-foreign-quoted-blocks",
		"rename-to-canonical-component",
		"normalize-classname-quotes",
		"close-void-elements",
	}
	if len(Rules) != len(want) {
		t.Fatalf("Rules count = %d, want %d", len(Rules), len(want))
	}
	for i, rule := range Rules {
		if rule.Name != want[i] {
			t.Errorf("Rules[%d] = %s, want %s", i, rule.Name, want[i])
		}
	}
}
