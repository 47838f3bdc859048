package coder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderComponentsFixedPriority(t *testing.T) {
	got := OrderComponents([]string{"Footer", "Contact", "Hero", "Navbar", "About", "Gallery"})
	require.Equal(t, []string{"Navbar", "Hero", "About", "Gallery", "Contact", "Footer"}, got)
}

func TestOrderComponentsUnknownAtMidpoint(t *testing.T) {
	got := OrderComponents([]string{"Navbar", "Hero", "Menu", "Testimonials", "Contact", "Footer"})
	require.Equal(t, []string{"Navbar", "Hero", "Menu", "Testimonials", "Contact", "Footer"}, got)

	// Unknown components never land before the hero or after the footer.
	got = OrderComponents([]string{"Footer", "Blog", "Navbar"})
	require.Equal(t, "Navbar", got[0])
	require.Equal(t, "Footer", got[len(got)-1])
}

func TestBuildAppEntryImportsEqualComponents(t *testing.T) {
	components := []string{"Navbar", "Hero", "Menu", "Gallery", "Contact", "Footer"}
	app := BuildAppEntry(components, false)

	for _, name := range components {
		require.Contains(t, app, "import "+name+" from './components/"+name+"';")
		require.Contains(t, app, "<"+name+" />")
	}
	require.Equal(t, len(components), strings.Count(app, "from './components/"))
	require.Contains(t, app, "export default App;")
	require.NotContains(t, app, "LanguageProvider")
}

func TestBuildAppEntryBilingualWrapsProvider(t *testing.T) {
	app := BuildAppEntry([]string{"Navbar", "Hero", "Footer"}, true)
	require.Contains(t, app, "import { LanguageProvider } from './i18n';")
	require.Contains(t, app, "<LanguageProvider>")
	require.Contains(t, app, "</LanguageProvider>")
}

func TestBuildAppEntryRenderOrderStable(t *testing.T) {
	app := BuildAppEntry([]string{"Contact", "Hero", "Navbar", "Footer"}, false)
	navbar := strings.Index(app, "<Navbar />")
	hero := strings.Index(app, "<Hero />")
	contact := strings.Index(app, "<Contact />")
	footer := strings.Index(app, "<Footer />")
	require.True(t, navbar < hero && hero < contact && contact < footer,
		"render order wrong:\n%s", app)
}
