package preview

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/sitesmith/sitesmith/pkg/planner"
)

func bilingualProject() map[string]string {
	return map[string]string{
		"package.json": `{"name": "al-bahr"}`,
		"src/index.css": "@tailwind base;\n@tailwind components;\n@tailwind utilities;\n" +
			"body { margin: 0; }\n",
		"src/App.jsx": `import Navbar from './components/Navbar';
import Hero from './components/Hero';
import { LanguageProvider } from './i18n';

const App = () => {
  return (
    <LanguageProvider>
      <div className="min-h-screen bg-white">
        <Navbar />
        <Hero />
      </div>
    </LanguageProvider>
  );
};

export default App;`,
		"src/components/Navbar.jsx": `import { useTranslation } from '../i18n';

const Navbar = () => {
  const { t } = useTranslation();
  return <nav className="py-4"><img src={logoUrl} alt="logo" /><span>{t('navbar.brand')}</span></nav>;
};

export default Navbar;`,
		"src/components/Hero.jsx": `import { useTranslation } from '../i18n';

const Hero = () => {
  const { t } = useTranslation();
  const items = t('hero.badges');
  return (
    <section className="py-16">
      <h1 className="text-4xl font-bold">{t('hero.title')}</h1>
      {Array.isArray(items) && items.map((item, i) => <span key={i}>{item}</span>)}
    </section>
  );
};

export default Hero;`,
		"src/locales/en.json": `{"navbar": {"brand": "Al Bahr"}, "hero": {"title": "Fresh Seafood", "badges": ["Halal", "Fresh"]}}`,
		"src/locales/ar.json": `{"navbar": {"brand": "البحر"}, "hero": {"title": "مأكولات بحرية", "badges": ["حلال", "طازج"]}}`,
	}
}

func TestRenderBilingualDocument(t *testing.T) {
	html := Render(bilingualProject(), planner.Bilingual)

	require.Contains(t, html, `<div id="root">`)
	require.Contains(t, html, `lang="en" dir="ltr"`)

	// Module syntax never reaches the browser script.
	require.NotContains(t, html, "import Navbar")
	require.NotContains(t, html, "export default")

	// Renderer-owned runtime and embedded locales.
	require.Contains(t, html, "__SITESMITH_LOCALES__")
	require.Contains(t, html, `"البحر"`)
	require.Contains(t, html, "const useTranslation = () => {")

	// Direct mount replaces the generated entry wiring.
	require.Contains(t, html, "ReactDOM.createRoot(document.getElementById('root')).render(<App />);")
}

func TestRenderRewritesUnresolvedLogo(t *testing.T) {
	html := Render(bilingualProject(), planner.Bilingual)
	require.Contains(t, html, `src="`+PlaceholderImageURL+`"`)
	require.NotContains(t, html, "logoUrl")
}

func TestRenderArabicOnlyIsRTL(t *testing.T) {
	files := bilingualProject()
	html := Render(files, planner.ArabicOnly)
	require.Contains(t, html, `lang="ar" dir="rtl"`)
	require.NotContains(t, html, "__SITESMITH_LOCALES__")
	require.Contains(t, html, "t: (key) => key")
}

func TestRenderErrorOverlayAlwaysPresent(t *testing.T) {
	html := Render(map[string]string{}, planner.EnglishOnly)
	require.Contains(t, html, "__sitesmithShowError")
	require.Contains(t, html, "window.addEventListener('error'")
	require.Contains(t, html, "try {")
	require.Contains(t, html, "} catch (err) {")
}

func TestRenderMissingAppFallsBack(t *testing.T) {
	html := Render(map[string]string{"src/components/Hero.jsx": "const Hero = () => null;"}, planner.EnglishOnly)
	require.Contains(t, html, "Nothing to preview yet")
	require.Contains(t, html, "render(<App />)")
}

func TestRenderBrokenLocaleDegradesToEmpty(t *testing.T) {
	files := bilingualProject()
	files["src/locales/ar.json"] = "{not json"
	html := Render(files, planner.Bilingual)
	require.Contains(t, html, `"ar":{}`)
}

func TestRenderComponentOrderIsStable(t *testing.T) {
	files := bilingualProject()
	first := Render(files, planner.Bilingual)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, Render(files, planner.Bilingual))
	}
}

func TestRenderSnapshot(t *testing.T) {
	snaps.MatchSnapshot(t, Render(bilingualProject(), planner.Bilingual))
}
