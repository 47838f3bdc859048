package preview

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripModuleSyntax(t *testing.T) {
	src := `import React from 'react';
import { useTranslation } from '../i18n';

const Hero = () => {
  return <section>Hi</section>;
};

export default Hero;`

	got := stripModuleSyntax(src)
	require.NotContains(t, got, "import")
	require.NotContains(t, got, "export")
	require.Contains(t, got, "const Hero = () => {")
}

func TestStripModuleSyntaxExportedDeclarations(t *testing.T) {
	src := "export const useTranslation = () => {};\nexport default function App() { return null; }\n"
	got := stripModuleSyntax(src)
	require.Contains(t, got, "const useTranslation = () => {};")
	require.Contains(t, got, "function App() { return null; }")
	require.NotContains(t, got, "export")
}

func TestRewriteUnresolvedImagesSrcAttribute(t *testing.T) {
	src := `const Navbar = () => <img src={logoUrl} alt="logo" />;`
	got := rewriteUnresolvedImages(src)
	require.Contains(t, got, `src="`+PlaceholderImageURL+`"`)
	require.NotContains(t, got, "logoUrl")
}

func TestRewriteUnresolvedImagesKeepsDeclared(t *testing.T) {
	src := `const Hero = () => {
  const heroImage = 'https://placehold.co/800x400';
  return <img src={heroImage} alt="" />;
};`
	require.Equal(t, src, rewriteUnresolvedImages(src))
}

func TestRewriteUnresolvedImagesStandaloneExpression(t *testing.T) {
	src := `const Gallery = () => <div>{galleryPhoto}</div>;`
	got := rewriteUnresolvedImages(src)
	require.Contains(t, got, `{"`+PlaceholderImageURL+`"}`)
	require.NotContains(t, got, "galleryPhoto")
}

func TestRewriteUnresolvedImagesIgnoresNonImageExpressions(t *testing.T) {
	src := `const Menu = () => <div>{title}{items.map((item) => <span>{item}</span>)}</div>;`
	got := rewriteUnresolvedImages(src)
	require.Equal(t, src, got, "non-image identifiers and callback params stay untouched")
}

func TestRewriteUnresolvedImagesKeepsImported(t *testing.T) {
	src := `import heroImg from './assets/hero.png';
const Hero = () => <img src={heroImg} alt="" />;`
	require.NotContains(t, rewriteUnresolvedImages(src), PlaceholderImageURL)
}

func TestPrepareCSSStripsTailwindDirectives(t *testing.T) {
	css := "@tailwind base;\n@tailwind components;\n@tailwind utilities;\n\nbody { margin: 0; }\n"
	require.Equal(t, "body { margin: 0; }", prepareCSS(css))
}
