package coder

import (
	"fmt"
	"strings"
)

// Deterministic fallback templates for config and entry files. The
// generative call goes first so project metadata can reflect the prompt,
// but a failed call degrades to these instead of leaving a hole the preview
// cannot render around.

func packageJSONTemplate(projectName string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(projectName), "-"))
	if slug == "" {
		slug = "generated-site"
	}
	return fmt.Sprintf(`{
  "name": %q,
  "private": true,
  "version": "0.1.0",
  "type": "module",
  "scripts": {
    "dev": "vite",
    "build": "vite build",
    "preview": "vite preview"
  },
  "dependencies": {
    "react": "^18.3.1",
    "react-dom": "^18.3.1"
  },
  "devDependencies": {
    "@vitejs/plugin-react": "^4.3.1",
    "autoprefixer": "^10.4.19",
    "postcss": "^8.4.38",
    "tailwindcss": "^3.4.4",
    "vite": "^5.3.1"
  }
}
`, slug)
}

const viteConfigTemplate = `import { defineConfig } from 'vite';
import react from '@vitejs/plugin-react';

export default defineConfig({
  plugins: [react()],
});
`

const tailwindConfigTemplate = `/** @type {import('tailwindcss').Config} */
export default {
  content: ['./index.html', './src/**/*.{js,jsx}'],
  theme: {
    extend: {},
  },
  plugins: [],
};
`

func indexHTMLTemplate(projectName string, rtl bool) string {
	dir := "ltr"
	lang := "en"
	if rtl {
		dir = "rtl"
		lang = "ar"
	}
	return fmt.Sprintf(`<!doctype html>
<html lang=%q dir=%q>
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>%s</title>
  </head>
  <body>
    <div id="root"></div>
    <script type="module" src="/src/main.jsx"></script>
  </body>
</html>
`, lang, dir, projectName)
}

const indexCSSTemplate = `@tailwind base;
@tailwind components;
@tailwind utilities;
`

const mainEntryTemplate = `import React from 'react';
import ReactDOM from 'react-dom/client';
import App from './App';
import './index.css';

ReactDOM.createRoot(document.getElementById('root')).render(
  <React.StrictMode>
    <App />
  </React.StrictMode>
);
`

// i18nRuntimeTemplate is the project's translation runtime. Written
// programmatically, never generated: language toggling is load-bearing for
// the whole site and a reviewed implementation removes a class of failures.
const i18nRuntimeTemplate = `import React, { createContext, useContext, useState } from 'react';
import en from './locales/en.json';
import ar from './locales/ar.json';

const locales = { en, ar };

const LanguageContext = createContext({
  language: 'en',
  toggleLanguage: () => {},
});

export const LanguageProvider = ({ children }) => {
  const [language, setLanguage] = useState('en');

  const toggleLanguage = () => {
    setLanguage((prev) => {
      const next = prev === 'en' ? 'ar' : 'en';
      document.documentElement.dir = next === 'ar' ? 'rtl' : 'ltr';
      document.documentElement.lang = next;
      return next;
    });
  };

  return (
    <LanguageContext.Provider value={{ language, toggleLanguage }}>
      {children}
    </LanguageContext.Provider>
  );
};

export const useTranslation = () => {
  const { language, toggleLanguage } = useContext(LanguageContext);

  const t = (key) => {
    const value = key
      .split('.')
      .reduce((node, part) => (node == null ? node : node[part]), locales[language]);
    return value == null ? key : value;
  };

  return { t, language, toggleLanguage };
};
`

const logoSVGTemplate = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 48 48" width="48" height="48">
  <rect width="48" height="48" rx="10" fill="#2563eb" />
  <text x="24" y="31" font-family="sans-serif" font-size="20" fill="#ffffff" text-anchor="middle">S</text>
</svg>
`

// configTemplate returns the deterministic fallback content for a config or
// entry path, or "" when the path has no template.
func (c *Coder) configTemplate(path, projectName string, rtl bool) string {
	switch path {
	case "package.json":
		return packageJSONTemplate(projectName)
	case "vite.config.js":
		return viteConfigTemplate
	case "tailwind.config.js":
		return tailwindConfigTemplate
	case "index.html":
		return indexHTMLTemplate(projectName, rtl)
	case "src/index.css":
		return indexCSSTemplate
	case "src/main.jsx":
		return mainEntryTemplate
	case "src/assets/logo.svg":
		return logoSVGTemplate
	default:
		return ""
	}
}
