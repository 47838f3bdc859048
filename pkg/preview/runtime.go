package preview

// bilingualRuntimeJS is the renderer-owned language runtime. It mirrors the
// useTranslation surface of the generated i18n module but is hand-written
// here: language toggling is load-bearing for the whole preview, so it is
// never taken from generated code. __SITESMITH_LOCALES__ is injected by the
// renderer before this block.
const bilingualRuntimeJS = `
const LanguageContext = React.createContext({
  language: 'en',
  toggleLanguage: () => {},
});

const LanguageProvider = ({ children }) => {
  const [language, setLanguage] = React.useState('en');

  React.useEffect(() => {
    document.documentElement.dir = language === 'ar' ? 'rtl' : 'ltr';
    document.documentElement.lang = language;
  }, [language]);

  const toggleLanguage = () => {
    setLanguage((current) => (current === 'en' ? 'ar' : 'en'));
  };

  return (
    <LanguageContext.Provider value={{ language, toggleLanguage }}>
      {children}
      <button
        onClick={toggleLanguage}
        style={{
          position: 'fixed',
          bottom: '16px',
          insetInlineEnd: '16px',
          zIndex: 9999,
          padding: '8px 16px',
          borderRadius: '9999px',
          border: 'none',
          background: '#2563eb',
          color: '#fff',
          cursor: 'pointer',
          fontWeight: 600,
        }}
      >
        {language === 'en' ? 'العربية' : 'English'}
      </button>
    </LanguageContext.Provider>
  );
};

const useTranslation = () => {
  const { language, toggleLanguage } = React.useContext(LanguageContext);
  const t = (key) => {
    const value = String(key)
      .split('.')
      .reduce(
        (node, part) => (node == null ? node : node[part]),
        __SITESMITH_LOCALES__[language]
      );
    return value === undefined ? key : value;
  };
  return { t, language, toggleLanguage };
};
`

// monolingualRuntimeJS keeps components that slipped a useTranslation call
// into a non-bilingual build from crashing the page: t() echoes the key.
const monolingualRuntimeJS = `
const LanguageProvider = ({ children }) => children;
const useTranslation = () => ({
  t: (key) => key,
  language: document.documentElement.lang || 'en',
  toggleLanguage: () => {},
});
`

// errorOverlayJS runs as a plain (non-transpiled) script so it survives
// Babel compile failures. It owns the dismissible error banner that both the
// global error handler and the transpiled script's catch block render.
const errorOverlayJS = `
window.__sitesmithShowError = function (message, stack) {
  var existing = document.getElementById('sitesmith-error');
  if (existing) return;
  var banner = document.createElement('div');
  banner.id = 'sitesmith-error';
  banner.style.cssText =
    'position:fixed;top:0;left:0;right:0;z-index:99999;background:#7f1d1d;' +
    'color:#fff;padding:16px;font-family:monospace;font-size:13px;' +
    'max-height:50vh;overflow:auto;direction:ltr;text-align:left;';
  var close = document.createElement('button');
  close.textContent = 'Dismiss';
  close.style.cssText =
    'float:right;background:#fff;color:#7f1d1d;border:none;' +
    'padding:4px 12px;border-radius:4px;cursor:pointer;';
  close.onclick = function () { banner.remove(); };
  var title = document.createElement('div');
  title.style.fontWeight = 'bold';
  title.textContent = 'Preview error: ' + message;
  var trace = document.createElement('pre');
  trace.style.cssText = 'white-space:pre-wrap;margin:8px 0 0;';
  trace.textContent = stack || '';
  banner.appendChild(close);
  banner.appendChild(title);
  banner.appendChild(trace);
  document.body.appendChild(banner);
};

window.addEventListener('error', function (event) {
  window.__sitesmithShowError(
    event.message || 'Unknown error',
    event.error && event.error.stack
  );
});
`
