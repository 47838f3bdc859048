package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDirCollectsTextFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name": "demo"}`)
	writeFile(t, dir, "src/App.jsx", "const App = () => null;")
	writeFile(t, dir, "src/components/Hero.jsx", "const Hero = () => null;")

	ws, err := LoadDir(dir)
	require.NoError(t, err)
	require.Equal(t, 3, ws.Len())

	content, ok := ws.Read("src/components/Hero.jsx")
	require.True(t, ok)
	require.Equal(t, "const Hero = () => null;", content)
}

func TestLoadDirSkipsBuiltinDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/App.jsx", "const App = () => null;")
	writeFile(t, dir, "node_modules/react/index.js", "module.exports = {};")
	writeFile(t, dir, ".git/config", "[core]")
	writeFile(t, dir, "dist/bundle.js", "!function(){}();")

	ws, err := LoadDir(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"src/App.jsx"}, ws.List(""))
}

func TestLoadDirHonorsGitignore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "*.log\ncoverage/\n")
	writeFile(t, dir, "src/App.jsx", "const App = () => null;")
	writeFile(t, dir, "debug.log", "noise")
	writeFile(t, dir, "coverage/lcov.info", "TN:")

	ws, err := LoadDir(dir)
	require.NoError(t, err)
	require.False(t, ws.Has("debug.log"))
	require.False(t, ws.Has("coverage/lcov.info"))
	require.True(t, ws.Has("src/App.jsx"))
	require.True(t, ws.Has(".gitignore"))
}

func TestLoadDirSkipsBinaries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/App.jsx", "const App = () => null;")
	writeFile(t, dir, "public/logo.png", "\x89PNG\r\n")
	writeFile(t, dir, "raw.bin", string([]byte{0xff, 0xfe, 0x00, 0x01}))

	ws, err := LoadDir(dir)
	require.NoError(t, err)
	require.False(t, ws.Has("public/logo.png"))
	require.False(t, ws.Has("raw.bin"), "invalid utf-8 content is skipped")
}

func TestLoadDirRejectsMissingPath(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
