package goload

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recursiveimport "github.com/FilipMalczak/recursive-import"
	"github.com/FilipMalczak/recursive-import/fsresolve"
)

// writeModule lays out a small Go module below a temp dir and returns its root.
func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	files["go.mod"] = "module example.com/app\n\ngo 1.21\n"
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestLoader_RecursiveImport(t *testing.T) {
	root := writeModule(t, map[string]string{
		"plugins/doc.go":         "// Package plugins holds plugins.\npackage plugins\n",
		"plugins/registry.go":    "package plugins\n\nvar Names []string\n",
		"plugins/http/doc.go":    "package http\n",
		"plugins/http/server.go": "package http\n\nimport \"example.com/app/plugins\"\n\nfunc init() { plugins.Names = append(plugins.Names, \"http\") }\n",
		"plugins/notes/todo.go":  "this is not go",
	})
	loader := New()
	r := recursiveimport.NewRecorder(fsresolve.New(root, recursiveimport.GoLayout, loader.Load))

	require.NoError(t, recursiveimport.ImportRecursively(r, "plugins"))
	assert.Equal(t, []string{
		"plugins",
		"plugins/registry",
		"plugins",
		"plugins/http/server",
		"plugins/http",
	}, r.Names())

	var paths []string
	for _, pkg := range loader.Packages() {
		paths = append(paths, pkg.PkgPath)
	}
	assert.Equal(t, []string{"example.com/app/plugins", "example.com/app/plugins/http"}, paths)
}

func TestLoader_SyntaxError(t *testing.T) {
	root := writeModule(t, map[string]string{
		"plugins/doc.go":    "package plugins\n",
		"plugins/broken.go": "package plugins\n\nfunc {\n",
	})
	loader := New()

	// Leaf units are parsed on their own; the container would fail to load as well.
	err := loader.Load(&fsresolve.Unit{
		Name: "plugins/broken",
		Path: filepath.Join(root, "plugins", "broken.go"),
		Dir:  filepath.Join(root, "plugins"),
	})
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "plugins/broken", loadErr.Name)
	assert.NotEmpty(t, loadErr.Errors)
}

func TestLoader_TypeError(t *testing.T) {
	root := writeModule(t, map[string]string{
		"plugins/doc.go": "package plugins\n",
		"plugins/a.go":   "package plugins\n\nvar X int = \"not an int\"\n",
	})
	loader := New(WithBuildTags("integration"), WithTests(false))
	r := fsresolve.New(root, recursiveimport.GoLayout, loader.Load)

	err := recursiveimport.ImportRecursively(r, "plugins")
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "plugins", loadErr.Name)
	assert.Empty(t, loader.Packages())
}

func TestLoader_WithLogger(t *testing.T) {
	root := writeModule(t, map[string]string{
		"plugins/doc.go": "package plugins\n",
		"plugins/a.go":   "package plugins\n",
	})
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	loader := New(WithLogger(logger))

	err := loader.Load(&fsresolve.Unit{
		Name: "plugins/a",
		Path: filepath.Join(root, "plugins", "a.go"),
		Dir:  filepath.Join(root, "plugins"),
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Parsed unit")
	assert.Contains(t, buf.String(), "name=plugins/a")
}
