package wiki

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- test helpers ----------

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	assert.NoError(t, err, "file should exist: %s", path)
}

func assertFileContains(t *testing.T, path, substring string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), substring)
}

// ---------- tests ----------

func TestDefaultExportConfig(t *testing.T) {
	cfg := DefaultExportConfig()
	assert.Equal(t, "raw-md", cfg.Format)
	assert.Equal(t, "docs/wiki", cfg.OutputDir)
}

func TestExportRawMarkdown(t *testing.T) {
	outDir := t.TempDir()
	doc := sampleDoc()

	err := Export(doc, ExportConfig{Format: "raw-md", OutputDir: outDir})
	require.NoError(t, err)

	assertFileExists(t, filepath.Join(outDir, "overview.md"))
	assertFileContains(t, filepath.Join(outDir, "setup.md"), "# Setup")

	// Index links every page.
	assertFileContains(t, filepath.Join(outDir, "index.md"), "[Overview](overview.md)")
	assertFileContains(t, filepath.Join(outDir, "index.md"), "[Usage](usage.md)")
	assertFileContains(t, filepath.Join(outDir, "index.md"), "A demo project")
}

func TestExportHugo(t *testing.T) {
	outDir := t.TempDir()
	doc := sampleDoc()

	err := Export(doc, ExportConfig{Format: "hugo", OutputDir: outDir})
	require.NoError(t, err)

	page := filepath.Join(outDir, "content", "overview.md")
	assertFileExists(t, page)
	assertFileContains(t, page, "title: Overview")
	assertFileContains(t, page, "weight: 1")
	assertFileContains(t, filepath.Join(outDir, "config.toml"), `title = "demo"`)
}

func TestExportDocusaurus(t *testing.T) {
	outDir := t.TempDir()
	doc := sampleDoc()

	err := Export(doc, ExportConfig{Format: "docusaurus", OutputDir: outDir})
	require.NoError(t, err)

	page := filepath.Join(outDir, "docs", "setup.md")
	assertFileExists(t, page)
	assertFileContains(t, page, "sidebar_position: 2")
	assertFileContains(t, page, "sidebar_label: Setup")
	assertFileExists(t, filepath.Join(outDir, "docusaurus.config.js"))
}

func TestExportUnsupportedFormat(t *testing.T) {
	err := Export(sampleDoc(), ExportConfig{Format: "pdf", OutputDir: t.TempDir()})
	assert.ErrorContains(t, err, "unsupported export format")
}
