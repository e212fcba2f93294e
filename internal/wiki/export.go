package wiki

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ExportConfig controls how a generated document set is written to disk.
type ExportConfig struct {
	Format    string // "raw-md", "hugo", or "docusaurus"
	OutputDir string // root output directory
}

// DefaultExportConfig returns an ExportConfig with sensible defaults.
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Format:    "raw-md",
		OutputDir: "docs/wiki",
	}
}

// Export writes the document's pages to disk in the configured format.
func Export(doc *Document, cfg ExportConfig) error {
	switch cfg.Format {
	case "raw-md":
		return exportRawMarkdown(doc, cfg)
	case "hugo":
		return exportHugo(doc, cfg)
	case "docusaurus":
		return exportDocusaurus(doc, cfg)
	default:
		return fmt.Errorf("unsupported export format: %s", cfg.Format)
	}
}

// exportRawMarkdown writes one <id>.md per page plus an index.md that links
// every page, so the exported tree is navigable without a site generator.
func exportRawMarkdown(doc *Document, cfg ExportConfig) error {
	for _, p := range doc.Pages {
		if err := writePage(filepath.Join(cfg.OutputDir, p.ID+".md"), p.Content); err != nil {
			return err
		}
	}

	var idx strings.Builder
	fmt.Fprintf(&idx, "# %s\n\n%s\n\n", doc.ProjectName, doc.Description)
	for _, p := range doc.Pages {
		fmt.Fprintf(&idx, "- [%s](%s.md)\n", p.Title, p.ID)
	}
	return writePage(filepath.Join(cfg.OutputDir, "index.md"), idx.String())
}

// exportHugo writes pages with YAML front matter under OutputDir/content/
// and generates a config.toml at OutputDir/config.toml.
func exportHugo(doc *Document, cfg ExportConfig) error {
	for i, p := range doc.Pages {
		fm, err := frontMatter(map[string]any{
			"title":  p.Title,
			"weight": i + 1,
		})
		if err != nil {
			return err
		}
		path := filepath.Join(cfg.OutputDir, "content", p.ID+".md")
		if err := writePage(path, fm+p.Content); err != nil {
			return err
		}
	}

	configContent := fmt.Sprintf(`baseURL = "/"
languageCode = "en-us"
title = %q
theme = "hugo-book"
`, doc.ProjectName)
	return writePage(filepath.Join(cfg.OutputDir, "config.toml"), configContent)
}

// exportDocusaurus writes pages with YAML front matter under OutputDir/docs/
// and generates a docusaurus.config.js at OutputDir/docusaurus.config.js.
func exportDocusaurus(doc *Document, cfg ExportConfig) error {
	for i, p := range doc.Pages {
		fm, err := frontMatter(map[string]any{
			"sidebar_position": i + 1,
			"sidebar_label":    p.Title,
		})
		if err != nil {
			return err
		}
		path := filepath.Join(cfg.OutputDir, "docs", p.ID+".md")
		if err := writePage(path, fm+p.Content); err != nil {
			return err
		}
	}

	configContent := fmt.Sprintf(`// @ts-check

/** @type {import('@docusaurus/types').Config} */
const config = {
  title: %q,
  url: 'https://your-project-url.example.com',
  baseUrl: '/',
  presets: [
    [
      'classic',
      /** @type {import('@docusaurus/preset-classic').Options} */
      ({
        docs: {
          routeBasePath: '/',
        },
      }),
    ],
  ],
};

module.exports = config;
`, doc.ProjectName)
	return writePage(filepath.Join(cfg.OutputDir, "docusaurus.config.js"), configContent)
}

// frontMatter marshals the given fields into a YAML front matter block.
func frontMatter(fields map[string]any) (string, error) {
	body, err := yaml.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("marshaling front matter: %w", err)
	}
	return "---\n" + string(body) + "---\n\n", nil
}

// writePage creates parent directories and writes content to the given path.
func writePage(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
