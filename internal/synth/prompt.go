package synth

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"

	"repowiki/internal/githost"
)

var wikiPromptTmpl = template.Must(template.New("wiki").Parse(
	`You are writing a documentation wiki for the repository "{{.Slug}}".
{{if .Description}}Repository description: {{.Description}}
{{end}}
File tree (truncated):
{{.FileTree}}

{{range .Files}}--- {{.Path}} ---
{{.Excerpt}}

{{end}}Produce a project name, a one-paragraph description, and an ordered list of wiki pages.
The page set must include at least: an overview, a setup/installation guide, a usage guide,
a technical/architecture page, and a contribution guide. Add further pages where the
repository warrants them.

Each page's content is GitHub-flavored Markdown and should make full use of:
- headers, emphasis, tables, and task lists
- blockquote callouts for warnings and tips
- fenced code blocks tagged with their language
- LaTeX math notation ($...$ inline, $$...$$ blocks) for any algorithmic or formal content
- internal links between pages written as [link text](#page-id), where page-id is the
  id of the target page

Page ids are short lowercase slugs and must be unique. Each page may carry a single
emoji as its icon.`))

type promptFile struct {
	Path    string
	Excerpt string
}

// BuildPrompt assembles the generation prompt from repository metadata, the
// pre-truncated file tree listing, and the key files. Each file's content is
// capped at maxFileChars to bound the prompt size. Files are ordered by path
// so identical input yields an identical prompt.
func BuildPrompt(info *githost.RepoInfo, fileTree string, keyFiles map[string]string, maxFileChars int) (string, error) {
	paths := make([]string, 0, len(keyFiles))
	for p := range keyFiles {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	files := make([]promptFile, 0, len(paths))
	for _, p := range paths {
		content := keyFiles[p]
		if len(content) > maxFileChars {
			content = content[:maxFileChars]
		}
		files = append(files, promptFile{Path: p, Excerpt: content})
	}

	var buf bytes.Buffer
	err := wikiPromptTmpl.Execute(&buf, struct {
		Slug        string
		Description string
		FileTree    string
		Files       []promptFile
	}{
		Slug:        info.Owner + "/" + info.Repo,
		Description: info.Description,
		FileTree:    fileTree,
		Files:       files,
	})
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return buf.String(), nil
}
