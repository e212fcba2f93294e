// Package synth turns repository metadata and representative files into a
// generated documentation wiki through a schema-constrained model call.
package synth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"repowiki/internal/githost"
	"repowiki/internal/provider"
	"repowiki/internal/wiki"
)

// Synthesizer assembles generation prompts and invokes the model.
type Synthesizer struct {
	gen          provider.Generator
	maxFileChars int
}

// New creates a Synthesizer. maxFileChars bounds each key file's excerpt in
// the prompt.
func New(gen provider.Generator, maxFileChars int) *Synthesizer {
	return &Synthesizer{gen: gen, maxFileChars: maxFileChars}
}

// GenerateWiki produces a wiki document for the repository. The call is
// stateless: repeated calls with identical input may yield different
// documents. Structural correctness comes from the schema constraint; the
// response is parsed, not re-validated.
func (s *Synthesizer) GenerateWiki(ctx context.Context, info *githost.RepoInfo, fileTree string, keyFiles map[string]string) (*wiki.Document, error) {
	prompt, err := BuildPrompt(info, fileTree, keyFiles, s.maxFileChars)
	if err != nil {
		return nil, err
	}
	log.Printf("synth: prompt for %s/%s: %d bytes, %d key files (%s)",
		info.Owner, info.Repo, len(prompt), len(keyFiles), s.gen.Name())

	raw, err := s.gen.GenerateJSON(ctx, prompt, WikiSchema())
	if err != nil {
		return nil, fmt.Errorf("generating wiki: %w", err)
	}

	var doc wiki.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing generated wiki: %w", err)
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("generating wiki: model returned no pages")
	}

	if dups := doc.DuplicateIDs(); len(dups) > 0 {
		log.Printf("WARNING: generated wiki has duplicate page ids: %v", dups)
	}
	return &doc, nil
}
