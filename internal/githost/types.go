// Package githost retrieves repository metadata, file trees, and file
// contents from source-hosting APIs.
package githost

import (
	"context"
	"fmt"
)

// EntryKind distinguishes files from directories in a repository tree.
type EntryKind string

const (
	EntryFile EntryKind = "file"
	EntryDir  EntryKind = "directory"
)

// RepoInfo is the metadata of one hosted repository.
type RepoInfo struct {
	Owner         string
	Repo          string
	Description   string
	DefaultBranch string
	Stars         int
}

// TreeEntry is one path in a repository's recursive file tree. Paths are
// relative and use forward slashes.
type TreeEntry struct {
	Path string
	Kind EntryKind
	Size int64
}

// Source fetches repository data from a hosting API. Metadata and tree
// fetches fail the caller; file content is best-effort and never does.
type Source interface {
	// GetRepoDetails fetches repository metadata. Fails with a
	// *RepoNotFoundError when the repository is missing or inaccessible.
	GetRepoDetails(ctx context.Context, owner, repo string) (*RepoInfo, error)

	// GetTree fetches the full recursive file tree for the given branch,
	// preserving the API's entry order.
	GetTree(ctx context.Context, owner, repo, branch string) ([]TreeEntry, error)

	// GetFileContent fetches one file's decoded text content. It returns ""
	// on any failure (network error, non-success response, undecodable
	// content) rather than an error: missing auxiliary files must never
	// abort a build.
	GetFileContent(ctx context.Context, owner, repo, branch, path string) string
}

// RepoNotFoundError reports a missing or inaccessible repository. Message
// carries the upstream-provided detail when available.
type RepoNotFoundError struct {
	Slug    string
	Message string
}

func (e *RepoNotFoundError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("repository %s: %s", e.Slug, e.Message)
	}
	return fmt.Sprintf("repository %s not found or inaccessible", e.Slug)
}

// FetchError reports a failed tree fetch.
type FetchError struct {
	Slug    string
	Message string
}

func (e *FetchError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("fetching tree for %s: %s", e.Slug, e.Message)
	}
	return fmt.Sprintf("failed to fetch file tree for %s", e.Slug)
}
