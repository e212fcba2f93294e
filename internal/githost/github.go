package githost

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/google/go-github/v68/github"
	"golang.org/x/time/rate"
)

// Client-side pacing for the GitHub REST API. Unauthenticated requests share
// a small hourly quota, so bursts are kept short.
const (
	githubRPS   = 5
	githubBurst = 5
)

// GitHubSource implements Source against the GitHub REST API.
type GitHubSource struct {
	client  *github.Client
	limiter *rate.Limiter
}

// NewGitHubSource creates a GitHubSource. An empty token means
// unauthenticated access to public repositories.
func NewGitHubSource(token string) *GitHubSource {
	c := github.NewClient(nil)
	if token != "" {
		c = c.WithAuthToken(token)
	}
	return newGitHubSource(c)
}

// NewGitHubSourceWithClient wraps an existing client. Used by tests to point
// at an httptest server.
func NewGitHubSourceWithClient(c *github.Client) *GitHubSource {
	return newGitHubSource(c)
}

func newGitHubSource(c *github.Client) *GitHubSource {
	return &GitHubSource{
		client:  c,
		limiter: rate.NewLimiter(rate.Limit(githubRPS), githubBurst),
	}
}

func (s *GitHubSource) GetRepoDetails(ctx context.Context, owner, repo string) (*RepoInfo, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	r, _, err := s.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, &RepoNotFoundError{Slug: owner + "/" + repo, Message: upstreamMessage(err)}
	}

	return &RepoInfo{
		Owner:         owner,
		Repo:          repo,
		Description:   r.GetDescription(),
		DefaultBranch: r.GetDefaultBranch(),
		Stars:         r.GetStargazersCount(),
	}, nil
}

func (s *GitHubSource) GetTree(ctx context.Context, owner, repo, branch string) ([]TreeEntry, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	tree, _, err := s.client.Git.GetTree(ctx, owner, repo, branch, true)
	if err != nil {
		return nil, &FetchError{Slug: owner + "/" + repo, Message: upstreamMessage(err)}
	}

	entries := make([]TreeEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		kind := EntryFile
		if e.GetType() == "tree" {
			kind = EntryDir
		}
		entries = append(entries, TreeEntry{
			Path: e.GetPath(),
			Kind: kind,
			Size: int64(e.GetSize()),
		})
	}
	return entries, nil
}

func (s *GitHubSource) GetFileContent(ctx context.Context, owner, repo, branch, path string) string {
	if err := s.limiter.Wait(ctx); err != nil {
		return ""
	}

	opts := &github.RepositoryContentGetOptions{Ref: branch}
	fc, _, _, err := s.client.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil || fc == nil {
		return ""
	}

	// GetContent decodes the base64 transport encoding.
	content, err := fc.GetContent()
	if err != nil || !utf8.ValidString(content) {
		return ""
	}
	return content
}

// upstreamMessage extracts the API-provided error message. Returns "" when
// there is none, in which case the typed error's generic text applies.
func upstreamMessage(err error) string {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		return errResp.Message
	}
	return ""
}
