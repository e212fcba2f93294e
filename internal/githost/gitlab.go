package githost

import (
	"context"
	"errors"
	"unicode/utf8"

	gitlab "github.com/xanzy/go-gitlab"
	"golang.org/x/time/rate"
)

const (
	gitlabRPS   = 5
	gitlabBurst = 5
)

// GitLabSource implements Source against the GitLab REST API.
type GitLabSource struct {
	client  *gitlab.Client
	limiter *rate.Limiter
}

// NewGitLabSource creates a GitLabSource for gitlab.com. An empty token
// means unauthenticated access to public projects.
func NewGitLabSource(token string) (*GitLabSource, error) {
	c, err := gitlab.NewClient(token)
	if err != nil {
		return nil, err
	}
	return newGitLabSource(c), nil
}

// NewGitLabSourceWithClient wraps an existing client. Used by tests to point
// at an httptest server.
func NewGitLabSourceWithClient(c *gitlab.Client) *GitLabSource {
	return newGitLabSource(c)
}

func newGitLabSource(c *gitlab.Client) *GitLabSource {
	return &GitLabSource{
		client:  c,
		limiter: rate.NewLimiter(rate.Limit(gitlabRPS), gitlabBurst),
	}
}

func (s *GitLabSource) GetRepoDetails(ctx context.Context, owner, repo string) (*RepoInfo, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	pid := owner + "/" + repo
	p, _, err := s.client.Projects.GetProject(pid, nil, gitlab.WithContext(ctx))
	if err != nil {
		return nil, &RepoNotFoundError{Slug: pid, Message: gitlabMessage(err)}
	}

	return &RepoInfo{
		Owner:         owner,
		Repo:          repo,
		Description:   p.Description,
		DefaultBranch: p.DefaultBranch,
		Stars:         p.StarCount,
	}, nil
}

func (s *GitLabSource) GetTree(ctx context.Context, owner, repo, branch string) ([]TreeEntry, error) {
	pid := owner + "/" + repo
	opts := &gitlab.ListTreeOptions{
		Recursive:   gitlab.Ptr(true),
		Ref:         gitlab.Ptr(branch),
		ListOptions: gitlab.ListOptions{PerPage: 100},
	}

	var entries []TreeEntry
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		nodes, resp, err := s.client.Repositories.ListTree(pid, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, &FetchError{Slug: pid, Message: gitlabMessage(err)}
		}
		for _, n := range nodes {
			kind := EntryFile
			if n.Type == "tree" {
				kind = EntryDir
			}
			entries = append(entries, TreeEntry{Path: n.Path, Kind: kind})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return entries, nil
}

func (s *GitLabSource) GetFileContent(ctx context.Context, owner, repo, branch, path string) string {
	if err := s.limiter.Wait(ctx); err != nil {
		return ""
	}

	pid := owner + "/" + repo
	raw, _, err := s.client.RepositoryFiles.GetRawFile(pid, path,
		&gitlab.GetRawFileOptions{Ref: gitlab.Ptr(branch)}, gitlab.WithContext(ctx))
	if err != nil || !utf8.Valid(raw) {
		return ""
	}
	return string(raw)
}

// gitlabMessage extracts the API-provided error message. Returns "" when
// there is none, in which case the typed error's generic text applies.
func gitlabMessage(err error) string {
	var errResp *gitlab.ErrorResponse
	if errors.As(err, &errResp) {
		return errResp.Message
	}
	return ""
}
