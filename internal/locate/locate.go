// Package locate resolves user-supplied repository URLs into normalized
// (host, owner, repo) references.
package locate

import "strings"

// Host identifies the hosting service a reference was parsed from.
type Host string

const (
	HostGitHub Host = "github"
	HostGitLab Host = "gitlab"
)

// RepoRef is a resolved repository reference. Branch starts as a placeholder
// and is corrected once real metadata is available.
type RepoRef struct {
	Host   Host
	Owner  string
	Repo   string
	Branch string
}

// knownHosts maps hosting domains to their Host identifier. Unrecognized
// domains fall back to GitHub, which matches the bare "owner/repo" form.
var knownHosts = map[string]Host{
	"github.com": HostGitHub,
	"gitlab.com": HostGitLab,
}

// Parse normalizes a repository URL into a RepoRef. It tolerates a protocol
// prefix, a "www." prefix, a trailing slash, and extra path segments after
// the repository name. Returns nil when the input does not contain at least
// an owner and a repository segment; a nil result is an expected outcome the
// caller must check, not an error.
func Parse(raw string) *RepoRef {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "/")
	if s == "" {
		return nil
	}

	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	s = strings.TrimPrefix(s, "www.")

	host := HostGitHub
	for domain, h := range knownHosts {
		if s == domain || strings.HasPrefix(s, domain+"/") {
			host = h
			s = strings.TrimPrefix(s, domain)
			break
		}
	}

	var segments []string
	for _, seg := range strings.Split(s, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) < 2 {
		return nil
	}

	return &RepoRef{
		Host:   host,
		Owner:  segments[0],
		Repo:   segments[1],
		Branch: "main",
	}
}

// Slug returns the canonical "owner/repo" form of the reference.
func (r *RepoRef) Slug() string {
	return r.Owner + "/" + r.Repo
}

// URL returns the canonical web URL of the reference.
func (r *RepoRef) URL() string {
	domain := "github.com"
	if r.Host == HostGitLab {
		domain = "gitlab.com"
	}
	return "https://" + domain + "/" + r.Slug()
}
