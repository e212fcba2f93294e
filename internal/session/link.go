package session

import (
	"net/url"
	"strings"
)

// shareBase is the web frontend that understands repo/page deep links. A
// pasted share link rebuilds the same wiki and opens the same page.
const shareBase = "https://repowiki.dev/"

// EncodeLink builds a shareable URL embedding the repository URL and,
// when non-empty, the active page id.
func EncodeLink(repoURL, pageID string) string {
	q := url.Values{}
	q.Set("repo", repoURL)
	if pageID != "" {
		q.Set("page", pageID)
	}
	return shareBase + "?" + q.Encode()
}

// ParseLink extracts the repo URL and page id from a share link. Returns
// ok=false when the input is not a share link (no repo query parameter), in
// which case callers treat the input as a plain repository URL.
func ParseLink(raw string) (repoURL, pageID string, ok bool) {
	s := strings.TrimSpace(raw)
	if !strings.Contains(s, "?") {
		return "", "", false
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", "", false
	}
	q := u.Query()
	repoURL = q.Get("repo")
	if repoURL == "" {
		return "", "", false
	}
	return repoURL, q.Get("page"), true
}
