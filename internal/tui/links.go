package tui

import "regexp"

// LinkKind classifies a markdown link target.
type LinkKind int

const (
	// LinkInternal targets another page of the current wiki. The default
	// navigation is suppressed and the target (fragment marker stripped) is
	// treated as a page id.
	LinkInternal LinkKind = iota
	// LinkExternal targets another site. External links are displayed but
	// never followed by the application.
	LinkExternal
)

// PageLink is one link extracted from a page's markdown.
type PageLink struct {
	Text   string
	Target string
	Kind   LinkKind
	PageID string // set for LinkInternal
}

// markdownLinkRe matches inline markdown links. The leading capture detects
// an image prefix so images are not treated as navigation.
var markdownLinkRe = regexp.MustCompile(`(!?)\[([^\]]*)\]\(([^)\s]+)[^)]*\)`)

// schemeRe matches an explicit protocol prefix ("https:", "mailto:", ...).
var schemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// ExtractLinks pulls all non-image links out of a page's markdown, in
// document order. A target that is a fragment reference or lacks an explicit
// protocol prefix is internal: generated wikis address their own pages as
// "#page-id" or bare "page-id", and those must route back through the
// navigation controller instead of a browser.
func ExtractLinks(markdown string) []PageLink {
	matches := markdownLinkRe.FindAllStringSubmatch(markdown, -1)
	links := make([]PageLink, 0, len(matches))
	for _, m := range matches {
		if m[1] == "!" {
			continue
		}
		link := PageLink{Text: m[2], Target: m[3]}
		if isInternal(m[3]) {
			link.Kind = LinkInternal
			link.PageID = stripFragment(m[3])
		} else {
			link.Kind = LinkExternal
		}
		links = append(links, link)
	}
	return links
}

// InternalLinks filters ExtractLinks output down to navigable targets.
func InternalLinks(links []PageLink) []PageLink {
	var internal []PageLink
	for _, l := range links {
		if l.Kind == LinkInternal {
			internal = append(internal, l)
		}
	}
	return internal
}

func isInternal(target string) bool {
	if target == "" {
		return false
	}
	if target[0] == '#' {
		return true
	}
	return !schemeRe.MatchString(target)
}

func stripFragment(target string) string {
	if target != "" && target[0] == '#' {
		return target[1:]
	}
	return target
}
