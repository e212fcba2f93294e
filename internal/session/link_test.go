package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeParseRoundTrip(t *testing.T) {
	link := EncodeLink("https://github.com/octo/demo", "setup")

	repoURL, pageID, ok := ParseLink(link)
	require.True(t, ok)
	assert.Equal(t, "https://github.com/octo/demo", repoURL)
	assert.Equal(t, "setup", pageID)
}

func TestEncodeLinkWithoutPage(t *testing.T) {
	link := EncodeLink("https://github.com/octo/demo", "")

	repoURL, pageID, ok := ParseLink(link)
	require.True(t, ok)
	assert.Equal(t, "https://github.com/octo/demo", repoURL)
	assert.Equal(t, "", pageID)
}

func TestParseLinkRejectsPlainURLs(t *testing.T) {
	inputs := []string{
		"https://github.com/octo/demo",
		"github.com/octo/demo",
		"octo/demo",
		"https://repowiki.dev/?other=x",
		"",
	}
	for _, in := range inputs {
		_, _, ok := ParseLink(in)
		assert.False(t, ok, "input %q should not parse as a share link", in)
	}
}
