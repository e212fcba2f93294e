package githost

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGitHubSource starts an httptest server with the given handler and
// returns a GitHubSource pointed at it.
func newTestGitHubSource(t *testing.T, handler http.Handler) *GitHubSource {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	c.BaseURL = base

	return NewGitHubSourceWithClient(c)
}

func TestGitHubGetRepoDetails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/demo", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"description":"A demo repo","default_branch":"develop","stargazers_count":42}`)
	})

	src := newTestGitHubSource(t, mux)
	info, err := src.GetRepoDetails(context.Background(), "octo", "demo")
	require.NoError(t, err)

	assert.Equal(t, "octo", info.Owner)
	assert.Equal(t, "demo", info.Repo)
	assert.Equal(t, "A demo repo", info.Description)
	assert.Equal(t, "develop", info.DefaultBranch)
	assert.Equal(t, 42, info.Stars)
}

func TestGitHubGetRepoDetailsNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})

	src := newTestGitHubSource(t, mux)
	_, err := src.GetRepoDetails(context.Background(), "octo", "missing")
	require.Error(t, err)

	var notFound *RepoNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "octo/missing", notFound.Slug)
	assert.Contains(t, notFound.Error(), "Not Found")
}

func TestGitHubGetTree(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/demo/git/trees/develop", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("recursive"))
		fmt.Fprint(w, `{"sha":"abc","tree":[
			{"path":"README.md","type":"blob","size":120},
			{"path":"src","type":"tree"},
			{"path":"src/main.go","type":"blob","size":2048}
		]}`)
	})

	src := newTestGitHubSource(t, mux)
	entries, err := src.GetTree(context.Background(), "octo", "demo", "develop")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, TreeEntry{Path: "README.md", Kind: EntryFile, Size: 120}, entries[0])
	assert.Equal(t, TreeEntry{Path: "src", Kind: EntryDir}, entries[1])
	assert.Equal(t, EntryFile, entries[2].Kind)
}

func TestGitHubGetTreeFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message":"Git Repository is empty."}`)
	})

	src := newTestGitHubSource(t, mux)
	_, err := src.GetTree(context.Background(), "octo", "demo", "main")
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Error(), "Git Repository is empty.")
}

func TestGitHubGetFileContent(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("# Demo\n\nHello."))
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/demo/contents/README.md", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"type":"file","name":"README.md","path":"README.md","encoding":"base64","content":%q}`, encoded)
	})

	src := newTestGitHubSource(t, mux)
	content := src.GetFileContent(context.Background(), "octo", "demo", "main", "README.md")
	assert.Equal(t, "# Demo\n\nHello.", content)
}

func TestGitHubGetFileContentBestEffort(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/demo/contents/go.mod", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})
	mux.HandleFunc("/repos/octo/demo/contents/bad.bin", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"type":"file","encoding":"base64","content":"!!!not-base64!!!"}`)
	})

	src := newTestGitHubSource(t, mux)

	// A 404 yields an empty string, never an error.
	assert.Equal(t, "", src.GetFileContent(context.Background(), "octo", "demo", "main", "go.mod"))

	// Undecodable content also yields an empty string.
	assert.Equal(t, "", src.GetFileContent(context.Background(), "octo", "demo", "main", "bad.bin"))
}
