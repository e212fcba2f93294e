package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repowiki/internal/provider"
)

var testSchema = &provider.Schema{
	Type: "object",
	Properties: map[string]*provider.Schema{
		"projectName": {Type: "string"},
		"pages": {
			Type: "array",
			Items: &provider.Schema{
				Type: "object",
				Properties: map[string]*provider.Schema{
					"id":    {Type: "string"},
					"title": {Type: "string"},
				},
				Required: []string{"id", "title"},
			},
		},
	},
	Required: []string{"projectName", "pages"},
}

// newTestGenerator serves canned message responses from an httptest server.
func newTestGenerator(t *testing.T, responseText string) *Generator {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/messages", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		body := map[string]any{
			"id":      "msg_test",
			"type":    "message",
			"role":    "assistant",
			"model":   "claude-sonnet-4-5",
			"content": []map[string]any{{"type": "text", "text": responseText}},
			"usage":   map[string]any{"input_tokens": 10, "output_tokens": 20},
		}
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}))
	t.Cleanup(srv.Close)

	return New("test-key", "claude-sonnet-4-5", anthropic.WithBaseURL(srv.URL+"/v1"))
}

func TestGenerateJSONValid(t *testing.T) {
	g := newTestGenerator(t, `{"projectName":"demo","pages":[{"id":"overview","title":"Overview"}]}`)

	raw, err := g.GenerateJSON(context.Background(), "describe the repo", testSchema)
	require.NoError(t, err)

	var out struct {
		ProjectName string `json:"projectName"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "demo", out.ProjectName)
}

func TestGenerateJSONStripsFences(t *testing.T) {
	fenced := "```json\n{\"projectName\":\"demo\",\"pages\":[]}\n```"
	g := newTestGenerator(t, fenced)

	raw, err := g.GenerateJSON(context.Background(), "prompt", testSchema)
	require.NoError(t, err)
	assert.JSONEq(t, `{"projectName":"demo","pages":[]}`, string(raw))
}

func TestGenerateJSONSchemaViolation(t *testing.T) {
	// Page objects are missing the required title.
	g := newTestGenerator(t, `{"projectName":"demo","pages":[{"id":"overview"}]}`)

	_, err := g.GenerateJSON(context.Background(), "prompt", testSchema)
	assert.ErrorContains(t, err, "does not conform to schema")
}

func TestGenerateJSONEmptyResponse(t *testing.T) {
	g := newTestGenerator(t, "")

	_, err := g.GenerateJSON(context.Background(), "prompt", testSchema)
	assert.ErrorIs(t, err, provider.ErrNoText)
}

func TestGenerateJSONAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`)
	}))
	t.Cleanup(srv.Close)

	g := New("test-key", "claude-sonnet-4-5", anthropic.WithBaseURL(srv.URL+"/v1"))
	_, err := g.GenerateJSON(context.Background(), "prompt", testSchema)
	assert.ErrorContains(t, err, "anthropic generate")
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
}
