package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaJSONMap(t *testing.T) {
	s := &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"projectName": {Type: "string", Description: "The project name"},
			"pages": {
				Type: "array",
				Items: &Schema{
					Type: "object",
					Properties: map[string]*Schema{
						"id":    {Type: "string"},
						"title": {Type: "string"},
					},
					Required: []string{"id", "title"},
				},
			},
		},
		Required: []string{"projectName", "pages"},
	}

	m := s.JSONMap()
	assert.Equal(t, "object", m["type"])
	assert.Equal(t, []string{"projectName", "pages"}, m["required"])

	props, ok := m["properties"].(map[string]any)
	require.True(t, ok)

	name, ok := props["projectName"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "The project name", name["description"])

	pages, ok := props["pages"].(map[string]any)
	require.True(t, ok)
	items, ok := pages["items"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"id", "title"}, items["required"])
}

func TestSchemaJSONMapOmitsEmptyFields(t *testing.T) {
	m := (&Schema{Type: "string"}).JSONMap()
	assert.Equal(t, map[string]any{"type": "string"}, m)
}
