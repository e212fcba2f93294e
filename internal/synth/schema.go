package synth

import "repowiki/internal/provider"

// WikiSchema declares the structure the generation endpoint must return:
// a project name, a description, and an ordered list of pages with
// id/title/content required and icon optional.
func WikiSchema() *provider.Schema {
	return &provider.Schema{
		Type: "object",
		Properties: map[string]*provider.Schema{
			"projectName": {Type: "string", Description: "The project's display name"},
			"description": {Type: "string", Description: "A one-paragraph project description"},
			"pages": {
				Type:        "array",
				Description: "The ordered wiki pages",
				Items: &provider.Schema{
					Type: "object",
					Properties: map[string]*provider.Schema{
						"id":      {Type: "string", Description: "Unique lowercase slug addressing this page"},
						"title":   {Type: "string", Description: "The page title"},
						"content": {Type: "string", Description: "The page body in GitHub-flavored Markdown"},
						"icon":    {Type: "string", Description: "A single emoji for the page"},
					},
					Required: []string{"id", "title", "content"},
				},
			},
		},
		Required: []string{"projectName", "description", "pages"},
	}
}
