package wiki

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleDoc() *Document {
	return &Document{
		ProjectName: "demo",
		Description: "A demo project",
		Pages: []Page{
			{ID: "overview", Title: "Overview", Content: "# Overview"},
			{ID: "setup", Title: "Setup", Content: "# Setup"},
			{ID: "usage", Title: "Usage", Content: "# Usage"},
		},
	}
}

func TestPageLookup(t *testing.T) {
	doc := sampleDoc()

	p := doc.Page("setup")
	assert.NotNil(t, p)
	assert.Equal(t, "Setup", p.Title)

	assert.Nil(t, doc.Page("missing"))
	assert.Nil(t, doc.Page(""))
}

func TestFirstPageID(t *testing.T) {
	doc := sampleDoc()
	assert.Equal(t, "overview", doc.FirstPageID())

	empty := &Document{}
	assert.Equal(t, "", empty.FirstPageID())
}

func TestDuplicateIDs(t *testing.T) {
	doc := sampleDoc()
	assert.Empty(t, doc.DuplicateIDs())

	doc.Pages = append(doc.Pages, Page{ID: "setup", Title: "Setup 2"})
	doc.Pages = append(doc.Pages, Page{ID: "setup", Title: "Setup 3"})
	assert.Equal(t, []string{"setup"}, doc.DuplicateIDs())
}
