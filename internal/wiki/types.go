package wiki

// Page is a single navigable unit of generated documentation. ID is a stable
// slug and the sole addressing key for navigation and deep links.
type Page struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Icon    string `json:"icon,omitempty"`
}

// Document is the full generated documentation set for one repository.
type Document struct {
	ProjectName string `json:"projectName"`
	Description string `json:"description"`
	Pages       []Page `json:"pages"`
}

// Page returns the page with the given id, or nil if no such page exists.
func (d *Document) Page(id string) *Page {
	for i := range d.Pages {
		if d.Pages[i].ID == id {
			return &d.Pages[i]
		}
	}
	return nil
}

// FirstPageID returns the id of the first page, or "" for an empty document.
func (d *Document) FirstPageID() string {
	if len(d.Pages) == 0 {
		return ""
	}
	return d.Pages[0].ID
}

// DuplicateIDs returns any page ids that appear more than once, in first-seen
// order. Generation is schema-constrained, so duplicates indicate a model that
// ignored the id-uniqueness instruction; callers log them rather than fail.
func (d *Document) DuplicateIDs() []string {
	seen := make(map[string]int, len(d.Pages))
	var dups []string
	for _, p := range d.Pages {
		seen[p.ID]++
		if seen[p.ID] == 2 {
			dups = append(dups, p.ID)
		}
	}
	return dups
}
