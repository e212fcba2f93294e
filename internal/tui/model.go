package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"repowiki/internal/session"
)

// toastDuration is how long a share confirmation stays on screen.
const toastDuration = 3 // seconds

// Model is the Bubble Tea model for the repowiki TUI. All document and
// phase state lives in the session controller; the model holds only
// presentation concerns and reads controller snapshots when events arrive.
type Model struct {
	ctrl       *session.Controller
	input      textinput.Model
	spinner    spinner.Model
	viewport   viewport.Model
	mdRenderer *MarkdownRenderer

	// startInput replays a build before first paint when the process was
	// started with a repository URL or share link.
	startInput string
	startPage  string

	pageLinks    []PageLink // links of the currently rendered page
	sidebarIndex int
	appName      string
	width        int
	height       int
	quitting     bool
	eventCh      <-chan session.Event
}

// Ensure Model satisfies the tea.Model interface at compile time.
var _ tea.Model = (*Model)(nil)

// NewModel creates a TUI model around the given controller. startInput, when
// non-empty, triggers an automatic one-shot build on startup; startPage
// deep-links into the generated document.
func NewModel(ctrl *session.Controller, startInput, startPage string) *Model {
	ti := textinput.New()
	ti.Placeholder = "github.com/owner/repo or a share link"
	ti.Prompt = "> "
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(80, 20)

	// Glamour renderer creation is unlikely to fail with static "dark"
	// style; Render falls back to raw text if the renderer is nil.
	mdRenderer, _ := NewMarkdownRenderer(76)

	return &Model{
		ctrl:       ctrl,
		input:      ti,
		spinner:    sp,
		viewport:   vp,
		mdRenderer: mdRenderer,
		startInput: startInput,
		startPage:  startPage,
		appName:    "repowiki",
		width:      80,
		height:     24,
	}
}

// renderActivePage re-renders the active page into the viewport and
// refreshes the extracted link list.
func (m *Model) renderActivePage() {
	st := m.ctrl.State()
	if st.Doc == nil {
		return
	}
	page := st.Doc.Page(st.ActivePageID)
	if page == nil {
		return
	}

	m.pageLinks = ExtractLinks(page.Content)

	rendered, err := m.mdRenderer.Render(page.Content)
	if err != nil || rendered == "" {
		rendered = page.Content
	}

	var b strings.Builder
	b.WriteString(rendered)
	if footer := renderLinkFooter(m.pageLinks); footer != "" {
		b.WriteString("\n")
		b.WriteString(footer)
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}

// syncSidebarIndex aligns the sidebar cursor with the active page.
func (m *Model) syncSidebarIndex() {
	st := m.ctrl.State()
	if st.Doc == nil {
		return
	}
	for i, p := range st.Doc.Pages {
		if p.ID == st.ActivePageID {
			m.sidebarIndex = i
			return
		}
	}
	m.sidebarIndex = 0
}
