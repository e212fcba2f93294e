package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"repowiki/internal/session"
)

const sidebarWidth = 28

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	sidebarStyle = lipgloss.NewStyle().
			Width(sidebarWidth).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(lipgloss.Color("238"))

	sidebarItemStyle = lipgloss.NewStyle().
				PaddingLeft(1)

	sidebarActiveStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				Bold(true).
				Foreground(lipgloss.Color("212"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	linkFooterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))
)

// contentWidth is the viewport width once the sidebar takes its share.
func contentWidth(total int) int {
	w := total - sidebarWidth - 2
	if w < 20 {
		w = 20
	}
	return w
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.ctrl.State()
	switch st.Phase {
	case session.PhaseIdle:
		return m.viewIdle()
	case session.PhaseLoading:
		return m.viewLoading(st)
	case session.PhaseReady:
		return m.viewReady(st)
	case session.PhaseError:
		return m.viewError(st)
	}
	return ""
}

func (m *Model) viewIdle() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.appName))
	b.WriteString("\n\n")
	b.WriteString("Enter a public repository URL to generate its wiki.\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("enter to build, ctrl+c to quit"))
	return b.String()
}

func (m *Model) viewLoading(st session.State) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.appName))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), st.Step))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(st.RepoURL))
	return b.String()
}

func (m *Model) viewError(st session.State) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.appName))
	b.WriteString("\n\n")
	b.WriteString(errorStyle.Render(st.ErrMsg))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("enter to try another repository, ctrl+c to quit"))
	return b.String()
}

func (m *Model) viewReady(st session.State) string {
	header := titleStyle.Render(m.appName)
	if st.Doc != nil && st.Doc.ProjectName != "" {
		header += dimStyle.Render("  " + st.Doc.ProjectName)
	}

	content := m.viewport.View()
	body := content
	if st.SidebarOpen {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(st), content)
	}

	status := m.renderStatusBar(st)

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(status)
	if st.Toast != "" {
		b.WriteString("\n")
		b.WriteString(toastStyle.Render(st.Toast))
	}
	return b.String()
}

func (m *Model) renderSidebar(st session.State) string {
	if st.Doc == nil {
		return sidebarStyle.Render("")
	}
	var lines []string
	for i, p := range st.Doc.Pages {
		label := p.Title
		if p.Icon != "" {
			label = p.Icon + " " + label
		}
		if i == m.sidebarIndex {
			lines = append(lines, sidebarActiveStyle.Render("> "+label))
		} else {
			lines = append(lines, sidebarItemStyle.Render("  "+label))
		}
	}
	return sidebarStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderStatusBar(st session.State) string {
	parts := []string{
		"tab sidebar",
		"s share",
		"n new",
		"q quit",
	}
	if internal := InternalLinks(m.pageLinks); len(internal) > 0 {
		parts = append([]string{"1-9 follow link"}, parts...)
	}
	page := ""
	if st.Doc != nil {
		if p := st.Doc.Page(st.ActivePageID); p != nil {
			page = p.Title + "  "
		}
	}
	return statusStyle.Render(page + strings.Join(parts, " · "))
}

// renderLinkFooter lists the page's internal links with the digit shortcuts
// that follow them. External links render as plain references.
func renderLinkFooter(links []PageLink) string {
	if len(links) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(dimStyle.Render("Links:"))
	b.WriteString("\n")
	n := 0
	for _, l := range links {
		switch l.Kind {
		case LinkInternal:
			n++
			if n > 9 {
				continue
			}
			b.WriteString(linkFooterStyle.Render(fmt.Sprintf("  [%d] %s", n, l.Text)))
			b.WriteString("\n")
		case LinkExternal:
			b.WriteString(dimStyle.Render(fmt.Sprintf("  %s (%s)", l.Text, l.Target)))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
