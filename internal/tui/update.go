package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"repowiki/internal/session"
)

// buildEventMsg wraps a session.Event as a Bubble Tea message.
type buildEventMsg session.Event

// buildStartedMsg carries the event channel and first event back to Update
// so m.eventCh is set in the Update goroutine rather than the Cmd goroutine.
type buildStartedMsg struct {
	ch    <-chan session.Event
	first session.Event
	ok    bool
}

// shareResultMsg reports the outcome of a clipboard write.
type shareResultMsg struct{ err error }

// toastExpiredMsg dismisses the current toast.
type toastExpiredMsg struct{}

// Init implements tea.Model. When a startup repo or share link is present,
// the build replays automatically before any user interaction.
func (m *Model) Init() tea.Cmd {
	if m.startInput != "" {
		return tea.Batch(m.startBuild(m.startInput, m.startPage), m.spinner.Tick)
	}
	return m.input.Focus()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve space for header (1), divider (1), status (1), toast (1).
		viewportHeight := m.height - 4
		if viewportHeight < 1 {
			viewportHeight = 1
		}
		m.viewport.Width = contentWidth(m.width)
		m.viewport.Height = viewportHeight
		return m, nil

	case buildStartedMsg:
		if !msg.ok {
			// The channel closed without an event; state already settled.
			return m, nil
		}
		m.eventCh = msg.ch
		return m.handleBuildEvent(buildEventMsg(msg.first))

	case buildEventMsg:
		return m.handleBuildEvent(msg)

	case shareResultMsg:
		if msg.err != nil {
			m.ctrl.SetToast("Could not copy the link")
		} else {
			m.ctrl.SetToast("Link copied to clipboard")
		}
		return m, tea.Tick(toastDuration*time.Second, func(time.Time) tea.Msg {
			return toastExpiredMsg{}
		})

	case toastExpiredMsg:
		m.ctrl.ClearToast()
		return m, nil

	case spinner.TickMsg:
		if m.ctrl.State().Phase == session.PhaseLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// handleKeyMsg processes keyboard input per phase.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.ctrl.State().Phase {
	case session.PhaseIdle:
		return m.handleIdleKey(msg)
	case session.PhaseReady:
		return m.handleReadyKey(msg)
	case session.PhaseError:
		if msg.Type == tea.KeyEnter || msg.String() == "r" {
			m.ctrl.StartNew()
			return m, m.input.Focus()
		}
	}
	return m, nil
}

func (m *Model) handleIdleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		text := m.input.Value()
		if text == "" {
			return m, nil
		}
		return m, tea.Batch(m.startBuild(text, ""), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleReadyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.ctrl.State()

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "n":
		m.ctrl.StartNew()
		m.input.Reset()
		m.pageLinks = nil
		return m, m.input.Focus()

	case "s":
		return m, m.share()

	case "tab":
		m.ctrl.ToggleSidebar()
		m.syncSidebarIndex()
		return m, nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.String()[0] - '1')
		internal := InternalLinks(m.pageLinks)
		if idx < len(internal) {
			m.ctrl.Navigate(internal[idx].PageID)
			m.renderActivePage()
			m.syncSidebarIndex()
		}
		return m, nil
	}

	if st.SidebarOpen {
		switch msg.String() {
		case "up", "k":
			if m.sidebarIndex > 0 {
				m.sidebarIndex--
			}
			return m, nil
		case "down", "j":
			if st.Doc != nil && m.sidebarIndex < len(st.Doc.Pages)-1 {
				m.sidebarIndex++
			}
			return m, nil
		case "enter":
			if st.Doc != nil && m.sidebarIndex < len(st.Doc.Pages) {
				m.ctrl.Navigate(st.Doc.Pages[m.sidebarIndex].ID)
				m.renderActivePage()
			}
			return m, nil
		}
	}

	// Everything else scrolls the page.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// startBuild kicks off a build and returns a command delivering the event
// channel and its first event.
func (m *Model) startBuild(input, wantPage string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ch := ctrl.Build(context.Background(), input, wantPage)
		evt, ok := <-ch
		return buildStartedMsg{ch: ch, first: evt, ok: ok}
	}
}

// waitForEvent reads the next build event.
func (m *Model) waitForEvent() tea.Cmd {
	ch := m.eventCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return nil
		}
		return buildEventMsg(evt)
	}
}

// handleBuildEvent applies a build progress event.
func (m *Model) handleBuildEvent(msg buildEventMsg) (tea.Model, tea.Cmd) {
	switch session.Event(msg).Type {
	case session.EventStep:
		return m, tea.Batch(m.waitForEvent(), m.spinner.Tick)

	case session.EventReady:
		m.eventCh = nil
		m.renderActivePage()
		m.syncSidebarIndex()
		return m, nil

	case session.EventError:
		m.eventCh = nil
		return m, nil
	}
	return m, m.waitForEvent()
}

// share copies the current share link to the clipboard. The terminal has no
// native share surface, so the clipboard is the fallback chain's only rung.
func (m *Model) share() tea.Cmd {
	link := m.ctrl.ShareLink()
	if link == "" {
		return nil
	}
	return func() tea.Msg {
		return shareResultMsg{err: clipboard.WriteAll(link)}
	}
}
