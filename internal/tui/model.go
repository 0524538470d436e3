// Package tui is the live interface dashboard.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"grimm.is/netctl/internal/brand"
	"grimm.is/netctl/internal/clock"
)

// View is the active screen.
type View int

const (
	ViewInterfaces View = iota
	ViewStatistics
	ViewDetails
	viewCount
)

// DefaultInterval is the refresh period when none is given.
const DefaultInterval = time.Second

// BackendError is delivered when a refresh fails.
type BackendError struct {
	Err error
}

type tickMsg time.Time

// Model is the dashboard state.
type Model struct {
	Backend  Backend
	Clock    clock.Clock
	Interval time.Duration

	ActiveView View
	Width      int
	Height     int

	Snapshot  *Snapshot
	LastError string
	Table     table.Model

	ctx context.Context
}

// NewModel builds a dashboard over backend. Reads honour ctx.
func NewModel(ctx context.Context, backend Backend, interval time.Duration) Model {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return Model{
		Backend:    backend,
		Clock:      clock.RealClock{},
		Interval:   interval,
		ActiveView: ViewInterfaces,
		Table:      newInterfaceTable(),
		ctx:        ctx,
	}
}

// Init starts the first refresh.
func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m Model) refresh() tea.Cmd {
	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	backend, now := m.Backend, m.Clock.Now()
	return func() tea.Msg {
		snap, err := Fetch(ctx, backend, now)
		if err != nil {
			return BackendError{Err: err}
		}
		return snap
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.ActiveView = (m.ActiveView + 1) % viewCount
			return m, nil
		case "shift+tab":
			m.ActiveView = (m.ActiveView + viewCount - 1) % viewCount
			return m, nil
		case "1":
			m.ActiveView = ViewInterfaces
			return m, nil
		case "2":
			m.ActiveView = ViewStatistics
			return m, nil
		case "3", "enter":
			m.ActiveView = ViewDetails
			return m, nil
		case "r":
			return m, m.refresh()
		}

	case *Snapshot:
		m.Snapshot = msg
		m.LastError = ""
		m.Table.SetRows(interfaceRows(msg))
		return m, m.tick()

	case BackendError:
		m.LastError = msg.Err.Error()
		return m, m.tick()

	case tickMsg:
		return m, m.refresh()

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		if h := msg.Height - 10; h > 3 {
			m.Table.SetHeight(h)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

// Selected returns the link under the cursor, or nil.
func (m Model) Selected() *LinkView {
	if m.Snapshot == nil {
		return nil
	}
	i := m.Table.Cursor()
	if i < 0 || i >= len(m.Snapshot.Links) {
		return nil
	}
	return &m.Snapshot.Links[i]
}

// View renders the dashboard.
func (m Model) View() string {
	doc := m.viewTopBar() + "\n"

	if m.Snapshot == nil {
		if m.LastError != "" {
			doc += StyleLinkDown.Render("Read failed: "+m.LastError) + "\n"
		} else {
			doc += "Loading interfaces..."
		}
		return StyleApp.Render(doc)
	}

	switch m.ActiveView {
	case ViewInterfaces:
		doc += m.viewInterfaces()
	case ViewStatistics:
		doc += m.viewStatistics()
	case ViewDetails:
		doc += m.viewDetails()
	}
	doc += "\n" + m.viewFooter()
	return StyleApp.Render(doc)
}

func (m Model) viewTopBar() string {
	menus := []struct {
		View  View
		Label string
		Key   string
	}{
		{ViewInterfaces, "Interfaces", "1"},
		{ViewStatistics, "Statistics", "2"},
		{ViewDetails, "Details", "3"},
	}

	items := []string{StyleTitle.Render(brand.Name + " ")}
	for _, menu := range menus {
		key := StyleMenuKey.Render("[" + menu.Key + "]")
		if m.ActiveView == menu.View {
			items = append(items, StyleMenuItemActive.Render(key+" "+menu.Label))
		} else {
			items = append(items, StyleMenuItem.Render(key+" "+menu.Label))
		}
	}
	return StyleTopBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, items...))
}

func (m Model) viewFooter() string {
	text := "q: quit  tab: next view  j/k: select  r: refresh  every " + m.Interval.String()
	if m.LastError != "" {
		text += "  " + StyleWarn.Render("last refresh failed: "+m.LastError)
	}
	return StyleFooter.Render(text)
}

// Run shows the dashboard until the user quits or ctx ends.
func Run(ctx context.Context, backend Backend, interval time.Duration) error {
	p := tea.NewProgram(NewModel(ctx, backend, interval), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
