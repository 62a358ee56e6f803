package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/igd-setup/internal/flow"
)

// Messages for async operations
type scanStartMsg struct{}
type scanCompleteMsg struct {
	result *flow.Result
	err    error
}

// discoveryKeyMap defines key bindings for the discovery screen
type discoveryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Rescan key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k discoveryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Rescan, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k discoveryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter},
		{k.Rescan, k.Quit},
	}
}

// emptyScreenKeyMap defines key bindings when no routers were found
type emptyScreenKeyMap struct {
	Rescan key.Binding
	Quit   key.Binding
}

func (e emptyScreenKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{e.Rescan, e.Quit}
}

func (e emptyScreenKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{e.Rescan, e.Quit},
	}
}

// routerItem wraps a selection option for use with bubbles/list
type routerItem struct {
	option flow.FormOption
}

// FilterValue implements list.Item; filter by label or USN
func (r routerItem) FilterValue() string {
	return r.option.Label + " " + r.option.UniqueID
}

// routerDelegate renders router entries in the selection list
type routerDelegate struct{}

func (d routerDelegate) Height() int  { return 2 }
func (d routerDelegate) Spacing() int { return 1 }

func (d routerDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d routerDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ri, ok := item.(routerItem)
	if !ok {
		return
	}

	selected := index == m.Index()

	var b strings.Builder
	if selected {
		b.WriteString(SelectedItemStyle.Render("→ " + ri.option.Label))
	} else {
		b.WriteString("    " + ri.option.Label)
	}
	b.WriteString("\n")
	usnStyle := lipgloss.NewStyle().Foreground(SubtleColor).PaddingLeft(6)
	b.WriteString(usnStyle.Render(ri.option.UniqueID))

	fmt.Fprint(w, b.String())
}

// DiscoveryModel represents the router discovery screen state
type DiscoveryModel struct {
	handler *flow.Handler

	Scanning   bool
	RouterList list.Model
	Err        error

	Width         int
	Height        int
	Spinner       spinner.Model
	ScanStartTime time.Time
	Help          help.Model
	Keys          discoveryKeyMap
	EmptyKeys     emptyScreenKeyMap
}

// NewDiscoveryModel creates a new discovery screen model
func NewDiscoveryModel(handler *flow.Handler) DiscoveryModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	delegate := routerDelegate{}
	routerList := list.New([]list.Item{}, delegate, 0, 0)
	routerList.Title = "Discovered Routers"
	routerList.SetShowStatusBar(false)
	routerList.SetFilteringEnabled(true)
	routerList.Styles.Title = TitleStyle

	keys := discoveryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "configure"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}

	emptyKeys := emptyScreenKeyMap{
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}

	return DiscoveryModel{
		handler:    handler,
		RouterList: routerList,
		Spinner:    s,
		Help:       help.New(),
		Keys:       keys,
		EmptyKeys:  emptyKeys,
	}
}

// scanCmd runs the initial user step (the network scan) off the UI loop
func scanCmd(handler *flow.Handler) tea.Cmd {
	return func() tea.Msg {
		result, err := handler.StepUser(context.Background(), "")
		return scanCompleteMsg{result: result, err: err}
	}
}

// Init starts scanning immediately
func (m DiscoveryModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return scanStartMsg{} },
		scanCmd(m.handler),
		m.Spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m DiscoveryModel) Update(msg tea.Msg) (DiscoveryModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.RouterList.SetWidth(contentWidth(msg.Width) - 4)
		m.RouterList.SetHeight(msg.Height - 10) // Leave room for header/footer

	case scanStartMsg:
		m.Scanning = true
		m.ScanStartTime = time.Now()

	case scanCompleteMsg:
		m.Scanning = false
		m.Err = msg.err
		items := make([]list.Item, 0)
		if msg.result != nil && msg.result.Type == flow.ResultForm {
			for _, opt := range msg.result.Options {
				items = append(items, routerItem{option: opt})
			}
		}
		m.RouterList.SetItems(items)

	case spinner.TickMsg:
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	if !m.Scanning {
		m.RouterList, cmd = m.RouterList.Update(msg)
	}
	return m, cmd
}

// updateKeys handles keyboard input
func (m DiscoveryModel) updateKeys(msg tea.KeyMsg) (DiscoveryModel, tea.Cmd) {
	// Let the list handle keys while the user is filtering.
	if m.RouterList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.RouterList, cmd = m.RouterList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "enter":
		if m.Scanning {
			return m, nil
		}
		if item, ok := m.RouterList.SelectedItem().(routerItem); ok {
			option := item.option
			return m, func() tea.Msg { return routerSelectedMsg{option: option} }
		}
		return m, nil

	case "r":
		if m.Scanning {
			return m, nil
		}
		return m, tea.Batch(
			func() tea.Msg { return scanStartMsg{} },
			scanCmd(m.handler),
			m.Spinner.Tick,
		)
	}

	var cmd tea.Cmd
	m.RouterList, cmd = m.RouterList.Update(msg)
	return m, cmd
}

// View renders the discovery screen
func (m DiscoveryModel) View() string {
	var b strings.Builder
	b.WriteString(header())
	b.WriteString("\n\n")

	switch {
	case m.Scanning:
		elapsed := time.Since(m.ScanStartTime).Round(time.Second)
		b.WriteString(fmt.Sprintf("%s Scanning for IGD routers... (%s)\n",
			m.Spinner.View(), elapsed))
		b.WriteString(SubtitleStyle.Render("Broadcasting SSDP M-SEARCH for IGDv1 and IGDv2"))

	case m.Err != nil:
		b.WriteString(ErrorBoxStyle.Render("Scan failed: " + m.Err.Error()))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render(m.Help.View(m.EmptyKeys)))

	case len(m.RouterList.Items()) == 0:
		b.WriteString(WarningBoxStyle.Render("No unconfigured IGD routers found"))
		b.WriteString("\n\n")
		b.WriteString(SubtitleStyle.Render("Routers already configured are not listed again."))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render(m.Help.View(m.EmptyKeys)))

	default:
		b.WriteString(m.RouterList.View())
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render(m.Help.View(m.Keys)))
	}

	return b.String()
}
