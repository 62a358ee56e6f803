package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/igd-setup/internal/flow"
)

// Screen represents the current active screen in the wizard
type Screen string

const (
	ScreenDiscovery Screen = "discovery"
	ScreenConfirm   Screen = "confirm"
	ScreenResult    Screen = "result"
)

// goBackMsg returns to the discovery screen and rescans
type goBackMsg struct{}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	handler *flow.Handler

	CurrentScreen Screen
	Discovery     DiscoveryModel
	Confirm       ConfirmModel
	Result        ResultModel

	Width  int
	Height int
}

// NewAppModel creates the wizard coordinator around a flow handler
func NewAppModel(handler *flow.Handler) AppModel {
	return AppModel{
		handler:       handler,
		CurrentScreen: ScreenDiscovery,
		Discovery:     NewDiscoveryModel(handler),
		Confirm:       NewConfirmModel(handler),
		Result:        NewResultModel(),
	}
}

// Init starts the wizard on the discovery screen
func (m AppModel) Init() tea.Cmd {
	return m.Discovery.Init()
}

// Update routes messages to the active screen and handles transitions
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Window size goes to every screen so they stay laid out.
		m.Width = msg.Width
		m.Height = msg.Height
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.Discovery, cmd = m.Discovery.Update(msg)
		cmds = append(cmds, cmd)
		m.Confirm, cmd = m.Confirm.Update(msg)
		cmds = append(cmds, cmd)
		m.Result, cmd = m.Result.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case routerSelectedMsg:
		m.CurrentScreen = ScreenConfirm
		m.Confirm.Option = msg.option
		return m, nil

	case createCompleteMsg:
		m.CurrentScreen = ScreenResult
		m.Result.Err = msg.err
		m.Result.Entry = nil
		m.Result.Reason = ""
		if msg.result != nil {
			switch msg.result.Type {
			case flow.ResultCreated:
				m.Result.Entry = msg.result.Entry
			case flow.ResultAborted:
				m.Result.Reason = msg.result.Reason
			}
		}
		return m, nil

	case goBackMsg:
		m.CurrentScreen = ScreenDiscovery
		return m, m.Discovery.Init()
	}

	var cmd tea.Cmd
	switch m.CurrentScreen {
	case ScreenDiscovery:
		m.Discovery, cmd = m.Discovery.Update(msg)
	case ScreenConfirm:
		m.Confirm, cmd = m.Confirm.Update(msg)
	case ScreenResult:
		m.Result, cmd = m.Result.Update(msg)
	}
	return m, cmd
}

// View renders the active screen
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenConfirm:
		return m.Confirm.View()
	case ScreenResult:
		return m.Result.View()
	default:
		return m.Discovery.View()
	}
}

// Run starts the wizard and blocks until it exits
func Run(handler *flow.Handler) error {
	p := tea.NewProgram(NewAppModel(handler), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}
	return nil
}
