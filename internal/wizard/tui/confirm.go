package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/igd-setup/internal/flow"
)

// routerSelectedMsg is emitted by the discovery screen when the user
// picks a router from the list
type routerSelectedMsg struct {
	option flow.FormOption
}

// createCompleteMsg carries the outcome of entry creation
type createCompleteMsg struct {
	result *flow.Result
	err    error
}

// confirmKeyMap defines key bindings for the confirm screen
type confirmKeyMap struct {
	Yes  key.Binding
	No   key.Binding
	Quit key.Binding
}

func (k confirmKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Yes, k.No, k.Quit}
}

func (k confirmKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Yes, k.No, k.Quit},
	}
}

// ConfirmModel represents the yes/no confirmation screen
type ConfirmModel struct {
	handler *flow.Handler
	Option  flow.FormOption

	Width  int
	Height int
	Help   help.Model
	Keys   confirmKeyMap
}

// NewConfirmModel creates a new confirmation screen model
func NewConfirmModel(handler *flow.Handler) ConfirmModel {
	keys := confirmKeyMap{
		Yes: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "configure"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	return ConfirmModel{
		handler: handler,
		Help:    help.New(),
		Keys:    keys,
	}
}

// createCmd runs the selection step (entry creation) off the UI loop
func createCmd(handler *flow.Handler, uniqueID string) tea.Cmd {
	return func() tea.Msg {
		result, err := handler.StepUser(context.Background(), uniqueID)
		return createCompleteMsg{result: result, err: err}
	}
}

// Update handles messages and updates the model
func (m ConfirmModel) Update(msg tea.Msg) (ConfirmModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "y", "enter":
			return m, createCmd(m.handler, m.Option.UniqueID)
		case "n", "esc":
			return m, func() tea.Msg { return goBackMsg{} }
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
	}

	return m, nil
}

// View renders the confirmation screen
func (m ConfirmModel) View() string {
	var b strings.Builder
	b.WriteString(header())
	b.WriteString("\n\n")

	var box strings.Builder
	box.WriteString("Configure this router?\n\n")
	box.WriteString(DetailKeyStyle.Render("Name") + DetailValueStyle.Render(m.Option.Label) + "\n")
	box.WriteString(DetailKeyStyle.Render("Unique ID") + DetailValueStyle.Render(m.Option.UniqueID))
	b.WriteString(InfoBoxStyle.Render(box.String()))

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(m.Help.View(m.Keys)))
	return b.String()
}
