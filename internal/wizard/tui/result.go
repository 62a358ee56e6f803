package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/igd-setup/internal/entries"
	"github.com/muurk/igd-setup/internal/flow"
)

// resultKeyMap defines key bindings for the result screen
type resultKeyMap struct {
	Rescan key.Binding
	Quit   key.Binding
}

func (k resultKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Rescan, k.Quit}
}

func (k resultKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Rescan, k.Quit},
	}
}

// ResultModel represents the final success/failure screen
type ResultModel struct {
	Entry  *entries.Entry
	Reason flow.AbortReason
	Err    error

	Width  int
	Height int
	Help   help.Model
	Keys   resultKeyMap
}

// NewResultModel creates a new result screen model
func NewResultModel() ResultModel {
	keys := resultKeyMap{
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "set up another"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "enter", "esc"),
			key.WithHelp("q", "quit"),
		),
	}

	return ResultModel{
		Help: help.New(),
		Keys: keys,
	}
}

// Update handles messages and updates the model
func (m ResultModel) Update(msg tea.Msg) (ResultModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, func() tea.Msg { return goBackMsg{} }
		case "q", "enter", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
	}

	return m, nil
}

// View renders the result screen
func (m ResultModel) View() string {
	var b strings.Builder
	b.WriteString(header())
	b.WriteString("\n\n")

	switch {
	case m.Err != nil:
		b.WriteString(ErrorBoxStyle.Render("Setup failed: " + m.Err.Error()))

	case m.Entry != nil:
		var box strings.Builder
		box.WriteString("Router configured\n\n")
		box.WriteString(DetailKeyStyle.Render("Name") + DetailValueStyle.Render(m.Entry.Title) + "\n")
		box.WriteString(DetailKeyStyle.Render("UDN") + DetailValueStyle.Render(m.Entry.Data.UDN) + "\n")
		box.WriteString(DetailKeyStyle.Render("Type") + DetailValueStyle.Render(m.Entry.Data.ST) + "\n")
		box.WriteString(DetailKeyStyle.Render("Location") + DetailValueStyle.Render(m.Entry.Data.Location))
		if m.Entry.Data.MACAddress != "" {
			box.WriteString("\n" + DetailKeyStyle.Render("MAC") + DetailValueStyle.Render(m.Entry.Data.MACAddress))
		}
		b.WriteString(SuccessBoxStyle.Render(box.String()))

	default:
		b.WriteString(WarningBoxStyle.Render(m.Reason.Message()))
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(m.Help.View(m.Keys)))
	return b.String()
}
