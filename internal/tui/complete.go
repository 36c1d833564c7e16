package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type completeModel struct {
	state *wizardState
}

func newCompleteModel(state *wizardState) *completeModel {
	return &completeModel{state: state}
}

func (m *completeModel) Init() tea.Cmd {
	return nil
}

func (m *completeModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEnter(msg) || isEsc(msg) || msg.String() == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *completeModel) View() string {
	var b strings.Builder

	if m.state.dryRun {
		b.WriteString(successStyle.Render("  Dry Run Complete"))
	} else {
		b.WriteString(successStyle.Render("  Setup Complete!"))
	}
	b.WriteString("\n\n")

	if m.state.report != "" {
		for _, line := range strings.Split(strings.TrimRight(m.state.report, "\n"), "\n") {
			b.WriteString("  " + normalStyle.Render(line) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(subtitleStyle.Render("  Next Steps"))
	b.WriteString("\n")
	if m.state.dryRun {
		b.WriteString(mutedStyle.Render("  # nexus-setup install             # run it for real"))
		b.WriteString("\n")
	} else {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  visit https://%s to log in", m.state.domain)))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("  # nexus-setup report              # show this summary again"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("  # nexus-setup doctor              # verify system health"))
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("\n  press enter or q to exit"))
	return b.String()
}
