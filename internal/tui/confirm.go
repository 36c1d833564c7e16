package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Yosodog/Nexus-Setup/internal/installer"
)

type confirmModel struct {
	state  *wizardState
	cursor int
}

func newConfirmModel(state *wizardState) *confirmModel {
	return &confirmModel{state: state}
}

func (m *confirmModel) Init() tea.Cmd {
	m.cursor = 0
	return nil
}

func (m *confirmModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			return m, func() tea.Msg { return navigateMsg{to: screenAdminInput} }
		}
		if isLeft(msg) && m.cursor > 0 {
			m.cursor--
		}
		if isRight(msg) && m.cursor < 2 {
			m.cursor++
		}
		if isUp(msg) && m.cursor > 0 {
			m.cursor--
		}
		if isDown(msg) && m.cursor < 2 {
			m.cursor++
		}
		if isEnter(msg) {
			switch m.cursor {
			case 0: // Confirm
				return m, func() tea.Msg { return navigateMsg{to: screenPreflight} }
			case 1: // Back
				return m, func() tea.Msg { return navigateMsg{to: screenAdminInput} }
			case 2: // Cancel
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m *confirmModel) View() string {
	var b strings.Builder
	s := m.state

	b.WriteString(titleStyle.Render("Confirm Installation"))
	b.WriteString("\n\n")

	b.WriteString(subtitleStyle.Render("  Summary"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Profile:      %s\n", selectedStyle.Render(s.profile)))
	b.WriteString(fmt.Sprintf("  Domain:       %s\n", selectedStyle.Render(s.domain)))
	b.WriteString(fmt.Sprintf("  Email:        %s\n", selectedStyle.Render(s.email)))
	b.WriteString(fmt.Sprintf("  Database:     %s\n",
		selectedStyle.Render(fmt.Sprintf("%s@%s:%s/%s", s.dbUser, s.dbHost, s.dbPort, s.dbName))))
	b.WriteString(fmt.Sprintf("  Features:     %s\n", selectedStyle.Render(m.featureList())))
	b.WriteString(fmt.Sprintf("  Admin:        %s\n",
		selectedStyle.Render(fmt.Sprintf("%s <%s>", s.adminName, s.adminEmail))))
	if s.dryRun {
		b.WriteString("\n  " + warningStyle.Render("Dry run: commands are logged, nothing is changed."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("  Equivalent CLI Command"))
	b.WriteString("\n")
	line := fmt.Sprintf("  # nexus-setup install --profile %s", s.profile)
	if s.dryRun {
		line += " --dry-run"
	}
	b.WriteString(mutedStyle.Render(line))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("  (answers are saved to " + installer.DefaultPaths().ConfigFile + ")"))
	b.WriteString("\n\n")

	buttons := []string{"Confirm", "Back", "Cancel"}
	for i, btn := range buttons {
		if i == m.cursor {
			b.WriteString("  " + borderStyle.Render(selectedStyle.Render(btn)))
		} else {
			b.WriteString("  " + normalStyle.Render("["+btn+"]"))
		}
		b.WriteString("  ")
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("\n  left/right: navigate  enter: select  esc: back"))
	return b.String()
}

func (m *confirmModel) featureList() string {
	var on []string
	if m.state.useRedis {
		on = append(on, "redis")
	}
	if m.state.enableSwap {
		on = append(on, "swap")
	}
	if m.state.enableSSL {
		on = append(on, "https")
	}
	if len(on) == 0 {
		return "(none)"
	}
	return strings.Join(on, ", ")
}
