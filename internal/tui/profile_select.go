package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Yosodog/Nexus-Setup/internal/installer"
)

type profileSelectModel struct {
	state   *wizardState
	cursor  int
	options []string
}

func newProfileSelectModel(state *wizardState) *profileSelectModel {
	return &profileSelectModel{
		state:   state,
		options: installer.ProfileNames,
	}
}

func (m *profileSelectModel) Init() tea.Cmd {
	// Restore cursor position if going back
	for i, opt := range m.options {
		if opt == m.state.profile {
			m.cursor = i
			break
		}
	}
	return nil
}

func (m *profileSelectModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			return m, func() tea.Msg { return navigateMsg{to: screenWelcome} }
		}
		if isUp(msg) && m.cursor > 0 {
			m.cursor--
		}
		if isDown(msg) && m.cursor < len(m.options)-1 {
			m.cursor++
		}
		if isEnter(msg) {
			m.state.profile = m.options[m.cursor]
			return m, func() tea.Msg { return navigateMsg{to: screenDomainInput} }
		}
	}
	return m, nil
}

func (m *profileSelectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Select Install Profile"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("The profile decides which stages run on this machine."))
	b.WriteString("\n\n")

	for i, opt := range m.options {
		radio := radioOff
		label := normalStyle.Render(opt)
		if i == m.cursor {
			radio = radioOn
			label = selectedStyle.Render(opt)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", radio, label))
		b.WriteString(fmt.Sprintf("      %s\n", mutedStyle.Render(installer.ProfileDescription(opt))))
	}

	b.WriteString(helpStyle.Render("\n  up/down: navigate  enter: select  esc: back"))
	return b.String()
}
