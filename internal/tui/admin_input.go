package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type adminInputModel struct {
	state  *wizardState
	inputs []textinput.Model
	labels []string
	focus  int
	errMsg string
}

func newAdminInputModel(state *wizardState) *adminInputModel {
	labels := []string{"Name", "Email", "Password", "PW API key"}
	inputs := make([]textinput.Model, len(labels))
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 254
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[2].EchoMode = textinput.EchoPassword
	inputs[2].EchoCharacter = '*'
	inputs[3].Placeholder = "optional"

	return &adminInputModel{
		state:  state,
		inputs: inputs,
		labels: labels,
	}
}

func (m *adminInputModel) Init() tea.Cmd {
	m.inputs[0].SetValue(m.state.adminName)
	m.inputs[1].SetValue(m.state.adminEmail)
	m.inputs[2].SetValue(m.state.adminPassword)
	m.inputs[3].SetValue(m.state.apiKey)
	return m.setFocus(0)
}

func (m *adminInputModel) setFocus(i int) tea.Cmd {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return textinput.Blink
}

func (m *adminInputModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			return m, func() tea.Msg { return navigateMsg{to: screenFeatures} }
		}
		if isTab(msg) || msg.String() == "down" {
			return m, m.setFocus((m.focus + 1) % len(m.inputs))
		}
		if isShiftTab(msg) || msg.String() == "up" {
			return m, m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
		}
		if isEnter(msg) {
			if m.focus < len(m.inputs)-1 {
				return m, m.setFocus(m.focus + 1)
			}
			if err := m.validate(); err != "" {
				m.errMsg = err
				return m, nil
			}
			m.errMsg = ""
			m.state.adminName = strings.TrimSpace(m.inputs[0].Value())
			m.state.adminEmail = strings.TrimSpace(m.inputs[1].Value())
			m.state.adminPassword = m.inputs[2].Value()
			m.state.apiKey = strings.TrimSpace(m.inputs[3].Value())
			return m, func() tea.Msg { return navigateMsg{to: screenConfirm} }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *adminInputModel) validate() string {
	if strings.TrimSpace(m.inputs[0].Value()) == "" {
		return "Name is required"
	}
	if !emailRegex.MatchString(strings.TrimSpace(m.inputs[1].Value())) {
		return "Invalid email format"
	}
	if len(m.inputs[2].Value()) < 8 {
		return "Password must be at least 8 characters"
	}
	return ""
}

func (m *adminInputModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Admin Account"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("First admin user for the Nexus web app."))
	b.WriteString("\n\n")

	for i, label := range m.labels {
		name := normalStyle.Render(fmt.Sprintf("%-11s", label))
		if i == m.focus {
			name = selectedStyle.Render(fmt.Sprintf("%-11s", label))
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", name, m.inputs[i].View()))
	}

	if m.errMsg != "" {
		b.WriteString("\n  " + errorStyle.Render(m.errMsg))
	}

	b.WriteString(helpStyle.Render("\n  tab/up/down: switch field  enter: next/confirm  esc: back"))
	return b.String()
}
