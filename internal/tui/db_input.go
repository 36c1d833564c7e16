package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type databaseInputModel struct {
	state  *wizardState
	inputs []textinput.Model
	labels []string
	focus  int
	errMsg string
}

func newDatabaseInputModel(state *wizardState) *databaseInputModel {
	labels := []string{"Host", "Port", "Database", "User", "Password"}
	inputs := make([]textinput.Model, len(labels))
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 128
		ti.Width = 32
		inputs[i] = ti
	}
	inputs[4].EchoMode = textinput.EchoPassword
	inputs[4].EchoCharacter = '*'

	return &databaseInputModel{
		state:  state,
		inputs: inputs,
		labels: labels,
	}
}

func (m *databaseInputModel) Init() tea.Cmd {
	m.inputs[0].SetValue(m.state.dbHost)
	m.inputs[1].SetValue(m.state.dbPort)
	m.inputs[2].SetValue(m.state.dbName)
	m.inputs[3].SetValue(m.state.dbUser)
	m.inputs[4].SetValue(m.state.dbPassword)
	return m.setFocus(0)
}

func (m *databaseInputModel) setFocus(i int) tea.Cmd {
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

func (m *databaseInputModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			return m, func() tea.Msg { return navigateMsg{to: screenEmailInput} }
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
			m.state.dbHost = strings.TrimSpace(m.inputs[0].Value())
			m.state.dbPort = strings.TrimSpace(m.inputs[1].Value())
			m.state.dbName = strings.TrimSpace(m.inputs[2].Value())
			m.state.dbUser = strings.TrimSpace(m.inputs[3].Value())
			m.state.dbPassword = m.inputs[4].Value()
			return m, func() tea.Msg { return navigateMsg{to: screenFeatures} }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *databaseInputModel) validate() string {
	for i := 0; i < 4; i++ {
		if strings.TrimSpace(m.inputs[i].Value()) == "" {
			return m.labels[i] + " is required"
		}
	}
	if _, err := strconv.Atoi(strings.TrimSpace(m.inputs[1].Value())); err != nil {
		return "Port must be a number"
	}
	if m.inputs[4].Value() == "" {
		return "Password is required"
	}
	return ""
}

func (m *databaseInputModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Database"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("MariaDB connection for Nexus. Use a remote host for split deployments."))
	b.WriteString("\n\n")

	for i, label := range m.labels {
		name := normalStyle.Render(fmt.Sprintf("%-10s", label))
		if i == m.focus {
			name = selectedStyle.Render(fmt.Sprintf("%-10s", label))
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", name, m.inputs[i].View()))
	}

	if m.errMsg != "" {
		b.WriteString("\n  " + errorStyle.Render(m.errMsg))
	}

	b.WriteString(helpStyle.Render("\n  tab/up/down: switch field  enter: next/confirm  esc: back"))
	return b.String()
}
