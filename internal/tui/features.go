package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type featureRow struct {
	label string
	desc  string
	value *bool
}

type featuresModel struct {
	state  *wizardState
	rows   []featureRow
	cursor int
}

func newFeaturesModel(state *wizardState) *featuresModel {
	return &featuresModel{
		state: state,
		rows: []featureRow{
			{label: "Redis", desc: "Cache and queue backend (recommended)", value: &state.useRedis},
			{label: "Swap file", desc: "2 GiB swap file for small VPS instances", value: &state.enableSwap},
			{label: "HTTPS", desc: "Let's Encrypt certificate via certbot", value: &state.enableSSL},
		},
	}
}

func (m *featuresModel) Init() tea.Cmd {
	return nil
}

func (m *featuresModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			return m, func() tea.Msg { return navigateMsg{to: screenDatabaseInput} }
		}
		if isUp(msg) && m.cursor > 0 {
			m.cursor--
		}
		if isDown(msg) && m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		if isSpace(msg) {
			v := m.rows[m.cursor].value
			*v = !*v
		}
		if isEnter(msg) {
			return m, func() tea.Msg { return navigateMsg{to: screenAdminInput} }
		}
	}
	return m, nil
}

func (m *featuresModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Optional Features"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Toggle with space. All of these can be changed in install.conf later."))
	b.WriteString("\n\n")

	for i, row := range m.rows {
		check := checkOff
		if *row.value {
			check = checkOn
		}
		prefix := "  "
		label := normalStyle.Render(row.label)
		if i == m.cursor {
			prefix = cursorChar
			label = selectedStyle.Render(row.label)
		}
		b.WriteString(fmt.Sprintf("  %s %s %s  %s\n", prefix, check, label, mutedStyle.Render(row.desc)))
	}

	b.WriteString(helpStyle.Render("\n  up/down: navigate  space: toggle  enter: confirm  esc: back"))
	return b.String()
}
