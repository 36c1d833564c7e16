package tui

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Yosodog/Nexus-Setup/internal/installer"
)

type stepStatus int

const (
	stepPending stepStatus = iota
	stepRunning
	stepDone
	stepFailed
)

type progressStep struct {
	label  string
	status stepStatus
	err    error
}

type stepDoneMsg struct {
	index int
	err   error
}

type progressModel struct {
	state      *wizardState
	steps      []progressStep
	spinner    spinner.Model
	current    int
	done       bool
	errMsg     string
	configPath string
}

func newProgressModel(state *wizardState) *progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &progressModel{
		state:   state,
		spinner: sp,
		steps: []progressStep{
			{label: "Writing install.conf"},
			{label: "Running installer stages"},
		},
	}
}

func (m *progressModel) Init() tea.Cmd {
	// Reset state for fresh run
	m.current = 0
	m.done = false
	m.errMsg = ""
	for i := range m.steps {
		m.steps[i].status = stepPending
		m.steps[i].err = nil
	}
	m.steps[0].status = stepRunning

	return tea.Batch(m.spinner.Tick, m.runStep(0))
}

func (m *progressModel) runStep(index int) tea.Cmd {
	return func() tea.Msg {
		var err error
		switch index {
		case 0:
			err = m.doWriteConfig()
		case 1:
			err = m.doInstall()
		}
		return stepDoneMsg{index: index, err: err}
	}
}

func yn(v bool) string {
	if v {
		return "y"
	}
	return "n"
}

func (m *progressModel) doWriteConfig() error {
	s := m.state
	raw := map[string]string{
		"INSTALL_PROFILE":   s.profile,
		"DOMAIN":            s.domain,
		"LETSENCRYPT_EMAIL": s.email,
		"DB_HOST":           s.dbHost,
		"DB_PORT":           s.dbPort,
		"DB_NAME":           s.dbName,
		"DB_USER":           s.dbUser,
		"DB_PASSWORD":       s.dbPassword,
		"USE_REDIS":         yn(s.useRedis),
		"ENABLE_SWAP":       yn(s.enableSwap),
		"ENABLE_SSL":        yn(s.enableSSL),
		"ADMIN_NAME":        s.adminName,
		"ADMIN_EMAIL":       s.adminEmail,
		"ADMIN_PASSWORD":    s.adminPassword,
		"PW_API_KEY":        s.apiKey,
	}
	cfg, err := installer.ParseConfig(raw)
	if err != nil {
		return err
	}

	m.configPath = installer.DefaultPaths().ConfigFile
	if s.dryRun {
		// A dry run must not touch /etc; stash the answers in a temp file.
		dir, err := os.MkdirTemp("", "nexus-setup")
		if err != nil {
			return err
		}
		m.configPath = filepath.Join(dir, "install.conf")
	}

	log := installer.NewRunLog(io.Discard, io.Discard)
	return installer.SaveConfig(installer.NewRunner(log, false), m.configPath, cfg)
}

func (m *progressModel) doInstall() error {
	var out bytes.Buffer
	err := installer.Install(installer.Options{
		DryRun:         m.state.dryRun,
		NonInteractive: true,
		ConfigPath:     m.configPath,
		Profile:        m.state.profile,
		Stdout:         &out,
	})
	m.state.report = out.String()
	return err
}

func (m *progressModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stepDoneMsg:
		m.steps[msg.index].status = stepDone
		if msg.err != nil {
			m.steps[msg.index].status = stepFailed
			m.steps[msg.index].err = msg.err
			m.errMsg = msg.err.Error()
			m.done = true
			return m, nil
		}

		next := msg.index + 1
		if next >= len(m.steps) {
			m.done = true
			return m, func() tea.Msg { return navigateMsg{to: screenComplete} }
		}
		m.current = next
		m.steps[next].status = stepRunning
		return m, m.runStep(next)

	case tea.KeyMsg:
		if m.done && m.errMsg != "" {
			if isEnter(msg) || isEsc(msg) {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m *progressModel) View() string {
	var b strings.Builder

	title := "Installing"
	if m.state.dryRun {
		title = "Dry Run"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	for _, step := range m.steps {
		var icon string
		switch step.status {
		case stepPending:
			icon = mutedStyle.Render("  ")
		case stepRunning:
			icon = m.spinner.View()
		case stepDone:
			icon = successStyle.Render("OK")
		case stepFailed:
			icon = errorStyle.Render("XX")
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", icon, normalStyle.Render(step.label)))
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("  Error: " + m.errMsg))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("\n  press enter or esc to exit"))
	}

	return b.String()
}
