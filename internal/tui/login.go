package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/doctrack/trackctl/internal/auth"
	"github.com/doctrack/trackctl/internal/session"
)

// loginStep tracks where the login screen is in its flow.
type loginStep int

const (
	// stepProbe checks for an existing session before showing the form
	stepProbe loginStep = iota
	// stepForm collects credentials
	stepForm
	// stepSubmitting covers the login round-trip
	stepSubmitting
	// stepDone has an established session
	stepDone
)

// ProbeResultMsg carries the outcome of the silent session check.
type ProbeResultMsg struct {
	Outcome *auth.Outcome
}

// LoginResultMsg carries the outcome of a credential submission.
type LoginResultMsg struct {
	Outcome *auth.Outcome
	Err     error
}

var loginRoles = []session.Role{session.RoleSchool, session.RoleOffice, session.RoleAdmin}

// LoginModel is the sign-in screen: it probes for an existing session
// first and falls back to the credential form.
type LoginModel struct {
	flow *auth.Flow
	ctx  context.Context

	step      loginStep
	roleIndex int
	email     textinput.Model
	password  textinput.Model
	focus     int
	spinner   spinner.Model
	errMsg    string
	outcome   *auth.Outcome
	quitting  bool
	styles    Styles
}

// NewLoginModel creates the sign-in screen over the given flow.
func NewLoginModel(ctx context.Context, flow *auth.Flow) LoginModel {
	email := textinput.New()
	email.Placeholder = "you@deped.gov.ph"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return LoginModel{
		flow:     flow,
		ctx:      ctx,
		step:     stepProbe,
		email:    email,
		password: password,
		spinner:  sp,
		styles:   DefaultStyles(),
	}
}

// Outcome returns the established session, if any, after the program
// exits.
func (m LoginModel) Outcome() *auth.Outcome {
	return m.outcome
}

// Canceled reports whether the user quit without signing in.
func (m LoginModel) Canceled() bool {
	return m.quitting && m.outcome == nil
}

func (m LoginModel) role() session.Role {
	return loginRoles[m.roleIndex]
}

func (m LoginModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.probeCmd())
}

func (m LoginModel) probeCmd() tea.Cmd {
	return func() tea.Msg {
		outcome, _ := m.flow.Probe(m.ctx, "")
		return ProbeResultMsg{Outcome: outcome}
	}
}

func (m LoginModel) submitCmd(role session.Role, email, password string) tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.flow.Login(m.ctx, role, email, password)
		return LoginResultMsg{Outcome: outcome, Err: err}
	}
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case ProbeResultMsg:
		if msg.Outcome != nil {
			m.outcome = msg.Outcome
			m.step = stepDone
			return m, tea.Quit
		}
		m.step = stepForm
		return m, textinput.Blink

	case LoginResultMsg:
		if msg.Err != nil {
			m.errMsg = userMessage(msg.Err)
			m.step = stepForm
			return m, nil
		}
		m.outcome = msg.Outcome
		m.step = stepDone
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateInputs(msg)
}

func (m LoginModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.step != stepForm {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.quitting = true
		return m, tea.Quit

	case "ctrl+r":
		m.roleIndex = (m.roleIndex + 1) % len(loginRoles)
		return m, nil

	case "tab", "shift+tab", "up", "down":
		m.focus = (m.focus + 1) % 2
		return m.setFocus()

	case "enter":
		if m.focus == 0 {
			m.focus = 1
			return m.setFocus()
		}
		m.errMsg = ""
		m.step = stepSubmitting
		return m, tea.Batch(m.spinner.Tick,
			m.submitCmd(m.role(), m.email.Value(), m.password.Value()))
	}

	return m.updateInputs(msg)
}

func (m LoginModel) setFocus() (tea.Model, tea.Cmd) {
	if m.focus == 0 {
		m.password.Blur()
		return m, m.email.Focus()
	}
	m.email.Blur()
	return m, m.password.Focus()
}

func (m LoginModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds [2]tea.Cmd
	m.email, cmds[0] = m.email.Update(msg)
	m.password, cmds[1] = m.password.Update(msg)
	return m, tea.Batch(cmds[0], cmds[1])
}

func (m LoginModel) View() string {
	switch m.step {
	case stepProbe:
		return fmt.Sprintf("\n %s Checking for an existing session...\n", m.spinner.View())
	case stepSubmitting:
		return fmt.Sprintf("\n %s Signing in...\n", m.spinner.View())
	case stepDone:
		if m.outcome != nil {
			return m.styles.Success.Render("✓ Signed in as "+m.outcome.Record.FullName()) + "\n"
		}
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Sign in"))
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("Role"))
	b.WriteString(m.styles.Value.Render(string(m.role())))
	b.WriteString(m.styles.Muted.Render("  (ctrl+r to switch)"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render("Email"))
	b.WriteString(m.email.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("Password"))
	b.WriteString(m.password.View())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render("enter submit · tab next field · esc cancel"))
	b.WriteString("\n")
	return b.String()
}
