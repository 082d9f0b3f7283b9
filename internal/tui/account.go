package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/doctrack/trackctl/internal/account"
	"github.com/doctrack/trackctl/internal/session"
)

// Indices into the edit inputs; order matches the rendered form.
const (
	fieldFirstName = iota
	fieldMiddleName
	fieldLastName
	fieldEmail
	fieldContactNumber
	fieldCount
)

// ProfileLoadedMsg carries the result of a profile load or refresh.
type ProfileLoadedMsg struct {
	Record *session.Record
	Err    error
}

// ProfileSavedMsg carries the result of a save.
type ProfileSavedMsg struct {
	Record *session.Record
	Err    error
}

// AccountModel is the manage-account screen. Its phase transitions all
// go through account.Reduce.
type AccountModel struct {
	sync *account.Synchronizer
	ctx  context.Context

	phase   account.Phase
	record  *session.Record
	inputs  [fieldCount]textinput.Model
	focus   int
	spinner spinner.Model
	notices *Notices
	pending []Notice
	errMsg  string
	styles  Styles
}

// NewAccountModel creates the manage-account screen. The notices
// collector must be the same one wired into the synchronizer.
func NewAccountModel(ctx context.Context, sync *account.Synchronizer, notices *Notices) AccountModel {
	m := AccountModel{
		sync:    sync,
		ctx:     ctx,
		phase:   account.PhaseIdle,
		notices: notices,
		styles:  DefaultStyles(),
	}

	labels := [fieldCount]string{"First name", "Middle name", "Last name", "Email", "Contact number"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 120
		m.inputs[i] = ti
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m.spinner = sp

	// The screen starts loading immediately.
	m.phase, _ = account.Reduce(m.phase, account.EventLoad)
	return m
}

// Phase exposes the current phase for the command layer.
func (m AccountModel) Phase() account.Phase {
	return m.phase
}

func (m AccountModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m AccountModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		rec, err := m.sync.Load(m.ctx)
		return ProfileLoadedMsg{Record: rec, Err: err}
	}
}

func (m AccountModel) saveCmd(staged account.Staged) tea.Cmd {
	return func() tea.Msg {
		rec, err := m.sync.Save(m.ctx, staged)
		return ProfileSavedMsg{Record: rec, Err: err}
	}
}

func (m AccountModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case ProfileLoadedMsg:
		m.pending = append(m.pending, m.notices.Drain()...)
		if msg.Err != nil {
			m.phase, _ = account.Reduce(m.phase, account.EventLoadFailed)
			m.errMsg = userMessage(msg.Err)
			return m, nil
		}
		m.phase, _ = account.Reduce(m.phase, account.EventLoaded)
		m.record = msg.Record
		m.errMsg = ""
		return m, nil

	case ProfileSavedMsg:
		m.pending = append(m.pending, m.notices.Drain()...)
		if msg.Err != nil {
			m.phase, _ = account.Reduce(m.phase, account.EventSaveFailed)
			return m, nil
		}
		m.phase, _ = account.Reduce(m.phase, account.EventSaved)
		m.record = msg.Record
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateInputs(msg)
}

func (m AccountModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.phase {
	case account.PhaseReady:
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "e":
			m.phase, _ = account.Reduce(m.phase, account.EventEdit)
			m.seedInputs()
			m.focus = fieldFirstName
			return m, m.inputs[m.focus].Focus()
		case "r":
			m.phase, _ = account.Reduce(m.phase, account.EventLoad)
			return m, tea.Batch(m.spinner.Tick, m.loadCmd())
		}

	case account.PhaseEditing:
		switch msg.String() {
		case "esc":
			m.phase, _ = account.Reduce(m.phase, account.EventCancel)
			return m, nil
		case "tab", "down", "enter":
			return m.moveFocus(1)
		case "shift+tab", "up":
			return m.moveFocus(-1)
		case "ctrl+s":
			m.phase, _ = account.Reduce(m.phase, account.EventSave)
			return m, tea.Batch(m.spinner.Tick, m.saveCmd(m.staged()))
		}
		return m.updateInputs(msg)

	case account.PhaseError:
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "r":
			m.phase, _ = account.Reduce(m.phase, account.EventRetry)
			m.errMsg = ""
			return m, tea.Batch(m.spinner.Tick, m.loadCmd())
		}
	}

	return m, nil
}

func (m *AccountModel) seedInputs() {
	staged := account.FromRecord(m.record)
	values := [fieldCount]string{
		staged.FirstName, staged.MiddleName, staged.LastName,
		staged.Email, staged.ContactNumber,
	}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
		m.inputs[i].Blur()
	}
}

func (m AccountModel) staged() account.Staged {
	return account.Staged{
		FirstName:     m.inputs[fieldFirstName].Value(),
		MiddleName:    m.inputs[fieldMiddleName].Value(),
		LastName:      m.inputs[fieldLastName].Value(),
		Email:         m.inputs[fieldEmail].Value(),
		ContactNumber: m.inputs[fieldContactNumber].Value(),
	}
}

func (m AccountModel) moveFocus(delta int) (tea.Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	return m, m.inputs[m.focus].Focus()
}

func (m AccountModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds [fieldCount]tea.Cmd
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds[:]...)
}

func (m AccountModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Manage Account"))
	b.WriteString("\n")

	if len(m.pending) > 0 {
		b.WriteString(RenderNotices(m.pending, m.styles))
		b.WriteString("\n")
	}

	switch m.phase {
	case account.PhaseIdle, account.PhaseLoading:
		fmt.Fprintf(&b, " %s Loading profile...\n", m.spinner.View())

	case account.PhaseSaving:
		fmt.Fprintf(&b, " %s Saving changes...\n", m.spinner.View())

	case account.PhaseError:
		b.WriteString(m.styles.Error.Render("Could not load your profile."))
		b.WriteString("\n")
		if m.errMsg != "" {
			b.WriteString(m.styles.Muted.Render(m.errMsg))
			b.WriteString("\n")
		}
		b.WriteString(m.styles.Help.Render("r retry · q quit"))
		b.WriteString("\n")

	case account.PhaseReady:
		m.renderProfile(&b)
		b.WriteString(m.styles.Help.Render("e edit · r refresh · q quit"))
		b.WriteString("\n")

	case account.PhaseEditing:
		m.renderForm(&b)
		b.WriteString(m.styles.Help.Render("ctrl+s save · tab next field · esc cancel"))
		b.WriteString("\n")
	}

	return b.String()
}

func (m AccountModel) renderProfile(b *strings.Builder) {
	rec := m.record
	rows := []struct{ label, value string }{
		{"Name", rec.FullName()},
		{"Role", string(rec.Role)},
		{"Email", rec.Email},
		{"Contact number", rec.ContactNumber},
		{"Registered", rec.RegistrationDate},
	}
	if rec.Role == session.RoleSchool {
		rows = append(rows,
			struct{ label, value string }{"School", rec.SchoolName},
			struct{ label, value string }{"School address", rec.SchoolAddress},
		)
	} else {
		rows = append(rows,
			struct{ label, value string }{"Position", rec.Position},
			struct{ label, value string }{"Office", rec.Office},
			struct{ label, value string }{"Section", rec.SectionDesignation},
		)
	}
	for _, row := range rows {
		b.WriteString(m.styles.Label.Render(row.label))
		b.WriteString(m.styles.Value.Render(row.value))
		b.WriteString("\n")
	}
}

func (m AccountModel) renderForm(b *strings.Builder) {
	labels := [fieldCount]string{"First name", "Middle name", "Last name", "Email", "Contact number"}
	for i := range m.inputs {
		label := m.styles.Label.Render(labels[i])
		if i == m.focus {
			label = m.styles.Focused.Render(labels[i]) + strings.Repeat(" ", max(0, 20-len(labels[i])))
		}
		b.WriteString(label)
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
}
