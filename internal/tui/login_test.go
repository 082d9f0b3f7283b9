package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctrack/trackctl/internal/auth"
	"github.com/doctrack/trackctl/internal/session"
)

func keyMsgFor(t *testing.T, key string) tea.KeyMsg {
	t.Helper()
	switch key {
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func pressKey(t *testing.T, model tea.Model, key string) tea.Model {
	t.Helper()
	next, _ := model.Update(keyMsgFor(t, key))
	return next
}

func TestLoginProbeSuccessSkipsForm(t *testing.T) {
	m := NewLoginModel(t.Context(), nil)

	outcome := &auth.Outcome{
		Record: &session.Record{UserID: "SCH-1", Role: session.RoleSchool, FirstName: "Maria", LastName: "Santos"},
		Route:  auth.RouteHome,
	}
	next, cmd := m.Update(ProbeResultMsg{Outcome: outcome})

	lm := next.(LoginModel)
	require.NotNil(t, lm.Outcome())
	assert.Equal(t, auth.RouteHome, lm.Outcome().Route)
	assert.NotNil(t, cmd, "a successful probe should quit the program")
	assert.Contains(t, lm.View(), "Maria Santos")
}

func TestLoginProbeMissShowsForm(t *testing.T) {
	m := NewLoginModel(t.Context(), nil)

	next, _ := m.Update(ProbeResultMsg{})
	lm := next.(LoginModel)

	assert.Nil(t, lm.Outcome())
	view := lm.View()
	assert.Contains(t, view, "Sign in")
	assert.Contains(t, view, "Email")
	assert.Contains(t, view, "Password")
}

func TestLoginRoleCycling(t *testing.T) {
	m := NewLoginModel(t.Context(), nil)
	next, _ := m.Update(ProbeResultMsg{})

	assert.Contains(t, next.(LoginModel).View(), "school")
	next = pressKey(t, next, "ctrl+r")
	assert.Contains(t, next.(LoginModel).View(), "office")
	next = pressKey(t, next, "ctrl+r")
	assert.Contains(t, next.(LoginModel).View(), "admin")
	next = pressKey(t, next, "ctrl+r")
	assert.Contains(t, next.(LoginModel).View(), "school")
}

func TestLoginFailureShowsPortalMessage(t *testing.T) {
	m := NewLoginModel(t.Context(), nil)
	next, _ := m.Update(ProbeResultMsg{})

	next, _ = next.Update(LoginResultMsg{Err: assert.AnError})
	lm := next.(LoginModel)

	assert.Nil(t, lm.Outcome())
	assert.Contains(t, lm.View(), assert.AnError.Error())
}

func TestLoginEscapeCancels(t *testing.T) {
	m := NewLoginModel(t.Context(), nil)
	next, _ := m.Update(ProbeResultMsg{})

	next = pressKey(t, next, "esc")
	lm := next.(LoginModel)
	assert.True(t, lm.Canceled())
}
