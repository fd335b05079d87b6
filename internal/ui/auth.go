package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// handleAuthKey drives the login/signup form while no session exists.
func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.resetAuthForm()
		m.switchView(ViewBrowse)
		return m, nil

	case "tab", "down":
		m.focusAuthInput(m.auth.focus + 1)
		return m, nil

	case "shift+tab", "up":
		m.focusAuthInput(m.auth.focus - 1)
		return m, nil

	case "ctrl+s":
		// Switch between login and signup.
		m.auth.signup = !m.auth.signup
		m.auth.inputs = newAuthInputs(m.auth.signup)
		m.auth.focus = 0
		return m, nil

	case "enter":
		return m.submitAuth()
	}

	var cmd tea.Cmd
	m.auth.inputs[m.auth.focus], cmd = m.auth.inputs[m.auth.focus].Update(msg)
	return m, cmd
}

// handleAccountKey covers the signed-in account view.
func (m Model) handleAccountKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "o":
		return m, signOutCmd(m.ctx, m.session)
	}
	return m, nil
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	if m.auth.busy {
		return m, nil
	}

	values := make([]string, len(m.auth.inputs))
	for i := range m.auth.inputs {
		values[i] = strings.TrimSpace(m.auth.inputs[i].Value())
	}
	for _, v := range values {
		if v == "" {
			m.setError("fill in every field")
			return m, nil
		}
	}

	m.auth.busy = true
	if m.auth.signup {
		m.setStatus("creating account...")
		return m, signUpCmd(m.ctx, m.session, m.auth.seq, values[0], values[1], values[2])
	}
	m.setStatus("signing in...")
	return m, logInCmd(m.ctx, m.session, m.auth.seq, values[0], values[1])
}

func (m *Model) focusAuthInput(idx int) {
	n := len(m.auth.inputs)
	if idx < 0 {
		idx = n - 1
	}
	if idx >= n {
		idx = 0
	}
	m.auth.inputs[m.auth.focus].Blur()
	m.auth.focus = idx
	m.auth.inputs[idx].Focus()
}

func (m *Model) resetAuthForm() {
	m.auth.signup = false
	m.auth.inputs = newAuthInputs(false)
	m.auth.focus = 0
	m.auth.busy = false
}

// renderAccount shows the form for anonymous sessions and the profile
// for signed-in ones.
func (m Model) renderAccount() string {
	if actor, ok := m.session.Actor(); ok {
		var b strings.Builder
		b.WriteString(m.styles.Accent.Render("Account"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Text.Render("signed in as " + actor.Username))
		b.WriteString("\n")
		b.WriteString(m.styles.MutedText.Render("role: " + string(actor.Role)))
		b.WriteString("\n\n")
		b.WriteString(m.styles.MutedText.Render("o sign out"))
		return b.String()
	}

	var b strings.Builder
	if m.auth.signup {
		b.WriteString(m.styles.Accent.Render("Create account"))
	} else {
		b.WriteString(m.styles.Accent.Render("Log in"))
	}
	b.WriteString("\n\n")

	for i := range m.auth.inputs {
		marker := "  "
		if i == m.auth.focus {
			marker = "> "
		}
		b.WriteString(marker)
		b.WriteString(m.auth.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.auth.busy {
		b.WriteString(m.styles.MutedText.Render("working..."))
	} else {
		mode := "sign up instead"
		if m.auth.signup {
			mode = "log in instead"
		}
		b.WriteString(m.styles.MutedText.Render(
			fmt.Sprintf("enter submit  tab next field  ctrl+s %s  esc back", mode)))
	}
	return b.String()
}
