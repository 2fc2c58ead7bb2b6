package auth

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"unitrack/internal/ui/theme"
)

// SubmitMsg asks the app model to run the sign-in or sign-up attempt. The
// view never talks to the account port itself; attempts stay single-slot at
// the usecase and the app just reflects the pending state back here.
type SubmitMsg struct {
	SignUp   bool
	Name     string
	Email    string
	Password string
}

const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldCount
)

type Model struct {
	inputs  [fieldCount]textinput.Model
	focus   int
	signUp  bool
	pending bool
	errText string
	spinner spinner.Model
	width   int
	height  int
}

func New() Model {
	name := textinput.New()
	name.Placeholder = "Ana Mustermann"
	name.CharLimit = 128

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	m := Model{spinner: sp, focus: fieldEmail}
	m.inputs[fieldName] = name
	m.inputs[fieldEmail] = email
	m.inputs[fieldPassword] = password
	m.inputs[fieldEmail].Focus()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetPending switches the spinner state while an attempt is in flight.
func (m *Model) SetPending(pending bool) {
	m.pending = pending
	if pending {
		m.errText = ""
	}
}

// SetError shows a failed attempt without clearing the typed fields.
func (m *Model) SetError(text string) {
	m.pending = false
	m.errText = text
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.pending {
			// Input is ignored while the attempt is pending.
			return m, nil
		}
		switch msg.String() {
		case "ctrl+t":
			m.signUp = !m.signUp
			m.errText = ""
			if !m.signUp && m.focus == fieldName {
				m.setFocus(fieldEmail)
			}
			return m, nil
		case "tab", "down":
			m.setFocus(m.nextField(1))
			return m, nil
		case "shift+tab", "up":
			m.setFocus(m.nextField(-1))
			return m, nil
		case "enter":
			m.pending = true
			m.errText = ""
			submit := SubmitMsg{
				SignUp:   m.signUp,
				Name:     strings.TrimSpace(m.inputs[fieldName].Value()),
				Email:    m.inputs[fieldEmail].Value(),
				Password: m.inputs[fieldPassword].Value(),
			}
			return m, tea.Batch(
				m.spinner.Tick,
				func() tea.Msg { return submit },
			)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	title := "Sign in"
	if m.signUp {
		title = "Create account"
	}
	sb.WriteString(theme.Title.Render("unitrack — "+title) + "\n\n")

	if m.signUp {
		sb.WriteString(m.renderField("name    ", fieldName))
	}
	sb.WriteString(m.renderField("email   ", fieldEmail))
	sb.WriteString(m.renderField("password", fieldPassword))

	sb.WriteString("\n")
	switch {
	case m.pending:
		sb.WriteString(m.spinner.View() + " signing in…\n")
	case m.errText != "":
		sb.WriteString(theme.Bad.Render(m.errText) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: submit  ctrl+t: toggle sign in/up  ctrl+c: quit"))

	box := theme.Pane.Width(52).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderField(label string, idx int) string {
	prefix := "  "
	if m.focus == idx {
		prefix = theme.Hot.Render("> ")
	}
	return prefix + theme.Muted.Render(label) + " " + m.inputs[idx].View() + "\n"
}

func (m *Model) setFocus(idx int) {
	m.inputs[m.focus].Blur()
	m.focus = idx
	m.inputs[m.focus].Focus()
}

func (m Model) nextField(dir int) int {
	first := fieldName
	if !m.signUp {
		first = fieldEmail
	}
	idx := m.focus + dir
	if idx < first {
		return fieldPassword
	}
	if idx > fieldPassword {
		return first
	}
	return idx
}
