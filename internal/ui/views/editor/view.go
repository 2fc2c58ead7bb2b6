package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	editordto "unitrack/internal/modules/editor/dto"
	trackerdto "unitrack/internal/modules/tracker/dto"
	"unitrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// EditorPort is the pure draft surface: every checklist edit goes through it
// so the rules (trim, rename position, collisions) live in one place.
type EditorPort interface {
	AddItem(draft editordto.Draft, name string) editordto.Draft
	RenameItem(draft editordto.Draft, oldName, newName string) editordto.Draft
	RemoveItem(draft editordto.Draft, name string) editordto.Draft
	ToggleItem(draft editordto.Draft, name string) editordto.Draft
}

// ─── messages ────────────────────────────────────────────────────────────────

// SaveRequestedMsg asks the app model to commit the draft.
type SaveRequestedMsg struct{ Draft editordto.Draft }

// CancelMsg discards the draft.
type CancelMsg struct{}

// ─── rows ────────────────────────────────────────────────────────────────────

const (
	rowUniversity = iota
	rowCourse
	rowDeadline
	rowStatus
	rowUniAssist
	rowVPD
	rowNotes
	rowDocuments
)

type itemEditKind int

const (
	itemEditNone itemEditKind = iota
	itemEditAdd
	itemEditRename
)

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port  EditorPort
	draft editordto.Draft

	row       int
	docCursor int

	university textinput.Model
	course     textinput.Model
	deadline   textinput.Model
	notes      textinput.Model
	itemInput  textinput.Model
	itemEdit   itemEditKind

	errText string
	width   int
	height  int
}

func New(port EditorPort) Model {
	mk := func(placeholder string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		return ti
	}
	return Model{
		port:       port,
		university: mk("TU Munich", 128),
		course:     mk("M.Sc. Informatics", 128),
		deadline:   mk("2026-05-31", 32),
		notes:      mk("notes", 512),
		itemInput:  mk("document name", 64),
	}
}

// Open loads a draft into the form. Used for both create and edit.
func (m *Model) Open(draft editordto.Draft) tea.Cmd {
	m.draft = draft
	m.university.SetValue(draft.University)
	m.course.SetValue(draft.Course)
	m.deadline.SetValue(draft.Deadline)
	m.notes.SetValue(draft.Notes)
	m.itemEdit = itemEditNone
	m.errText = ""
	m.row = rowUniversity
	m.docCursor = 0
	m.syncFocus()
	return textinput.Blink
}

// SetError surfaces a rejected commit without losing the form state.
func (m *Model) SetError(text string) {
	m.errText = text
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.itemEdit != itemEditNone {
			return m.updateItemInput(msg)
		}
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return CancelMsg{} }
		case "ctrl+s":
			draft := m.collect()
			return m, func() tea.Msg { return SaveRequestedMsg{Draft: draft} }
		case "tab", "down":
			m.moveRow(1)
			return m, nil
		case "shift+tab", "up":
			m.moveRow(-1)
			return m, nil
		}
		switch m.row {
		case rowStatus:
			switch msg.String() {
			case "left":
				m.cycleStatus(-1)
				return m, nil
			case "right", " ", "enter":
				m.cycleStatus(1)
				return m, nil
			}
		case rowUniAssist:
			if msg.String() == " " || msg.String() == "enter" {
				m.draft.UniAssist = !m.draft.UniAssist
				return m, nil
			}
		case rowVPD:
			if msg.String() == " " || msg.String() == "enter" {
				m.draft.VPDRequired = !m.draft.VPDRequired
				return m, nil
			}
		case rowDocuments:
			return m.updateDocuments(msg)
		}
	}

	var cmd tea.Cmd
	switch m.row {
	case rowUniversity:
		m.university, cmd = m.university.Update(msg)
	case rowCourse:
		m.course, cmd = m.course.Update(msg)
	case rowDeadline:
		m.deadline, cmd = m.deadline.Update(msg)
	case rowNotes:
		m.notes, cmd = m.notes.Update(msg)
	}
	return m, cmd
}

func (m Model) updateDocuments(msg tea.KeyMsg) (Model, tea.Cmd) {
	names := m.draft.Documents.Names()
	switch msg.String() {
	case "j":
		if m.docCursor < len(names)-1 {
			m.docCursor++
		}
	case "k":
		if m.docCursor > 0 {
			m.docCursor--
		}
	case " ", "enter":
		if m.docCursor < len(names) {
			m.draft = m.port.ToggleItem(m.draft, names[m.docCursor])
		}
	case "a":
		m.itemEdit = itemEditAdd
		m.itemInput.SetValue("")
		return m, m.itemInput.Focus()
	case "r":
		if m.docCursor < len(names) {
			m.itemEdit = itemEditRename
			m.itemInput.SetValue(names[m.docCursor])
			return m, m.itemInput.Focus()
		}
	case "x":
		if m.docCursor < len(names) {
			m.draft = m.port.RemoveItem(m.draft, names[m.docCursor])
			if m.docCursor >= m.draft.Documents.Len() && m.docCursor > 0 {
				m.docCursor--
			}
		}
	}
	return m, nil
}

func (m Model) updateItemInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.itemEdit = itemEditNone
		m.itemInput.Blur()
		return m, nil
	case "enter":
		value := m.itemInput.Value()
		names := m.draft.Documents.Names()
		switch m.itemEdit {
		case itemEditAdd:
			m.draft = m.port.AddItem(m.draft, value)
		case itemEditRename:
			if m.docCursor < len(names) {
				m.draft = m.port.RenameItem(m.draft, names[m.docCursor], value)
			}
		}
		m.itemEdit = itemEditNone
		m.itemInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.itemInput, cmd = m.itemInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	title := "New application"
	if m.draft.ID != "" {
		title = "Edit application"
	}
	sb.WriteString(theme.Title.Render(title) + "\n\n")

	sb.WriteString(m.textRow("university", rowUniversity, m.university))
	sb.WriteString(m.textRow("course    ", rowCourse, m.course))
	sb.WriteString(m.textRow("deadline  ", rowDeadline, m.deadline))
	sb.WriteString(m.marker(rowStatus) + theme.Muted.Render("status    ") + " " +
		theme.StatusStyle(m.draft.Status).Render(m.draft.Status) + theme.Muted.Render("  (←/→)") + "\n")
	sb.WriteString(m.marker(rowUniAssist) + theme.Muted.Render("uni-assist") + " " + checkbox(m.draft.UniAssist) + "\n")
	sb.WriteString(m.marker(rowVPD) + theme.Muted.Render("vpd req.  ") + " " + checkbox(m.draft.VPDRequired) + "\n")
	sb.WriteString(m.textRow("notes     ", rowNotes, m.notes))

	sb.WriteString("\n" + m.marker(rowDocuments) + theme.Muted.Render("documents") + "\n")
	names := m.draft.Documents.Names()
	for i, name := range names {
		cursor := "  "
		if m.row == rowDocuments && i == m.docCursor {
			cursor = theme.Hot.Render("> ")
		}
		mark := "[ ]"
		if done, _ := m.draft.Documents.Get(name); done {
			mark = theme.Good.Render("[x]")
		}
		sb.WriteString("  " + cursor + mark + " " + name + "\n")
	}
	if len(names) == 0 {
		sb.WriteString(theme.Muted.Render("    no documents — press a to add") + "\n")
	}

	if m.itemEdit != itemEditNone {
		label := "add document: "
		if m.itemEdit == itemEditRename {
			label = "rename to: "
		}
		sb.WriteString("\n  " + theme.Hot.Render(label) + m.itemInput.View() + "\n")
	}

	if m.errText != "" {
		sb.WriteString("\n" + theme.Bad.Render(m.errText) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("ctrl+s: save  esc: cancel  docs: space toggle, a add, r rename, x remove"))

	box := theme.PaneActive.Width(minInt(m.width-4, 72)).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) textRow(label string, row int, input textinput.Model) string {
	return m.marker(row) + theme.Muted.Render(label) + " " + input.View() + "\n"
}

func (m Model) marker(row int) string {
	if m.row == row {
		return theme.Hot.Render("> ")
	}
	return "  "
}

func (m *Model) moveRow(dir int) {
	m.row += dir
	if m.row < rowUniversity {
		m.row = rowDocuments
	}
	if m.row > rowDocuments {
		m.row = rowUniversity
	}
	m.syncFocus()
}

func (m *Model) syncFocus() {
	m.university.Blur()
	m.course.Blur()
	m.deadline.Blur()
	m.notes.Blur()
	switch m.row {
	case rowUniversity:
		m.university.Focus()
	case rowCourse:
		m.course.Focus()
	case rowDeadline:
		m.deadline.Focus()
	case rowNotes:
		m.notes.Focus()
	}
}

func (m *Model) cycleStatus(dir int) {
	statuses := trackerdto.Statuses()
	idx := 0
	for i, status := range statuses {
		if status == m.draft.Status {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(statuses)) % len(statuses)
	m.draft.Status = statuses[idx]
}

// collect folds the text inputs back into the draft before saving.
func (m Model) collect() editordto.Draft {
	draft := m.draft
	draft.University = m.university.Value()
	draft.Course = m.course.Value()
	draft.Deadline = m.deadline.Value()
	draft.Notes = m.notes.Value()
	return draft
}

func checkbox(v bool) string {
	if v {
		return theme.Good.Render("[x]")
	}
	return "[ ]"
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
