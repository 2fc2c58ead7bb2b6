package applications

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	trackerdto "unitrack/internal/modules/tracker/dto"
	"unitrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TrackerPort interface {
	List(ctx context.Context) ([]trackerdto.Record, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type RecordsLoadedMsg struct {
	Records []trackerdto.Record
	Err     error
}

// NewRequestedMsg / EditRequestedMsg / DeleteRequestedMsg bubble up to the
// app model, which owns the editor overlay and the remove call.
type NewRequestedMsg struct{}

type EditRequestedMsg struct{ ID string }

type DeleteRequestedMsg struct{ ID string }

// ─── list item ───────────────────────────────────────────────────────────────

type recordItem struct {
	record trackerdto.Record
}

func (i recordItem) Title() string { return i.record.University }

func (i recordItem) Description() string {
	ready, total := i.record.DocumentsReady()
	return fmt.Sprintf("%s  %s  docs %d/%d", i.record.Status, i.record.Course, ready, total)
}

func (i recordItem) FilterValue() string { return i.record.University + " " + i.record.Course }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port      TrackerPort
	list      list.Model
	preview   viewport.Model
	confirmID string
	width     int
	height    int
}

func New(port TrackerPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Applications"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	return Model{port: port, list: l, preview: vp}
}

func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh reloads the record set for the signed-in account.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		records, err := m.port.List(context.Background())
		return RecordsLoadedMsg{Records: records, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case RecordsLoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Applications — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Applications"
		items := make([]list.Item, len(msg.Records))
		for i, record := range msg.Records {
			items[i] = recordItem{record: record}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.confirmID = ""
		m.preview.SetContent(m.renderDetail())

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch msg.String() {
		case "n":
			return m, func() tea.Msg { return NewRequestedMsg{} }
		case "enter", "e":
			if id, ok := m.SelectedID(); ok {
				return m, func() tea.Msg { return EditRequestedMsg{ID: id} }
			}
		case "d":
			// First press arms the confirmation, second press deletes.
			id, ok := m.SelectedID()
			if !ok {
				break
			}
			if m.confirmID == id {
				m.confirmID = ""
				return m, func() tea.Msg { return DeleteRequestedMsg{ID: id} }
			}
			m.confirmID = id
			m.preview.SetContent(m.renderDetail())
			return m, nil
		case "esc":
			if m.confirmID != "" {
				m.confirmID = ""
				m.preview.SetContent(m.renderDetail())
				return m, nil
			}
		}
	}

	prevIdx := m.list.Index()
	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	if m.list.Index() != prevIdx {
		m.confirmID = ""
		m.preview.SetContent(m.renderDetail())
	}

	var vCmd tea.Cmd
	m.preview, vCmd = m.preview.Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedID returns the current selection's record id, if any.
func (m Model) SelectedID() (string, bool) {
	if item, ok := m.list.SelectedItem().(recordItem); ok {
		return item.record.ID, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(recordItem)
	if !ok {
		return theme.Muted.Render("Select an application to see details")
	}
	record := item.record

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(record.University) + "\n")
	sb.WriteString(record.Course + "\n\n")
	sb.WriteString(theme.Muted.Render("status:     ") + theme.StatusStyle(record.Status).Render(record.Status) + "\n")
	sb.WriteString(theme.Muted.Render("deadline:   ") + record.Deadline + "\n")
	sb.WriteString(theme.Muted.Render("uni-assist: ") + yesNo(record.UniAssist) + "\n")
	sb.WriteString(theme.Muted.Render("vpd:        ") + yesNo(record.VPDRequired) + "\n\n")

	sb.WriteString(theme.Muted.Render("documents") + "\n")
	for _, name := range record.Documents.Names() {
		mark := "[ ]"
		if done, _ := record.Documents.Get(name); done {
			mark = theme.Good.Render("[x]")
		}
		sb.WriteString("  " + mark + " " + name + "\n")
	}
	if strings.TrimSpace(record.Notes) != "" {
		sb.WriteString("\n" + theme.Muted.Render("notes") + "\n" + record.Notes + "\n")
	}

	if m.confirmID == record.ID {
		sb.WriteString("\n" + theme.Bad.Render("press d again to delete, esc to keep"))
	} else {
		sb.WriteString("\n" + theme.Muted.Render("enter: edit  n: new  d: delete"))
	}
	return sb.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
