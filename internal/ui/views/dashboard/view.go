package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	trackerdto "unitrack/internal/modules/tracker/dto"
	"unitrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TrackerPort interface {
	List(ctx context.Context) ([]trackerdto.Record, error)
	Stats(ctx context.Context) (trackerdto.StatsOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Stats   trackerdto.StatsOutput
	Records []trackerdto.Record
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    TrackerPort
	stats   trackerdto.StatsOutput
	recent  []trackerdto.Record
	loaded  bool
	errText string
	width   int
	height  int
}

func New(port TrackerPort) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh reloads stats and the recent-records strip.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		stats, err := m.port.Stats(context.Background())
		if err != nil {
			return LoadedMsg{Err: err}
		}
		records, err := m.port.List(context.Background())
		if err != nil {
			return LoadedMsg{Err: err}
		}
		return LoadedMsg{Stats: stats, Records: records}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case LoadedMsg:
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.errText = ""
		m.loaded = true
		m.stats = msg.Stats
		m.recent = msg.Records
		if len(m.recent) > 5 {
			m.recent = m.recent[:5]
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.errText != "" {
		return theme.Bad.Render("dashboard: " + m.errText)
	}
	if !m.loaded {
		return theme.Muted.Render("Loading…")
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.card("Total", m.stats.Total, theme.Sapphire),
		m.card("Applied", m.stats.Applied, theme.Blue),
		m.card("Accepted", m.stats.Accepted, theme.Green),
		m.card("Pending", m.stats.Pending, theme.Peach),
	)

	var sb strings.Builder
	sb.WriteString(cards + "\n\n")
	sb.WriteString(theme.Title.Render("Recent applications") + "\n")
	if len(m.recent) == 0 {
		sb.WriteString(theme.Muted.Render("  none yet — press n to add one") + "\n")
	}
	for _, record := range m.recent {
		ready, total := record.DocumentsReady()
		sb.WriteString(fmt.Sprintf("  %s  %s — %s  %s\n",
			theme.StatusStyle(record.Status).Render(fmt.Sprintf("%-10s", record.Status)),
			record.University,
			record.Course,
			theme.Muted.Render(fmt.Sprintf("docs %d/%d  due %s", ready, total, orDash(record.Deadline))),
		))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

func (m Model) card(label string, value int, color lipgloss.Color) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Padding(0, 2).
		Render(
			lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprintf("%d", value)) +
				"\n" + theme.Muted.Render(label),
		)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
