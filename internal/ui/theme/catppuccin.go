package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")
	Mauve    = lipgloss.Color("#cba6f7")
	Blue     = lipgloss.Color("#89b4fa")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Bad   = lipgloss.NewStyle().Foreground(Red).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Green).Bold(true)
)

// StatusStyle picks the badge style for an application stage.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "Accepted", "Enrolled":
		return lipgloss.NewStyle().Foreground(Green).Bold(true)
	case "Rejected":
		return lipgloss.NewStyle().Foreground(Red).Bold(true)
	case "Interview":
		return lipgloss.NewStyle().Foreground(Mauve).Bold(true)
	case "Applied":
		return lipgloss.NewStyle().Foreground(Blue).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(Subtext0)
	}
}
