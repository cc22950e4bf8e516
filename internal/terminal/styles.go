package terminal

import "github.com/charmbracelet/lipgloss"

// Styles contains styling for the table display
type Styles struct {
	Header    lipgloss.Style
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
	Hidden    lipgloss.Style
	Total     lipgloss.Style
	Actions   lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
}

// NewStyles creates the display styles for the given renderer
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		CardRed: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Hidden: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Total: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")),
		Actions: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}
