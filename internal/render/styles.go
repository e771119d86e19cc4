package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the stylesheet shared by all rendered components.
type Palette struct {
	Title    lipgloss.Style
	Meta     lipgloss.Style
	Saved    lipgloss.Style
	Cursor   lipgloss.Style
	Card     lipgloss.Style
	Banner   lipgloss.Style
	Err      lipgloss.Style
	Notice   lipgloss.Style
	Help     lipgloss.Style
	StaleTag lipgloss.Style
}

// NewPalette builds the default light-on-dark stylesheet.
func NewPalette() *Palette {
	return &Palette{
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true),
		Meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		Saved:    lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true),
		Card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Banner:   lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(0, 2),
		Err:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true),
		Notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Italic(true),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Italic(true),
		StaleTag: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Italic(true),
	}
}

// ErrorBox renders a retry-capable inline failure message scoped to one
// section.
func (p *Palette) ErrorBox(msg string) string {
	return p.Err.Render("✗ "+msg) + "\n" + p.Help.Render("press r to retry")
}

// NoticeBox renders an informational placeholder, visually distinct from a
// failure.
func (p *Palette) NoticeBox(msg string) string {
	return p.Notice.Render(msg)
}
