// Package tui is the interactive terminal front end: a bubbletea program that
// drives a shell.Session and draws shell.Render's screens with lipgloss.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	Teal      = lipgloss.Color("#0d9488")
	TealLight = lipgloss.Color("#ccfbf1")
	Slate     = lipgloss.Color("#334155")
	Muted     = lipgloss.Color("#64748b")
	Border    = lipgloss.Color("#cbd5e1")
	Danger    = lipgloss.Color("#ef4444")
	Disabled  = lipgloss.Color("#94a3b8")
)

// Styles groups every style the view uses.
type Styles struct {
	Title     lipgloss.Style
	Tagline   lipgloss.Style
	Input     lipgloss.Style
	Button    lipgloss.Style
	ButtonOff lipgloss.Style
	Header    lipgloss.Style
	Card      lipgloss.Style
	Name      lipgloss.Style
	Specialty lipgloss.Style
	Detail    lipgloss.Style
	Link      lipgloss.Style
	Message   lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
}

// DefaultStyles returns the teal-on-slate look of the web page.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(Slate),
		Tagline: lipgloss.NewStyle().Foreground(Muted),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Teal).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(Teal).
			Padding(0, 2).
			MarginLeft(1),
		ButtonOff: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(Disabled).
			Padding(0, 2).
			MarginLeft(1),
		Header: lipgloss.NewStyle().Bold(true).Foreground(Slate).MarginBottom(1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2).
			MarginBottom(1),
		Name:      lipgloss.NewStyle().Bold(true).Foreground(Slate),
		Specialty: lipgloss.NewStyle().Foreground(Teal).Background(TealLight).Padding(0, 1),
		Detail:    lipgloss.NewStyle().Foreground(Slate),
		Link:      lipgloss.NewStyle().Foreground(Teal).Underline(true),
		Message:   lipgloss.NewStyle().Foreground(Muted).Padding(1, 0),
		Error: lipgloss.NewStyle().
			Foreground(Danger).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Danger).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(Disabled).MarginTop(1),
	}
}
