package tui

import "github.com/charmbracelet/lipgloss"

// theme centralizes the Lip Gloss styles of the note screens.
type theme struct {
	Header     lipgloss.Style
	Selecting  lipgloss.Style
	Row        lipgloss.Style
	Cursor     lipgloss.Style
	Selected   lipgloss.Style
	Meta       lipgloss.Style
	Empty      lipgloss.Style
	AddHint    lipgloss.Style
	Status     lipgloss.Style
	Error      lipgloss.Style
	Label      lipgloss.Style
	Modal      lipgloss.Style
	ModalTitle lipgloss.Style
	Panel      lipgloss.Style
}

func defaultTheme() theme {
	accent := lipgloss.Color("212")
	return theme{
		Header:     lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1),
		Selecting:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1),
		Row:        lipgloss.NewStyle().PaddingLeft(1),
		Cursor:     lipgloss.NewStyle().PaddingLeft(1).Foreground(accent).Bold(true),
		Selected:   lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("238")),
		Meta:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Empty:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true).Padding(1, 2),
		AddHint:    lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(accent).Padding(0, 1),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Label:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Modal:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("203")).Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().Bold(true),
		Panel:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}
