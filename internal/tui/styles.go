package tui

import (
	"texglossary/internal/form"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent      = lipgloss.Color("#8BC34A")
	warning     = lipgloss.Color("#FFC107")
	destructive = lipgloss.Color("#e53935")
	muted       = lipgloss.Color("#6c7a89")
)

// Styles holds the lipgloss styles of the form
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Focused lipgloss.Style
	Hint    lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles returns the default form styles
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Label:   lipgloss.NewStyle().Width(16),
		Focused: lipgloss.NewStyle().Width(16).Bold(true).Foreground(accent),
		Hint:    lipgloss.NewStyle().Foreground(muted).MarginTop(1),
		Info:    lipgloss.NewStyle().Foreground(accent),
		Warning: lipgloss.NewStyle().Foreground(warning),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(destructive),
	}
}

// Status returns the style for a result of the given severity
func (s Styles) Status(severity form.Severity) lipgloss.Style {
	switch severity {
	case form.SeverityWarning:
		return s.Warning
	case form.SeverityError:
		return s.Error
	default:
		return s.Info
	}
}
