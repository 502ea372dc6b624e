package controller

import (
	"github.com/charmbracelet/lipgloss"
	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

// Label colours follow the trust levels: green, orange, dark red.
var (
	officialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#008000"))
	unknownStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	cheatStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#880808")).Bold(true)
	otherStyle    = lipgloss.NewStyle()
	faintStyle    = lipgloss.NewStyle().Faint(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Bold(true)
)

const (
	unsetLabel    = "-"
	unhashedLabel = "unreadable"
)

// renderLabel returns the coloured classification label for an entry.
func renderLabel(entry m.MapEntry) string {
	return labelStyle(entry.Classification).Render(plainLabel(entry))
}

// plainLabel returns the uncoloured label shown for an entry.
func plainLabel(entry m.MapEntry) string {
	if !entry.Hashed() {
		return unhashedLabel
	}

	if !entry.Classification.IsSet() {
		return unsetLabel
	}

	return entry.Classification.Label
}

func labelStyle(c m.Classification) lipgloss.Style {
	switch c.Kind {
	case m.Official:
		return officialStyle
	case m.Unknown:
		return unknownStyle
	case m.Cheat:
		return cheatStyle
	case m.Unset:
		return faintStyle
	default:
		return otherStyle
	}
}

func shortDigest(digest string) string {
	const shown = 12
	if len(digest) <= shown {
		return digest
	}

	return digest[:shown]
}
