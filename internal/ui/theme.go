package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette, symbols and box borders.
// All renderers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done, Help                          lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor

	BoxChecked, BoxUnchecked string
	SymDone, SymPending      string
	Cursor                   string
}

var current = classic()

// SetTheme switches the active theme. Unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = neon()
	case "mono":
		current = mono()
	default:
		current = classic()
	}
}

// Current returns the active theme.
func Current() Theme { return current }

func classic() Theme {
	return Theme{
		Name:     "classic",
		Title:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Faint(true),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Help:     lipgloss.NewStyle().Faint(true),

		Border:      lipgloss.NormalBorder(),
		BorderColor: lipgloss.Color("8"),

		BoxChecked: "☑", BoxUnchecked: "☐",
		SymDone: "✔", SymPending: "•",
		Cursor: "> ",
	}
}

func neon() Theme {
	t := classic()
	t.Name = "neon"
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	t.Border = lipgloss.RoundedBorder()
	t.BorderColor = lipgloss.Color("13")
	t.BoxChecked, t.BoxUnchecked = "◼", "◻"
	return t
}

func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:  "mono",
		Title: plain.Bold(true), Muted: plain, Accent: plain,
		Success: plain, Error: plain.Bold(true), Pending: plain,
		Selected: plain.Bold(true), Done: plain, Help: plain,

		Border:      lipgloss.ASCIIBorder(),
		BorderColor: lipgloss.NoColor{},

		BoxChecked: "[x]", BoxUnchecked: "[ ]",
		SymDone: "x", SymPending: "-",
		Cursor: "> ",
	}
}
